package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/phenolcst/phenol_water"
	"github.com/notargets/phenolcst/types"
	"github.com/notargets/phenolcst/utils"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "observations file exported by phenolcst, more may follow as arguments")
	flag.Parse()
	csvFile = *csvFilePtr
	files := flag.Args()
	if len(csvFile) != 0 {
		files = append([]string{csvFile}, files...)
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	utils.InitLogger(false)
	rpt := NewCSTReport()
	for _, fileName := range files {
		fmt.Printf("Input file: %v\n", fileName)
		obs, err := readCSV(fileName)
		if err != nil {
			zap.L().Error("skipping file", zap.String("file", fileName), zap.Error(err))
			continue
		}
		if err = rpt.Add(fileName, obs); err != nil {
			zap.L().Error("skipping file", zap.String("file", fileName), zap.Error(err))
		}
	}
	rpt.Print(os.Stdout)
}

type CSTReport struct {
	names        []string
	observations []int
	estimates    []types.CSTEstimate
}

func NewCSTReport() *CSTReport {
	return &CSTReport{}
}

// Add estimates the CST of one exported table
func (rpt *CSTReport) Add(name string, obs types.ObservationSet) (err error) {
	if err = obs.Validate(); err != nil {
		return
	}
	var ce types.CSTEstimate
	if ce, err = phenol_water.EstimateCST(obs); err != nil {
		return
	}
	rpt.names = append(rpt.names, name)
	rpt.observations = append(rpt.observations, len(obs))
	rpt.estimates = append(rpt.estimates, ce)
	return
}

// Summary returns the mean and standard deviation of the estimated CST and how many
// estimates fell back to the observed maximum
func (rpt *CSTReport) Summary() (mean, stdDev float64, fallbacks int) {
	temps := make([]float64, len(rpt.estimates))
	for i, ce := range rpt.estimates {
		temps[i] = ce.Temperature
		if ce.FellBack() {
			fallbacks++
		}
	}
	switch len(temps) {
	case 0:
	case 1:
		mean = temps[0]
	default:
		mean, stdDev = stat.MeanStdDev(temps, nil)
	}
	return
}

func (rpt *CSTReport) Print(w io.Writer) {
	for i, ce := range rpt.estimates {
		fmt.Fprintf(w, "%s, N = %d, CST = %6.2f °C at %6.2f%% phenol, %s\n",
			rpt.names[i], rpt.observations[i], ce.Temperature, ce.Composition, ce.Method)
		if ce.FellBack() {
			fmt.Fprintf(w, "\tfit not usable: %s\n", ce.FallbackReason)
		}
	}
	mean, stdDev, fallbacks := rpt.Summary()
	fmt.Fprintf(w, "Files = %d, Mean CST = %6.2f °C, StdDev = %5.2f, Fallbacks = %d\n",
		len(rpt.estimates), mean, stdDev, fallbacks)
}

func readCSV(fileName string) (obs types.ObservationSet, err error) {
	var f *os.File
	if f, err = os.Open(fileName); err != nil {
		return
	}
	defer f.Close()
	return phenol_water.ReadCSV(bufio.NewReader(f))
}
