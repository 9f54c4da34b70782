package phenol_water

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/phenolcst/types"
)

const CSVFileName = "cst_observations.csv"

var CSVHeader = []string{
	"Vol. of phenol (ml)",
	"Vol. of water (ml)",
	"Vol. % of phenol",
	"Temp. of disappearance (°C)",
	"Temp. of appearance (°C)",
	"Mean Temp. (°C)",
}

// FormatFloat prints the shortest representation, keeping a ".0" on whole numbers
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func observationRecord(o types.Observation) []string {
	return []string{
		strconv.Itoa(o.PhenolVolume),
		strconv.Itoa(o.WaterVolume),
		FormatFloat(o.PhenolPercent),
		strconv.Itoa(o.DisappearanceTemp),
		strconv.Itoa(o.AppearanceTemp),
		FormatFloat(o.MeanTemp),
	}
}

// WriteCSV writes the header row and one row per observation, with no index column
func WriteCSV(w io.Writer, obs types.ObservationSet) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write(CSVHeader); err != nil {
		return
	}
	for _, o := range obs {
		if err = cw.Write(observationRecord(o)); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func MarshalCSV(obs types.ObservationSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, obs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV decodes a table written by WriteCSV
func ReadCSV(r io.Reader) (obs types.ObservationSet, err error) {
	var (
		records [][]string
		cr      = csv.NewReader(r)
	)
	cr.FieldsPerRecord = len(CSVHeader)
	if records, err = cr.ReadAll(); err != nil {
		err = fmt.Errorf("unable to read observations: %w", err)
		return
	}
	if len(records) == 0 {
		err = fmt.Errorf("observations file is empty")
		return
	}
	for j, name := range CSVHeader {
		// a leading byte order mark is tolerated on the first column
		if strings.TrimPrefix(records[0][j], "\ufeff") != name {
			err = fmt.Errorf("unexpected column %d header %q, want %q", j, records[0][j], name)
			return
		}
	}
	obs = make(types.ObservationSet, 0, len(records)-1)
	for i, rec := range records[1:] {
		var o types.Observation
		if o, err = parseRecord(rec); err != nil {
			err = fmt.Errorf("row %d: %w", i+1, err)
			return
		}
		obs = append(obs, o)
	}
	return
}

func parseRecord(rec []string) (o types.Observation, err error) {
	ints := []*int{&o.PhenolVolume, &o.WaterVolume, nil, &o.DisappearanceTemp, &o.AppearanceTemp, nil}
	floats := []*float64{nil, nil, &o.PhenolPercent, nil, nil, &o.MeanTemp}
	for j, field := range rec {
		field = strings.TrimSpace(field)
		switch {
		case ints[j] != nil:
			if *ints[j], err = strconv.Atoi(field); err != nil {
				err = fmt.Errorf("column %q: %w", CSVHeader[j], err)
				return
			}
		case floats[j] != nil:
			if *floats[j], err = strconv.ParseFloat(field, 64); err != nil {
				err = fmt.Errorf("column %q: %w", CSVHeader[j], err)
				return
			}
		}
	}
	return
}
