/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/phenolcst/InputParameters"
	"github.com/notargets/phenolcst/phenol_water"
)

type RunConfig struct {
	N        int    // Number of observations, 0 selects the parameter default
	Seed     uint64 // Random seed, drawn when SeedSet is false
	SeedSet  bool
	CSVFile  string
	PlotFile string
	Graph    bool
	Profile  string
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one experiment and print the observations and CST",
	Long: `
Simulates a table of observations, fits the mean miscibility temperature against the
volume percent of phenol and reports the critical solution temperature,

phenolcst run -n 12 --seed 42 --csv cst_observations.csv --plot cst.svg`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		rc := &RunConfig{}
		rc.N, _ = cmd.Flags().GetInt("n")
		rc.Seed, _ = cmd.Flags().GetUint64("seed")
		rc.SeedSet = cmd.Flags().Changed("seed")
		rc.CSVFile, _ = cmd.Flags().GetString("csv")
		rc.PlotFile, _ = cmd.Flags().GetString("plot")
		rc.Graph, _ = cmd.Flags().GetBool("graph")
		rc.Profile, _ = cmd.Flags().GetString("profile")

		switch rc.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
		default:
			return fmt.Errorf("unknown profile type %q, use cpu or mem", rc.Profile)
		}

		var ep InputParameters.ExperimentParameters
		if ep, err = loadParams(viper.GetString("params")); err != nil {
			return
		}
		if viper.GetString("params") != "" {
			ep.Print()
		}
		var res phenol_water.Result
		if res, err = RunExperiment(rc, ep, cmd.OutOrStdout()); err != nil {
			return
		}
		if rc.Graph {
			showGraph(res)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().IntP("n", "n", 0, "number of observations, clamped to the parameter range (default from parameters)")
	RunCmd.Flags().Uint64P("seed", "s", 0, "random seed, the same seed reproduces the same table (default random)")
	RunCmd.Flags().String("csv", "", "write the observations to this CSV file")
	RunCmd.Flags().StringP("plot", "p", "", "write the graph to this file, .svg or .png")
	RunCmd.Flags().BoolP("graph", "g", false, "display the graph in a window, interrupt to exit")
	RunCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
}

// RunExperiment runs one experiment, prints it to w and writes the requested files
func RunExperiment(rc *RunConfig, ep InputParameters.ExperimentParameters, w io.Writer) (res phenol_water.Result, err error) {
	req := phenol_water.Request{
		Count:  rc.N,
		Seed:   rc.Seed,
		Params: ep,
	}
	if req.Count == 0 {
		req.Count = ep.DefaultObservations
	}
	if !rc.SeedSet {
		req.Seed = rand.Uint64()
	}
	if res, err = phenol_water.Run(req); err != nil {
		return
	}
	res.Print(w)

	if len(rc.CSVFile) != 0 {
		if err = writeFile(rc.CSVFile, func(f io.Writer) error {
			return phenol_water.WriteCSV(f, res.Observations)
		}); err != nil {
			return
		}
		zap.L().Info("observations written", zap.String("file", rc.CSVFile))
	}
	if len(rc.PlotFile) != 0 {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(rc.PlotFile)), ".")
		if _, ok := phenol_water.PlotFormats[format]; !ok {
			err = fmt.Errorf("plot file %s must end in .svg or .png", rc.PlotFile)
			return
		}
		if err = writeFile(rc.PlotFile, func(f io.Writer) error {
			return phenol_water.RenderPlot(f, res, format)
		}); err != nil {
			return
		}
		zap.L().Info("graph written", zap.String("file", rc.PlotFile))
	}
	return
}

func writeFile(fileName string, write func(f io.Writer) error) (err error) {
	var f *os.File
	if f, err = os.Create(fileName); err != nil {
		return
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write %s: %w", fileName, err)
	}
	return f.Close()
}
