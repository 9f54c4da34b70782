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
	"io/ioutil"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/phenolcst/InputParameters"
	"github.com/notargets/phenolcst/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "phenolcst",
	Short: "Phenol-water critical solution temperature virtual lab",
	Long: `
Simulates the determination of the critical solution temperature (CST) of the
phenol-water system: a table of turbidity disappearance and appearance
temperatures, a quadratic fit of mean temperature against phenol volume percent,
the estimated CST, a plot and a CSV export.

phenolcst run -n 10
phenolcst serve --port 8080`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.phenolcst.yaml)")
	rootCmd.PersistentFlags().StringP("params", "I", "", "YAML file for experiment parameters like:\n\t- PhenolVolume\n\t- MinObservations, MaxObservations")
	rootCmd.PersistentFlags().Bool("logProduction", false, "JSON structured logging")
	_ = viper.BindPFlag("params", rootCmd.PersistentFlags().Lookup("params"))
	_ = viper.BindPFlag("log_production", rootCmd.PersistentFlags().Lookup("logProduction"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".phenolcst" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".phenolcst")
	}

	viper.SetEnvPrefix("PHENOLCST")
	viper.AutomaticEnv() // read in environment variables that match

	utils.InitLogger(viper.GetBool("log_production"))

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		zap.L().Info("Using config file", zap.String("file", viper.ConfigFileUsed()))
	}
}

/*
loadParams returns the default experiment parameters, overlaid with the YAML file named
by the params setting when there is one.
*/
func loadParams(fileName string) (ep InputParameters.ExperimentParameters, err error) {
	ep = InputParameters.Defaults()
	if len(fileName) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(fileName); err != nil {
			return
		}
		if err = ep.Parse(data); err != nil {
			err = fmt.Errorf("unable to parse %s: %w", fileName, err)
			return
		}
	}
	if err = ep.Validate(); err != nil {
		err = fmt.Errorf("invalid experiment parameters: %w", err)
	}
	return
}
