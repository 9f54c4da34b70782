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
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/phenolcst/server"
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive experiment page",
	Long: `
Serves the experiment page, its graph and CSV download, a JSON API and prometheus metrics,

phenolcst serve --port 8080 --cors`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ep, err := loadParams(viper.GetString("params"))
		if err != nil {
			return
		}
		s, err := server.NewServer(server.Config{
			CORS:   viper.GetBool("cors"),
			Params: ep,
		})
		if err != nil {
			return
		}
		srv := server.NewHTTPServer(viper.GetInt("port"), s.Router())

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zap.L().Fatal("Server listen", zap.Error(err))
			}
		}()
		zap.L().Info("Server Started", zap.String("addr", srv.Addr))

		<-done

		ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err = srv.Shutdown(ctxShutDown); err != nil {
			zap.L().Error("Server shutdown failed", zap.Error(err))
			return
		}
		zap.L().Info("Server shutdown")
		return
	},
}

func init() {
	rootCmd.AddCommand(ServeCmd)
	ServeCmd.Flags().IntP("port", "P", 8080, "port to listen on")
	ServeCmd.Flags().Bool("cors", false, "allow cross origin requests on /api/experiment")
	ServeCmd.Flags().Bool("verboseErrors", false, "include error details in API error responses")
	_ = viper.BindPFlag("port", ServeCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("cors", ServeCmd.Flags().Lookup("cors"))
	_ = viper.BindPFlag("verbose_errors", ServeCmd.Flags().Lookup("verboseErrors"))
}
