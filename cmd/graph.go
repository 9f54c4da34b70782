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
	"image/color"
	"os"
	"os/signal"
	"syscall"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/phenolcst/phenol_water"
	"github.com/notargets/phenolcst/utils"
)

// LineChart is an interactive OpenGL chart window
type LineChart struct {
	Chart      *chart2d.Chart2D
	XMin, XMax float64
	FMin, FMax float64
}

func NewLineChart(width, height int, xmin, xmax, fmin, fmax float64) (lc *LineChart) {
	lc = &LineChart{
		Chart: chart2d.NewChart2D(float32(xmin), float32(xmax), float32(fmin), float32(fmax),
			width, height, utils2.WHITE, utils2.BLACK),
		XMin: xmin, XMax: xmax,
		FMin: fmin, FMax: fmax,
	}
	return
}

func (lc *LineChart) AddPolyline(x, f []float64, col color.RGBA) {
	if line := utils.PolylineSegments(x, f); len(line) > 0 {
		lc.Chart.AddLine(line, col)
	}
}

// AddMarkers draws a cross at each point sized to 1% of the chart extent
func (lc *LineChart) AddMarkers(x, f []float64, col color.RGBA) {
	if line := utils.CrossHairSegments(x, f, 0.01*(lc.XMax-lc.XMin), 0.01*(lc.FMax-lc.FMin)); len(line) > 0 {
		lc.Chart.AddLine(line, col)
	}
}

// showGraph displays the observations, fitted curve and CST until interrupted
func showGraph(res phenol_water.Result) {
	var (
		x          = res.Observations.PhenolPercents()
		y          = res.Observations.MeanTemps()
		xmin, xmax = utils.PaddedRange(x, 0.05)
		fmin, fmax = utils.PaddedRange(append(y, res.Estimate.Temperature), 0.1)
	)
	lc := NewLineChart(1280, 960, xmin, xmax, fmin, fmax)
	lc.AddPolyline(x, y, utils2.GREEN)
	lc.AddMarkers(x, y, utils2.GREEN)
	if fr := res.Estimate.Fit; fr != nil && len(x) > 0 {
		xs := floats.Span(make([]float64, 100), floats.Min(x), floats.Max(x))
		fs := make([]float64, len(xs))
		for i, xx := range xs {
			fs[i] = fr.Eval(xx)
		}
		lc.AddPolyline(xs, fs, utils2.BLUE)
	}
	lc.AddMarkers([]float64{res.Estimate.Composition}, []float64{res.Estimate.Temperature}, utils2.RED)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done
}
