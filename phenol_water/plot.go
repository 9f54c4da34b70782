package phenol_water

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	PlotTitle  = "Critical Solution Temperature Graph"
	PlotXLabel = "Volume % of Phenol"
	PlotYLabel = "Mean Miscibility Temperature (°C)"
)

var (
	observationColor = color.RGBA{R: 25, G: 140, B: 25, A: 255}
	fitColor         = color.RGBA{R: 50, G: 0, B: 255, A: 255}
	cstColor         = color.RGBA{R: 255, G: 0, B: 50, A: 255}
)

// PlotFormats lists the accepted RenderPlot formats with their content types
var PlotFormats = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
}

// NewPlot assembles the observation line, the fitted parabola and the CST point
func NewPlot(res Result) (p *plot.Plot, err error) {
	var (
		x   = res.Observations.PhenolPercents()
		y   = res.Observations.MeanTemps()
		xys = make(plotter.XYs, len(x))
	)
	for i := range x {
		xys[i].X, xys[i].Y = x[i], y[i]
	}
	p = plot.New()
	p.Title.Text = PlotTitle
	p.X.Label.Text = PlotXLabel
	p.Y.Label.Text = PlotYLabel
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, fmt.Errorf("unable to add observation series: %w", err)
	}
	line.Color = observationColor
	points.Shape = draw.CircleGlyph{}
	points.Color = observationColor
	p.Add(line, points)
	p.Legend.Add("Observations", line, points)

	if fr := res.Estimate.Fit; fr != nil && len(x) > 0 {
		curve := plotter.NewFunction(fr.Eval)
		curve.XMin, curve.XMax = floats.Min(x), floats.Max(x)
		curve.Samples = 100
		curve.Color = fitColor
		curve.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(curve)
		p.Legend.Add(fmt.Sprintf("Fit: %s", fr), curve)
	}

	if len(x) > 0 {
		cst, err := plotter.NewScatter(plotter.XYs{{X: res.Estimate.Composition, Y: res.Estimate.Temperature}})
		if err != nil {
			return nil, fmt.Errorf("unable to add CST point: %w", err)
		}
		cst.Shape = draw.CrossGlyph{}
		cst.Color = cstColor
		cst.Radius = vg.Points(5)
		p.Add(cst)
		p.Legend.Add(fmt.Sprintf("CST %.2f °C at %.2f%% (%s)",
			res.Estimate.Temperature, res.Estimate.Composition, res.Estimate.Method), cst)
	}
	p.Legend.Top = true
	return
}

// RenderPlot writes the plot in the requested format ("svg" or "png")
func RenderPlot(w io.Writer, res Result, format string) (err error) {
	if _, ok := PlotFormats[format]; !ok {
		return fmt.Errorf("unsupported plot format %q", format)
	}
	var (
		p  *plot.Plot
		wt io.WriterTo
	)
	if p, err = NewPlot(res); err != nil {
		return
	}
	if wt, err = p.WriterTo(6*vg.Inch, 4*vg.Inch, format); err != nil {
		return fmt.Errorf("unable to render plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return
}
