package phenol_water

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/phenolcst/types"
	"github.com/notargets/phenolcst/utils"
)

// FitCurve fits T = A x^2 + B x + C through (phenol %, mean temperature) by least squares
func FitCurve(obs types.ObservationSet) (fr types.FitResult, err error) {
	if obs.DistinctCompositions() < 3 {
		err = fmt.Errorf("%w: have %d", types.ErrInsufficientData, obs.DistinctCompositions())
		return
	}
	var (
		x = obs.PhenolPercents()
		y = obs.MeanTemps()
		c []float64
	)
	if c, err = utils.PolyFit(x, y, 2); err != nil {
		err = fmt.Errorf("quadratic fit failed: %w", err)
		return
	}
	fr = types.FitResult{
		A:        c[2],
		B:        c[1],
		C:        c[0],
		Residual: utils.RMSResidual(c, x, y),
	}
	return
}

// FitVertex returns the maximum of the fitted parabola, which must lie within the
// observed compositions
func FitVertex(obs types.ObservationSet, fr types.FitResult) (composition, temperature float64, err error) {
	if composition, temperature, err = fr.Vertex(); err != nil {
		return
	}
	x := obs.PhenolPercents()
	xmin, xmax := floats.Min(x), floats.Max(x)
	if composition < xmin || composition > xmax {
		err = fmt.Errorf("%w: %.2f%% not in [%.2f%%, %.2f%%]",
			types.ErrVertexOutOfRange, composition, xmin, xmax)
	}
	return
}

/*
EstimateCST reports the critical solution temperature as the vertex of the fitted
parabola. When the fit can't produce a usable maximum the highest observed mean
temperature is reported instead, along with the reason.
*/
func EstimateCST(obs types.ObservationSet) (ce types.CSTEstimate, err error) {
	if len(obs) == 0 {
		err = fmt.Errorf("%w: empty observation set", types.ErrInsufficientData)
		return
	}
	fr, fitErr := FitCurve(obs)
	if fitErr == nil {
		ce.Fit = &fr
		var composition, temperature float64
		if composition, temperature, fitErr = FitVertex(obs, fr); fitErr == nil {
			ce.Method = types.FitVertex
			ce.Composition = utils.Round(composition, 2)
			ce.Temperature = utils.Round(temperature, 2)
			return
		}
	}
	zap.L().Debug("falling back to observed maximum", zap.Error(fitErr), zap.Int("observations", len(obs)))
	imax := obs.MaxMeanTemp()
	ce.Method = types.ObservedMaximum
	ce.Composition = obs[imax].PhenolPercent
	ce.Temperature = obs[imax].MeanTemp
	ce.FallbackCause = types.FitFailureCause(fitErr)
	ce.FallbackReason = fitErr.Error()
	return
}
