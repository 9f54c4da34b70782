package phenol_water

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/phenolcst/InputParameters"
	"github.com/notargets/phenolcst/types"
)

// syntheticSet places exact temperatures f(x) at the experiment's compositions
func syntheticSet(n int, f func(x float64) float64) (obs types.ObservationSet) {
	obs = Simulate(n, InputParameters.Defaults(), NewSource(7))
	for i := range obs {
		obs[i].MeanTemp = f(obs[i].PhenolPercent)
	}
	return
}

func TestFitCurveRecoversQuadratic(t *testing.T) {
	a, b, c := -0.025, 2.1, 25.
	obs := syntheticSet(12, func(x float64) float64 { return (a*x+b)*x + c })
	fr, err := FitCurve(obs)
	require.NoError(t, err)
	fmt.Printf("fit = %s\n", fr)
	assert.InDelta(t, a, fr.A, 1.e-9)
	assert.InDelta(t, b, fr.B, 1.e-7)
	assert.InDelta(t, c, fr.C, 1.e-5)
	assert.InDelta(t, 0., fr.Residual, 1.e-8)

	x, y, err := FitVertex(obs, fr)
	require.NoError(t, err)
	assert.InDelta(t, 42., x, 1.e-6)
	assert.InDelta(t, 69.1, y, 1.e-6)
}

func TestEstimateCST(t *testing.T) {
	{ // Maximum inside the data: vertex is reported
		obs := syntheticSet(10, func(x float64) float64 { return -0.02*(x-35)*(x-35) + 72 })
		ce, err := EstimateCST(obs)
		require.NoError(t, err)
		assert.Equal(t, types.FitVertex, ce.Method)
		assert.False(t, ce.FellBack())
		require.NotNil(t, ce.Fit)
		assert.Equal(t, 35., ce.Composition)
		assert.Equal(t, 72., ce.Temperature)
		assert.Empty(t, ce.FallbackReason)
	}
	{ // Concave up falls back to the observed maximum
		obs := syntheticSet(10, func(x float64) float64 { return 0.02*(x-35)*(x-35) + 60 })
		ce, err := EstimateCST(obs)
		require.NoError(t, err)
		assert.Equal(t, types.ObservedMaximum, ce.Method)
		assert.Equal(t, "not-concave", ce.FallbackCause)
		imax := obs.MaxMeanTemp()
		assert.Equal(t, 0, imax)
		assert.Equal(t, obs[imax].MeanTemp, ce.Temperature)
		assert.Equal(t, obs[imax].PhenolPercent, ce.Composition)
		require.NotNil(t, ce.Fit)
	}
	{ // Vertex beyond the measured compositions
		obs := syntheticSet(10, func(x float64) float64 { return -0.01*(x-90)*(x-90) + 80 })
		ce, err := EstimateCST(obs)
		require.NoError(t, err)
		assert.Equal(t, types.ObservedMaximum, ce.Method)
		assert.Equal(t, "out-of-range", ce.FallbackCause)
	}
	{ // A straight line has no usable vertex
		obs := syntheticSet(10, func(x float64) float64 { return 0.5*x + 40 })
		ce, err := EstimateCST(obs)
		require.NoError(t, err)
		assert.True(t, ce.FellBack())
		assert.Equal(t, obs[0].MeanTemp, ce.Temperature)
	}
	{ // Too few compositions to fit
		obs := syntheticSet(2, func(x float64) float64 { return x })
		_, err := FitCurve(obs)
		assert.True(t, errors.Is(err, types.ErrInsufficientData))
		ce, err := EstimateCST(obs)
		require.NoError(t, err)
		assert.Equal(t, "insufficient-data", ce.FallbackCause)
		assert.Nil(t, ce.Fit)
		assert.Equal(t, obs[0].MeanTemp, ce.Temperature)
	}
	{ // Nothing to estimate from
		_, err := EstimateCST(types.ObservationSet{})
		assert.True(t, errors.Is(err, types.ErrInsufficientData))
	}
}

func TestFallbackLogLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	obs := syntheticSet(10, func(x float64) float64 { return 0.02*(x-35)*(x-35) + 60 })
	ce, err := EstimateCST(obs)
	require.NoError(t, err)
	require.True(t, ce.FellBack())
	// a fallback is routine, it must not raise warnings
	assert.Equal(t, 1, logs.FilterMessage("falling back to observed maximum").Len())
	assert.Zero(t, logs.Filter(func(e observer.LoggedEntry) bool { return e.Level >= zapcore.WarnLevel }).Len())
}
