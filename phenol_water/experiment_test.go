package phenol_water

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/phenolcst/InputParameters"
	"github.com/notargets/phenolcst/types"
	"github.com/notargets/phenolcst/utils"
)

func TestRun(t *testing.T) {
	ep := InputParameters.Defaults()
	{ // Default run
		res, err := Run(Request{Count: 10, Seed: 99, Params: ep})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, res.RunID)
		assert.Equal(t, 10, res.Count)
		assert.Equal(t, uint64(99), res.Seed)
		require.Len(t, res.Observations, 10)
		assert.Equal(t, Simulate(10, ep, NewSource(99)), res.Observations)
		require.NoError(t, res.Observations.Validate())

		ce := res.Estimate
		x := res.Observations.PhenolPercents()
		if ce.FellBack() {
			imax := res.Observations.MaxMeanTemp()
			assert.Equal(t, res.Observations[imax].MeanTemp, ce.Temperature)
			assert.Equal(t, x[imax], ce.Composition)
			assert.NotEmpty(t, ce.FallbackReason)
		} else {
			require.NotNil(t, ce.Fit)
			assert.True(t, ce.Fit.A < 0)
			assert.True(t, ce.Composition >= x[len(x)-1] && ce.Composition <= x[0])
			assert.Equal(t, utils.Round(ce.Temperature, 2), ce.Temperature)
		}

		again, err := Run(Request{Count: 10, Seed: 99, Params: ep})
		require.NoError(t, err)
		assert.Equal(t, res.Observations, again.Observations)
		assert.Equal(t, res.Estimate, again.Estimate)
		assert.NotEqual(t, res.RunID, again.RunID)
	}
	{ // Counts outside the slider are clamped
		res, err := Run(Request{Count: 2, Seed: 1, Params: ep})
		require.NoError(t, err)
		assert.Equal(t, 5, res.Count)
		assert.Len(t, res.Observations, 5)
		res, err = Run(Request{Count: 500, Seed: 1, Params: ep})
		require.NoError(t, err)
		assert.Equal(t, 20, res.Count)
		assert.Len(t, res.Observations, 20)
	}
	{ // Broken parameters
		bad := ep
		bad.AppearanceMax = bad.AppearanceMin
		_, err := Run(Request{Count: 10, Seed: 1, Params: bad})
		assert.Error(t, err)
	}
}

func TestResultPrint(t *testing.T) {
	fr := types.FitResult{A: -0.02, B: 1.4, C: 47.5, Residual: 1.25}
	res := Result{
		Count: 1,
		Seed:  3,
		Observations: types.ObservationSet{
			{PhenolVolume: 5, WaterVolume: 3, PhenolPercent: 62.5, DisappearanceTemp: 70, AppearanceTemp: 60, MeanTemp: 65},
		},
		Estimate: types.CSTEstimate{Temperature: 72, Composition: 35, Method: types.FitVertex, Fit: &fr},
	}
	var buf bytes.Buffer
	res.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, strings.Join(CSVHeader, " | "))
	assert.Contains(t, out, "62.50")
	assert.Contains(t, out, "RMS residual = 1.250")
	assert.Contains(t, out, "CST of phenol-water system = 72.00 °C")
	assert.Contains(t, out, "35.00% phenol")
	assert.NotContains(t, out, "Fit not usable")

	res.Estimate = types.CSTEstimate{Temperature: 65, Composition: 62.5, Method: types.ObservedMaximum,
		FallbackCause: "insufficient-data", FallbackReason: "too few points"}
	buf.Reset()
	res.Print(&buf)
	assert.Contains(t, buf.String(), "Fit not usable (too few points)")
}
