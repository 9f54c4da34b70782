package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservationSet(t *testing.T) {
	obs := ObservationSet{
		{PhenolVolume: 5, WaterVolume: 3, PhenolPercent: 62.5, DisappearanceTemp: 70, AppearanceTemp: 66, MeanTemp: 68},
		{PhenolVolume: 5, WaterVolume: 5, PhenolPercent: 50, DisappearanceTemp: 75, AppearanceTemp: 70, MeanTemp: 72.5},
		{PhenolVolume: 5, WaterVolume: 7, PhenolPercent: 41.67, DisappearanceTemp: 79, AppearanceTemp: 66, MeanTemp: 72.5},
	}
	{ // Column extraction
		assert.Equal(t, []float64{62.5, 50, 41.67}, obs.PhenolPercents())
		assert.Equal(t, []float64{68, 72.5, 72.5}, obs.MeanTemps())
		assert.Equal(t, []int{3, 5, 7}, obs.WaterVolumes())
		assert.Equal(t, 3, obs.DistinctCompositions())
	}
	{ // First maximum wins on ties
		assert.Equal(t, 1, obs.MaxMeanTemp())
		assert.Equal(t, -1, ObservationSet{}.MaxMeanTemp())
	}
	{ // Ordering invariants
		require.NoError(t, obs.Validate())
		bad := append(ObservationSet{}, obs...)
		bad[2].WaterVolume = 5
		assert.Error(t, bad.Validate())
		bad = append(ObservationSet{}, obs...)
		bad[2].PhenolPercent = 55
		assert.Error(t, bad.Validate())
		bad = append(ObservationSet{}, obs...)
		bad[0].PhenolPercent = 100
		assert.Error(t, bad.Validate())
	}
}

func TestFitResultVertex(t *testing.T) {
	{ // Concave down: y = -(x-40)^2 + 70
		fr := FitResult{A: -1, B: 80, C: -1530}
		x, y, err := fr.Vertex()
		require.NoError(t, err)
		assert.InDelta(t, 40., x, 1.e-12)
		assert.InDelta(t, 70., y, 1.e-9)
	}
	{ // Line
		fr := FitResult{A: 0, B: 2, C: 1}
		_, _, err := fr.Vertex()
		assert.True(t, errors.Is(err, ErrDegenerateFit))
	}
	{ // Minimum is not a critical solution temperature
		fr := FitResult{A: 0.5, B: -40, C: 900}
		_, _, err := fr.Vertex()
		assert.True(t, errors.Is(err, ErrNotConcave))
	}
	assert.Equal(t, "fit-vertex", FitVertex.String())
	assert.Equal(t, "observed-maximum", ObservedMaximum.String())
	assert.True(t, CSTEstimate{Method: ObservedMaximum}.FellBack())
}
