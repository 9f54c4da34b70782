package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
PhenolVolume: 10
WaterStep: 4
MinObservations: 6
MaxObservations: 15
DefaultObservations: 8
`)
	ep := Defaults()
	require.NoError(t, ep.Parse(fileInput))
	assert.Equal(t, "Test Case", ep.Title)
	assert.Equal(t, 10, ep.PhenolVolume)
	assert.Equal(t, 4, ep.WaterStep)
	// Unset keys keep the defaults
	assert.Equal(t, 3, ep.WaterStart)
	assert.Equal(t, 60, ep.DisappearanceMin)
	assert.Equal(t, 75, ep.AppearanceMax)
	require.NoError(t, ep.Validate())
	ep.Print()

	assert.Error(t, ep.Parse([]byte("PhenolVolume: [1, 2")))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Defaults().Validate())
	mods := []func(ep *ExperimentParameters){
		func(ep *ExperimentParameters) { ep.PhenolVolume = 0 },
		func(ep *ExperimentParameters) { ep.WaterStart = -1 },
		func(ep *ExperimentParameters) { ep.WaterStep = 0 },
		func(ep *ExperimentParameters) { ep.DisappearanceMax = ep.DisappearanceMin },
		func(ep *ExperimentParameters) { ep.AppearanceMin = 90 },
		func(ep *ExperimentParameters) { ep.MinObservations = 2 },
		func(ep *ExperimentParameters) { ep.MaxObservations = 4 },
		func(ep *ExperimentParameters) { ep.DefaultObservations = 21 },
		// adjacent rows round to the same phenol percent long before row 400
		func(ep *ExperimentParameters) { ep.MaxObservations = 400 },
	}
	for i, mod := range mods {
		ep := Defaults()
		mod(&ep)
		assert.Error(t, ep.Validate(), "case %d", i)
	}
}

func TestPhenolPercentOrdering(t *testing.T) {
	ep := Defaults()
	assert.Equal(t, 62.5, ep.PhenolPercent(0))
	assert.Equal(t, 19.23, ep.PhenolPercent(9))
	{ // Every accepted range yields strictly decreasing, positive compositions
		for _, max := range []int{20, 60, 120} {
			ep.MaxObservations = max
			require.NoError(t, ep.Validate(), "max %d", max)
			for i := 1; i < max; i++ {
				assert.True(t, ep.PhenolPercent(i) < ep.PhenolPercent(i-1), "row %d", i)
				assert.True(t, ep.PhenolPercent(i) > 0)
			}
		}
	}
	{
		ep.MaxObservations = 400
		err := ep.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxObservations 400 too large")
	}
}

func TestClampObservations(t *testing.T) {
	ep := Defaults()
	assert.Equal(t, 5, ep.ClampObservations(-3))
	assert.Equal(t, 5, ep.ClampObservations(5))
	assert.Equal(t, 12, ep.ClampObservations(12))
	assert.Equal(t, 20, ep.ClampObservations(20))
	assert.Equal(t, 20, ep.ClampObservations(200))
}
