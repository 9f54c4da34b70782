package phenol_water

import (
	"math/rand/v2"

	"github.com/notargets/phenolcst/InputParameters"
	"github.com/notargets/phenolcst/types"
	"github.com/notargets/phenolcst/utils"
)

// Source supplies the uniform integer draws for the simulated temperatures
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic random source, the same seed reproduces the same table
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func PhenolPercent(phenolVolume, waterVolume int) float64 {
	return utils.VolumePercent(phenolVolume, waterVolume)
}

func MeanTemp(disappearance, appearance int) float64 {
	return utils.Round(float64(disappearance+appearance)/2, 2)
}

/*
Simulate produces n synthetic observations. Water volumes step up from WaterStart, so the
phenol percentage falls down the table. Each row draws its disappearance temperature and
then its appearance temperature from rng, uniformly over the half open parameter ranges.
*/
func Simulate(n int, ep InputParameters.ExperimentParameters, rng Source) (obs types.ObservationSet) {
	if n <= 0 {
		return types.ObservationSet{}
	}
	obs = make(types.ObservationSet, n)
	for i := range obs {
		var (
			water = ep.WaterStart + ep.WaterStep*i
			tDis  = ep.DisappearanceMin + rng.IntN(ep.DisappearanceMax-ep.DisappearanceMin)
			tApp  = ep.AppearanceMin + rng.IntN(ep.AppearanceMax-ep.AppearanceMin)
		)
		obs[i] = types.Observation{
			PhenolVolume:      ep.PhenolVolume,
			WaterVolume:       water,
			PhenolPercent:     ep.PhenolPercent(i),
			DisappearanceTemp: tDis,
			AppearanceTemp:    tApp,
			MeanTemp:          MeanTemp(tDis, tApp),
		}
	}
	return
}
