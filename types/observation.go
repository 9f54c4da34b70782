package types

import (
	"fmt"
)

/*
An Observation is one row of the miscibility experiment: a fixed volume of phenol, a
measured volume of water, and the two temperatures at which turbidity disappears on
heating and reappears on cooling.
*/
type Observation struct {
	PhenolVolume      int     `json:"phenolVolume"`      // ml
	WaterVolume       int     `json:"waterVolume"`       // ml
	PhenolPercent     float64 `json:"phenolPercent"`     // Vol. % of phenol, 2 dp
	DisappearanceTemp int     `json:"disappearanceTemp"` // °C
	AppearanceTemp    int     `json:"appearanceTemp"`    // °C
	MeanTemp          float64 `json:"meanTemp"`          // °C, 2 dp
}

type ObservationSet []Observation

func (obs ObservationSet) PhenolPercents() (x []float64) {
	x = make([]float64, len(obs))
	for i, o := range obs {
		x[i] = o.PhenolPercent
	}
	return
}

func (obs ObservationSet) MeanTemps() (y []float64) {
	y = make([]float64, len(obs))
	for i, o := range obs {
		y[i] = o.MeanTemp
	}
	return
}

func (obs ObservationSet) WaterVolumes() (w []int) {
	w = make([]int, len(obs))
	for i, o := range obs {
		w[i] = o.WaterVolume
	}
	return
}

// MaxMeanTemp returns the index of the highest mean temperature, the first one on ties.
// An empty set returns -1.
func (obs ObservationSet) MaxMeanTemp() (index int) {
	index = -1
	for i, o := range obs {
		if index < 0 || o.MeanTemp > obs[index].MeanTemp {
			index = i
		}
	}
	return
}

// DistinctCompositions counts the distinct phenol percentages in the set.
func (obs ObservationSet) DistinctCompositions() int {
	seen := make(map[float64]struct{}, len(obs))
	for _, o := range obs {
		seen[o.PhenolPercent] = struct{}{}
	}
	return len(seen)
}

// Validate checks the ordering invariants of a set: water volumes strictly increase
// and phenol percentages strictly decrease down the table.
func (obs ObservationSet) Validate() error {
	for i, o := range obs {
		if o.PhenolPercent <= 0 || o.PhenolPercent >= 100 {
			return fmt.Errorf("row %d: phenol percent %v outside (0, 100)", i, o.PhenolPercent)
		}
		if i == 0 {
			continue
		}
		prev := obs[i-1]
		if o.WaterVolume <= prev.WaterVolume {
			return fmt.Errorf("row %d: water volume %d not greater than %d", i, o.WaterVolume, prev.WaterVolume)
		}
		if o.PhenolPercent >= prev.PhenolPercent {
			return fmt.Errorf("row %d: phenol percent %v not less than %v", i, o.PhenolPercent, prev.PhenolPercent)
		}
	}
	return nil
}
