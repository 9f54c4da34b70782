package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/phenolcst/utils"
)

// Parameters obtained from the YAML input file
type ExperimentParameters struct {
	Title               string `yaml:"Title" json:"Title"`
	PhenolVolume        int    `yaml:"PhenolVolume" json:"PhenolVolume"` // ml, constant across the set
	WaterStart          int    `yaml:"WaterStart" json:"WaterStart"`     // ml, first water volume
	WaterStep           int    `yaml:"WaterStep" json:"WaterStep"`       // ml added per observation
	DisappearanceMin    int    `yaml:"DisappearanceMin" json:"DisappearanceMin"`
	DisappearanceMax    int    `yaml:"DisappearanceMax" json:"DisappearanceMax"` // exclusive
	AppearanceMin       int    `yaml:"AppearanceMin" json:"AppearanceMin"`
	AppearanceMax       int    `yaml:"AppearanceMax" json:"AppearanceMax"` // exclusive
	MinObservations     int    `yaml:"MinObservations" json:"MinObservations"`
	MaxObservations     int    `yaml:"MaxObservations" json:"MaxObservations"`
	DefaultObservations int    `yaml:"DefaultObservations" json:"DefaultObservations"`
}

func Defaults() ExperimentParameters {
	return ExperimentParameters{
		Title:               "Determination of Critical Solution Temperature for Phenol-Water System",
		PhenolVolume:        5,
		WaterStart:          3,
		WaterStep:           2,
		DisappearanceMin:    60,
		DisappearanceMax:    80,
		AppearanceMin:       55,
		AppearanceMax:       75,
		MinObservations:     5,
		MaxObservations:     20,
		DefaultObservations: 10,
	}
}

// Parse overlays the YAML document on the receiver, fields absent from data keep their values
func (ep *ExperimentParameters) Parse(data []byte) error {
	// ghodss/yaml converts to JSON before decoding, the json tags carry the field names
	return yaml.Unmarshal(data, ep)
}

func (ep ExperimentParameters) Validate() error {
	switch {
	case ep.PhenolVolume <= 0:
		return fmt.Errorf("PhenolVolume must be positive, have %d", ep.PhenolVolume)
	case ep.WaterStart <= 0:
		return fmt.Errorf("WaterStart must be positive, have %d", ep.WaterStart)
	case ep.WaterStep <= 0:
		return fmt.Errorf("WaterStep must be positive, have %d", ep.WaterStep)
	case ep.DisappearanceMax <= ep.DisappearanceMin:
		return fmt.Errorf("empty disappearance range [%d, %d)", ep.DisappearanceMin, ep.DisappearanceMax)
	case ep.AppearanceMax <= ep.AppearanceMin:
		return fmt.Errorf("empty appearance range [%d, %d)", ep.AppearanceMin, ep.AppearanceMax)
	case ep.MinObservations < 3:
		return fmt.Errorf("MinObservations must be at least 3 for a quadratic fit, have %d", ep.MinObservations)
	case ep.MaxObservations < ep.MinObservations:
		return fmt.Errorf("MaxObservations %d less than MinObservations %d", ep.MaxObservations, ep.MinObservations)
	case ep.DefaultObservations < ep.MinObservations || ep.DefaultObservations > ep.MaxObservations:
		return fmt.Errorf("DefaultObservations %d outside [%d, %d]",
			ep.DefaultObservations, ep.MinObservations, ep.MaxObservations)
	}
	// rounded compositions must stay distinct and positive through the last row
	for i := 1; i < ep.MaxObservations; i++ {
		prev, pct := ep.PhenolPercent(i-1), ep.PhenolPercent(i)
		if pct <= 0 || pct >= prev {
			return fmt.Errorf("MaxObservations %d too large, row %d phenol percent %v not less than %v",
				ep.MaxObservations, i, pct, prev)
		}
	}
	return nil
}

// PhenolPercent is the rounded volume percent of phenol in row i of the table
func (ep ExperimentParameters) PhenolPercent(i int) float64 {
	return utils.VolumePercent(ep.PhenolVolume, ep.WaterStart+ep.WaterStep*i)
}

// ClampObservations limits a requested observation count to the slider range
func (ep ExperimentParameters) ClampObservations(n int) int {
	switch {
	case n < ep.MinObservations:
		return ep.MinObservations
	case n > ep.MaxObservations:
		return ep.MaxObservations
	}
	return n
}

func (ep ExperimentParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ep.Title)
	fmt.Printf("[%d]\t\t\t\t= Phenol Volume (ml)\n", ep.PhenolVolume)
	fmt.Printf("[%d, +%d]\t\t\t= Water Volume Start, Step (ml)\n", ep.WaterStart, ep.WaterStep)
	fmt.Printf("[%d, %d)\t\t\t= Disappearance Temperature (°C)\n", ep.DisappearanceMin, ep.DisappearanceMax)
	fmt.Printf("[%d, %d)\t\t\t= Appearance Temperature (°C)\n", ep.AppearanceMin, ep.AppearanceMax)
	fmt.Printf("[%d, %d], %d\t\t\t= Observations Min, Max, Default\n",
		ep.MinObservations, ep.MaxObservations, ep.DefaultObservations)
}
