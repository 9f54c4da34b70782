package types

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInsufficientData = errors.New("at least 3 distinct compositions are needed for a quadratic fit")
	ErrDegenerateFit    = errors.New("fit degenerate, quadratic coefficient is zero")
	ErrNotConcave       = errors.New("fit is concave up, vertex is a minimum")
	ErrVertexOutOfRange = errors.New("fit vertex lies outside the observed composition range")
)

// DegenerateTolerance bounds |A| relative to the magnitude of B and C below which the
// parabola is treated as a line.
const DegenerateTolerance = 1.e-10

/*
FitResult holds the least squares parabola through (phenol %, mean temperature):

	y = A*x^2 + B*x + C
*/
type FitResult struct {
	A        float64 `json:"a"`
	B        float64 `json:"b"`
	C        float64 `json:"c"`
	Residual float64 `json:"residual"` // RMS of y - Eval(x)
}

func (fr FitResult) Eval(x float64) float64 {
	return (fr.A*x+fr.B)*x + fr.C
}

func (fr FitResult) IsDegenerate() bool {
	scale := math.Max(1, math.Max(math.Abs(fr.B), math.Abs(fr.C)))
	return math.Abs(fr.A) <= DegenerateTolerance*scale || math.IsNaN(fr.A)
}

// Vertex returns the composition and temperature at the turning point of the parabola.
// Only a maximum is physically meaningful for a critical solution temperature.
func (fr FitResult) Vertex() (composition, temperature float64, err error) {
	if fr.IsDegenerate() {
		err = ErrDegenerateFit
		return
	}
	if fr.A > 0 {
		err = fmt.Errorf("%w: A = %v", ErrNotConcave, fr.A)
		return
	}
	composition = -fr.B / (2 * fr.A)
	temperature = fr.Eval(composition)
	return
}

func (fr FitResult) String() string {
	return fmt.Sprintf("T = %.5f x^2 %+.5f x %+.5f", fr.A, fr.B, fr.C)
}

type EstimateMethod uint8

const (
	FitVertex EstimateMethod = iota
	ObservedMaximum
)

func (em EstimateMethod) String() string {
	switch em {
	case FitVertex:
		return "fit-vertex"
	case ObservedMaximum:
		return "observed-maximum"
	}
	return fmt.Sprintf("EstimateMethod(%d)", uint8(em))
}

func (em EstimateMethod) MarshalText() ([]byte, error) {
	return []byte(em.String()), nil
}

// CSTEstimate is the reported critical solution temperature and composition.
type CSTEstimate struct {
	Temperature    float64        `json:"temperature"` // °C, 2 dp
	Composition    float64        `json:"composition"` // Vol. % of phenol, 2 dp
	Method         EstimateMethod `json:"method"`
	Fit            *FitResult     `json:"fit,omitempty"`
	FallbackCause  string         `json:"fallbackCause,omitempty"` // short label of the fit failure
	FallbackReason string         `json:"fallbackReason,omitempty"`
}

func (ce CSTEstimate) FellBack() bool {
	return ce.Method == ObservedMaximum
}

// FitFailureCause labels a fit or vertex error
func FitFailureCause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientData):
		return "insufficient-data"
	case errors.Is(err, ErrDegenerateFit):
		return "degenerate"
	case errors.Is(err, ErrNotConcave):
		return "not-concave"
	case errors.Is(err, ErrVertexOutOfRange):
		return "out-of-range"
	}
	return "solver"
}
