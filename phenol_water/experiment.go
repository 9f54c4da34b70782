package phenol_water

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notargets/phenolcst/InputParameters"
	"github.com/notargets/phenolcst/types"
)

// Request is one evaluation of the experiment page or one CLI run
type Request struct {
	Count  int
	Seed   uint64
	Params InputParameters.ExperimentParameters
}

type Result struct {
	RunID        uuid.UUID                            `json:"runID"`
	Count        int                                  `json:"count"`
	Seed         uint64                               `json:"seed"`
	Params       InputParameters.ExperimentParameters `json:"params"`
	Observations types.ObservationSet                 `json:"observations"`
	Estimate     types.CSTEstimate                    `json:"estimate"`
}

/*
Run simulates, fits and estimates in one pass. The count is clamped to the parameter
range before simulating; nothing outlives the call.
*/
func Run(req Request) (res Result, err error) {
	if err = req.Params.Validate(); err != nil {
		err = fmt.Errorf("invalid experiment parameters: %w", err)
		return
	}
	res = Result{
		RunID:  uuid.New(),
		Count:  req.Params.ClampObservations(req.Count),
		Seed:   req.Seed,
		Params: req.Params,
	}
	res.Observations = Simulate(res.Count, req.Params, NewSource(req.Seed))
	if res.Estimate, err = EstimateCST(res.Observations); err != nil {
		return
	}
	zap.L().Debug("experiment run",
		zap.String("runID", res.RunID.String()),
		zap.Int("count", res.Count),
		zap.Uint64("seed", res.Seed),
		zap.Stringer("method", res.Estimate.Method),
		zap.Float64("cst", res.Estimate.Temperature),
		zap.Float64("composition", res.Estimate.Composition),
	)
	return
}

// Print writes the observation table and the result in plain text
func (res Result) Print(w io.Writer) {
	fmt.Fprintf(w, "Run %s, %d observations, seed = %d\n", res.RunID, res.Count, res.Seed)
	fmt.Fprintln(w, strings.Join(CSVHeader, " | "))
	for _, o := range res.Observations {
		fmt.Fprintf(w, "%19d | %18d | %16.2f | %27d | %24d | %15.2f\n",
			o.PhenolVolume, o.WaterVolume, o.PhenolPercent, o.DisappearanceTemp, o.AppearanceTemp, o.MeanTemp)
	}
	ce := res.Estimate
	if ce.Fit != nil {
		fmt.Fprintf(w, "Fit: %s, RMS residual = %.3f\n", ce.Fit, ce.Fit.Residual)
	}
	if ce.FellBack() {
		fmt.Fprintf(w, "Fit not usable (%s), reporting the observed maximum\n", ce.FallbackReason)
	}
	fmt.Fprintf(w, "CST of phenol-water system = %.2f °C\n", ce.Temperature)
	fmt.Fprintf(w, "Critical solution composition = %.2f%% phenol by volume\n", ce.Composition)
}
