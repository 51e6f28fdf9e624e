package core

import "fmt"

// CostEngine runs the validate -> fingerprint -> predict pipeline against
// a fixed (Device x Granularity) valid-values
// table and a Predictor. It is stateless beyond those two collaborators and
// safe for concurrent use as long as the Predictor is.
type CostEngine struct {
	Granularity Granularity
	Predictor   Predictor
}

// NewCostEngine builds a CostEngine for granularity using predictor.
func NewCostEngine(granularity Granularity, predictor Predictor) CostEngine {
	return CostEngine{Granularity: granularity, Predictor: predictor}
}

// Cost runs the full pipeline against a single, unsplit workload and returns
// only the Result (cycle count or ErrorCode sentinel). Use CostWithInfo when
// the validation findings are needed for diagnostics.
func (e CostEngine) Cost(w Workload) Result {
	r, _ := e.CostWithInfo(w)
	return r
}

// CostWithInfo runs the pipeline and additionally returns a human-readable
// diagnostic: the Validator's Report on failure, or the predictor's
// fingerprint on success.
func (e CostEngine) CostWithInfo(w Workload) (Result, string) {
	return e.costAt(w, 1, SplitNone)
}

// CostTile runs the pipeline for one tile of a split layer, at the
// engine's Granularity, passing strategy and the total tile count so the
// Validator can apply the corresponding border coefficients.
func (e CostEngine) CostTile(w Workload, tileCount int, strategy SplitStrategy) (Result, string) {
	return e.costAt(w, tileCount, strategy)
}

func (e CostEngine) costAt(w Workload, tileCount int, strategy SplitStrategy) (Result, string) {
	report, op, err := Validate(w, e.Granularity, tileCount, strategy)
	if err != nil {
		return ErrInvalidInputConfiguration, err.Error()
	}
	if !report.OK {
		return ErrInvalidInputConfiguration, report.String()
	}

	cfg, err := DeviceValuesFor(w.Device, e.Granularity)
	if err != nil {
		return ErrInvalidInputConfiguration, err.Error()
	}

	mem, err := Memory(op, cfg)
	if err != nil {
		return ErrInvalidInputConfiguration, err.Error()
	}
	budget := cfg.CMXSizeBytes()
	if budget > 0 && mem.TotalAligned+cfg.CMXOverheadBytes() > budget {
		return ErrInputTooBig, fmt.Sprintf("total aligned footprint %d + overhead %d exceeds CMX budget %d", mem.TotalAligned, cfg.CMXOverheadBytes(), budget)
	}

	behavior, err := BehaviorFor(w.Op)
	if err != nil {
		return ErrInferenceNotPossible, err.Error()
	}
	behavior.LimitSparsity(&op, cfg)

	if e.Predictor == nil || !e.Predictor.IsAvailable() {
		return ErrProfilingService, "no predictor is available"
	}

	fp := op.Fingerprint()
	result := e.Predictor.Predict(fp, op)
	return result, fmt.Sprintf("fingerprint=%08x", uint32(fp))
}

// CostBatch runs Cost independently across workloads, preserving order.
// Each workload is validated and predicted on its own; one failure does not
// abort the batch.
func (e CostEngine) CostBatch(workloads []Workload) []Result {
	results := make([]Result, len(workloads))
	for i, w := range workloads {
		results[i] = e.Cost(w)
	}
	return results
}

// CostDCiM is the compute-in-memory placeholder variant: dCiM devices skip
// the predictor entirely and report
// ErrInferenceNotPossible once validation succeeds, since no dCiM cost model
// is wired yet.
func (e CostEngine) CostDCiM(w Workload) Result {
	report, _, err := Validate(w, e.Granularity, 1, SplitNone)
	if err != nil || !report.OK {
		return ErrInvalidInputConfiguration
	}
	return ErrInferenceNotPossible
}
