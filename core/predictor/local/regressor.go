// Package local implements core.Predictor with an in-process linear
// regression over a fixed, named feature set, scored with gonum rather than
// hand-rolled dot products. It never performs I/O; coefficients are
// supplied by the caller (such as cmd's config loader), not read
// from disk here.
package local

import (
	"gonum.org/v1/gonum/mat"

	"github.com/npucost/npucost/core"
)

// FeatureNames is the fixed, ordered feature vector a Coefficients value
// must supply one weight per entry for. Extending this list is a breaking
// change to any serialized coefficient file.
var FeatureNames = []string{
	"input0_volume",
	"input1_volume",
	"output0_volume",
	"kernel_area",
	"stride_area",
	"act_sparsity_pct",
	"weight_sparsity_pct",
}

// Coefficients is one fingerprint bucket's regression line: predicted
// cycles = Intercept + dot(Weights, features).
type Coefficients struct {
	Intercept float64
	Weights   []float64 // len(Weights) == len(FeatureNames)
}

// Regressor is a core.Predictor backed by a per-Fingerprint coefficient
// table. A fingerprint with no matching entry falls back to Default when
// non-nil; otherwise Predict returns core.ErrInferenceNotPossible for that
// call (IsAvailable still reports true).
type Regressor struct {
	byFingerprint map[core.Fingerprint]Coefficients
	Default       *Coefficients
}

// NewRegressor builds a Regressor from a fingerprint-keyed coefficient
// table, typically decoded from YAML by cmd/coefficients_config.go.
func NewRegressor(table map[core.Fingerprint]Coefficients, fallback *Coefficients) *Regressor {
	return &Regressor{byFingerprint: table, Default: fallback}
}

// IsAvailable always reports true: the regressor is pure computation with
// no dependency on external services.
func (r *Regressor) IsAvailable() bool {
	return true
}

// Predict scores op's feature vector against fp's coefficients (or the
// fallback), clamping negative predictions to zero since a cycle count can
// never be negative.
func (r *Regressor) Predict(fp core.Fingerprint, op core.Operation) core.Result {
	coeffs, ok := r.byFingerprint[fp]
	if !ok {
		if r.Default == nil {
			return core.ErrInferenceNotPossible
		}
		coeffs = *r.Default
	}
	if len(coeffs.Weights) != len(FeatureNames) {
		return core.ErrInferenceNotPossible
	}

	features := extractFeatures(op)
	x := mat.NewVecDense(len(features), features)
	w := mat.NewVecDense(len(coeffs.Weights), coeffs.Weights)
	cycles := coeffs.Intercept + mat.Dot(x, w)
	if cycles < 0 {
		cycles = 0
	}
	return core.Result(uint32(cycles))
}

func extractFeatures(op core.Operation) []float64 {
	return []float64{
		float64(op.Input0.Volume()),
		float64(op.Input1.Volume()),
		float64(op.Output0.Volume()),
		float64(op.Kernel.H * op.Kernel.W),
		float64(op.Stride.H * op.Stride.W),
		float64(rescalePercent(op.ActSparsity)),
		float64(rescalePercent(op.WeightSparsity)),
	}
}

func rescalePercent(x float32) float64 {
	return float64(x) * 100
}
