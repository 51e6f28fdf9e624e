package local_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npucost/npucost/core"
	"github.com/npucost/npucost/core/predictor/local"
)

func sampleOp() core.Operation {
	in0, _ := core.NewTensor(core.Shape{10, 10, 16, 1}, core.U8, core.LayoutZXYB, false)
	out0, _ := core.NewTensor(core.Shape{8, 8, 32, 1}, core.U8, core.LayoutZXYB, false)
	weights, _ := core.NewTensor(core.Shape{3, 3, 16, 32}, core.U8, core.ZMAJOR, false)
	return core.Operation{
		Input0:  in0,
		Input1:  weights,
		Output0: out0,
		Kernel:  core.KernelSize{H: 3, W: 3},
		Stride:  core.StrideSize{H: 1, W: 1},
	}
}

func TestRegressor_Predict_DeterministicAgainstKnownCoefficients(t *testing.T) {
	op := sampleOp()
	coeffs := core.Fingerprint(1)
	table := map[core.Fingerprint]local.Coefficients{
		coeffs: {
			Intercept: 100,
			Weights:   []float64{1, 0, 0, 0, 0, 0, 0},
		},
	}
	r := local.NewRegressor(table, nil)

	got := r.Predict(coeffs, op)
	want := core.Result(uint32(100 + float64(op.Input0.Volume())))
	assert.Equal(t, want, got)
}

func TestRegressor_Predict_ClampsNegativeToZero(t *testing.T) {
	op := sampleOp()
	fp := core.Fingerprint(7)
	table := map[core.Fingerprint]local.Coefficients{
		fp: {
			Intercept: -1_000_000_000,
			Weights:   []float64{0, 0, 0, 0, 0, 0, 0},
		},
	}
	r := local.NewRegressor(table, nil)

	assert.Equal(t, core.Result(0), r.Predict(fp, op))
}

func TestRegressor_Predict_FallsBackToDefaultOnUnknownFingerprint(t *testing.T) {
	op := sampleOp()
	fallback := local.Coefficients{
		Intercept: 50,
		Weights:   []float64{0, 0, 0, 0, 0, 0, 0},
	}
	r := local.NewRegressor(map[core.Fingerprint]local.Coefficients{}, &fallback)

	assert.Equal(t, core.Result(50), r.Predict(core.Fingerprint(999), op))
}

func TestRegressor_Predict_NoDefaultAndUnknownFingerprintIsInferenceNotPossible(t *testing.T) {
	op := sampleOp()
	r := local.NewRegressor(map[core.Fingerprint]local.Coefficients{}, nil)

	assert.Equal(t, core.ErrInferenceNotPossible, r.Predict(core.Fingerprint(999), op))
}

func TestRegressor_Predict_MismatchedWeightLengthIsInferenceNotPossible(t *testing.T) {
	op := sampleOp()
	fp := core.Fingerprint(3)
	table := map[core.Fingerprint]local.Coefficients{
		fp: {Intercept: 0, Weights: []float64{1, 2, 3}},
	}
	r := local.NewRegressor(table, nil)

	assert.Equal(t, core.ErrInferenceNotPossible, r.Predict(fp, op))
}

func TestRegressor_IsAvailable_AlwaysTrue(t *testing.T) {
	r := local.NewRegressor(nil, nil)
	assert.True(t, r.IsAvailable())
}

func TestFeatureNames_MatchesCoefficientVectorLength(t *testing.T) {
	require.Len(t, local.FeatureNames, 7)
}
