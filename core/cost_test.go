package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npucost/npucost/core"
	_ "github.com/npucost/npucost/core/devices"
	_ "github.com/npucost/npucost/core/ops"
)

// stubPredictor is a deterministic, in-memory core.Predictor for exercising
// CostEngine without a regressor or a network round trip.
type stubPredictor struct {
	available bool
	result    core.Result
	calls     int
}

func (p *stubPredictor) Predict(fp core.Fingerprint, op core.Operation) core.Result {
	p.calls++
	return p.result
}

func (p *stubPredictor) IsAvailable() bool { return p.available }

func validMaxPoolWorkload() core.Workload {
	in0, _ := core.NewTensor(core.Shape{8, 8, 16, 1}, core.U8, core.LayoutZXYB, false)
	out0, _ := core.NewTensor(core.Shape{4, 4, 16, 1}, core.U8, core.LayoutZXYB, false)
	return core.Workload{
		Device:           core.DeviceGen40,
		Op:               core.OpMaxPool,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 2, W: 2},
		Stride:           core.StrideSize{H: 2, W: 2},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISIClustering,
	}
}

func TestCostEngine_InvalidWorkloadReturnsInvalidInputConfiguration(t *testing.T) {
	predictor := &stubPredictor{available: true, result: 1000}
	engine := core.NewCostEngine(core.GranularityWorkload, predictor)

	w := validMaxPoolWorkload()
	w.Kernel = core.KernelSize{H: 99, W: 99} // out of KernelRange(1,11,1)

	result, info := engine.CostWithInfo(w)
	assert.Equal(t, core.ErrInvalidInputConfiguration, result)
	assert.NotEmpty(t, info)
	assert.Equal(t, 0, predictor.calls, "an invalid workload must never reach the predictor")
}

func TestCostEngine_ValidWorkloadDelegatesToPredictor(t *testing.T) {
	predictor := &stubPredictor{available: true, result: 4242}
	engine := core.NewCostEngine(core.GranularityWorkload, predictor)

	result, info := engine.CostWithInfo(validMaxPoolWorkload())
	assert.Equal(t, core.Result(4242), result)
	assert.Equal(t, 1, predictor.calls)
	assert.True(t, strings.HasPrefix(info, "fingerprint="), "info should carry the predictor's fingerprint, got %q", info)
}

func TestCostEngine_UnavailablePredictorReturnsProfilingServiceError(t *testing.T) {
	predictor := &stubPredictor{available: false}
	engine := core.NewCostEngine(core.GranularityWorkload, predictor)

	result := engine.Cost(validMaxPoolWorkload())
	assert.Equal(t, core.ErrProfilingService, result)
}

func TestCostEngine_NilPredictorReturnsProfilingServiceError(t *testing.T) {
	engine := core.NewCostEngine(core.GranularityWorkload, nil)

	result := engine.Cost(validMaxPoolWorkload())
	assert.Equal(t, core.ErrProfilingService, result)
}

func TestCostEngine_OversizedWorkloadExceedsCMXBudget(t *testing.T) {
	predictor := &stubPredictor{available: true, result: 1}
	engine := core.NewCostEngine(core.GranularityWorkload, predictor)

	// Gen 2.0 has the smallest CMX budget (2MiB); a wide enough CONV
	// overruns it even though it validates cleanly.
	in0, err := core.NewTensor(core.Shape{64, 64, 256, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)
	out0, err := core.NewTensor(core.Shape{62, 62, 256, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	w := core.Workload{
		Device:           core.DeviceGen20,
		Op:               core.OpConv,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 3, W: 3},
		Stride:           core.StrideSize{H: 1, W: 1},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISIClustering,
	}

	report, _, verr := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, verr)
	require.True(t, report.OK, "findings: %v", report.Findings)

	result := engine.Cost(w)
	assert.Equal(t, core.ErrInputTooBig, result)
	assert.Equal(t, 0, predictor.calls, "a budget failure must never reach the predictor")
}

func TestCostEngine_CostBatchPreservesOrderAndIsolatesFailures(t *testing.T) {
	predictor := &stubPredictor{available: true, result: 7}
	engine := core.NewCostEngine(core.GranularityWorkload, predictor)

	good := validMaxPoolWorkload()
	bad := validMaxPoolWorkload()
	bad.Kernel = core.KernelSize{H: 99, W: 99}

	results := engine.CostBatch([]core.Workload{good, bad, good})
	require.Len(t, results, 3)
	assert.Equal(t, core.Result(7), results[0])
	assert.Equal(t, core.ErrInvalidInputConfiguration, results[1])
	assert.Equal(t, core.Result(7), results[2])
}

func TestCostEngine_CostDCiM_SkipsPredictorEntirely(t *testing.T) {
	predictor := &stubPredictor{available: true, result: 999}
	engine := core.NewCostEngine(core.GranularityWorkload, predictor)

	result := engine.CostDCiM(validMaxPoolWorkload())
	assert.Equal(t, core.ErrInferenceNotPossible, result)
	assert.Equal(t, 0, predictor.calls)
}
