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

func TestValidate_CONV_Gen40_Valid(t *testing.T) {
	in0, err := core.NewTensor(core.Shape{10, 10, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)
	out0, err := core.NewTensor(core.Shape{8, 8, 32, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	w := core.Workload{
		Device:           core.DeviceGen40,
		Op:               core.OpConv,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 3, W: 3},
		Stride:           core.StrideSize{H: 1, W: 1},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISIClustering,
	}

	report, op, err := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, err)
	assert.True(t, report.OK, "expected a passing report, got findings: %v", report.Findings)
	assert.Equal(t, core.Shape{1, 1, 144, 32}, op.Input1.Shape, "weight shape should be [1,1,align_up(cin*kh*kw,A),cout]")
}

func TestValidate_CONV_Gen27_Valid(t *testing.T) {
	in0, err := core.NewTensor(core.Shape{10, 10, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)
	out0, err := core.NewTensor(core.Shape{8, 8, 32, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	w := core.Workload{
		Device:           core.DeviceGen27,
		Op:               core.OpConv,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 3, W: 3},
		Stride:           core.StrideSize{H: 1, W: 1},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISIClustering,
	}

	report, _, err := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, err)
	assert.True(t, report.OK, "expected a passing report on gen 2.7, got findings: %v", report.Findings)
}

func TestValidate_CONV_Gen27_RejectsUnsupportedLayout(t *testing.T) {
	// Gen 2.0-derived generations only accept ZXYB/XYZB; YZXB is only valid
	// from gen 4.0 onward.
	in0, err := core.NewTensor(core.Shape{10, 10, 16, 1}, core.U8, core.LayoutYZXB, false)
	require.NoError(t, err)
	out0, err := core.NewTensor(core.Shape{8, 8, 32, 1}, core.U8, core.LayoutYZXB, false)
	require.NoError(t, err)

	w := core.Workload{
		Device:           core.DeviceGen27,
		Op:               core.OpConv,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 3, W: 3},
		Stride:           core.StrideSize{H: 1, W: 1},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISIClustering,
	}

	report, _, err := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, err)
	assert.False(t, report.OK)
}

func TestValidate_DWConv_ChannelMismatch(t *testing.T) {
	in0, err := core.NewTensor(core.Shape{10, 10, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)
	// Output channels deliberately don't match input channels; DW_CONV
	// cannot change channel count.
	out0, err := core.NewTensor(core.Shape{8, 8, 32, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	w := core.Workload{
		Device:           core.DeviceGen40,
		Op:               core.OpDWConv,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 3, W: 3},
		Stride:           core.StrideSize{H: 1, W: 1},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISIClustering,
	}

	report, _, err := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, err)
	require.False(t, report.OK)
	require.Len(t, report.Findings, 1, "only the channel-correlation check should fail")
	assert.Contains(t, report.Findings[0], "output_0.channels 32 != input_0.channels 16")
}

func TestValidate_EltwiseAdd_RejectsSplitOverK(t *testing.T) {
	in0, err := core.NewTensor(core.Shape{8, 8, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)
	out0, err := core.NewTensor(core.Shape{8, 8, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	w := core.Workload{
		Device:           core.DeviceGen40,
		Op:               core.OpEltwiseAdd,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 1, W: 1},
		Stride:           core.StrideSize{H: 1, W: 1},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISISplitOverK,
	}

	report, _, err := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, err)
	require.False(t, report.OK)

	found := false
	for _, f := range report.Findings {
		if strings.Contains(f, "isi_strategy") {
			found = true
		}
	}
	assert.True(t, found, "expected an isi_strategy finding, got: %v", report.Findings)
}

func TestValidate_MaxPool_WeightTensorIsSentinel(t *testing.T) {
	in0, err := core.NewTensor(core.Shape{8, 8, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)
	out0, err := core.NewTensor(core.Shape{4, 4, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	w := core.Workload{
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

	report, op, err := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, err)
	assert.True(t, report.OK, "expected a passing report, got findings: %v", report.Findings)
	assert.True(t, op.Input1.IsSentinel(), "MAXPOOL carries no weight tensor")

	behavior, err := core.BehaviorFor(core.OpMaxPool)
	require.NoError(t, err)
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), behavior.Input1Bytes(op, cfg, false))
	assert.Equal(t, uint64(0), behavior.Input1Bytes(op, cfg, true))
}

func TestValidate_UnregisteredDevice_FailsCleanly(t *testing.T) {
	in0, err := core.NewTensor(core.Shape{8, 8, 16, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	w := core.Workload{
		Device:  core.DeviceGen60,
		Op:      core.OpConv,
		Input0:  in0,
		Output0: in0,
	}

	report, _, err := core.Validate(w, core.GranularityWorkload, 1, core.SplitNone)
	require.NoError(t, err, "an unsupported device is a finding, not a Go error")
	assert.False(t, report.OK)
	require.Len(t, report.Findings, 1)
	assert.Contains(t, report.Findings[0], "is not supported")
}
