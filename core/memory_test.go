package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npucost/npucost/core"
	_ "github.com/npucost/npucost/core/devices"
	_ "github.com/npucost/npucost/core/ops"
)

func TestAlign16(t *testing.T) {
	assert.Equal(t, uint64(0), core.Align16(0))
	assert.Equal(t, uint64(16), core.Align16(1))
	assert.Equal(t, uint64(16), core.Align16(16))
	assert.Equal(t, uint64(32), core.Align16(17))
}

func TestAlign_ZeroBoundaryIsNoOp(t *testing.T) {
	assert.Equal(t, uint64(1234), core.Align(1234, 0))
}

func TestMemory_MaxPool(t *testing.T) {
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
	require.True(t, report.OK, "findings: %v", report.Findings)

	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	mb, err := core.Memory(op, cfg)
	require.NoError(t, err)

	assert.Equal(t, uint64(1024), mb.Input0Contiguous)
	assert.Equal(t, uint64(256), mb.Output0Contiguous)
	assert.Equal(t, uint64(0), mb.Input1Contiguous, "pooling carries no weights")
	assert.Equal(t, uint64(16384), mb.Input0Aligned)
	assert.Equal(t, uint64(16384), mb.Output0Aligned)
	assert.Equal(t, uint64(0), mb.Input1Aligned)
	assert.Equal(t, uint64(1280), mb.TotalContiguous)
	assert.Equal(t, uint64(32768), mb.TotalAligned)
}

func TestMemory_Conv(t *testing.T) {
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
	require.True(t, report.OK, "findings: %v", report.Findings)

	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	mb, err := core.Memory(op, cfg)
	require.NoError(t, err)

	assert.Equal(t, uint64(1600), mb.Input0Contiguous)
	assert.Equal(t, uint64(2048), mb.Output0Contiguous)
	assert.Equal(t, uint64(5120), mb.Input1Contiguous, "align_up(16*3*3,16)*32=4608 weight samples plus a 32*16 weight-table entry")
	assert.Equal(t, uint64(8768), mb.TotalContiguous)
	assert.Equal(t, uint64(49152), mb.TotalAligned, "each of the three footprints pads up to one 16KiB page")
}
