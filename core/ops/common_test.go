package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npucost/npucost/core"
)

func TestAlignVolume(t *testing.T) {
	assert.Equal(t, uint64(16), alignVolume(1, 16))
	assert.Equal(t, uint64(16), alignVolume(16, 16))
	assert.Equal(t, uint64(32), alignVolume(17, 16))
	assert.Equal(t, uint64(5), alignVolume(5, 0), "non-positive samples means no alignment")
}

func TestSparsityMapBytes(t *testing.T) {
	// 100 elements -> 13 raw bytes -> rounds up to the 16-byte granularity.
	assert.Equal(t, uint64(16), sparsityMapBytes(100))
	// 128 elements -> 16 raw bytes exactly, already aligned.
	assert.Equal(t, uint64(16), sparsityMapBytes(128))
	// 129 elements -> 17 raw bytes -> rounds up to 32.
	assert.Equal(t, uint64(32), sparsityMapBytes(129))
}

func TestWeightBytes_AlignsVolumeBeforeSizing(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	// 17 U8 samples align up to 32 before sizing, since alignmentSamples=16;
	// no sparsity and no output channels means no further additions.
	raw := weightBytes(17, core.U8, 16, false, 0, 0, cfg, false)
	assert.Equal(t, uint64(32), raw)
}

func TestWeightBytes_AddsSparsityMapWhenEnabled(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	withoutSparsity := weightBytes(64, core.U8, 16, false, 0, 0, cfg, false)
	withSparsity := weightBytes(64, core.U8, 16, true, 0, 0, cfg, false)
	assert.Equal(t, uint64(64), withoutSparsity)
	assert.Equal(t, withoutSparsity+sparsityMapBytes(64), withSparsity)
}

func TestWeightBytes_AppliesSparsityDiscountBeforeMap(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	// 64 raw bytes at 50% sparsity discount to 32, then the sparsity map
	// for 64 elements is added back on top.
	got := weightBytes(64, core.U8, 16, true, 0.5, 0, cfg, false)
	assert.Equal(t, uint64(32)+sparsityMapBytes(64), got)
}

func TestWeightBytes_AddsWeightTableEntry(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	withoutTable := weightBytes(64, core.U8, 16, false, 0, 0, cfg, false)
	withTable := weightBytes(64, core.U8, 16, false, 0, 32, cfg, false)
	assert.Equal(t, withoutTable+32*16, withTable)
}

func TestActivatorBytes_PlainTensorNoSEPNoSparsity(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	shape := core.Shape{8, 8, 16, 1}
	got := activatorBytes(shape, core.U8, core.LayoutZXYB, false, core.SEP{}, cfg, false)
	assert.Equal(t, uint64(8*8*16), got)
}

func TestActivatorBytes_SparseTensorAddsSparsityMap(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	shape := core.Shape{8, 8, 16, 1}
	plain := activatorBytes(shape, core.U8, core.LayoutZXYB, false, core.SEP{}, cfg, false)
	sparse := activatorBytes(shape, core.U8, core.LayoutZXYB, true, core.SEP{}, cfg, false)
	assert.Equal(t, plain+sparsityMapBytes(shape.Volume()), sparse)
}

func TestActivatorBytes_SEPUsesActualInputShapePlusPointerTable(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	memoryShape := core.Shape{8, 8, 16, 1}
	sep := core.SEP{
		Enabled:           true,
		ActualInputShape:  core.Shape{4, 4, 16, 1},
		PointerTableShape: core.Shape{8, 8, 1, 1},
		NoSparseMap:       true,
	}
	got := activatorBytes(memoryShape, core.U8, core.LayoutZXYB, false, sep, cfg, false)

	wantData := uint64(4 * 4 * 16)
	wantPointers := uint64(8*8) * 4
	assert.Equal(t, wantData+wantPointers, got)
}

func TestActivatorBytes_SEPWithoutNoSparseMapAddsMemoryShapeSparsityMap(t *testing.T) {
	cfg, err := core.DeviceValuesFor(core.DeviceGen40, core.GranularityWorkload)
	require.NoError(t, err)

	memoryShape := core.Shape{8, 8, 16, 1}
	sep := core.SEP{
		Enabled:          true,
		ActualInputShape: core.Shape{4, 4, 16, 1},
	}
	got := activatorBytes(memoryShape, core.U8, core.LayoutZXYB, false, sep, cfg, false)

	wantData := uint64(4 * 4 * 16)
	wantSparsityMap := sparsityMapBytes(memoryShape.Volume())
	assert.Equal(t, wantData+wantSparsityMap, got)
}
