package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npucost/npucost/core"
)

func TestTensor_SizeBytes_PackedInt4(t *testing.T) {
	// ZXY layout packs the channel dimension innermost; 2 channels of I4
	// share one byte, so 2 channels never straddle a byte boundary.
	tensor, err := core.NewTensor(core.Shape{3, 4, 2, 1}, core.I4, core.LayoutZXYB, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), tensor.SizeBytes())
}

func TestNewTensor_RejectsOddInnermostDimForSubByteDType(t *testing.T) {
	// 3 channels cannot be packed two-per-byte without a dangling sample;
	// under the default packmode that's a constructor error, not a
	// silent round-up.
	_, err := core.NewTensor(core.Shape{3, 4, 3, 1}, core.I4, core.LayoutZXYB, false)
	require.Error(t, err)
}

func TestTensor_SizeBytes_ByteAlignedTypes(t *testing.T) {
	tensor, err := core.NewTensor(core.Shape{4, 4, 3, 2}, core.U8, core.LayoutXYZB, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(4*4*3*2), tensor.SizeBytes())

	tensor16, err := core.NewTensor(core.Shape{4, 4, 3, 2}, core.F16, core.LayoutXYZB, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(4*4*3*2*2), tensor16.SizeBytes())
}

func TestTensor_SizeBytes_ZeroVolumeIsZero(t *testing.T) {
	tensor, err := core.NewTensor(core.Shape{0, 4, 3, 1}, core.U8, core.LayoutXYZB, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), tensor.SizeBytes())
}

func TestNewTensor_RejectsInvalidLayout(t *testing.T) {
	_, err := core.NewTensor(core.Shape{1, 1, 1, 1}, core.U8, core.LayoutInvalid, false)
	require.Error(t, err)
}

func TestNewTensor_RejectsNegativeShape(t *testing.T) {
	_, err := core.NewTensor(core.Shape{-1, 1, 1, 1}, core.U8, core.LayoutXYZB, false)
	require.Error(t, err)
}

func TestSentinelTensor_IsSentinel(t *testing.T) {
	s := core.SentinelTensor()
	assert.True(t, s.IsSentinel())
	assert.Equal(t, uint64(0), s.SizeBytes())

	real, err := core.NewTensor(core.Shape{1, 1, 1, 1}, core.U8, core.LayoutXYZB, false)
	require.NoError(t, err)
	assert.False(t, real.IsSentinel())
}

func TestTensor_ChangeDTypeSuperficial(t *testing.T) {
	tensor, err := core.NewTensor(core.Shape{2, 2, 2, 1}, core.U8, core.LayoutXYZB, false)
	require.NoError(t, err)

	relabeled, err := tensor.ChangeDTypeSuperficial(core.I8)
	require.NoError(t, err)
	assert.Equal(t, core.I8, relabeled.DType)

	_, err = tensor.ChangeDTypeSuperficial(core.U16)
	assert.Error(t, err, "U8 and U16 do not share a bit width")
}

func TestTensor_TryRelabelLayout(t *testing.T) {
	tensor, err := core.NewTensor(core.Shape{2, 2, 2, 1}, core.U8, core.LayoutZXYB, false)
	require.NoError(t, err)

	relabeled, err := tensor.TryRelabelLayout(core.ZMAJOR)
	require.NoError(t, err, "ZMAJOR is an alias of ZXYB")
	assert.Equal(t, core.ZMAJOR, relabeled.Layout)

	_, err = tensor.TryRelabelLayout(core.LayoutXYZB)
	assert.Error(t, err, "XYZB has a different memory order than ZXYB")
}
