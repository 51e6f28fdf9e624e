package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npucost/npucost/core"
)

func baseEltwiseWorkload() core.Workload {
	in0, _ := core.NewTensor(core.Shape{8, 8, 16, 1}, core.U8, core.LayoutZXYB, false)
	out0, _ := core.NewTensor(core.Shape{8, 8, 16, 1}, core.U8, core.LayoutZXYB, false)
	return core.Workload{
		Device:           core.DeviceGen40,
		Op:               core.OpEltwiseAdd,
		Input0:           in0,
		Output0:          out0,
		Kernel:           core.KernelSize{H: 1, W: 1},
		Stride:           core.StrideSize{H: 1, W: 1},
		ExecMode:         core.ExecModeCuboid16x16,
		OutputWriteTiles: 1,
		ISIStrategy:      core.ISIClustering,
	}
}

func TestFingerprint_DeterministicForIdenticalWorkloads(t *testing.T) {
	w := baseEltwiseWorkload()
	weights, err := core.NewTensor(w.Input0.Shape, w.Input0.DType, w.Input0.Layout, false)
	require.NoError(t, err)

	a := core.FromWorkload(w, weights).Fingerprint()
	b := core.FromWorkload(w, weights).Fingerprint()
	assert.Equal(t, a, b)
}

func TestFingerprint_InsensitiveToOffsetsAndLayerInfo(t *testing.T) {
	w1 := baseEltwiseWorkload()
	w1.Offsets = [4]uint32{0, 0, 0, 0}
	w1.LayerInfo = "layer_1"

	w2 := baseEltwiseWorkload()
	w2.Offsets = [4]uint32{7, 3, 1, 9}
	w2.LayerInfo = "layer_42_from_a_different_compile"

	weights, err := core.NewTensor(w1.Input0.Shape, w1.Input0.DType, w1.Input0.Layout, false)
	require.NoError(t, err)

	fp1 := core.FromWorkload(w1, weights).Fingerprint()
	fp2 := core.FromWorkload(w2, weights).Fingerprint()
	assert.Equal(t, fp1, fp2, "Offsets and LayerInfo must never affect the fingerprint")
}

func TestFingerprint_SensitiveToKernelChange(t *testing.T) {
	w1 := baseEltwiseWorkload()
	w2 := baseEltwiseWorkload()
	w2.Kernel = core.KernelSize{H: 3, W: 3}

	weights, err := core.NewTensor(w1.Input0.Shape, w1.Input0.DType, w1.Input0.Layout, false)
	require.NoError(t, err)

	fp1 := core.FromWorkload(w1, weights).Fingerprint()
	fp2 := core.FromWorkload(w2, weights).Fingerprint()
	assert.NotEqual(t, fp1, fp2)
}

func TestFingerprint_RoundTripThroughWorkloadIsStable(t *testing.T) {
	w := baseEltwiseWorkload()
	weights, err := core.NewTensor(w.Input0.Shape, w.Input0.DType, w.Input0.Layout, false)
	require.NoError(t, err)

	op := core.FromWorkload(w, weights)
	roundTripped := core.FromWorkload(op.ToWorkload(), weights)

	assert.Equal(t, op.Fingerprint(), roundTripped.Fingerprint())
}
