package ops

import (
	"github.com/npucost/npucost/core"
)

// convBehavior implements core.Behavior for OpConv: a standard dense
// convolution whose weight tensor folds the kernel into the channel
// dimension: {1, 1, align_up(cin*kh*kw, A), cout} in in0's layout.
type convBehavior struct{}

func (convBehavior) DeduceWeightShape(cfg core.DeviceValues, in0, out0 core.Tensor, weightType core.DataType, weightSparsityEnabled bool, kernel core.KernelSize) (core.Tensor, error) {
	samples := cfg.WeightsAlignmentSamples(core.OpConv, weightType, weightSparsityEnabled)
	channels := alignVolume(uint64(in0.Shape.C()*kernel.H*kernel.W), samples)
	shape := core.Shape{1, 1, int(channels), out0.Shape.C()}
	return core.NewTensor(shape, weightType, in0.Layout, weightSparsityEnabled)
}

func (convBehavior) Input1Volume(weights core.Tensor) uint64 {
	return weights.Volume()
}

func (convBehavior) Input0Volume(t core.Tensor) uint64 {
	return t.Volume()
}

func (convBehavior) Input0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Input0MemoryDense, op.Input0.DType, op.Input0.Layout, op.Input0.Sparse, op.SEP, cfg, aligned)
}

func (b convBehavior) Input1Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	samples := cfg.WeightsAlignmentSamples(op.Op, op.WeightType, op.WeightSparsityEnabled)
	return weightBytes(b.Input1Volume(op.Input1), op.WeightType, samples, op.WeightSparsityEnabled, op.WeightSparsity, uint64(op.Output0.Shape.C()), cfg, aligned)
}

func (convBehavior) Output0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Output0MemoryDense, op.Output0.DType, op.Output0.Layout, false, core.SEP{}, cfg, aligned)
}

func (convBehavior) CheckInOutCorelation(op core.Operation) error {
	if op.Input1.Shape.B() != op.Output0.Shape.C() {
		return errCorrelation("CONV: weight output-channels %d != output_0.channels %d", op.Input1.Shape.B(), op.Output0.Shape.C())
	}
	return nil
}

func (convBehavior) CheckSparsityRules(op core.Operation) error {
	if !op.WeightSparsityEnabled && op.WeightSparsity != 0 {
		return errCorrelation("CONV: weight_sparsity_enabled is false but weight_sparsity=%v", op.WeightSparsity)
	}
	return nil
}

func (convBehavior) LimitSparsity(op *core.Operation, cfg core.DeviceValues) {
	// No device-specific forced-off rule for CONV in this implementation.
}

func (convBehavior) FilterISI(options []core.ISIStrategy) []core.ISIStrategy {
	return options
}

func (convBehavior) FilterOWT(options []uint32) []uint32 {
	return options
}

func (convBehavior) NormalizeKernelForStrategy(isi core.ISIStrategy, kernel core.KernelSize) bool {
	return false
}
