package ops

import "github.com/npucost/npucost/core"

// dwConvBehavior implements core.Behavior for OpDWConv: depthwise
// convolution, one [kw, kh, 1, 1]-per-channel filter bank; the device-
// specific gen-2.7 weight alignment quirk lives entirely in core/devices'
// WeightsAlignmentSamples table, not here.
type dwConvBehavior struct{}

func (dwConvBehavior) DeduceWeightShape(cfg core.DeviceValues, in0, out0 core.Tensor, weightType core.DataType, weightSparsityEnabled bool, kernel core.KernelSize) (core.Tensor, error) {
	samples := cfg.WeightsAlignmentSamples(core.OpDWConv, weightType, weightSparsityEnabled)
	channels := alignVolume(uint64(kernel.H*kernel.W), samples)
	shape := core.Shape{1, 1, int(channels), out0.Shape.C()}
	return core.NewTensor(shape, weightType, in0.Layout, weightSparsityEnabled)
}

func (dwConvBehavior) Input1Volume(weights core.Tensor) uint64 {
	return weights.Volume()
}

func (dwConvBehavior) Input0Volume(t core.Tensor) uint64 {
	return t.Volume()
}

func (dwConvBehavior) Input0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Input0MemoryDense, op.Input0.DType, op.Input0.Layout, op.Input0.Sparse, op.SEP, cfg, aligned)
}

func (b dwConvBehavior) Input1Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	samples := cfg.WeightsAlignmentSamples(op.Op, op.WeightType, op.WeightSparsityEnabled)
	return weightBytes(b.Input1Volume(op.Input1), op.WeightType, samples, op.WeightSparsityEnabled, op.WeightSparsity, uint64(op.Output0.Shape.C()), cfg, aligned)
}

func (dwConvBehavior) Output0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Output0MemoryDense, op.Output0.DType, op.Output0.Layout, false, core.SEP{}, cfg, aligned)
}

func (dwConvBehavior) CheckInOutCorelation(op core.Operation) error {
	if op.Output0.Shape.C() != op.Input0.Shape.C() {
		return errCorrelation("DW_CONV: output_0.channels %d != input_0.channels %d", op.Output0.Shape.C(), op.Input0.Shape.C())
	}
	return nil
}

func (dwConvBehavior) CheckSparsityRules(op core.Operation) error {
	if !op.WeightSparsityEnabled && op.WeightSparsity != 0 {
		return errCorrelation("DW_CONV: weight_sparsity_enabled is false but weight_sparsity=%v", op.WeightSparsity)
	}
	return nil
}

func (dwConvBehavior) LimitSparsity(op *core.Operation, cfg core.DeviceValues) {}

func (dwConvBehavior) FilterISI(options []core.ISIStrategy) []core.ISIStrategy {
	return options
}

func (dwConvBehavior) FilterOWT(options []uint32) []uint32 {
	return options
}

// NormalizeKernelForStrategy reports true for SPLIT_OVER_H: depthwise
// convolution under a row split requires a square kernel so halo read
// counts agree on both axes.
func (dwConvBehavior) NormalizeKernelForStrategy(isi core.ISIStrategy, kernel core.KernelSize) bool {
	return isi == core.ISISplitOverH
}
