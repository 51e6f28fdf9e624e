package ops

import "github.com/npucost/npucost/core"

// cmMaskAlignment picks the channel-count granularity CM_CONV's compact mask
// representation rounds up to before computing the activator footprint: 4
// below five raw channels, 16 otherwise.
func cmMaskAlignment(rawChannels int) int64 {
	if rawChannels < 5 {
		return 4
	}
	return 16
}

// cmConvBehavior implements core.Behavior for OpCMConv: a 1x1
// channel-mixing convolution whose input footprint is computed against a
// mask-aligned channel count rather than the raw tensor shape.
type cmConvBehavior struct{}

func (cmConvBehavior) DeduceWeightShape(cfg core.DeviceValues, in0, out0 core.Tensor, weightType core.DataType, weightSparsityEnabled bool, kernel core.KernelSize) (core.Tensor, error) {
	samples := cfg.WeightsAlignmentSamples(core.OpCMConv, weightType, weightSparsityEnabled)
	channels := alignVolume(uint64(in0.Shape.C()*kernel.H*kernel.W), samples)
	shape := core.Shape{1, 1, int(channels), out0.Shape.C()}
	return core.NewTensor(shape, weightType, in0.Layout, weightSparsityEnabled)
}

func (cmConvBehavior) Input1Volume(weights core.Tensor) uint64 {
	return weights.Volume()
}

// Input0Volume rounds the channel extent up to the mask-alignment boundary
// before computing the element count used by memory math.
func (cmConvBehavior) Input0Volume(t core.Tensor) uint64 {
	s := t.Shape
	alignedC := alignVolume(uint64(s.C()), cmMaskAlignment(s.C()))
	return uint64(s.W()) * uint64(s.H()) * alignedC * uint64(s.B())
}

func (b cmConvBehavior) Input0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	s := op.Input0MemoryDense
	alignedC := int(alignVolume(uint64(s.C()), cmMaskAlignment(s.C())))
	maskedShape := core.Shape{s.W(), s.H(), alignedC, s.B()}
	return activatorBytes(maskedShape, op.Input0.DType, op.Input0.Layout, op.Input0.Sparse, op.SEP, cfg, aligned)
}

func (b cmConvBehavior) Input1Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	samples := cfg.WeightsAlignmentSamples(op.Op, op.WeightType, op.WeightSparsityEnabled)
	return weightBytes(b.Input1Volume(op.Input1), op.WeightType, samples, op.WeightSparsityEnabled, op.WeightSparsity, uint64(op.Output0.Shape.C()), cfg, aligned)
}

func (cmConvBehavior) Output0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Output0MemoryDense, op.Output0.DType, op.Output0.Layout, false, core.SEP{}, cfg, aligned)
}

func (cmConvBehavior) CheckInOutCorelation(op core.Operation) error {
	if op.Input1.Shape.B() != op.Output0.Shape.C() {
		return errCorrelation("CM_CONV: weight output-channels %d != output_0.channels %d", op.Input1.Shape.B(), op.Output0.Shape.C())
	}
	if op.Kernel.H != 1 || op.Kernel.W != 1 {
		return errCorrelation("CM_CONV: kernel must be 1x1, got (%d,%d)", op.Kernel.H, op.Kernel.W)
	}
	return nil
}

func (cmConvBehavior) CheckSparsityRules(op core.Operation) error {
	if !op.WeightSparsityEnabled && op.WeightSparsity != 0 {
		return errCorrelation("CM_CONV: weight_sparsity_enabled is false but weight_sparsity=%v", op.WeightSparsity)
	}
	return nil
}

func (cmConvBehavior) LimitSparsity(op *core.Operation, cfg core.DeviceValues) {}

func (cmConvBehavior) FilterISI(options []core.ISIStrategy) []core.ISIStrategy {
	return options
}

func (cmConvBehavior) FilterOWT(options []uint32) []uint32 {
	return options
}

func (cmConvBehavior) NormalizeKernelForStrategy(isi core.ISIStrategy, kernel core.KernelSize) bool {
	return false
}
