package ops

import "github.com/npucost/npucost/core"

// layerNormBehavior implements core.Behavior for OpLayerNorm: a per-channel
// affine transform whose "weights" are a packed [scale, bias] pair, one per
// channel.
type layerNormBehavior struct{}

func (layerNormBehavior) DeduceWeightShape(cfg core.DeviceValues, in0, out0 core.Tensor, weightType core.DataType, weightSparsityEnabled bool, kernel core.KernelSize) (core.Tensor, error) {
	shape := core.Shape{1, 1, in0.Shape.C(), 2}
	return core.NewTensor(shape, weightType, core.ZMAJOR, weightSparsityEnabled)
}

func (layerNormBehavior) Input1Volume(weights core.Tensor) uint64 {
	return weights.Volume()
}

func (layerNormBehavior) Input0Volume(t core.Tensor) uint64 {
	return t.Volume()
}

func (layerNormBehavior) Input0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Input0MemoryDense, op.Input0.DType, op.Input0.Layout, op.Input0.Sparse, op.SEP, cfg, aligned)
}

func (b layerNormBehavior) Input1Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	samples := cfg.WeightsAlignmentSamples(op.Op, op.WeightType, op.WeightSparsityEnabled)
	return weightBytes(b.Input1Volume(op.Input1), op.WeightType, samples, op.WeightSparsityEnabled, op.WeightSparsity, uint64(op.Output0.Shape.C()), cfg, aligned)
}

func (layerNormBehavior) Output0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Output0MemoryDense, op.Output0.DType, op.Output0.Layout, false, core.SEP{}, cfg, aligned)
}

func (layerNormBehavior) CheckInOutCorelation(op core.Operation) error {
	if op.Output0.Shape != op.Input0.Shape {
		return errCorrelation("LAYER_NORM: output_0 shape %v != input_0 shape %v", op.Output0.Shape, op.Input0.Shape)
	}
	if op.Input1.Shape.C() != op.Input0.Shape.C() {
		return errCorrelation("LAYER_NORM: scale/bias channels %d != input_0.channels %d", op.Input1.Shape.C(), op.Input0.Shape.C())
	}
	return nil
}

func (layerNormBehavior) CheckSparsityRules(op core.Operation) error {
	if op.WeightSparsityEnabled {
		return errCorrelation("LAYER_NORM: weight sparsity is not supported for per-channel affine parameters")
	}
	return nil
}

func (layerNormBehavior) LimitSparsity(op *core.Operation, cfg core.DeviceValues) {
	op.WeightSparsityEnabled = false
	op.WeightSparsity = 0
}

func (layerNormBehavior) FilterISI(options []core.ISIStrategy) []core.ISIStrategy {
	out := make([]core.ISIStrategy, 0, len(options))
	for _, v := range options {
		if v != core.ISISplitOverK {
			out = append(out, v)
		}
	}
	return out
}

func (layerNormBehavior) FilterOWT(options []uint32) []uint32 {
	for _, v := range options {
		if v == 1 {
			return []uint32{1}
		}
	}
	return nil
}

func (layerNormBehavior) NormalizeKernelForStrategy(isi core.ISIStrategy, kernel core.KernelSize) bool {
	return false
}
