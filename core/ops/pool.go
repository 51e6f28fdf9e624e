package ops

import "github.com/npucost/npucost/core"

// poolBehavior implements core.Behavior for OpMaxPool/OpAvgPool: no weight
// tensor at all, so DeduceWeightShape returns the sentinel and the memory
// math for Input1 is always zero.
type poolBehavior struct{}

func (poolBehavior) DeduceWeightShape(cfg core.DeviceValues, in0, out0 core.Tensor, weightType core.DataType, weightSparsityEnabled bool, kernel core.KernelSize) (core.Tensor, error) {
	return core.SentinelTensor(), nil
}

func (poolBehavior) Input1Volume(weights core.Tensor) uint64 {
	return 0
}

func (poolBehavior) Input0Volume(t core.Tensor) uint64 {
	return t.Volume()
}

func (poolBehavior) Input0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Input0MemoryDense, op.Input0.DType, op.Input0.Layout, op.Input0.Sparse, op.SEP, cfg, aligned)
}

func (poolBehavior) Input1Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return 0
}

func (poolBehavior) Output0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Output0MemoryDense, op.Output0.DType, op.Output0.Layout, false, core.SEP{}, cfg, aligned)
}

func (poolBehavior) CheckInOutCorelation(op core.Operation) error {
	if op.Output0.Shape.C() != op.Input0.Shape.C() {
		return errCorrelation("%v: output_0.channels %d != input_0.channels %d", op.Op, op.Output0.Shape.C(), op.Input0.Shape.C())
	}
	return nil
}

func (poolBehavior) CheckSparsityRules(op core.Operation) error {
	if op.WeightSparsityEnabled || op.WeightSparsity != 0 {
		return errCorrelation("%v: pooling ops carry no weights, weight_sparsity must be disabled and zero", op.Op)
	}
	return nil
}

func (poolBehavior) LimitSparsity(op *core.Operation, cfg core.DeviceValues) {}

func (poolBehavior) FilterISI(options []core.ISIStrategy) []core.ISIStrategy {
	out := make([]core.ISIStrategy, 0, len(options))
	for _, v := range options {
		if v != core.ISISplitOverK {
			out = append(out, v)
		}
	}
	return out
}

func (poolBehavior) FilterOWT(options []uint32) []uint32 {
	return options
}

func (poolBehavior) NormalizeKernelForStrategy(isi core.ISIStrategy, kernel core.KernelSize) bool {
	return false
}
