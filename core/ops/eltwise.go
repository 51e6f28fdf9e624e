package ops

import "github.com/npucost/npucost/core"

// eltwiseBehavior implements core.Behavior for OpEltwiseAdd/OpEltwiseMul.
// These ops carry no trained weights: "Input1" is a second activation
// operand reinterpreted through the same Behavior/memory-math pipeline so
// the validator and cost engine need no op-family special-casing upstream.
type eltwiseBehavior struct{}

// DeduceWeightShape rotates in0's shape into the second operand's shape:
// batch stays batch, but width/height/channels each take on the next axis
// around (b=in0.b, c=in0.w, h=in0.c, w=in0.h).
func (eltwiseBehavior) DeduceWeightShape(cfg core.DeviceValues, in0, out0 core.Tensor, weightType core.DataType, weightSparsityEnabled bool, kernel core.KernelSize) (core.Tensor, error) {
	shape := core.Shape{in0.Shape.H(), in0.Shape.C(), in0.Shape.W(), in0.Shape.B()}
	return core.NewTensor(shape, weightType, in0.Layout, weightSparsityEnabled)
}

func (eltwiseBehavior) Input1Volume(weights core.Tensor) uint64 {
	return weights.Volume()
}

func (eltwiseBehavior) Input0Volume(t core.Tensor) uint64 {
	return t.Volume()
}

func (eltwiseBehavior) Input0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Input0MemoryDense, op.Input0.DType, op.Input0.Layout, op.Input0.Sparse, op.SEP, cfg, aligned)
}

func (eltwiseBehavior) Input1Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Input1.Shape, op.Input1.DType, op.Input1.Layout, op.Input1.Sparse, core.SEP{}, cfg, aligned)
}

func (eltwiseBehavior) Output0Bytes(op core.Operation, cfg core.DeviceValues, aligned bool) uint64 {
	return activatorBytes(op.Output0MemoryDense, op.Output0.DType, op.Output0.Layout, false, core.SEP{}, cfg, aligned)
}

func (eltwiseBehavior) CheckInOutCorelation(op core.Operation) error {
	if op.Output0.Shape != op.Input0.Shape {
		return errCorrelation("%v: output_0 shape %v != input_0 shape %v", op.Op, op.Output0.Shape, op.Input0.Shape)
	}
	return nil
}

func (eltwiseBehavior) CheckSparsityRules(op core.Operation) error {
	return nil
}

func (eltwiseBehavior) LimitSparsity(op *core.Operation, cfg core.DeviceValues) {}

// FilterISI removes SPLIT_OVER_K: elementwise ops have no output-channel
// reduction to distribute across tiles that way.
func (eltwiseBehavior) FilterISI(options []core.ISIStrategy) []core.ISIStrategy {
	out := make([]core.ISIStrategy, 0, len(options))
	for _, v := range options {
		if v != core.ISISplitOverK {
			out = append(out, v)
		}
	}
	return out
}

// FilterOWT restricts elementwise ops to a single output-write-tile.
func (eltwiseBehavior) FilterOWT(options []uint32) []uint32 {
	for _, v := range options {
		if v == 1 {
			return []uint32{1}
		}
	}
	return nil
}

func (eltwiseBehavior) NormalizeKernelForStrategy(isi core.ISIStrategy, kernel core.KernelSize) bool {
	return false
}
