package core

// Operation is the reversible abstract mirror of a Workload:
// a deep copy built once at validator entry, plus the two derived memory-
// tensor shapes (dense, i.e. post-halo but pre-sparsity/pre-SEP). Its hash
// is the workload fingerprint (fingerprint.go).
//
// The round trip to/from Workload is lossy only in the diagnostic-only
// fields: Offsets and LayerInfo.
type Operation struct {
	Device Device
	Op     OpType

	Input0  Tensor
	Input1  Tensor // weights; SentinelTensor() for ops that carry none
	Output0 Tensor

	Kernel KernelSize
	Stride StrideSize
	Pad    Padding

	ExecMode ExecutionMode
	ActFn    ActivationFunction

	ActSparsity    float32
	WeightSparsity float32

	InputSwizzling  [2]Swizzling
	OutputSwizzling [1]Swizzling

	OutputWriteTiles uint32
	ISIStrategy      ISIStrategy

	WeightSparsityEnabled bool

	Halo Halo
	SEP  SEP

	WeightType DataType

	WeightlessOp  *bool
	InPlaceOutput *bool
	Superdense    *bool
	InputAutopad  *bool
	OutputAutopad *bool

	MPEEngine      *string
	ReduceMinMaxOp bool

	// WeightTypeSet records whether the source Workload carried an explicit
	// WeightType (as opposed to the Input0.DType default). The fingerprint
	// (fingerprint.go) includes this as a presence byte ahead of WeightType,
	// matching the Option<DataType> the abstract form mirrors.
	WeightTypeSet bool

	// Input0MemoryDense / Output0MemoryDense are the memory-tensor shapes
	// after applying halos, ignoring sparsity/SEP.
	Input0MemoryDense  Shape
	Output0MemoryDense Shape
}

// FromWorkload builds the abstract Operation form of w, given its already-
// deduced weight tensor (core/ops deduces this; see Behavior.DeduceWeightShape).
func FromWorkload(w Workload, weights Tensor) Operation {
	return Operation{
		Device:                w.Device,
		Op:                    w.Op,
		Input0:                w.Input0,
		Input1:                weights,
		Output0:               w.Output0,
		Kernel:                w.Kernel,
		Stride:                w.Stride,
		Pad:                   w.Pad,
		ExecMode:              w.ExecMode,
		ActFn:                 w.ActFn,
		ActSparsity:           w.ActSparsity,
		WeightSparsity:        w.WeightSparsity,
		InputSwizzling:        w.InputSwizzling,
		OutputSwizzling:       w.OutputSwizzling,
		OutputWriteTiles:      w.OutputWriteTiles,
		ISIStrategy:           w.ISIStrategy,
		WeightSparsityEnabled: w.WeightSparsityEnabled,
		Halo:                  w.Halo,
		SEP:                   w.SEP,
		WeightType:            w.ResolvedWeightType(),
		WeightTypeSet:         w.WeightType != nil,
		WeightlessOp:          w.WeightlessOp,
		InPlaceOutput:         w.InPlaceOutput,
		Superdense:            w.Superdense,
		InputAutopad:          w.InputAutopad,
		OutputAutopad:         w.OutputAutopad,
		MPEEngine:             w.MPEEngine,
		ReduceMinMaxOp:        w.ReduceMinMaxOp,
		Input0MemoryDense:     w.Halo.InputMemoryShape(w.Input0.Shape),
		Output0MemoryDense:    w.Halo.OutputMemoryShape(w.Output0.Shape),
	}
}

// ToWorkload reconstructs the Workload this Operation was built from.
// Offsets and LayerInfo are diagnostic-only and come back zero-valued.
func (op Operation) ToWorkload() Workload {
	var weightType *DataType
	if op.WeightTypeSet {
		wt := op.WeightType
		weightType = &wt
	}
	return Workload{
		Device:                op.Device,
		Op:                    op.Op,
		Input0:                op.Input0,
		Output0:               op.Output0,
		Kernel:                op.Kernel,
		Stride:                op.Stride,
		Pad:                   op.Pad,
		ExecMode:              op.ExecMode,
		ActFn:                 op.ActFn,
		ActSparsity:           op.ActSparsity,
		WeightSparsity:        op.WeightSparsity,
		InputSwizzling:        op.InputSwizzling,
		OutputSwizzling:       op.OutputSwizzling,
		OutputWriteTiles:      op.OutputWriteTiles,
		ISIStrategy:           op.ISIStrategy,
		WeightSparsityEnabled: op.WeightSparsityEnabled,
		Halo:                  op.Halo,
		SEP:                   op.SEP,
		WeightType:            weightType,
		WeightlessOp:          op.WeightlessOp,
		InPlaceOutput:         op.InPlaceOutput,
		Superdense:            op.Superdense,
		InputAutopad:          op.InputAutopad,
		OutputAutopad:         op.OutputAutopad,
		MPEEngine:             op.MPEEngine,
		ReduceMinMaxOp:        op.ReduceMinMaxOp,
	}
}
