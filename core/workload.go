package core

// KernelSize is a convolution/pooling kernel extent.
type KernelSize struct{ H, W int }

// StrideSize is a convolution/pooling stride.
type StrideSize struct{ H, W int }

// Padding is the per-edge spatial padding applied to the input tensor.
type Padding struct{ Top, Bottom, Left, Right int }

// Workload is the canonical per-operation descriptor submitted by the
// compiler. Workload owns its tensors, halo, and SEP state;
// Operation, built from a Workload, is a deep copy that borrows nothing.
type Workload struct {
	Device Device
	Op     OpType

	Input0  Tensor
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

	// WeightType defaults to Input0.DType when nil.
	WeightType *DataType
	// WeightlessOp, InPlaceOutput, Superdense are tri-state: unset resolves
	// via op-family derivation rules rather than collapsing to a bool
	// default.
	WeightlessOp  *bool
	InPlaceOutput *bool
	Superdense    *bool

	// InputAutopad is consulted only by gen-5.0's device valid-values
	// extension; OutputAutopad is fingerprinted but consulted nowhere.
	InputAutopad  *bool
	OutputAutopad *bool

	// MPEEngine and ReduceMinMaxOp are optional fields referenced by the
	// fingerprint algorithm but not otherwise load-bearing
	// in validation or memory math.
	MPEEngine      *string
	ReduceMinMaxOp bool

	// Offsets and LayerInfo are diagnostic only: excluded from the
	// fingerprint and lost on the Workload<->Operation round trip.
	Offsets   [4]uint32
	LayerInfo string
}

// ResolvedWeightType returns w.WeightType, defaulting to Input0.DType.
func (w Workload) ResolvedWeightType() DataType {
	if w.WeightType != nil {
		return *w.WeightType
	}
	return w.Input0.DType
}

// ResolvedWeightlessOp returns w.WeightlessOp's explicit value, or the
// op-family default: elementwise ops carry no weight-table contribution by
// default (their "weights" operand is input_1 reinterpreted in place), all
// other families default to false.
func (w Workload) ResolvedWeightlessOp() bool {
	if w.WeightlessOp != nil {
		return *w.WeightlessOp
	}
	return w.Op.IsEltwise()
}

// ResolvedInPlaceOutput returns w.InPlaceOutput's explicit value, or false.
// True is only a legal value for the elementwise family
// and only when input/output layouts match with equal bit-footprint; the
// validator (not this getter) enforces that constraint.
func (w Workload) ResolvedInPlaceOutput() bool {
	if w.InPlaceOutput != nil {
		return *w.InPlaceOutput
	}
	return false
}

// ResolvedSuperdense returns w.Superdense's explicit value, or false.
func (w Workload) ResolvedSuperdense() bool {
	if w.Superdense != nil {
		return *w.Superdense
	}
	return false
}
