package core

import "fmt"

// Behavior is the per-OpType strategy consulted by the Validator and the
// memory-footprint math. Implementations are
// pure: given an Operation (or the fields needed to build one) they never
// mutate shared state. core/ops registers one Behavior per OpType via
// init(), breaking the import cycle between core (interface owner) and
// core/ops (implementation).
type Behavior interface {
	// DeduceWeightShape fills the weight tensor's shape/layout given the
	// input/output tensors, the resolved weight dtype, whether weight
	// sparsity is enabled, and the kernel size. MAXPOOL/AVGPOOL return
	// SentinelTensor().
	DeduceWeightShape(cfg DeviceValues, in0, out0 Tensor, weightType DataType, weightSparsityEnabled bool, kernel KernelSize) (Tensor, error)

	// Input1Volume returns the weight-volume used by memory math; overridden
	// by MAXPOOL/AVGPOOL (always 0) and ELTWISE (W*H*C of the reinterpreted
	// second operand).
	Input1Volume(weights Tensor) uint64

	// Input0Volume returns the element count used by memory math; CM_CONV
	// rounds the channel count up to a mask-alignment boundary for footprint
	// purposes, all other ops return the plain tensor volume.
	Input0Volume(t Tensor) uint64

	// Input0Bytes / Input1Bytes / Output0Bytes return the activator /
	// weight / output byte footprint. aligned selects the page-aligned
	// variant over the contiguous one.
	Input0Bytes(op Operation, cfg DeviceValues, aligned bool) uint64
	Input1Bytes(op Operation, cfg DeviceValues, aligned bool) uint64
	Output0Bytes(op Operation, cfg DeviceValues, aligned bool) uint64

	// CheckInOutCorelation enforces per-op input/output shape relationships
	// (e.g. DW_CONV: channels must match).
	CheckInOutCorelation(op Operation) error

	// CheckSparsityRules enforces per-op sparsity constraints (e.g.
	// disabled-but-nonzero sparsity values).
	CheckSparsityRules(op Operation) error

	// LimitSparsity contextually forces sparsity off in-place (e.g. weight
	// sparsity under SOK with an unaligned K).
	LimitSparsity(op *Operation, cfg DeviceValues)

	// FilterISI removes strategies this op family cannot use (elementwise
	// forbids SPLIT_OVER_K).
	FilterISI(options []ISIStrategy) []ISIStrategy

	// FilterOWT restricts output_write_tiles options (elementwise: {1}).
	FilterOWT(options []uint32) []uint32

	// NormalizeKernelForStrategy reports whether a stricter kernel
	// constraint applies for isi (e.g. DW_CONV+SOH forces a square kernel).
	// This reports the constraint only; it does not mutate kernel.
	NormalizeKernelForStrategy(isi ISIStrategy, kernel KernelSize) bool
}

// Behaviors is the process-wide, read-only-after-init registry of per-op
// Behavior implementations. core/ops populates it in its init().
var Behaviors = map[OpType]Behavior{}

// BehaviorFor returns the registered Behavior for op, or an error if
// core/ops (or an equivalent implementation) was never imported.
func BehaviorFor(op OpType) (Behavior, error) {
	b, ok := Behaviors[op]
	if !ok {
		return nil, fmt.Errorf("no Behavior registered for op %v (forgot to import core/ops?)", op)
	}
	return b, nil
}
