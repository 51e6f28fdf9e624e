package core

// SEP (Storage-Elements-Pointer) mode describes an indirection table of
// 4-byte pointers used to assemble activator inputs from scattered memory.
// When Enabled, the activator's compute tensor may be
// smaller than its memory tensor; SEP may coexist with halo and/or
// sparsity, each contributing independently to memory sizing.
type SEP struct {
	Enabled           bool
	PointerTableShape Shape
	ActualInputShape  Shape
	NoSparseMap       bool
}

// pointerTableBytes is the SEP pointer table's memory contribution: one
// 4-byte pointer per entry.
const sepPointerBytes = 4

// PointerTableBytes returns the byte footprint of the pointer table when
// SEP is enabled, or 0 otherwise.
func (s SEP) PointerTableBytes() uint64 {
	if !s.Enabled {
		return 0
	}
	return s.PointerTableShape.Volume() * sepPointerBytes
}
