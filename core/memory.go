package core

// MemoryBreakdown is the byte footprint of an Operation's activators,
// weights, and output, both contiguous (no page alignment) and aligned to
// the device's page size.
type MemoryBreakdown struct {
	Input0Contiguous  uint64
	Input0Aligned     uint64
	Input1Contiguous  uint64
	Input1Aligned     uint64
	Output0Contiguous uint64
	Output0Aligned    uint64
	TotalContiguous   uint64
	TotalAligned      uint64
}

// Memory computes op's MemoryBreakdown against cfg using op.Op's registered
// Behavior.
func Memory(op Operation, cfg DeviceValues) (MemoryBreakdown, error) {
	b, err := BehaviorFor(op.Op)
	if err != nil {
		return MemoryBreakdown{}, err
	}
	mb := MemoryBreakdown{
		Input0Contiguous:  b.Input0Bytes(op, cfg, false),
		Input0Aligned:     b.Input0Bytes(op, cfg, true),
		Input1Contiguous:  b.Input1Bytes(op, cfg, false),
		Input1Aligned:     b.Input1Bytes(op, cfg, true),
		Output0Contiguous: b.Output0Bytes(op, cfg, false),
		Output0Aligned:    b.Output0Bytes(op, cfg, true),
	}
	mb.TotalContiguous = mb.Input0Contiguous + mb.Input1Contiguous + mb.Output0Contiguous
	mb.TotalAligned = mb.Input0Aligned + mb.Input1Aligned + mb.Output0Aligned
	return mb, nil
}

// align rounds bytesVal up to the next multiple of pageBytes. A zero or
// negative page size is treated as "no alignment".
func align(bytesVal, pageBytes uint64) uint64 {
	if pageBytes == 0 {
		return bytesVal
	}
	rem := bytesVal % pageBytes
	if rem == 0 {
		return bytesVal
	}
	return bytesVal + (pageBytes - rem)
}

// Align16 rounds bytesVal up to the next multiple of 16, the sparsity-map
// and weight-table alignment used throughout core/ops.
func Align16(bytesVal uint64) uint64 {
	return align(bytesVal, 16)
}

// Align exposes the generic rounding helper to core/ops and core/devices.
func Align(bytesVal, boundary uint64) uint64 {
	return align(bytesVal, boundary)
}
