// Package ops registers the per-OpType Behavior implementations into
// core.Behaviors. Importing this package for its
// side effects is required before core.Validate or core.Memory can resolve
// any op; cmd does this from cmd/root.go, tests do it from each _test.go's
// package import list.
package ops

import (
	"fmt"
	"math"

	"github.com/npucost/npucost/core"
)

// tensorBytes is the packed/contiguous byte footprint of a memory-dense
// shape under dtype/layout, reusing Tensor.SizeBytes' bit-packing rules.
func tensorBytes(shape core.Shape, dtype core.DataType, layout core.Layout) uint64 {
	t := core.Tensor{Shape: shape, DType: dtype, Layout: layout}
	return t.SizeBytes()
}

// alignVolume rounds an element count up to the next multiple of samples
// (a no-op when samples <= 0, meaning "no alignment constraint").
func alignVolume(volume uint64, samples int64) uint64 {
	if samples <= 0 {
		return volume
	}
	s := uint64(samples)
	rem := volume % s
	if rem == 0 {
		return volume
	}
	return volume + (s - rem)
}

// sparsityMapBytes is the compact bitmap footprint for volume elements: one
// bit per element, rounded up to a whole byte, then to the 16-byte
// granularity the hardware's sparsity-map DMA descriptor requires.
func sparsityMapBytes(volume uint64) uint64 {
	bits := volume
	bytes := (bits + 7) / 8
	return core.Align16(bytes)
}

// activatorBytes sums a memory-dense tensor's contiguous footprint plus its
// SEP pointer table (if enabled) and its sparsity map, then hands the raw
// total to cfg's raw/aligned sizing rule.
//
// When SEP is enabled the data tensor read at runtime is the (generally
// smaller) actual-input shape behind the pointer table, not the halo-
// adjusted memory-dense shape; the pointer table and, unless
// sep.NoSparseMap, a sparsity map are added on top. An explicitly sparse
// tensor's own sparsity map (sized off the memory-dense shape) takes
// precedence over the SEP-branch one when both apply.
func activatorBytes(shape core.Shape, dtype core.DataType, layout core.Layout, sparse bool, sep core.SEP, cfg core.DeviceValues, aligned bool) uint64 {
	dataShape := shape
	var smBytes uint64
	if sep.Enabled {
		dataShape = sep.ActualInputShape
		if !sep.NoSparseMap {
			smBytes = sparsityMapBytes(shape.Volume())
		}
	}
	if sparse {
		smBytes = sparsityMapBytes(shape.Volume())
	}
	raw := tensorBytes(dataShape, dtype, layout) + smBytes + sep.PointerTableBytes()
	if aligned {
		return cfg.ComputeSizeAligned(raw)
	}
	return cfg.ComputeSizeRaw(raw)
}

// weightBytes sums an aligned weight volume's contiguous footprint, discounted
// by the weight-sparsity fraction and topped up with its sparsity map (when
// weight sparsity is enabled) and the weight-table entry every weight-bearing
// op carries (outChannels*16 bytes, one 16-byte table row per output
// channel), under cfg's sizing rule.
func weightBytes(volume uint64, dtype core.DataType, alignmentSamples int64, sparsityEnabled bool, sparsity float32, outChannels uint64, cfg core.DeviceValues, aligned bool) uint64 {
	alignedVolume := alignVolume(volume, alignmentSamples)
	shape := core.Shape{int(alignedVolume), 1, 1, 1}
	raw := tensorBytes(shape, dtype, core.CMAJOR)
	if sparsityEnabled {
		raw -= uint64(math.Floor(float64(raw) * float64(sparsity)))
		raw += sparsityMapBytes(volume)
	}
	raw += outChannels * 16
	if aligned {
		return cfg.ComputeSizeAligned(raw)
	}
	return cfg.ComputeSizeRaw(raw)
}

func errCorrelation(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
