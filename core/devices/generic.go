// Package devices registers the per-generation core.DeviceValues tables.
// A single GenericDeviceValues type,
// parameterized by a DeviceValuesConfig data table, serves every
// generation; per-generation differences live entirely in the config each
// constructor builds (gen20.go, gen21.go, gen27.go, gen40.go, gen50.go),
// never in a device-specific method override. This mirrors the
// tagged-variant-dispatching-to-pure-functions style used throughout core.
package devices

import (
	"math"

	"github.com/npucost/npucost/core"
)

// sparsityBlockSize is the element granularity sparsity fractions are
// quantized to.
const sparsityBlockSize = 32

// DeviceValuesConfig is the per-(Device, Granularity) data table
// GenericDeviceValues reads from. Every field is keyed by OpType where the
// underlying constraint is op-specific; device-wide constants stand alone.
type DeviceValuesConfig struct {
	Device      core.Device
	Granularity core.Granularity

	SupportedOps map[core.OpType]bool
	ValidOWT     map[core.OpType][]uint32
	KernelRange  map[core.OpType]core.Range
	PadRange     map[core.OpType]core.Range

	InputChannels  map[core.OpType]core.MultiRange
	OutputChannels map[core.OpType]core.MultiRange

	Layouts    []core.Layout
	Swizzlings []core.Swizzling

	InputDataTypes  map[core.OpType][]core.DataType
	OutputDataTypes map[core.OpType][]core.DataType
	WeightDataTypes map[core.OpType][]core.DataType

	StridesRange map[core.OpType]core.Range
	ExecModes    map[core.OpType][]core.ExecutionMode
	BatchRange   core.Range

	MaxSpatial int64

	CMXSizeBytes                  uint64
	CMXOverheadBytes              uint64
	PageAlignmentBytes            uint64
	OutputInnermostAlignmentBytes uint64
	WeightsAlignmentSamples       map[core.OpType]int64
	SOHStartFactor                int64

	RestrictDataType        map[core.DataType]core.DataType
	InputChannelsRestriction func(op core.OpType, w core.Workload, base core.MultiRange) core.MultiRange
}

// GenericDeviceValues implements core.DeviceValues by reading from a
// DeviceValuesConfig table. It carries no behavior of its own.
type GenericDeviceValues struct {
	cfg DeviceValuesConfig
}

// NewGenericDeviceValues wraps cfg as a core.DeviceValues.
func NewGenericDeviceValues(cfg DeviceValuesConfig) GenericDeviceValues {
	return GenericDeviceValues{cfg: cfg}
}

func (g GenericDeviceValues) Device() core.Device           { return g.cfg.Device }
func (g GenericDeviceValues) Granularity() core.Granularity { return g.cfg.Granularity }

func (g GenericDeviceValues) SupportsOp(op core.OpType) bool {
	return g.cfg.SupportedOps[op]
}

func (g GenericDeviceValues) ValidOWT(op core.OpType) []uint32 {
	return g.cfg.ValidOWT[op]
}

// ValidISI returns CLUSTERING and SPLIT_OVER_H always, and SPLIT_OVER_K
// only when owt != 1: with a single output-write-tile there is no
// broadcast fan-out for a channel split to use.
func (g GenericDeviceValues) ValidISI(op core.OpType, owt uint32) []core.ISIStrategy {
	options := []core.ISIStrategy{core.ISIClustering, core.ISISplitOverH}
	if owt != 1 {
		options = append(options, core.ISISplitOverK)
	}
	return options
}

func (g GenericDeviceValues) KernelRange(op core.OpType) core.Range {
	return g.cfg.KernelRange[op]
}

func (g GenericDeviceValues) PadHorizontalRange(op core.OpType, kernel core.KernelSize) core.Range {
	base := g.cfg.PadRange[op]
	return core.NewRange(base.Lo, min64(base.Hi, int64(kernel.W-1)), base.Divisor)
}

func (g GenericDeviceValues) PadVerticalRange(op core.OpType, kernel core.KernelSize) core.Range {
	base := g.cfg.PadRange[op]
	return core.NewRange(base.Lo, min64(base.Hi, int64(kernel.H-1)), base.Divisor)
}

// InputHeightInterval / InputWidthInterval describe the legal input spatial
// extent: at least the kernel extent minus the padding on that axis (and
// never below 1), at most the device's MaxSpatial,
// scaled at layer granularity by strategy's border coefficient so that a
// single tile's declared input extent can legitimately exceed the
// per-workload bound by a factor of the tile count.
func (g GenericDeviceValues) InputHeightInterval(op core.OpType, strategy core.SplitStrategy, nTiles int, kernel core.KernelSize, pad core.Padding, stride core.StrideSize) core.Range {
	_, h, _, _ := strategy.BorderCoeff(nTiles)
	lo := int64(kernel.H - pad.Top - pad.Bottom)
	if lo < 1 {
		lo = 1
	}
	return core.NewRange(lo, g.cfg.MaxSpatial*int64(h), 1)
}

func (g GenericDeviceValues) InputWidthInterval(op core.OpType, strategy core.SplitStrategy, nTiles int, kernel core.KernelSize, pad core.Padding, stride core.StrideSize) core.Range {
	w, _, _, _ := strategy.BorderCoeff(nTiles)
	lo := int64(kernel.W - pad.Left - pad.Right)
	if lo < 1 {
		lo = 1
	}
	return core.NewRange(lo, g.cfg.MaxSpatial*int64(w), 1)
}

// InputChannels returns the configured range unchanged; SOK has no effect
// on the *input* channel count (only the output channel count is sliced).
func (g GenericDeviceValues) InputChannels(op core.OpType, isi core.ISIStrategy) core.MultiRange {
	return g.cfg.InputChannels[op]
}

// OutputChannels doubles the configured lower bound under SPLIT_OVER_K: a
// channel-sliced tile must still produce at least two aligned output-write
// groups.
func (g GenericDeviceValues) OutputChannels(op core.OpType, isi core.ISIStrategy) core.MultiRange {
	base := g.cfg.OutputChannels[op]
	if isi != core.ISISplitOverK {
		return base
	}
	doubled := make(core.MultiRange, len(base))
	for i, r := range base {
		doubled[i] = r.MultiplyLower(2)
	}
	return doubled
}

func (g GenericDeviceValues) Layouts() []core.Layout       { return g.cfg.Layouts }
func (g GenericDeviceValues) Swizzlings() []core.Swizzling { return g.cfg.Swizzlings }

func (g GenericDeviceValues) InputDataTypes(op core.OpType) []core.DataType {
	return g.cfg.InputDataTypes[op]
}

func (g GenericDeviceValues) OutputDataTypes(op core.OpType) []core.DataType {
	return g.cfg.OutputDataTypes[op]
}

func (g GenericDeviceValues) WeightDataTypes(op core.OpType) []core.DataType {
	return g.cfg.WeightDataTypes[op]
}

func (g GenericDeviceValues) StridesRange(op core.OpType) core.Range {
	return g.cfg.StridesRange[op]
}

func (g GenericDeviceValues) ExecModes(op core.OpType) []core.ExecutionMode {
	return g.cfg.ExecModes[op]
}

func (g GenericDeviceValues) BatchRange() core.Range { return g.cfg.BatchRange }

func (g GenericDeviceValues) CMXSizeBytes() uint64       { return g.cfg.CMXSizeBytes }
func (g GenericDeviceValues) CMXOverheadBytes() uint64   { return g.cfg.CMXOverheadBytes }
func (g GenericDeviceValues) PageAlignmentBytes() uint64 { return g.cfg.PageAlignmentBytes }
func (g GenericDeviceValues) OutputInnermostAlignmentBytes() uint64 {
	return g.cfg.OutputInnermostAlignmentBytes
}

func (g GenericDeviceValues) WeightsAlignmentSamples(op core.OpType, weightType core.DataType, weightSparsityEnabled bool) int64 {
	return g.cfg.WeightsAlignmentSamples[op]
}

func (g GenericDeviceValues) SOHStartFactor() int64 { return g.cfg.SOHStartFactor }

func (g GenericDeviceValues) AdaptLayout(l core.Layout) core.Layout {
	for _, v := range g.cfg.Layouts {
		if v == l {
			return l
		}
	}
	if len(g.cfg.Layouts) > 0 {
		return g.cfg.Layouts[0]
	}
	return l
}

func (g GenericDeviceValues) AdaptSwizzling(s core.Swizzling) core.Swizzling {
	for _, v := range g.cfg.Swizzlings {
		if v == s {
			return s
		}
	}
	if len(g.cfg.Swizzlings) > 0 {
		return g.cfg.Swizzlings[0]
	}
	return s
}

func (g GenericDeviceValues) ComputeOutputDim(n, padLo, padHi, k, s int) int {
	return core.ComputeOutputDim(n, padLo, padHi, k, s)
}

func (g GenericDeviceValues) RestrictDataType(d core.DataType) core.DataType {
	if r, ok := g.cfg.RestrictDataType[d]; ok {
		return r
	}
	return d
}

// SanitizeSparsity rounds raw down to the largest multiple of
// sparsityBlockSize elements (not above the rounded element count) of a
// tensorSize-element tensor, expressed back as a fraction.
func (g GenericDeviceValues) SanitizeSparsity(tensorSize uint64, raw float32) float32 {
	if tensorSize == 0 {
		return 0
	}
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	elements := int64(math.Round(float64(raw) * float64(tensorSize)))
	quantized := (elements / sparsityBlockSize) * sparsityBlockSize
	if quantized < 0 {
		quantized = 0
	}
	return float32(quantized) / float32(tensorSize)
}

func (g GenericDeviceValues) ComputeSizeAligned(rawBytes uint64) uint64 {
	return core.Align(rawBytes, g.cfg.PageAlignmentBytes)
}

func (g GenericDeviceValues) ComputeSizeRaw(rawBytes uint64) uint64 {
	return rawBytes
}

func (g GenericDeviceValues) InputChannelsRestriction(op core.OpType, w core.Workload, base core.MultiRange) core.MultiRange {
	if g.cfg.InputChannelsRestriction == nil {
		return base
	}
	return g.cfg.InputChannelsRestriction(op, w, base)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
