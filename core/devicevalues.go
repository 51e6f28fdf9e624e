package core

import "fmt"

// DeviceValues is one (Device x Granularity) instance of the per-generation
// valid-values table: constants and
// polymorphic queries a Validator checks a Workload against. Instances are
// constructed once per process and borrowed immutably.
type DeviceValues interface {
	Device() Device
	Granularity() Granularity

	SupportsOp(op OpType) bool

	ValidOWT(op OpType) []uint32
	// ValidISI returns the strategies legal for op given an already-chosen
	// output_write_tiles value: OWT==1 forbids SPLIT_OVER_K, and the op's
	// own Behavior.FilterISI is applied on top.
	ValidISI(op OpType, owt uint32) []ISIStrategy

	KernelRange(op OpType) Range
	PadHorizontalRange(op OpType, kernel KernelSize) Range
	PadVerticalRange(op OpType, kernel KernelSize) Range

	// InputHeightInterval / InputWidthInterval derive the legal input
	// spatial extent from kernel, padding, and (at layer granularity) the
	// split strategy's border coefficient.
	InputHeightInterval(op OpType, strategy SplitStrategy, nTiles int, kernel KernelSize, pad Padding, stride StrideSize) Range
	InputWidthInterval(op OpType, strategy SplitStrategy, nTiles int, kernel KernelSize, pad Padding, stride StrideSize) Range

	InputChannels(op OpType, isi ISIStrategy) MultiRange
	OutputChannels(op OpType, isi ISIStrategy) MultiRange

	Layouts() []Layout
	Swizzlings() []Swizzling
	InputDataTypes(op OpType) []DataType
	OutputDataTypes(op OpType) []DataType
	WeightDataTypes(op OpType) []DataType

	StridesRange(op OpType) Range
	ExecModes(op OpType) []ExecutionMode
	BatchRange() Range

	CMXSizeBytes() uint64
	CMXOverheadBytes() uint64
	PageAlignmentBytes() uint64
	OutputInnermostAlignmentBytes() uint64
	WeightsAlignmentSamples(op OpType, weightType DataType, weightSparsityEnabled bool) int64
	SOHStartFactor() int64

	AdaptLayout(l Layout) Layout
	AdaptSwizzling(s Swizzling) Swizzling

	ComputeOutputDim(n, padLo, padHi, k, s int) int
	RestrictDataType(d DataType) DataType
	SanitizeSparsity(tensorSize uint64, raw float32) float32
	ComputeSizeAligned(rawBytes uint64) uint64
	ComputeSizeRaw(rawBytes uint64) uint64

	// InputChannelsRestriction extends input-channel validation for
	// device-specific edge cases; gen-5.0 uses it to route
	// is_input_autopad (is_output_autopad is not consulted).
	// The default implementation is a no-op (returns base unchanged).
	InputChannelsRestriction(op OpType, w Workload, base MultiRange) MultiRange
}

// Devices is the process-wide registry of per-(Device, Granularity) valid-
// values tables. core/devices populates it in its init(); read-only after
// process init, never mutated on the hot path.
var Devices = map[Device]map[Granularity]DeviceValues{}

// DeviceValuesFor looks up the registered table for (device, granularity).
func DeviceValuesFor(device Device, granularity Granularity) (DeviceValues, error) {
	byGranularity, ok := Devices[device]
	if !ok {
		return nil, fmt.Errorf("device %v is not registered (forgot to import core/devices?)", device)
	}
	cfg, ok := byGranularity[granularity]
	if !ok {
		return nil, fmt.Errorf("device %v has no valid-values table for granularity %v", device, granularity)
	}
	return cfg, nil
}

// ComputeOutputDim returns floor((n + padLo + padHi - (k-1) - 1) / s) + 1,
// or 0 if s == 0. It is the one formula every generation
// shares unmodified, so DeviceValues implementations delegate to it rather
// than reimplementing it.
func ComputeOutputDim(n, padLo, padHi, k, s int) int {
	if s == 0 {
		return 0
	}
	return (n+padLo+padHi-(k-1)-1)/s + 1
}
