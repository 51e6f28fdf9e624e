package core

import "fmt"

// Device identifies an NPU generation. Per-generation constants (CMX size,
// page alignment, valid-values tables) live in core/devices; Device itself
// is just the tag.
type Device int

const (
	DeviceInvalid Device = iota
	DeviceGen20
	DeviceGen21
	DeviceGen27
	DeviceGen40
	DeviceGen50
	// DeviceGen60 and DeviceGen70 are reserved successor generations: the
	// enum tag exists so callers can round-trip workloads that name them,
	// but core/devices does not yet register valid-values tables for them.
	DeviceGen60
	DeviceGen70
)

var deviceNames = map[Device]string{
	DeviceInvalid: "INVALID",
	DeviceGen20:   "GEN_2_0",
	DeviceGen21:   "GEN_2_1",
	DeviceGen27:   "GEN_2_7",
	DeviceGen40:   "GEN_4_0",
	DeviceGen50:   "GEN_5_0",
	DeviceGen60:   "GEN_6_0",
	DeviceGen70:   "GEN_7_0",
}

func (d Device) String() string {
	if s, ok := deviceNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Device(%d)", int(d))
}

// OpType is the primitive neural-network operation family a Workload
// describes.
type OpType int

const (
	OpInvalid OpType = iota
	OpConv
	OpDWConv
	OpEltwiseAdd
	OpEltwiseMul
	OpMaxPool
	OpAvgPool
	OpCMConv
	OpLayerNorm
)

var opTypeNames = map[OpType]string{
	OpInvalid:    "INVALID",
	OpConv:       "CONV",
	OpDWConv:     "DW_CONV",
	OpEltwiseAdd: "ELTWISE_ADD",
	OpEltwiseMul: "ELTWISE_MUL",
	OpMaxPool:    "MAXPOOL",
	OpAvgPool:    "AVGPOOL",
	OpCMConv:     "CM_CONV",
	OpLayerNorm:  "LAYER_NORM",
}

func (o OpType) String() string {
	if s, ok := opTypeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("OpType(%d)", int(o))
}

// IsEltwise reports whether o is one of the elementwise family.
func (o OpType) IsEltwise() bool {
	return o == OpEltwiseAdd || o == OpEltwiseMul
}

// ExecutionMode names a MAC-grid tiling used to execute a Workload.
type ExecutionMode int

const (
	ExecModeInvalid ExecutionMode = iota
	ExecModeCuboid16x16
	ExecModeCuboid8x16
	ExecModeCuboid4x16
	// Legacy modes kept for older generations / CSV round-trip fidelity.
	ExecModeVector
	ExecModeMatrix
	ExecModeVectorFP16
)

var execModeNames = map[ExecutionMode]string{
	ExecModeInvalid:     "INVALID",
	ExecModeCuboid16x16: "CUBOID_16x16",
	ExecModeCuboid8x16:  "CUBOID_8x16",
	ExecModeCuboid4x16:  "CUBOID_4x16",
	ExecModeVector:      "VECTOR",
	ExecModeMatrix:      "MATRIX",
	ExecModeVectorFP16:  "VECTOR_FP16",
}

func (e ExecutionMode) String() string {
	if s, ok := execModeNames[e]; ok {
		return s
	}
	return fmt.Sprintf("ExecutionMode(%d)", int(e))
}

// Swizzling is an opaque DDR/CMX addressing key. Older devices accept only
// KEY_0 (core/devices adapts other keys down to it).
type Swizzling int

const (
	SwizzlingKey0 Swizzling = iota
	SwizzlingKey1
	SwizzlingKey2
	SwizzlingKey3
	SwizzlingKey4
	SwizzlingKey5
)

var swizzlingNames = map[Swizzling]string{
	SwizzlingKey0: "KEY_0",
	SwizzlingKey1: "KEY_1",
	SwizzlingKey2: "KEY_2",
	SwizzlingKey3: "KEY_3",
	SwizzlingKey4: "KEY_4",
	SwizzlingKey5: "KEY_5",
}

func (s Swizzling) String() string {
	if s2, ok := swizzlingNames[s]; ok {
		return s2
	}
	return fmt.Sprintf("Swizzling(%d)", int(s))
}

// ISIStrategy is the inter-slice interconnect discipline used to split a
// Workload across tiles.
type ISIStrategy int

const (
	ISIClustering ISIStrategy = iota
	ISISplitOverH
	ISISplitOverK
)

var isiStrategyNames = map[ISIStrategy]string{
	ISIClustering: "CLUSTERING",
	ISISplitOverH: "SPLIT_OVER_H",
	ISISplitOverK: "SPLIT_OVER_K",
}

func (s ISIStrategy) String() string {
	if s2, ok := isiStrategyNames[s]; ok {
		return s2
	}
	return fmt.Sprintf("ISIStrategy(%d)", int(s))
}

// ActivationFunction is the post-processing activation fused into a
// Workload's output stage.
type ActivationFunction int

const (
	ActNone ActivationFunction = iota
	ActRelu
	ActLRelu
	ActAdd
	ActSub
	ActMult
)

var activationFunctionNames = map[ActivationFunction]string{
	ActNone:  "NONE",
	ActRelu:  "RELU",
	ActLRelu: "LRELU",
	ActAdd:   "ADD",
	ActSub:   "SUB",
	ActMult:  "MULT",
}

func (a ActivationFunction) String() string {
	if s, ok := activationFunctionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("ActivationFunction(%d)", int(a))
}

// SplitStrategy names the strategy under which a layer is split across
// tiles. It governs the border coefficients used by the validator at
// layer granularity (validator.go) and is distinct from ISIStrategy, which
// is the hardware interconnect discipline a given split implies.
type SplitStrategy int

const (
	SplitNone SplitStrategy = iota
	SplitSOHOverlapped
	SplitSOK
	SplitSOW
	SplitSOHW
	SplitSOHK
	SplitSOHHaloRead
	SplitSOHOKSwitch
	SplitSOHKSwitch
	SplitSOKNoBroadcast
)

var splitStrategyNames = map[SplitStrategy]string{
	SplitNone:           "NONE",
	SplitSOHOverlapped:  "SOH_Overlapped",
	SplitSOK:            "SOK",
	SplitSOW:            "SOW",
	SplitSOHW:           "SOHW",
	SplitSOHK:           "SOHK",
	SplitSOHHaloRead:    "SOH_HaloRead",
	SplitSOHOKSwitch:    "SOHO_K_SWITCH",
	SplitSOHKSwitch:     "SOH_K_SWITCH",
	SplitSOKNoBroadcast: "SOK_NO_BROADCAST",
}

func (s SplitStrategy) String() string {
	if n, ok := splitStrategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SplitStrategy(%d)", int(s))
}

// Granularity selects which of the three inheritance-chain valid-values
// views (core/devices) a Validator checks a Workload against.
type Granularity int

const (
	GranularityWorkload Granularity = iota
	GranularityLayerUnsplit
	GranularityLayerOnTile
)

func (g Granularity) String() string {
	switch g {
	case GranularityWorkload:
		return "WORKLOAD"
	case GranularityLayerUnsplit:
		return "LAYER_UNSPLIT"
	case GranularityLayerOnTile:
		return "LAYER_ON_TILE"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// BorderCoeff returns the per-dimension tile-count multiplier
// (width, height, channels, batch) applied to upper-bound range checks at
// layer granularity for split strategy s, keyed to n split tiles.
func (s SplitStrategy) BorderCoeff(nTiles int) (w, h, c, b int) {
	n := nTiles
	if n < 1 {
		n = 1
	}
	switch s {
	case SplitSOHOverlapped, SplitSOHHaloRead, SplitSOHOKSwitch, SplitSOHKSwitch:
		return 1, n, 1, 1
	case SplitSOK, SplitSOKNoBroadcast:
		return 1, 1, n, 1
	case SplitSOW:
		return n, 1, 1, 1
	case SplitSOHW:
		return n, n, 1, 1
	case SplitSOHK:
		return 1, n, n, 1
	default:
		return 1, 1, 1, 1
	}
}
