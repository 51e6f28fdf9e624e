package core

import "fmt"

// Dim identifies one of the four semantic tensor dimensions. Tensor.Shape is
// always indexed in this order regardless of Layout; Layout only dictates
// the innermost-to-outermost memory order used for bit-packing and the halo
// arithmetic's notion of "innermost dimension".
type Dim int

const (
	DimW Dim = iota
	DimH
	DimC
	DimB
)

// Layout names a permutation of {X,Y,Z,B} (W,H,C,B in shape terms) that
// fixes the innermost-to-outermost memory order of a Tensor. Only nine of
// the twenty-four possible permutations are representable; ZMAJOR and
// CMAJOR are legacy aliases of two of them.
type Layout int

const (
	LayoutInvalid Layout = iota
	LayoutXYZB
	LayoutXZYB
	LayoutYXZB
	LayoutYZXB
	LayoutZXYB
	LayoutZYXB
	LayoutBXYZ
	LayoutBZXY
	LayoutBYZX

	// Legacy aliases: ZMAJOR is the channel-innermost layout (ZXY dimension
	// order), CMAJOR is the width-innermost layout (XYZ dimension order).
	ZMAJOR = LayoutZXYB
	CMAJOR = LayoutXYZB
)

var layoutNames = map[Layout]string{
	LayoutInvalid: "INVALID",
	LayoutXYZB:    "XYZB",
	LayoutXZYB:    "XZYB",
	LayoutYXZB:    "YXZB",
	LayoutYZXB:    "YZXB",
	LayoutZXYB:    "ZXYB",
	LayoutZYXB:    "ZYXB",
	LayoutBXYZ:    "BXYZ",
	LayoutBZXY:    "BZXY",
	LayoutBYZX:    "BYZX",
}

func (l Layout) String() string {
	if s, ok := layoutNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// dimOrders maps each Layout to its innermost-to-outermost dimension order.
// Index 0 is the innermost dimension.
var dimOrders = map[Layout][4]Dim{
	LayoutXYZB: {DimW, DimH, DimC, DimB},
	LayoutXZYB: {DimW, DimC, DimH, DimB},
	LayoutYXZB: {DimH, DimW, DimC, DimB},
	LayoutYZXB: {DimH, DimC, DimW, DimB},
	LayoutZXYB: {DimC, DimW, DimH, DimB},
	LayoutZYXB: {DimC, DimH, DimW, DimB},
	LayoutBXYZ: {DimB, DimW, DimH, DimC},
	LayoutBZXY: {DimB, DimC, DimW, DimH},
	LayoutBYZX: {DimB, DimH, DimC, DimW},
}

// DimOrder returns l's innermost-to-outermost dimension order. The zero
// value is returned for LayoutInvalid; callers must not rely on it.
func (l Layout) DimOrder() [4]Dim {
	return dimOrders[l]
}

// InnermostDim returns the dimension that is packed innermost under l.
func (l Layout) InnermostDim() Dim {
	return dimOrders[l][0]
}

// Valid reports whether l is one of the nine representable layouts.
func (l Layout) Valid() bool {
	_, ok := dimOrders[l]
	return ok
}

// SameMemoryOrder reports whether l and other share the same
// innermost-to-outermost dimension order — i.e. they describe the same
// physical memory layout under a different name. try_relabel_layout (C1)
// uses exactly this equivalence.
func (l Layout) SameMemoryOrder(other Layout) bool {
	return l.Valid() && other.Valid() && dimOrders[l] == dimOrders[other]
}
