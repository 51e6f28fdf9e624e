package core

// HaloEdges is a signed per-edge count for one halo role. Front/back
// correspond to the channel-dimension edges (exercised by output-channel
// splits); top/bottom/left/right correspond to height/width.
type HaloEdges struct {
	Top, Bottom, Left, Right, Front, Back int64
}

// IsZero reports whether every edge of e is zero.
func (e HaloEdges) IsZero() bool {
	return e == HaloEdges{}
}

// Halo groups the four halo roles:
//
//   - In0: how much of the compute-tensor input is read from a neighbor
//     tile (positive), or how much extra memory is present beyond compute
//     (negative).
//   - Out0: compute-tensor output elements broadcast to neighbors
//     (non-negative).
//   - Out0BroadcastCount: per-edge replication fan-out (non-negative).
//   - Out0Inbound: elements written into this tile by neighbors; extends
//     the memory tensor but is never consumed at runtime.
type Halo struct {
	In0                HaloEdges
	Out0               HaloEdges
	Out0BroadcastCount HaloEdges
	Out0Inbound        HaloEdges
}

// InputMemoryShape derives the dense (pre-sparsity, pre-SEP) input memory
// tensor shape from a compute-tensor shape: H' = H - (top+bottom), etc.,
// clamped to >= 0. Negative halo entries add to the memory tensor.
func (h Halo) InputMemoryShape(compute Shape) Shape {
	e := h.In0
	w := compute.W() - int(e.Left+e.Right)
	height := compute.H() - int(e.Top+e.Bottom)
	c := compute.C() - int(e.Front+e.Back)
	if w < 0 {
		w = 0
	}
	if height < 0 {
		height = 0
	}
	if c < 0 {
		c = 0
	}
	return Shape{w, height, c, compute.B()}
}

// OutputMemoryShape derives the dense output memory tensor shape from a
// compute-tensor shape: H' = H + (inbound.top+inbound.bottom), etc.
func (h Halo) OutputMemoryShape(compute Shape) Shape {
	e := h.Out0Inbound
	w := compute.W() + int(e.Left+e.Right)
	height := compute.H() + int(e.Top+e.Bottom)
	c := compute.C() + int(e.Front+e.Back)
	return Shape{w, height, c, compute.B()}
}

// SetVerticalNoHalo zeros the top/bottom fields across all four halo roles.
// Used when a split strategy does not exchange rows across tiles (e.g.
// SOK, where only channels are split).
func (h *Halo) SetVerticalNoHalo() {
	h.In0.Top, h.In0.Bottom = 0, 0
	h.Out0.Top, h.Out0.Bottom = 0, 0
	h.Out0BroadcastCount.Top, h.Out0BroadcastCount.Bottom = 0, 0
	h.Out0Inbound.Top, h.Out0Inbound.Bottom = 0, 0
}

// BroadcastForAll sets the inbound-halo top/bottom so the memory tensor
// equals the full layer output: given this tile's own row count r, the
// total output height H, and the rows still to be processed R, it sets
// inbound.top = H - R and inbound.bottom = R - r.
func (h *Halo) BroadcastForAll(tileRows, totalHeight, remainingToProcess int64) {
	h.Out0Inbound.Top = totalHeight - remainingToProcess
	h.Out0Inbound.Bottom = remainingToProcess - tileRows
}
