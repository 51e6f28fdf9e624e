package core

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
)

// Fingerprint is a stable 32-bit digest of the semantic content of a
// Workload, used as a predictor cache key. Offsets and
// LayerInfo never participate: two Workloads identical except for those
// fields always produce the same Fingerprint.
type Fingerprint uint32

// Fingerprint computes op's stable FNV-1a hash over its fingerprint-visible
// fields, emitted in a fixed order, as little-endian bytes.
func (op Operation) Fingerprint() Fingerprint {
	buf := new(bytes.Buffer)
	w := &fingerprintWriter{buf: buf}

	w.i32(int32(op.Device))
	w.i32(int32(op.Op))

	w.tensor(op.Input0)
	w.tensor(op.Output0)

	w.i32(int32(op.Kernel.H))
	w.i32(int32(op.Kernel.W))
	w.i32(int32(op.Stride.H))
	w.i32(int32(op.Stride.W))
	w.i32(int32(op.Pad.Top))
	w.i32(int32(op.Pad.Bottom))
	w.i32(int32(op.Pad.Left))
	w.i32(int32(op.Pad.Right))

	w.i32(int32(op.ExecMode))
	w.i32(int32(op.ActFn))

	w.i32(rescaleSparsity(op.ActSparsity))
	w.i32(rescaleSparsity(op.WeightSparsity))

	w.i32(int32(op.InputSwizzling[0]))
	w.i32(int32(op.InputSwizzling[1]))
	w.i32(int32(op.OutputSwizzling[0]))

	w.u32(op.OutputWriteTiles)
	w.i32(int32(op.ISIStrategy))
	w.boolean(op.WeightSparsityEnabled)

	w.halo(op.Halo)
	w.sep(op.SEP)

	w.presenceByte(op.WeightTypeSet)
	w.i32(int32(op.WeightType))

	w.presenceBool(op.WeightlessOp)
	w.presenceBool(op.InPlaceOutput)
	w.presenceBool(op.Superdense)
	w.presenceBool(op.InputAutopad)
	w.presenceBool(op.OutputAutopad)

	if op.MPEEngine != nil {
		w.presenceByte(true)
		w.str(*op.MPEEngine)
	} else {
		w.presenceByte(false)
	}

	w.boolean(op.ReduceMinMaxOp)

	h := fnv.New32a()
	_, _ = h.Write(buf.Bytes())
	return Fingerprint(h.Sum32())
}

// rescaleSparsity encodes a [0,1] sparsity fraction as a small integer so
// the hash is insensitive to float formatting noise: fractions below 1 are
// scaled to a 0-100 percentage and truncated; 1.0 truncates to 1.
func rescaleSparsity(x float32) int32 {
	ax := x
	if ax < 0 {
		ax = -ax
	}
	if ax < 1 {
		return int32(x * 100)
	}
	return int32(x)
}

// fingerprintWriter appends little-endian, fixed-order bytes for the
// fingerprint hash input.
type fingerprintWriter struct {
	buf *bytes.Buffer
}

func (w *fingerprintWriter) i32(v int32) {
	_ = binary.Write(w.buf, binary.LittleEndian, v)
}

func (w *fingerprintWriter) u32(v uint32) {
	_ = binary.Write(w.buf, binary.LittleEndian, v)
}

func (w *fingerprintWriter) i64(v int64) {
	_ = binary.Write(w.buf, binary.LittleEndian, v)
}

func (w *fingerprintWriter) boolean(b bool) {
	if b {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *fingerprintWriter) presenceByte(present bool) {
	w.boolean(present)
}

func (w *fingerprintWriter) presenceBool(p *bool) {
	if p == nil {
		w.presenceByte(false)
		return
	}
	w.presenceByte(true)
	w.boolean(*p)
}

func (w *fingerprintWriter) str(s string) {
	w.u32(uint32(len(s)))
	w.buf.WriteString(s)
}

func (w *fingerprintWriter) tensor(t Tensor) {
	for _, d := range t.Shape {
		w.i32(int32(d))
	}
	w.i32(int32(t.DType))
	w.i32(int32(t.Layout))
	w.boolean(t.Sparse)
}

func (w *fingerprintWriter) edges(e HaloEdges) {
	w.i64(e.Top)
	w.i64(e.Bottom)
	w.i64(e.Left)
	w.i64(e.Right)
	w.i64(e.Front)
	w.i64(e.Back)
}

func (w *fingerprintWriter) halo(h Halo) {
	w.edges(h.In0)
	w.edges(h.Out0)
	w.edges(h.Out0BroadcastCount)
	w.edges(h.Out0Inbound)
}

func (w *fingerprintWriter) shape(s Shape) {
	for _, d := range s {
		w.i32(int32(d))
	}
}

func (w *fingerprintWriter) sep(s SEP) {
	w.boolean(s.Enabled)
	w.shape(s.PointerTableShape)
	w.shape(s.ActualInputShape)
	w.boolean(s.NoSparseMap)
}
