// Package serialize implements the CSV codec for core.Operation.
// Each column is
// described by an explicit field descriptor with its own encode/decode
// closures — a match-based visitor, not a reflection-driven getter/setter
// map — so adding or renaming a field is a local, compile-checked edit.
package serialize

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/npucost/npucost/core"
)

type field struct {
	name   string
	encode func(core.Operation) string
	decode func(*core.Operation, string) error
}

// enumColumn formats an enum value as "TypeName.VALUE" so a CSV file can be
// diffed meaningfully without a schema in hand.
func enumColumn(typeName string, value fmt.Stringer) string {
	return typeName + "." + value.String()
}

func stripEnumPrefix(typeName, s string) string {
	prefix := typeName + "."
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}

var fields = []field{
	{
		name:   "device",
		encode: func(op core.Operation) string { return enumColumn("Device", op.Device) },
		decode: func(op *core.Operation, v string) error {
			d, err := parseDevice(stripEnumPrefix("Device", v))
			op.Device = d
			return err
		},
	},
	{
		name:   "op",
		encode: func(op core.Operation) string { return enumColumn("OpType", op.Op) },
		decode: func(op *core.Operation, v string) error {
			o, err := parseOpType(stripEnumPrefix("OpType", v))
			op.Op = o
			return err
		},
	},
	{
		name:   "input_0.shape",
		encode: func(op core.Operation) string { return shapeString(op.Input0.Shape) },
		decode: func(op *core.Operation, v string) error { return parseShapeInto(&op.Input0.Shape, v) },
	},
	{
		name:   "input_0.dtype",
		encode: func(op core.Operation) string { return enumColumn("DataType", op.Input0.DType) },
		decode: func(op *core.Operation, v string) error {
			d, err := parseDataType(stripEnumPrefix("DataType", v))
			op.Input0.DType = d
			return err
		},
	},
	{
		name:   "input_0.layout",
		encode: func(op core.Operation) string { return enumColumn("Layout", op.Input0.Layout) },
		decode: func(op *core.Operation, v string) error {
			l, err := parseLayout(stripEnumPrefix("Layout", v))
			op.Input0.Layout = l
			return err
		},
	},
	{
		name:   "input_0.sparse",
		encode: func(op core.Operation) string { return strconv.FormatBool(op.Input0.Sparse) },
		decode: func(op *core.Operation, v string) error {
			b, err := strconv.ParseBool(v)
			op.Input0.Sparse = b
			return err
		},
	},
	{
		name:   "output_0.shape",
		encode: func(op core.Operation) string { return shapeString(op.Output0.Shape) },
		decode: func(op *core.Operation, v string) error { return parseShapeInto(&op.Output0.Shape, v) },
	},
	{
		name:   "output_0.dtype",
		encode: func(op core.Operation) string { return enumColumn("DataType", op.Output0.DType) },
		decode: func(op *core.Operation, v string) error {
			d, err := parseDataType(stripEnumPrefix("DataType", v))
			op.Output0.DType = d
			return err
		},
	},
	{
		name:   "output_0.layout",
		encode: func(op core.Operation) string { return enumColumn("Layout", op.Output0.Layout) },
		decode: func(op *core.Operation, v string) error {
			l, err := parseLayout(stripEnumPrefix("Layout", v))
			op.Output0.Layout = l
			return err
		},
	},
	{
		name:   "kernel.h",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Kernel.H) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Kernel.H, v) },
	},
	{
		name:   "kernel.w",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Kernel.W) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Kernel.W, v) },
	},
	{
		name:   "stride.h",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Stride.H) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Stride.H, v) },
	},
	{
		name:   "stride.w",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Stride.W) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Stride.W, v) },
	},
	{
		name:   "pad.top",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Pad.Top) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Pad.Top, v) },
	},
	{
		name:   "pad.bottom",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Pad.Bottom) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Pad.Bottom, v) },
	},
	{
		name:   "pad.left",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Pad.Left) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Pad.Left, v) },
	},
	{
		name:   "pad.right",
		encode: func(op core.Operation) string { return strconv.Itoa(op.Pad.Right) },
		decode: func(op *core.Operation, v string) error { return parseIntInto(&op.Pad.Right, v) },
	},
	{
		name:   "exec_mode",
		encode: func(op core.Operation) string { return enumColumn("ExecutionMode", op.ExecMode) },
		decode: func(op *core.Operation, v string) error {
			e, err := parseExecMode(stripEnumPrefix("ExecutionMode", v))
			op.ExecMode = e
			return err
		},
	},
	{
		name:   "act_fn",
		encode: func(op core.Operation) string { return enumColumn("ActivationFunction", op.ActFn) },
		decode: func(op *core.Operation, v string) error {
			a, err := parseActFn(stripEnumPrefix("ActivationFunction", v))
			op.ActFn = a
			return err
		},
	},
	{
		name:   "act_sparsity",
		encode: func(op core.Operation) string { return strconv.FormatFloat(float64(op.ActSparsity), 'g', -1, 32) },
		decode: func(op *core.Operation, v string) error {
			f, err := strconv.ParseFloat(v, 32)
			op.ActSparsity = float32(f)
			return err
		},
	},
	{
		name:   "weight_sparsity",
		encode: func(op core.Operation) string { return strconv.FormatFloat(float64(op.WeightSparsity), 'g', -1, 32) },
		decode: func(op *core.Operation, v string) error {
			f, err := strconv.ParseFloat(v, 32)
			op.WeightSparsity = float32(f)
			return err
		},
	},
	{
		name:   "weight_sparsity_enabled",
		encode: func(op core.Operation) string { return strconv.FormatBool(op.WeightSparsityEnabled) },
		decode: func(op *core.Operation, v string) error {
			b, err := strconv.ParseBool(v)
			op.WeightSparsityEnabled = b
			return err
		},
	},
	{
		name:   "output_write_tiles",
		encode: func(op core.Operation) string { return strconv.FormatUint(uint64(op.OutputWriteTiles), 10) },
		decode: func(op *core.Operation, v string) error {
			n, err := strconv.ParseUint(v, 10, 32)
			op.OutputWriteTiles = uint32(n)
			return err
		},
	},
	{
		name:   "isi_strategy",
		encode: func(op core.Operation) string { return enumColumn("ISIStrategy", op.ISIStrategy) },
		decode: func(op *core.Operation, v string) error {
			s, err := parseISIStrategy(stripEnumPrefix("ISIStrategy", v))
			op.ISIStrategy = s
			return err
		},
	},
	{
		name:   "input_swizzling.0",
		encode: func(op core.Operation) string { return enumColumn("Swizzling", op.InputSwizzling[0]) },
		decode: func(op *core.Operation, v string) error {
			s, err := parseSwizzling(stripEnumPrefix("Swizzling", v))
			op.InputSwizzling[0] = s
			return err
		},
	},
	{
		name:   "input_swizzling.1",
		encode: func(op core.Operation) string { return enumColumn("Swizzling", op.InputSwizzling[1]) },
		decode: func(op *core.Operation, v string) error {
			s, err := parseSwizzling(stripEnumPrefix("Swizzling", v))
			op.InputSwizzling[1] = s
			return err
		},
	},
	{
		name:   "output_swizzling.0",
		encode: func(op core.Operation) string { return enumColumn("Swizzling", op.OutputSwizzling[0]) },
		decode: func(op *core.Operation, v string) error {
			s, err := parseSwizzling(stripEnumPrefix("Swizzling", v))
			op.OutputSwizzling[0] = s
			return err
		},
	},
	{
		name:   "halo.in0",
		encode: func(op core.Operation) string { return edgesString(op.Halo.In0) },
		decode: func(op *core.Operation, v string) error { return parseEdgesInto(&op.Halo.In0, v) },
	},
	{
		name:   "halo.out0",
		encode: func(op core.Operation) string { return edgesString(op.Halo.Out0) },
		decode: func(op *core.Operation, v string) error { return parseEdgesInto(&op.Halo.Out0, v) },
	},
	{
		name:   "halo.out0_broadcast_count",
		encode: func(op core.Operation) string { return edgesString(op.Halo.Out0BroadcastCount) },
		decode: func(op *core.Operation, v string) error { return parseEdgesInto(&op.Halo.Out0BroadcastCount, v) },
	},
	{
		name:   "halo.out0_inbound",
		encode: func(op core.Operation) string { return edgesString(op.Halo.Out0Inbound) },
		decode: func(op *core.Operation, v string) error { return parseEdgesInto(&op.Halo.Out0Inbound, v) },
	},
	{
		name:   "sep.enabled",
		encode: func(op core.Operation) string { return strconv.FormatBool(op.SEP.Enabled) },
		decode: func(op *core.Operation, v string) error {
			b, err := strconv.ParseBool(v)
			op.SEP.Enabled = b
			return err
		},
	},
	{
		name:   "sep.pointer_table_shape",
		encode: func(op core.Operation) string { return shapeString(op.SEP.PointerTableShape) },
		decode: func(op *core.Operation, v string) error { return parseShapeInto(&op.SEP.PointerTableShape, v) },
	},
	{
		name:   "sep.actual_input_shape",
		encode: func(op core.Operation) string { return shapeString(op.SEP.ActualInputShape) },
		decode: func(op *core.Operation, v string) error { return parseShapeInto(&op.SEP.ActualInputShape, v) },
	},
	{
		name:   "sep.no_sparse_map",
		encode: func(op core.Operation) string { return strconv.FormatBool(op.SEP.NoSparseMap) },
		decode: func(op *core.Operation, v string) error {
			b, err := strconv.ParseBool(v)
			op.SEP.NoSparseMap = b
			return err
		},
	},
	{
		name:   "weight_type",
		encode: func(op core.Operation) string {
			if !op.WeightTypeSet {
				return "unset"
			}
			return enumColumn("DataType", op.WeightType)
		},
		decode: func(op *core.Operation, v string) error {
			if v == "unset" {
				op.WeightTypeSet = false
				return nil
			}
			d, err := parseDataType(stripEnumPrefix("DataType", v))
			op.WeightType = d
			op.WeightTypeSet = true
			return err
		},
	},
	{
		name:   "weightless_op",
		encode: func(op core.Operation) string { return triStateString(op.WeightlessOp) },
		decode: func(op *core.Operation, v string) error { return parseTriStateInto(&op.WeightlessOp, v) },
	},
	{
		name:   "in_place_output",
		encode: func(op core.Operation) string { return triStateString(op.InPlaceOutput) },
		decode: func(op *core.Operation, v string) error { return parseTriStateInto(&op.InPlaceOutput, v) },
	},
	{
		name:   "superdense",
		encode: func(op core.Operation) string { return triStateString(op.Superdense) },
		decode: func(op *core.Operation, v string) error { return parseTriStateInto(&op.Superdense, v) },
	},
}

// EncodeRecord renders op as one CSV row in the fixed column order. Input1
// (deduced weights) and the two *MemoryDense shapes are diagnostic
// derivations, not source-of-truth fields, and are intentionally excluded.
// InputAutopad, OutputAutopad, MPEEngine and ReduceMinMaxOp have no column
// either, so a round trip through Header/EncodeRecord/DecodeRecord returns
// them unset (nil / false) even when the source Operation set them.
func EncodeRecord(op core.Operation) []string {
	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = f.encode(op)
	}
	return row
}

// DecodeRecord parses one CSV row, in the fixed column order, into an
// Operation. Input1, Input0MemoryDense, and Output0MemoryDense are left
// zero-valued; callers that need them should re-run core.FromWorkload.
func DecodeRecord(record []string) (core.Operation, error) {
	if len(record) != len(fields) {
		return core.Operation{}, fmt.Errorf("serialize: expected %d columns, got %d", len(fields), len(record))
	}
	var op core.Operation
	for i, f := range fields {
		if err := f.decode(&op, record[i]); err != nil {
			return core.Operation{}, fmt.Errorf("serialize: column %q: %w", f.name, err)
		}
	}
	return op, nil
}

// Header returns the fixed column names, in order.
func Header() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// WriteCSV writes ops to w as a header row followed by one row per
// Operation.
func WriteCSV(w io.Writer, ops []core.Operation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, op := range ops {
		if err := cw.Write(EncodeRecord(op)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a header row followed by Operation rows from r.
func ReadCSV(r io.Reader) ([]core.Operation, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	ops := make([]core.Operation, 0, len(records)-1)
	for _, record := range records[1:] {
		op, err := DecodeRecord(record)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func shapeString(s core.Shape) string {
	return fmt.Sprintf("%d:%d:%d:%d", s.W(), s.H(), s.C(), s.B())
}

func parseShapeInto(s *core.Shape, v string) error {
	var w, h, c, b int
	if _, err := fmt.Sscanf(v, "%d:%d:%d:%d", &w, &h, &c, &b); err != nil {
		return fmt.Errorf("invalid shape %q: %w", v, err)
	}
	*s = core.Shape{w, h, c, b}
	return nil
}

func parseIntInto(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	*dst = n
	return err
}

func edgesString(e core.HaloEdges) string {
	return fmt.Sprintf("%d:%d:%d:%d:%d:%d", e.Top, e.Bottom, e.Left, e.Right, e.Front, e.Back)
}

func parseEdgesInto(e *core.HaloEdges, v string) error {
	var top, bottom, left, right, front, back int64
	if _, err := fmt.Sscanf(v, "%d:%d:%d:%d:%d:%d", &top, &bottom, &left, &right, &front, &back); err != nil {
		return fmt.Errorf("invalid halo edges %q: %w", v, err)
	}
	*e = core.HaloEdges{Top: top, Bottom: bottom, Left: left, Right: right, Front: front, Back: back}
	return nil
}

// triStateString renders a *bool tri-state field as "unset", "true", or
// "false".
func triStateString(p *bool) string {
	if p == nil {
		return "unset"
	}
	if *p {
		return "true"
	}
	return "false"
}

func parseTriStateInto(dst **bool, v string) error {
	switch v {
	case "unset":
		*dst = nil
		return nil
	case "true":
		b := true
		*dst = &b
		return nil
	case "false":
		b := false
		*dst = &b
		return nil
	default:
		return fmt.Errorf("invalid tri-state value %q", v)
	}
}
