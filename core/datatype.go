package core

import "fmt"

// DataType is the element type of a Tensor. Bit widths below 8 participate
// in the bit-packing rules of size_bytes (tensor.go); widths >= 8 use a
// plain byte-width multiplication.
type DataType int

const (
	DataTypeInvalid DataType = iota
	U1
	U2
	U4
	U8
	U16
	U32
	I1
	I2
	I4
	I8
	I16
	I32
	F16
	BF16
	F32
	HF8
	BF8
)

var dataTypeNames = map[DataType]string{
	DataTypeInvalid: "INVALID",
	U1:              "U1",
	U2:              "U2",
	U4:              "U4",
	U8:              "U8",
	U16:             "U16",
	U32:             "U32",
	I1:              "I1",
	I2:              "I2",
	I4:              "I4",
	I8:              "I8",
	I16:             "I16",
	I32:             "I32",
	F16:             "F16",
	BF16:            "BF16",
	F32:             "F32",
	HF8:             "HF8",
	BF8:             "BF8",
}

func (d DataType) String() string {
	if s, ok := dataTypeNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(d))
}

// bitWidths is the canonical bit-width table: the integer families declare
// their width directly, the float families are pinned by hardware convention
// (HF8/BF8 are 8-bit floats, BF16/F16 are 16-bit).
var bitWidths = map[DataType]int{
	U1: 1, I1: 1,
	U2: 2, I2: 2,
	U4: 4, I4: 4,
	U8: 8, I8: 8, HF8: 8, BF8: 8,
	U16: 16, I16: 16, F16: 16, BF16: 16,
	U32: 32, I32: 32, F32: 32,
}

// BitWidth returns the number of bits one element of d occupies.
func (d DataType) BitWidth() int {
	return bitWidths[d]
}

// ByteWidth returns the number of bytes one element of d occupies; it is
// only meaningful (and only used) for bit widths >= 8.
func (d DataType) ByteWidth() int {
	return bitWidths[d] / 8
}

// IsFloat reports whether d is a floating-point family, including the two
// 8-bit float encodings.
func (d DataType) IsFloat() bool {
	switch d {
	case F16, BF16, F32, HF8, BF8:
		return true
	default:
		return false
	}
}

// IsInt reports whether d is a signed or unsigned integer family.
func (d DataType) IsInt() bool {
	switch d {
	case U1, U2, U4, U8, U16, U32, I1, I2, I4, I8, I16, I32:
		return true
	default:
		return false
	}
}

// IsPacked reports whether d requires sub-byte bit-packing arithmetic.
func (d DataType) IsPacked() bool {
	return d.BitWidth() < 8
}
