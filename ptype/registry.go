// Package ptype holds the two static, bijective registries a pax stream's
// header is built from: the raster pixel Type named by its leading "PAX"
// tag, and the MetaKind named by each "##" metadata line's type tag.
//
// Both registries are read-only after package init and safe for
// concurrent use from every goroutine.
package ptype

import "strings"

// ValueSpace distinguishes how ValuesPerElement is measured for a Type.
type ValueSpace int

const (
	// ValueSpaceByte means BytesPerValue bytes are read per value; this
	// covers every numeric, complex, and color Type.
	ValueSpaceByte ValueSpace = iota
	// ValueSpaceBit means ValuesPerElement counts individual bits packed
	// into BytesPerValue bytes, used only by PAX_BIT.
	ValueSpaceBit
)

// Type is one entry of the raster pixel type registry, identified by both
// a numeric code (the digits following "PAX" in the type-tag line) and a
// case-insensitive name.
type Type struct {
	code             int32
	name             string
	bytesPerValue    int
	valuesPerElement int
	space            ValueSpace
}

func (t Type) Code() int32            { return t.code }
func (t Type) Name() string           { return t.name }
func (t Type) BytesPerValue() int     { return t.bytesPerValue }
func (t Type) ValuesPerElement() int  { return t.valuesPerElement }
func (t Type) ValueSpace() ValueSpace { return t.space }
func (t Type) String() string         { return t.name }
func (t Type) IsValid() bool          { return t.name != "" }

// registry order mirrors the original PAX driver's paxTypes enum:
// structural/invalid codes first, then scalar numeric types in
// increasing width, then composite (complex, magnitude/phase, color)
// types built on top of them.
var registry = []Type{
	{code: 0, name: "INVALID", bytesPerValue: 0, valuesPerElement: 0},
	{code: 1, name: "META_ONLY", bytesPerValue: 0, valuesPerElement: 0},
	{code: 2, name: "UNDEFINED_PIXEL_TYPE", bytesPerValue: 0, valuesPerElement: 0},
	{code: 10, name: "PAX_BYTE", bytesPerValue: 1, valuesPerElement: 1},
	{code: 11, name: "PAX_UBYTE", bytesPerValue: 1, valuesPerElement: 1},
	{code: 12, name: "PAX_SHORT", bytesPerValue: 2, valuesPerElement: 1},
	{code: 13, name: "PAX_USHORT", bytesPerValue: 2, valuesPerElement: 1},
	{code: 14, name: "PAX_INT", bytesPerValue: 4, valuesPerElement: 1},
	{code: 15, name: "PAX_UINT", bytesPerValue: 4, valuesPerElement: 1},
	{code: 16, name: "PAX_LONG", bytesPerValue: 8, valuesPerElement: 1},
	{code: 17, name: "PAX_ULONG", bytesPerValue: 8, valuesPerElement: 1},
	{code: 18, name: "PAX_FLOAT", bytesPerValue: 4, valuesPerElement: 1},
	{code: 19, name: "PAX_DOUBLE", bytesPerValue: 8, valuesPerElement: 1},
	{code: 20, name: "PAX_LONG_DOUBLE", bytesPerValue: 16, valuesPerElement: 1},
	{code: 30, name: "PAX_CSHORT", bytesPerValue: 2, valuesPerElement: 2},
	{code: 31, name: "PAX_CINT", bytesPerValue: 4, valuesPerElement: 2},
	{code: 32, name: "PAX_CFLOAT", bytesPerValue: 4, valuesPerElement: 2},
	{code: 33, name: "PAX_CDOUBLE", bytesPerValue: 8, valuesPerElement: 2},
	{code: 40, name: "PAX_MAGPHASE_FLOAT", bytesPerValue: 4, valuesPerElement: 2},
	{code: 41, name: "PAX_MAGPHASE_DOUBLE", bytesPerValue: 8, valuesPerElement: 2},
	{code: 50, name: "PAX_RGB_BYTE", bytesPerValue: 1, valuesPerElement: 3},
	{code: 51, name: "PAX_RGB_FLOAT", bytesPerValue: 4, valuesPerElement: 3},
	{code: 52, name: "PAX_HSV_FLOAT", bytesPerValue: 4, valuesPerElement: 3},
	{code: 60, name: "PAX_BIT", bytesPerValue: 1, valuesPerElement: 1, space: ValueSpaceBit},
}

var (
	byCode = make(map[int32]Type, len(registry))
	byName = make(map[string]Type, len(registry))
)

func init() {
	for _, t := range registry {
		byCode[t.code] = t
		byName[strings.ToUpper(t.name)] = t
	}
}

// FromCode looks up a Type by its numeric code. The second return value
// is false if no Type is registered under that code.
func FromCode(code int32) (Type, bool) {
	t, ok := byCode[code]
	return t, ok
}

// FromName looks up a Type by name, case-insensitively. The second
// return value is false if no Type is registered under that name.
func FromName(name string) (Type, bool) {
	t, ok := byName[strings.ToUpper(name)]
	return t, ok
}

// All returns every registered Type in registry order.
func All() []Type {
	out := make([]Type, len(registry))
	copy(out, registry)
	return out
}
