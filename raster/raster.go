// Package raster holds the decoded raster payload of a pax stream and
// exposes typed, bounds-checked accessors over it.
//
// PAX never converts a raster's byte order; it only interprets bytes
// that are already known (via the declared ptype.Type) to be in a given
// order, using the same endian.EndianEngine abstraction the rest of this
// module's byte-order-aware code is built on.
package raster

import (
	"unsafe"

	"github.com/sss-pax/pax/endian"
	"github.com/sss-pax/pax/paxerr"
	"github.com/sss-pax/pax/ptype"
)

// Numeric lists the scalar Go types ValueXY and ValueRC may be
// instantiated with. Each must be exactly as wide as the raster's
// declared BytesPerValue for the read to succeed.
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// Raster is the decoded binary payload of a pax stream together with
// the pixel Type and dimensions that describe how to interpret it.
type Raster struct {
	Type   ptype.Type
	Dims   []uint32
	Data   []byte
	Engine endian.EndianEngine
}

// New returns a Raster with the default little-endian read engine.
func New(t ptype.Type, dims []uint32, data []byte) *Raster {
	d := make([]uint32, len(dims))
	copy(d, dims)
	return &Raster{Type: t, Dims: d, Data: data, Engine: endian.GetLittleEndianEngine()}
}

// ElementCount returns the product of all declared dimensions.
func (r *Raster) ElementCount() int {
	n := 1
	for _, d := range r.Dims {
		n *= int(d)
	}
	return n
}

// flatIndex computes the column-major flat element index for the given
// per-dimension coordinates, where the first coordinate varies fastest.
func (r *Raster) flatIndex(coords ...int) (int, bool) {
	if len(coords) != len(r.Dims) {
		return 0, false
	}
	idx := 0
	mul := 1
	for i, c := range coords {
		if c < 0 || c >= int(r.Dims[i]) {
			return 0, false
		}
		idx += c * mul
		mul *= int(r.Dims[i])
	}
	return idx, true
}

func readScalar[T Numeric](engine endian.EndianEngine, data []byte, byteOffset, byteSize int) (T, bool) {
	var zero T
	if byteOffset < 0 || byteOffset+byteSize > len(data) {
		return zero, false
	}
	b := data[byteOffset : byteOffset+byteSize]
	switch byteSize {
	case 1:
		v := b[0]
		return *(*T)(unsafe.Pointer(&v)), true
	case 2:
		v := engine.Uint16(b)
		return *(*T)(unsafe.Pointer(&v)), true
	case 4:
		v := engine.Uint32(b)
		return *(*T)(unsafe.Pointer(&v)), true
	case 8:
		v := engine.Uint64(b)
		return *(*T)(unsafe.Pointer(&v)), true
	default:
		return zero, false
	}
}

// ValueXY reads the value at element (x, y) for a 2-dimensional raster,
// where x is the fast-varying (first) dimension. It reports false if the
// raster is not 2-D, the coordinates are out of range, or T's width does
// not match the raster's BytesPerValue.
func ValueXY[T Numeric](r *Raster, x, y int) (T, bool) {
	var zero T
	idx, ok := r.flatIndex(x, y)
	if !ok {
		return zero, false
	}
	byteSize := r.Type.BytesPerValue()
	if int(unsafe.Sizeof(zero)) != byteSize {
		return zero, false
	}
	return readScalar[T](r.Engine, r.Data, idx*byteSize, byteSize)
}

// ValueRC reads the value at (row, col) for a 2-dimensional raster,
// where col is the fast-varying dimension and row the slow-varying one,
// the transpose of ValueXY's (x, y) naming, offered for callers who
// think in row/column terms.
func ValueRC[T Numeric](r *Raster, row, col int) (T, bool) {
	return ValueXY[T](r, col, row)
}

// ValueAt reads the value at an arbitrary N-dimensional coordinate.
func ValueAt[T Numeric](r *Raster, coords ...int) (T, error) {
	var zero T
	idx, ok := r.flatIndex(coords...)
	if !ok {
		return zero, paxerr.ErrIndexOutOfRange
	}
	byteSize := r.Type.BytesPerValue()
	if int(unsafe.Sizeof(zero)) != byteSize {
		return zero, paxerr.ErrTypeMismatch
	}
	v, ok := readScalar[T](r.Engine, r.Data, idx*byteSize, byteSize)
	if !ok {
		return zero, paxerr.ErrIndexOutOfRange
	}
	return v, nil
}
