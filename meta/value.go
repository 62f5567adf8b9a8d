package meta

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sss-pax/pax/paxerr"
	"github.com/sss-pax/pax/ptype"
)

// MaxTextLength is the maximum number of bytes a Comment or String value
// may carry. Longer input is truncated, never rejected, per the format's
// fixed-size metadata text buffer.
const MaxTextLength = 255

// Value is a single named metadata entry: a comment, a string, a scalar
// number, or a multi-dimensional array of one numeric MetaKind.
type Value struct {
	name     string
	kind     ptype.MetaKind
	location Location
	index    int
	dims     []uint32
	scalar   [8]byte
	array    []byte
	text     []byte
	stripped bool
}

// NewComment returns a comment Value carrying the given text. stripped
// records whether a single leading space was removed from the original
// line's text (the writer re-inserts it on the way back out).
func NewComment(text string, stripped bool) *Value {
	return &Value{kind: ptype.KindComment, text: capText(text), stripped: stripped}
}

// NewString returns a named string-valued metadata entry.
func NewString(name, text string, stripped bool) *Value {
	return &Value{name: name, kind: ptype.KindString, text: capText(text), stripped: stripped}
}

func capText(s string) []byte {
	b := []byte(s)
	if len(b) > MaxTextLength {
		b = b[:MaxTextLength]
	}
	return b
}

// NewScalar returns a named scalar numeric metadata entry. kind must be
// one of the numeric MetaKinds; NewScalar panics otherwise, since this
// is always a programming error at the call site.
func NewScalar(name string, kind ptype.MetaKind) *Value {
	if !kind.IsNumeric() {
		panic(fmt.Sprintf("meta: NewScalar called with non-numeric kind %v", kind))
	}
	return &Value{name: name, kind: kind}
}

// NewArray returns a named multi-dimensional numeric metadata entry with
// the given dims, backed by a freshly allocated zeroed buffer.
func NewArray(name string, kind ptype.MetaKind, dims []uint32) *Value {
	if !kind.IsNumeric() {
		panic(fmt.Sprintf("meta: NewArray called with non-numeric kind %v", kind))
	}
	count := 1
	for _, d := range dims {
		count *= int(d)
	}
	d := make([]uint32, len(dims))
	copy(d, dims)
	return &Value{
		name:  name,
		kind:  kind,
		dims:  d,
		array: make([]byte, count*kind.ByteSize()),
	}
}

func (v *Value) Name() string         { return v.name }
func (v *Value) Kind() ptype.MetaKind { return v.kind }
func (v *Value) Location() Location   { return v.location }
func (v *Value) Index() int           { return v.index }
func (v *Value) Stripped() bool       { return v.stripped }
func (v *Value) IsComment() bool      { return v.kind == ptype.KindComment }
func (v *Value) IsString() bool       { return v.kind == ptype.KindString }
func (v *Value) IsArray() bool        { return len(v.dims) > 0 }

// Dims returns the value's declared dimensions, or nil for a scalar or
// text value.
func (v *Value) Dims() []uint32 {
	if len(v.dims) == 0 {
		return nil
	}
	out := make([]uint32, len(v.dims))
	copy(out, v.dims)
	return out
}

// Text returns the comment or string payload. It panics if called on a
// numeric value.
func (v *Value) Text() string {
	if v.kind != ptype.KindComment && v.kind != ptype.KindString {
		panic("meta: Text called on non-text value")
	}
	return string(v.text)
}

// SetLocation records where this value was found (on decode) or should
// be written (on encode), along with its insertion index within that
// location. Callers normally go through Store.Insert instead of calling
// this directly.
func (v *Value) SetLocation(loc Location, index int) {
	v.location = loc
	v.index = index
}

// Clone returns a deep copy of v, so that two PaxModels can hold
// independent metadata without aliasing array buffers.
func (v *Value) Clone() *Value {
	c := *v
	if v.dims != nil {
		c.dims = append([]uint32(nil), v.dims...)
	}
	if v.array != nil {
		c.array = append([]byte(nil), v.array...)
	}
	if v.text != nil {
		c.text = append([]byte(nil), v.text...)
	}
	return &c
}

// FlatIndex converts multi-dimensional indices into an offset into the
// value's flat array buffer. The first index varies fastest (the same
// column-major layout the raster container uses). Fewer indices than
// dimensions select the base offset of the corresponding sub-array;
// more indices than dimensions, an out-of-range index, is reported as
// paxerr.ErrIndexOutOfRange.
func (v *Value) FlatIndex(indices []uint32) (int, error) {
	if len(indices) > len(v.dims) {
		return 0, paxerr.ErrIndexOutOfRange
	}
	index := 0
	mul := 1
	for i, idx := range indices {
		if idx >= v.dims[i] {
			return 0, paxerr.ErrIndexOutOfRange
		}
		index += int(idx) * mul
		mul *= int(v.dims[i])
	}
	return index, nil
}

// SetScalar stores bits as the value's scalar payload, encoded according
// to kind. It returns paxerr.ErrTypeMismatch if kind does not match the
// value's declared kind.
func (v *Value) SetScalar(kind ptype.MetaKind, bits uint64) error {
	if kind != v.kind {
		return paxerr.ErrTypeMismatch
	}
	binary.LittleEndian.PutUint64(v.scalar[:], bits)
	return nil
}

// ScalarBits returns the raw little-endian bit pattern stored for a
// scalar numeric value.
func (v *Value) ScalarBits() uint64 {
	return binary.LittleEndian.Uint64(v.scalar[:])
}

// ArrayAt returns the Kind().ByteSize()-byte slice for the element at flat
// index idx within the value's array buffer.
func (v *Value) ArrayAt(idx int) ([]byte, error) {
	sz := v.kind.ByteSize()
	start := idx * sz
	if start < 0 || start+sz > len(v.array) {
		return nil, paxerr.ErrIndexOutOfRange
	}
	return v.array[start : start+sz], nil
}

// ArrayBytes returns the value's raw flat array buffer.
func (v *Value) ArrayBytes() []byte {
	return v.array
}

// SetArrayBytes replaces the value's flat array buffer. len(data) must
// equal the product of Dims times the kind's byte size.
func (v *Value) SetArrayBytes(data []byte) {
	v.array = data
}

// bits returns the raw bit pattern at indices (empty for a scalar
// value, a flat coordinate for an array value), without any kind
// check. Callers are the typed GetXxx accessors below.
func (v *Value) bits(indices []uint32) (uint64, error) {
	if v.IsArray() {
		idx, err := v.FlatIndex(indices)
		if err != nil {
			return 0, err
		}
		b, err := v.ArrayAt(idx)
		if err != nil {
			return 0, err
		}
		switch len(b) {
		case 1:
			return uint64(b[0]), nil
		case 2:
			return uint64(binary.LittleEndian.Uint16(b)), nil
		case 4:
			return uint64(binary.LittleEndian.Uint32(b)), nil
		default:
			return binary.LittleEndian.Uint64(b), nil
		}
	}
	if len(indices) != 0 {
		return 0, paxerr.ErrIndexOutOfRange
	}
	return v.ScalarBits(), nil
}

func (v *Value) checkedBits(kind ptype.MetaKind, indices []uint32) (uint64, error) {
	if kind != v.kind {
		return 0, paxerr.ErrTypeMismatch
	}
	return v.bits(indices)
}

// GetFloat reads v as a 32-bit float, returning paxerr.ErrTypeMismatch
// if v's kind is not ptype.KindFloat. indices is required for an array
// value (a flat coordinate) and must be empty for a scalar value.
func (v *Value) GetFloat(indices ...uint32) (float32, error) {
	bits, err := v.checkedBits(ptype.KindFloat, indices)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

// GetDouble reads v as a 64-bit float, returning paxerr.ErrTypeMismatch
// if v's kind is not ptype.KindDouble.
func (v *Value) GetDouble(indices ...uint32) (float64, error) {
	bits, err := v.checkedBits(ptype.KindDouble, indices)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// GetInt8 reads v as an int8, returning paxerr.ErrTypeMismatch if v's
// kind is not ptype.KindInt8.
func (v *Value) GetInt8(indices ...uint32) (int8, error) {
	bits, err := v.checkedBits(ptype.KindInt8, indices)
	if err != nil {
		return 0, err
	}
	return int8(bits), nil
}

// GetInt16 reads v as an int16, returning paxerr.ErrTypeMismatch if v's
// kind is not ptype.KindInt16.
func (v *Value) GetInt16(indices ...uint32) (int16, error) {
	bits, err := v.checkedBits(ptype.KindInt16, indices)
	if err != nil {
		return 0, err
	}
	return int16(bits), nil
}

// GetInt32 reads v as an int32, returning paxerr.ErrTypeMismatch if v's
// kind is not ptype.KindInt32.
func (v *Value) GetInt32(indices ...uint32) (int32, error) {
	bits, err := v.checkedBits(ptype.KindInt32, indices)
	if err != nil {
		return 0, err
	}
	return int32(bits), nil
}

// GetInt64 reads v as an int64, returning paxerr.ErrTypeMismatch if v's
// kind is not ptype.KindInt64.
func (v *Value) GetInt64(indices ...uint32) (int64, error) {
	bits, err := v.checkedBits(ptype.KindInt64, indices)
	if err != nil {
		return 0, err
	}
	return int64(bits), nil
}

// GetUint8 reads v as a uint8, returning paxerr.ErrTypeMismatch if v's
// kind is not ptype.KindUint8.
func (v *Value) GetUint8(indices ...uint32) (uint8, error) {
	bits, err := v.checkedBits(ptype.KindUint8, indices)
	if err != nil {
		return 0, err
	}
	return uint8(bits), nil
}

// GetUint16 reads v as a uint16, returning paxerr.ErrTypeMismatch if
// v's kind is not ptype.KindUint16.
func (v *Value) GetUint16(indices ...uint32) (uint16, error) {
	bits, err := v.checkedBits(ptype.KindUint16, indices)
	if err != nil {
		return 0, err
	}
	return uint16(bits), nil
}

// GetUint32 reads v as a uint32, returning paxerr.ErrTypeMismatch if
// v's kind is not ptype.KindUint32.
func (v *Value) GetUint32(indices ...uint32) (uint32, error) {
	bits, err := v.checkedBits(ptype.KindUint32, indices)
	if err != nil {
		return 0, err
	}
	return uint32(bits), nil
}

// GetUint64 reads v as a uint64, returning paxerr.ErrTypeMismatch if
// v's kind is not ptype.KindUint64.
func (v *Value) GetUint64(indices ...uint32) (uint64, error) {
	return v.checkedBits(ptype.KindUint64, indices)
}
