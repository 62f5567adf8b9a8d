package header

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/sss-pax/pax/ptype"
)

// numberToBits parses s according to kind and returns its value as a
// little-endian bit pattern in the low ByteSize() bytes of a uint64,
// the same representation meta.Value.ScalarBits stores.
func numberToBits(s string, kind ptype.MetaKind) (uint64, error) {
	switch kind {
	case ptype.KindFloat:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, err
		}
		return uint64(math.Float32bits(float32(v))), nil
	case ptype.KindDouble:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return math.Float64bits(v), nil
	case ptype.KindInt8, ptype.KindInt16, ptype.KindInt32, ptype.KindInt64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	case ptype.KindUint8, ptype.KindUint16, ptype.KindUint32, ptype.KindUint64:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, err
		}
		return v, nil
	default:
		return 0, fmt.Errorf("header: numberToBits called with non-numeric kind %v", kind)
	}
}

// floatSigDigits is the number of significant digits the header writer
// formats floating-point metadata with.
const floatSigDigits = 15

// formatVersion renders a Model's Version field to two decimal places,
// matching the original writer's fixed setprecision(2) output. A
// Version that doesn't parse as a number is written back unchanged
// rather than dropped.
func formatVersion(version string) string {
	v, err := strconv.ParseFloat(version, 64)
	if err != nil {
		return version
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// bitsToString formats bits (as stored by numberToBits/meta.Value) back
// into the decimal text the header writer emits.
func bitsToString(bits uint64, kind ptype.MetaKind) string {
	switch kind {
	case ptype.KindFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(bits))), 'g', floatSigDigits, 32)
	case ptype.KindDouble:
		return strconv.FormatFloat(math.Float64frombits(bits), 'g', floatSigDigits, 64)
	case ptype.KindInt8:
		return strconv.FormatInt(int64(int8(bits)), 10)
	case ptype.KindInt16:
		return strconv.FormatInt(int64(int16(bits)), 10)
	case ptype.KindInt32:
		return strconv.FormatInt(int64(int32(bits)), 10)
	case ptype.KindInt64:
		return strconv.FormatInt(int64(bits), 10)
	case ptype.KindUint8:
		return strconv.FormatUint(uint64(uint8(bits)), 10)
	case ptype.KindUint16:
		return strconv.FormatUint(uint64(uint16(bits)), 10)
	case ptype.KindUint32:
		return strconv.FormatUint(uint64(uint32(bits)), 10)
	default: // ptype.KindUint64
		return strconv.FormatUint(bits, 10)
	}
}

// putArrayElement writes bits into buf at flat index idx according to
// kind's byte size, little-endian.
func putArrayElement(buf []byte, idx int, kind ptype.MetaKind, bits uint64) {
	sz := kind.ByteSize()
	dst := buf[idx*sz : idx*sz+sz]
	switch sz {
	case 1:
		dst[0] = byte(bits)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(bits))
	case 4:
		binary.LittleEndian.PutUint32(dst, uint32(bits))
	case 8:
		binary.LittleEndian.PutUint64(dst, bits)
	}
}

// getArrayElement reads the bits at flat index idx out of buf according
// to kind's byte size.
func getArrayElement(buf []byte, idx int, kind ptype.MetaKind) uint64 {
	sz := kind.ByteSize()
	src := buf[idx*sz : idx*sz+sz]
	switch sz {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(src))
	case 4:
		return uint64(binary.LittleEndian.Uint32(src))
	default:
		return binary.LittleEndian.Uint64(src)
	}
}
