package header

import (
	"fmt"
	"math"
	"strconv"

	"github.com/sss-pax/pax/internal/pool"
	"github.com/sss-pax/pax/meta"
	"github.com/sss-pax/pax/ptype"
	"github.com/sss-pax/pax/scan"
)

// Encode writes m's header bytes (tag line through DATA_LENGTH) using a
// pooled growable buffer, writing fields directly into it instead of
// building the result through repeated []byte concatenation. The
// returned slice does not include the raster payload.
func Encode(m *Model, opts ...EncodeOption) ([]byte, error) {
	cfg, err := newEncodeConfig(opts)
	if err != nil {
		return nil, err
	}

	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)

	writeString(bb, fmt.Sprintf("PAX%d : v%s : %s\n", m.Type.Code(), formatVersion(m.Version), m.Name))
	writeMetadataBlock(bb, m.Meta, meta.AfterTag, cfg)

	writeString(bb, fmt.Sprintf("BYTES_PER_VALUE : %d\n", m.Type.BytesPerValue()))
	writeMetadataBlock(bb, m.Meta, meta.AfterBPV, cfg)

	writeString(bb, fmt.Sprintf("VALUES_PER_ELEMENT : %d\n", m.Type.ValuesPerElement()))
	writeMetadataBlock(bb, m.Meta, meta.AfterVPE, cfg)

	for i, d := range m.Dims {
		ordinal := i + 1
		word := scan.OrdinalWord(ordinal)
		if word == "" {
			word = strconv.Itoa(ordinal) + scan.OrdinalSuffix(ordinal%100)
		}
		writeString(bb, fmt.Sprintf("ELEMENTS_IN_%s_DIMENSION : %d\n", word, d))

		loc := meta.AfterSecondDim
		if i == 0 {
			loc = meta.AfterFirstDim
		}
		writeMetadataBlock(bb, m.Meta, loc, cfg)
	}

	writeString(bb, fmt.Sprintf("DATA_LENGTH : %d\n", m.ExpectedDataLength()))

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

func writeString(bb *pool.ByteBuffer, s string) {
	bb.MustWrite([]byte(s))
}

func padTag(tag string) string {
	s := "[" + tag + "]      "
	if len(s) > 11 {
		s = s[:11]
	}
	return s
}

func writeMetadataBlock(bb *pool.ByteBuffer, store *meta.Store, loc meta.Location, cfg *EncodeConfig) {
	for v := range store.AtLocation(loc) {
		switch {
		case v.IsComment():
			prefix := "#"
			if v.Stripped() {
				prefix = "# "
			}
			writeString(bb, prefix+v.Text()+"\n")

		case v.IsString():
			eq := " ="
			if v.Stripped() {
				eq = " = "
			}
			writeString(bb, "## [string]   "+v.Name()+eq+v.Text()+"\n")

		case v.IsArray():
			writeArrayMeta(bb, v, cfg)

		default:
			writeString(bb, "## "+padTag(v.Kind().Tag())+v.Name()+" ="+" "+bitsToString(v.ScalarBits(), v.Kind())+"\n")
		}
	}
}

func writeArrayMeta(bb *pool.ByteBuffer, v *meta.Value, cfg *EncodeConfig) {
	dims := v.Dims()
	kind := v.Kind()

	writeString(bb, "## "+padTag(kind.Tag())+v.Name()+" [")
	for i, d := range dims {
		word := ordinalArrayTag(i)
		writeString(bb, fmt.Sprintf(" %s = %d", word, d))
	}
	writeString(bb, " ] =")

	rowLength := 1
	for _, d := range dims {
		if rowLength >= cfg.RowLength {
			break
		}
		rowLength *= int(d)
	}
	if rowLength < 1 {
		rowLength = 1
	}

	count := 1
	for _, d := range dims {
		count *= int(d)
	}

	buf := v.ArrayBytes()
	texts, cleanup := decodeArrayTexts(buf, count, kind)
	defer cleanup()

	multiDim := len(dims) > 1
	for i, text := range texts {
		if multiDim && i%rowLength == 0 {
			writeString(bb, "\n ")
		}
		writeString(bb, " "+text)
	}
	writeString(bb, "\n")
}

// decodeArrayTexts renders buf's count flat elements of kind as decimal
// text, staging the decoded bit patterns in a pooled slice rather than
// formatting straight off the raw byte buffer. Floating-point kinds
// stage through a float64 slice, every other numeric kind through int64
// (each still formatted by kind's own bit width via bitsToString).
func decodeArrayTexts(buf []byte, count int, kind ptype.MetaKind) ([]string, func()) {
	texts := make([]string, count)

	if kind == ptype.KindFloat || kind == ptype.KindDouble {
		scratch, cleanup := pool.GetFloat64Slice(count)
		bitSize := 64
		for i := range scratch {
			bits := getArrayElement(buf, i, kind)
			if kind == ptype.KindFloat {
				bitSize = 32
				scratch[i] = float64(math.Float32frombits(uint32(bits)))
			} else {
				scratch[i] = math.Float64frombits(bits)
			}
		}
		for i, v := range scratch {
			texts[i] = strconv.FormatFloat(v, 'g', floatSigDigits, bitSize)
		}
		return texts, cleanup
	}

	scratch, cleanup := pool.GetInt64Slice(count)
	for i := range scratch {
		scratch[i] = int64(getArrayElement(buf, i, kind))
	}
	for i, v := range scratch {
		texts[i] = bitsToString(uint64(v), kind)
	}
	return texts, cleanup
}

var arrayOrdinalTags = [...]string{"first", "second", "third", "fourth"}

func ordinalArrayTag(i int) string {
	if i < len(arrayOrdinalTags) {
		return arrayOrdinalTags[i]
	}
	return fmt.Sprintf("dim%d", i+1)
}
