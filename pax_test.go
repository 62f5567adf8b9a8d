package pax_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sss-pax/pax"
	"github.com/sss-pax/pax/header"
	"github.com/sss-pax/pax/meta"
	"github.com/sss-pax/pax/ptype"
	"github.com/sss-pax/pax/raster"
)

func newDoc(t *testing.T, name string, dims []uint32) *pax.Document {
	t.Helper()
	typ, ok := ptype.FromName("PAX_FLOAT")
	require.True(t, ok)

	m := header.NewModel(typ, name)
	m.Dims = dims
	m.Meta.SetLocation(meta.AfterTag)
	m.Meta.Insert(meta.NewComment("test fixture", false))

	payload := make([]byte, m.ExpectedDataLength())
	for i := range payload {
		payload[i] = byte(i)
	}

	return &pax.Document{Header: m, Raster: raster.New(typ, dims, payload)}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	doc := newDoc(t, "round trip", []uint32{2, 2})

	encoded, err := pax.Encode(doc)
	require.NoError(t, err)

	decoded, err := pax.Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, doc.Header.Name, decoded.Header.Name)
	assert.Equal(t, doc.Header.Dims, decoded.Header.Dims)
	assert.Equal(t, doc.Raster.Data, decoded.Raster.Data)

	// newDoc fills the payload with byte(i), so element (0,0) holds the
	// little-endian bytes 00 01 02 03.
	v, ok := raster.ValueXY[float32](decoded.Raster, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, math.Float32frombits(0x03020100), v)
}

func TestDecodeManyEncodeMany(t *testing.T) {
	docs := []*pax.Document{
		newDoc(t, "first", []uint32{2}),
		newDoc(t, "second", []uint32{3, 2}),
	}

	buf, err := pax.EncodeMany(docs)
	require.NoError(t, err)

	decoded, err := pax.DecodeMany(buf)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	assert.Equal(t, "first", decoded[0].Header.Name)
	assert.Equal(t, "second", decoded[1].Header.Name)
	assert.Equal(t, docs[1].Raster.Data, decoded[1].Raster.Data)
}

func TestPreviewTruncatedPayload(t *testing.T) {
	doc := newDoc(t, "preview me", []uint32{4, 4})
	encoded, err := pax.Encode(doc)
	require.NoError(t, err)

	headerOnly := encoded[:len(encoded)-doc.Raster.ElementCount()*doc.Header.Type.BytesPerValue()]

	m, err := pax.Preview(headerOnly)
	require.NoError(t, err)
	assert.Equal(t, "preview me", m.Name)
}

func TestPreviewFromChunks(t *testing.T) {
	doc := newDoc(t, "chunked", []uint32{8, 8})
	encoded, err := pax.Encode(doc)
	require.NoError(t, err)

	const chunkSize = 7
	offset := 0
	next := func() ([]byte, bool) {
		if offset >= len(encoded) {
			return nil, false
		}
		end := offset + chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}
		chunk := encoded[offset:end]
		offset = end
		return chunk, true
	}

	m, err := pax.PreviewFromChunks(next)
	require.NoError(t, err)
	assert.Equal(t, "chunked", m.Name)
	assert.Equal(t, []uint32{8, 8}, m.Dims)
}

func TestWithMetaSinkSilentOnCleanStream(t *testing.T) {
	doc := newDoc(t, "lenient", []uint32{1})
	encoded, err := pax.Encode(doc)
	require.NoError(t, err)

	var reports int
	_, err = pax.Decode(encoded, pax.WithMetaSink(func(pos int, err error) {
		reports++
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, reports)
}
