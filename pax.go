// Package pax implements a decoder and encoder for PAX (Portable
// Arbitrary map eXtended) streams: a self-describing container pairing
// a human-readable text header with a binary multi-dimensional raster
// payload.
//
// # Basic usage
//
// Decoding a single stream from a byte slice:
//
//	doc, err := pax.Decode(buf)
//	if err != nil {
//	    // ...
//	}
//	v, ok := raster.ValueXY[float32](doc.Raster, 3, 4)
//
// Encoding one back out:
//
//	out, err := pax.Encode(doc)
//
// Multiple streams concatenated in one buffer (each framed by its own
// DATA_LENGTH) decode with DecodeMany, and a large header can be
// previewed incrementally, before its full raster payload has arrived,
// with Preview or PreviewFromChunks.
//
// This package never logs, never touches a file descriptor, and never
// converts a raster's byte order: those are explicit Non-goals, left to
// callers that need them.
package pax

import (
	"errors"

	"github.com/sss-pax/pax/header"
	"github.com/sss-pax/pax/internal/pool"
	"github.com/sss-pax/pax/paxerr"
	"github.com/sss-pax/pax/raster"
)

// ChunkLen is the preview read granularity PreviewFromChunks' callers
// are expected to supply data in.
const ChunkLen = 16384

// Document is one decoded pax stream: its header Model and the raster
// payload that header describes.
type Document struct {
	Header *header.Model
	Raster *raster.Raster
}

// Decode parses buf as a single pax stream. Trailing bytes beyond the
// stream's declared DATA_LENGTH are ignored; use DecodeMany to read
// multiple concatenated streams.
func Decode(buf []byte, opts ...Option) (*Document, error) {
	parseOpts, _ := splitOptions(opts)

	m, consumed, err := header.Parse(buf, parseOpts...)
	if err != nil {
		return nil, err
	}

	payload := buf[consumed-m.DataLength : consumed]
	return &Document{Header: m, Raster: raster.New(m.Type, m.Dims, payload)}, nil
}

// Encode writes doc back out as a pax stream: header bytes followed
// immediately by the raster payload, with no gap or trailing data.
func Encode(doc *Document, opts ...Option) ([]byte, error) {
	_, encodeOpts := splitOptions(opts)

	headerBytes, err := header.Encode(doc.Header, encodeOpts...)
	if err != nil {
		return nil, err
	}

	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)
	bb.MustWrite(headerBytes)
	bb.MustWrite(doc.Raster.Data)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}

// Preview parses just the header of a pax stream, tolerating a raster
// payload that has not fully arrived yet. It returns the header Model
// alone; callers wanting the raster data should call Decode once the
// full stream is available.
func Preview(buf []byte, opts ...Option) (*header.Model, error) {
	parseOpts, _ := splitOptions(opts)

	m, _, err := header.Parse(buf, parseOpts...)
	if err == nil {
		return m, nil
	}
	if errors.Is(err, paxerr.ErrTruncatedPayload) {
		return m, nil
	}
	return nil, err
}

// PreviewFromChunks accumulates byte slices yielded by next (which
// returns ok=false once exhausted) into a growable buffer, attempting a
// Preview after each chunk, and returns as soon as a complete header can
// be parsed. Callers typically supply chunks of ChunkLen bytes read
// incrementally from a socket or file.
func PreviewFromChunks(next func() ([]byte, bool), opts ...Option) (*header.Model, error) {
	bb := pool.GetBlobSetBuffer()
	defer pool.PutBlobSetBuffer(bb)

	for {
		chunk, ok := next()
		if ok {
			bb.MustWrite(chunk)
		}

		m, err := Preview(bb.Bytes(), opts...)
		if err == nil {
			return m, nil
		}
		if !ok {
			return nil, err
		}
	}
}

// DecodeMany decodes every pax stream concatenated back-to-back in buf,
// each stream's own DATA_LENGTH marking where the next one begins. There
// is no outer count or index: decoding simply continues until the
// buffer is exhausted.
func DecodeMany(buf []byte, opts ...Option) ([]*Document, error) {
	parseOpts, _ := splitOptions(opts)

	var docs []*Document
	offset := 0
	for offset < len(buf) {
		m, consumed, err := header.Parse(buf[offset:], parseOpts...)
		if err != nil {
			return docs, err
		}
		payload := buf[offset+consumed-m.DataLength : offset+consumed]
		docs = append(docs, &Document{Header: m, Raster: raster.New(m.Type, m.Dims, payload)})
		offset += consumed
	}
	return docs, nil
}

// EncodeMany writes every document in docs back out concatenated in
// order, each self-framed by its own header.
func EncodeMany(docs []*Document, opts ...Option) ([]byte, error) {
	_, encodeOpts := splitOptions(opts)

	bb := pool.GetBlobSetBuffer()
	defer pool.PutBlobSetBuffer(bb)

	for _, doc := range docs {
		headerBytes, err := header.Encode(doc.Header, encodeOpts...)
		if err != nil {
			return nil, err
		}
		bb.MustWrite(headerBytes)
		bb.MustWrite(doc.Raster.Data)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())
	return out, nil
}
