// Package paxerr defines the sentinel error values returned by the pax
// codec and its subpackages.
//
// Callers should test for specific failure modes with errors.Is, never by
// matching error strings:
//
//	_, _, err := header.Parse(buf)
//	if errors.Is(err, paxerr.ErrFileTooShort) {
//	    // not enough bytes to even attempt a parse
//	}
//
// Most errors returned by this module wrap one of these sentinels with
// positional context via DecodeError; unwrap with errors.As to recover
// the byte offset where parsing failed.
package paxerr

import (
	"errors"
	"fmt"
)

var (
	// ErrFileTooShort is returned when a buffer is shorter than the
	// 128-byte minimum length of a pax stream.
	ErrFileTooShort = errors.New("paxerr: file too short to be a valid pax stream")

	// ErrInvalidTag is returned when the leading type-tag line does not
	// match the "PAX<code> : v<version> : <name>" grammar.
	ErrInvalidTag = errors.New("paxerr: invalid pax type tag line")

	// ErrUnknownType is returned when a type-tag code or name does not
	// resolve to a registered ptype.Type.
	ErrUnknownType = errors.New("paxerr: unknown pax type")

	// ErrInvalidShape is returned when a raster's declared dimensions do
	// not agree with its DATA_LENGTH value.
	ErrInvalidShape = errors.New("paxerr: raster shape does not match data length")

	// ErrIncompleteHeader is returned when the buffer ends before a
	// terminal DATA_LENGTH line is found.
	ErrIncompleteHeader = errors.New("paxerr: header ended before data_length tag")

	// ErrTruncatedPayload is returned when fewer raster bytes remain in
	// the buffer than DATA_LENGTH promises.
	ErrTruncatedPayload = errors.New("paxerr: raster payload is shorter than declared data length")

	// ErrMalformedMetadata is returned when a "##" or "#" line cannot be
	// parsed at all, including one naming a type tag that is not a
	// registered ptype.MetaKind.
	ErrMalformedMetadata = errors.New("paxerr: malformed metadata line")

	// ErrUnknownMetadata is returned when a named metadata lookup (e.g.
	// meta.Store.GetFloat) finds no entry stored under that name.
	ErrUnknownMetadata = errors.New("paxerr: no metadata stored under that name")

	// ErrTypeMismatch is returned when a metadata accessor is called
	// with a kind that does not match the stored value.
	ErrTypeMismatch = errors.New("paxerr: metadata kind mismatch")

	// ErrIndexOutOfRange is returned when a raster or array-metadata
	// accessor is given indices outside the declared dimensions.
	ErrIndexOutOfRange = errors.New("paxerr: index out of range")

	// ErrIoError wraps unexpected I/O failures while streaming a decode
	// or encode operation.
	ErrIoError = errors.New("paxerr: io error")
)

// DecodeError attaches a byte offset to one of the sentinel errors above,
// the way a human reading a hex dump would point at the failing byte.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pax: at byte %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AtOffset wraps err with the byte offset it occurred at, unless err is
// nil.
func AtOffset(offset int, err error) error {
	if err == nil {
		return nil
	}

	return &DecodeError{Offset: offset, Err: err}
}
