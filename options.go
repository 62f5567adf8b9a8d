package pax

import (
	"github.com/sss-pax/pax/header"
)

// Option configures the facade-level Decode/Encode/Preview operations,
// built with the same functional-options pattern used throughout this
// module.
type Option struct {
	parse  []header.ParseOption
	encode []header.EncodeOption
}

// WithStrictShape rejects unrecognized structural or metadata tags
// instead of skipping them during decode.
func WithStrictShape() Option {
	return Option{parse: []header.ParseOption{header.WithStrict()}}
}

// WithMetaSink registers a callback invoked once per recoverable
// metadata-parse failure during decode.
func WithMetaSink(sink func(pos int, err error)) Option {
	return Option{parse: []header.ParseOption{header.WithSink(sink)}}
}

// WithMaxTextLength lowers the maximum comment/string length kept
// during decode; it cannot raise it above meta.MaxTextLength.
func WithMaxTextLength(n int) Option {
	return Option{parse: []header.ParseOption{header.WithMaxTextLength(n)}}
}

// WithRowLength overrides the wrap threshold used when encoding
// array metadata (see header.EncodeConfig.RowLength).
func WithRowLength(n int) Option {
	return Option{encode: []header.EncodeOption{header.WithRowLength(n)}}
}

func splitOptions(opts []Option) ([]header.ParseOption, []header.EncodeOption) {
	var p []header.ParseOption
	var e []header.EncodeOption
	for _, o := range opts {
		p = append(p, o.parse...)
		e = append(e, o.encode...)
	}
	return p, e
}
