package header

import "github.com/sss-pax/pax/internal/options"

// ParseConfig holds the tunables header.Parse accepts, built with the
// functional-options pattern shared across this module.
type ParseConfig struct {
	// Strict rejects any unrecognized structural or metadata tag
	// instead of skipping it. Off by default, matching the format's
	// own "be liberal in what you accept" stance on header extension.
	Strict bool
	// MaxTextLength lowers the comment/string length cap for this
	// parse, 0 means use the package default. Text is never kept longer
	// than meta.MaxTextLength, so a larger value has no effect.
	MaxTextLength int
	// Sink, if non-nil, is invoked once per recoverable metadata-line
	// parse failure instead of aborting the whole parse.
	Sink func(pos int, err error)
}

// ParseOption configures a ParseConfig.
type ParseOption = options.Option[*ParseConfig]

// WithStrict enables strict structural-tag validation.
func WithStrict() ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Strict = true })
}

// WithMaxTextLength lowers the maximum comment/string length (see
// ParseConfig.MaxTextLength).
func WithMaxTextLength(n int) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.MaxTextLength = n })
}

// WithSink registers a callback for recoverable metadata-parse errors.
func WithSink(sink func(pos int, err error)) ParseOption {
	return options.NoError(func(c *ParseConfig) { c.Sink = sink })
}

func newParseConfig(opts []ParseOption) (*ParseConfig, error) {
	c := &ParseConfig{}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeConfig holds the tunables header.Encode accepts.
type EncodeConfig struct {
	// RowLength sets the wrap threshold for multi-dimensional array
	// metadata: leading dimensions are multiplied together until their
	// product reaches at least RowLength, and each continuation line
	// holds that many values (so a line may hold more than RowLength).
	// 0 means use the package default of 16.
	RowLength int
}

// EncodeOption configures an EncodeConfig.
type EncodeOption = options.Option[*EncodeConfig]

// WithRowLength overrides the wrap threshold for array metadata (see
// EncodeConfig.RowLength).
func WithRowLength(n int) EncodeOption {
	return options.NoError(func(c *EncodeConfig) { c.RowLength = n })
}

func newEncodeConfig(opts []EncodeOption) (*EncodeConfig, error) {
	c := &EncodeConfig{RowLength: 16}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}
	if c.RowLength <= 0 {
		c.RowLength = 16
	}
	return c, nil
}
