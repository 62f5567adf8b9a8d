// Package scan implements the byte-level lexical primitives the header
// parser is built on: a bounds-checked cursor over a header's bytes
// tracking a single advancing offset, covering the full set of PAX
// header tokens (whitespace, delimiters, case-insensitive tags, numeric
// literals, and terminated text runs).
package scan

import (
	"strconv"

	"github.com/sss-pax/pax/paxerr"
)

// whitespace characters legal inside a pax header, per the original
// format's PAX_WS constant.
const whitespace = " \t\r"

// Cursor walks Buf one byte at a time from Pos, never slicing past
// len(Buf). ReadLine and ConsumeLineEnd return paxerr.ErrIncompleteHeader
// when the buffer ends before the line's LF; ReadInt and ReadFloat report
// an empty or unparsable token as paxerr.ErrMalformedMetadata.
type Cursor struct {
	Buf []byte
	Pos int
}

// New returns a Cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{Buf: buf}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.Buf) - c.Pos
}

// Done reports whether the cursor has consumed the entire buffer.
func (c *Cursor) Done() bool {
	return c.Pos >= len(c.Buf)
}

// Peek returns the byte at the cursor without advancing, and false if
// the cursor is at the end of the buffer.
func (c *Cursor) Peek() (byte, bool) {
	if c.Done() {
		return 0, false
	}
	return c.Buf[c.Pos], true
}

// Advance moves the cursor forward n bytes, clamping at the end of the
// buffer.
func (c *Cursor) Advance(n int) {
	c.Pos += n
	if c.Pos > len(c.Buf) {
		c.Pos = len(c.Buf)
	}
}

func isWhitespace(b byte) bool {
	for i := 0; i < len(whitespace); i++ {
		if whitespace[i] == b {
			return true
		}
	}
	return false
}

// SkipWhitespace advances past any run of space, tab, or CR characters.
func (c *Cursor) SkipWhitespace() {
	for !c.Done() && isWhitespace(c.Buf[c.Pos]) {
		c.Pos++
	}
}

// SkipAll advances past any run of whitespace, including line feeds,
// used while reading the continuation lines of a multi-row array
// metadata value where an embedded '\n' is pure formatting.
func (c *Cursor) SkipAll() {
	for !c.Done() {
		b := c.Buf[c.Pos]
		if isWhitespace(b) || b == '\n' {
			c.Pos++
			continue
		}
		break
	}
}

// ConsumeLineEnd skips trailing whitespace and consumes the line's
// terminating LF. It returns an error wrapping paxerr.ErrMalformedMetadata
// if a non-whitespace byte precedes the LF.
func (c *Cursor) ConsumeLineEnd() error {
	c.SkipWhitespace()
	b, ok := c.Peek()
	if !ok {
		return paxerr.AtOffset(c.Pos, paxerr.ErrIncompleteHeader)
	}
	if b != '\n' {
		return paxerr.AtOffset(c.Pos, paxerr.ErrMalformedMetadata)
	}
	c.Pos++
	return nil
}

// SkipDelimiter advances past a single ':' or '=' delimiter and any
// surrounding whitespace. It is a no-op if no delimiter is present.
func (c *Cursor) SkipDelimiter() {
	c.SkipWhitespace()
	if b, ok := c.Peek(); ok && (b == ':' || b == '=') {
		c.Pos++
	}
	c.SkipWhitespace()
}

// MatchCI reports whether the bytes starting at the cursor match s
// case-insensitively, without advancing the cursor.
func (c *Cursor) MatchCI(s string) bool {
	if c.Remaining() < len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		a, b := c.Buf[c.Pos+i], s[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// ConsumeCI advances past s if MatchCI(s) succeeds, returning whether it
// matched.
func (c *Cursor) ConsumeCI(s string) bool {
	if !c.MatchCI(s) {
		return false
	}
	c.Advance(len(s))
	return true
}

// ReadLine returns the bytes up to (but not including) the next LF, and
// advances past the LF. It returns an error wrapping
// paxerr.ErrIncompleteHeader if no LF is found before the buffer ends.
func (c *Cursor) ReadLine() ([]byte, error) {
	start := c.Pos
	for i := c.Pos; i < len(c.Buf); i++ {
		if c.Buf[i] == '\n' {
			line := c.Buf[start:i]
			c.Pos = i + 1
			return line, nil
		}
	}
	c.Pos = len(c.Buf)
	return nil, paxerr.AtOffset(start, paxerr.ErrIncompleteHeader)
}

// ReadToken returns the run of bytes up to the next whitespace,
// delimiter, or LF, without advancing past the terminator.
func (c *Cursor) ReadToken() []byte {
	start := c.Pos
	for !c.Done() {
		b := c.Buf[c.Pos]
		if isWhitespace(b) || b == ':' || b == '=' || b == '\n' {
			break
		}
		c.Pos++
	}
	return c.Buf[start:c.Pos]
}

// ReadInt reads an integer token and advances past it. The token is
// parsed in base 0, so a "0x" prefix reads as hexadecimal and "0"
// alone as decimal zero, matching the header format's numeric literal
// grammar.
func (c *Cursor) ReadInt() (int64, error) {
	c.SkipWhitespace()
	start := c.Pos
	tok := c.ReadToken()
	if len(tok) == 0 {
		return 0, paxerr.AtOffset(start, paxerr.ErrMalformedMetadata)
	}
	v, err := strconv.ParseInt(string(tok), 0, 64)
	if err != nil {
		return 0, paxerr.AtOffset(start, paxerr.ErrMalformedMetadata)
	}
	return v, nil
}

// ReadFloat reads a floating-point token (decimal or scientific
// notation) and advances past it.
func (c *Cursor) ReadFloat() (float64, error) {
	c.SkipWhitespace()
	start := c.Pos
	tok := c.ReadToken()
	if len(tok) == 0 {
		return 0, paxerr.AtOffset(start, paxerr.ErrMalformedMetadata)
	}
	v, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return 0, paxerr.AtOffset(start, paxerr.ErrMalformedMetadata)
	}
	return v, nil
}

// ordinalSuffixes maps dimension ordinal 1..20 to the suffix the header
// format uses for it ("ST"/"ND"/"RD"/"TH"), matching the original
// format's explicit ordinal tag set rather than the buggy "any digit
// plus any two letters" pattern its own author flagged as a known
// defect.
var ordinalSuffixes = [...]string{
	"", "ST", "ND", "RD", "TH", "TH", "TH", "TH", "TH", "TH",
	"TH", "TH", "TH", "TH", "TH", "TH", "TH", "TH", "TH", "TH", "TH",
}

// OrdinalSuffix returns the two-letter ordinal suffix for dimension
// index n (1-based), or "" if n is outside the 1-20 range the header
// format supports via word-style ordinal tags.
func OrdinalSuffix(n int) string {
	if n < 1 || n >= len(ordinalSuffixes) {
		return ""
	}
	return ordinalSuffixes[n]
}

var ordinalWords = [...]string{
	"", "FIRST", "SECOND", "THIRD", "FOURTH", "FIFTH", "SIXTH", "SEVENTH",
	"EIGHTH", "NINTH", "TENTH", "ELEVENTH", "TWELFTH", "THIRTEENTH",
	"FOURTEENTH", "FIFTEENTH", "SIXTEENTH", "SEVENTEENTH", "EIGHTEENTH",
	"NINETEENTH", "TWENTIETH",
}

// OrdinalWord returns the word form of dimension ordinal n (1-based),
// e.g. "THIRD" for n=3, or "" outside the 1-20 range.
func OrdinalWord(n int) string {
	if n < 1 || n >= len(ordinalWords) {
		return ""
	}
	return ordinalWords[n]
}
