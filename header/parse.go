package header

import (
	"strings"

	"github.com/sss-pax/pax/meta"
	"github.com/sss-pax/pax/paxerr"
	"github.com/sss-pax/pax/ptype"
	"github.com/sss-pax/pax/scan"
)

// minHeaderLength is the minimum length of a whole pax stream (header
// plus payload); any buffer shorter than this is rejected before any
// parsing is attempted, even if it holds a syntactically complete header.
const minHeaderLength = 128

// Parse reads a pax header starting at buf[0], returning the populated
// Model and the number of bytes consumed (header plus raster payload).
// The caller is responsible for slicing buf[n-m.DataLength:n] as the
// raster payload.
func Parse(buf []byte, opts ...ParseOption) (*Model, int, error) {
	cfg, err := newParseConfig(opts)
	if err != nil {
		return nil, 0, err
	}

	if len(buf) < minHeaderLength {
		return nil, 0, paxerr.ErrFileTooShort
	}

	cur := scan.New(buf)

	code, version, name, err := parseTagLine(cur)
	if err != nil {
		return nil, 0, err
	}

	t, ok := ptype.FromCode(code)
	if !ok {
		return nil, cur.Pos, paxerr.AtOffset(0, paxerr.ErrUnknownType)
	}

	m := &Model{Type: t, Version: version, Name: name, Meta: meta.NewStore()}

	m.Meta.SetLocation(meta.AfterTag)
	if err := parseMetadataBlock(cur, m.Meta, cfg); err != nil {
		return nil, cur.Pos, err
	}

	bpv, err := parseKeyedInt(cur, "BYTES_PER_VALUE", cfg)
	if err != nil {
		return nil, cur.Pos, err
	}

	m.Meta.SetLocation(meta.AfterBPV)
	if err := parseMetadataBlock(cur, m.Meta, cfg); err != nil {
		return nil, cur.Pos, err
	}

	vpe, err := parseKeyedInt(cur, "VALUES_PER_ELEMENT", cfg)
	if err != nil {
		return nil, cur.Pos, err
	}

	m.Meta.SetLocation(meta.AfterVPE)
	if err := parseMetadataBlock(cur, m.Meta, cfg); err != nil {
		return nil, cur.Pos, err
	}

	if int(bpv) != t.BytesPerValue() || int(vpe) != t.ValuesPerElement() {
		return nil, cur.Pos, paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidShape)
	}

	var dims []uint32
	first := true
	for {
		cur.SkipWhitespace()
		if cur.MatchCI("DATA_LENGTH") {
			break
		}

		save := cur.Pos
		n, dimErr := parseDimensionLine(cur)
		if dimErr != nil {
			cur.Pos = save
			if cfg.Strict {
				return nil, cur.Pos, dimErr
			}
			if cur.Done() {
				break
			}
			// an unrecognized non-comment line: skip it and keep
			// looking for a dimension line or DATA_LENGTH.
			if _, lerr := cur.ReadLine(); lerr != nil {
				return nil, cur.Pos, lerr
			}
			continue
		}
		dims = append(dims, uint32(n))

		loc := meta.AfterSecondDim
		if first {
			loc = meta.AfterFirstDim
			first = false
		}
		m.Meta.SetLocation(loc)
		if err := parseMetadataBlock(cur, m.Meta, cfg); err != nil {
			return nil, cur.Pos, err
		}
	}
	m.Dims = dims

	dataLen, err := parseKeyedInt(cur, "DATA_LENGTH", cfg)
	if err != nil {
		return nil, cur.Pos, err
	}
	m.DataLength = int(dataLen)

	if m.ExpectedDataLength() != m.DataLength {
		return nil, cur.Pos, paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidShape)
	}

	total := cur.Pos + m.DataLength
	if total > len(buf) {
		return m, cur.Pos, paxerr.ErrTruncatedPayload
	}

	return m, total, nil
}

// defaultVersion is assigned when the type-tag line omits the optional
// "v<float>" field, per the original format's PAX_VERSION default.
const defaultVersion = "1.00"

func parseTagLine(cur *scan.Cursor) (code int32, version, name string, err error) {
	cur.SkipWhitespace()
	if !cur.ConsumeCI("PAX") {
		return 0, "", "", paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidTag)
	}

	codeTok := cur.ReadToken()
	if len(codeTok) == 0 {
		return 0, "", "", paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidTag)
	}
	var c int64
	for _, b := range codeTok {
		if b < '0' || b > '9' {
			return 0, "", "", paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidTag)
		}
		c = c*10 + int64(b-'0')
	}

	cur.SkipDelimiter()
	version = defaultVersion
	if b, ok := cur.Peek(); ok && (b == 'v' || b == 'V') {
		cur.Advance(1)
		versionTok := cur.ReadToken()
		if len(versionTok) == 0 {
			return 0, "", "", paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidTag)
		}
		version = string(versionTok)
		cur.SkipDelimiter()
	}

	line, lerr := cur.ReadLine()
	if lerr != nil {
		return 0, "", "", lerr
	}

	return int32(c), version, strings.TrimSpace(string(line)), nil
}

// parseKeyedInt reads "keyword : <int>\n" at the cursor. A non-comment
// line that does not start with keyword is skipped (not an error)
// unless cfg.Strict is set: the parser keeps reading lines until it
// either recognizes keyword or runs out of buffer.
func parseKeyedInt(cur *scan.Cursor, keyword string, cfg *ParseConfig) (int64, error) {
	for {
		cur.SkipWhitespace()
		if cur.ConsumeCI(keyword) {
			break
		}
		if cfg.Strict || cur.Done() {
			return 0, paxerr.AtOffset(cur.Pos, paxerr.ErrIncompleteHeader)
		}
		if _, err := cur.ReadLine(); err != nil {
			return 0, err
		}
	}
	cur.SkipDelimiter()
	v, err := cur.ReadInt()
	if err != nil {
		return 0, err
	}
	if err := cur.ConsumeLineEnd(); err != nil {
		return 0, err
	}
	return v, nil
}

func parseDimensionLine(cur *scan.Cursor) (int64, error) {
	cur.SkipWhitespace()
	if !cur.ConsumeCI("ELEMENTS_IN_") {
		return 0, paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidTag)
	}
	ordinal := cur.ReadToken()
	if len(ordinal) == 0 {
		return 0, paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidTag)
	}
	if !strings.HasSuffix(strings.ToUpper(string(ordinal)), "_DIMENSION") {
		return 0, paxerr.AtOffset(cur.Pos, paxerr.ErrInvalidTag)
	}
	cur.SkipDelimiter()
	n, err := cur.ReadInt()
	if err != nil {
		return 0, err
	}
	if err := cur.ConsumeLineEnd(); err != nil {
		return 0, err
	}
	return n, nil
}

// parseMetadataBlock consumes comment ("#") and typed metadata ("##")
// lines at the store's current location until a non-comment line is
// found, leaving the cursor positioned at the start of that line.
func parseMetadataBlock(cur *scan.Cursor, store *meta.Store, cfg *ParseConfig) error {
	for {
		save := cur.Pos
		cur.SkipWhitespace()
		b, ok := cur.Peek()
		if !ok || b != '#' {
			cur.Pos = save
			return nil
		}

		v, err := parseMetaOrComment(cur, cfg)
		if err != nil {
			if cfg.Sink != nil {
				cfg.Sink(cur.Pos, err)
			}
			if cfg.Strict {
				return err
			}
			// best-effort recovery: skip to the next line and continue
			if _, lerr := cur.ReadLine(); lerr != nil {
				return lerr
			}
			continue
		}
		if v != nil {
			store.Insert(v)
		}
	}
}

func parseMetaOrComment(cur *scan.Cursor, cfg *ParseConfig) (*meta.Value, error) {
	if cur.ConsumeCI("##") {
		return parseTypedMeta(cur, cfg)
	}

	// single '#' comment line
	cur.Advance(1)
	stripped := false
	if b, ok := cur.Peek(); ok && b == ' ' {
		cur.Advance(1)
		stripped = true
	}
	line, err := cur.ReadLine()
	if err != nil {
		return nil, err
	}
	text := string(line)
	if cfg.MaxTextLength > 0 && len(text) > cfg.MaxTextLength {
		text = text[:cfg.MaxTextLength]
	}
	return meta.NewComment(text, stripped), nil
}

func parseTypedMeta(cur *scan.Cursor, cfg *ParseConfig) (*meta.Value, error) {
	cur.SkipWhitespace()
	b, ok := cur.Peek()
	if !ok || b != '[' {
		return nil, paxerr.AtOffset(cur.Pos, paxerr.ErrMalformedMetadata)
	}
	cur.Advance(1)

	tagStart := cur.Pos
	for {
		b, ok := cur.Peek()
		if !ok {
			return nil, paxerr.AtOffset(cur.Pos, paxerr.ErrIncompleteHeader)
		}
		if b == ']' {
			break
		}
		cur.Advance(1)
	}
	tag := strings.TrimSpace(string(cur.Buf[tagStart:cur.Pos]))
	cur.Advance(1) // ']'

	kind, ok := ptype.KindFromTag(tag)
	if !ok {
		// leave the rest of the line for parseMetadataBlock's own
		// recovery skip; consuming it here too would drop the line
		// that follows as well.
		return nil, paxerr.AtOffset(tagStart, paxerr.ErrMalformedMetadata)
	}

	cur.SkipWhitespace()
	name := string(cur.ReadToken())
	if name == "" {
		return nil, paxerr.AtOffset(cur.Pos, paxerr.ErrMalformedMetadata)
	}

	cur.SkipWhitespace()
	var dims []uint32
	if b, ok := cur.Peek(); ok && b == '[' {
		cur.Advance(1)
		for {
			cur.SkipWhitespace()
			if b, ok := cur.Peek(); ok && b == ']' {
				cur.Advance(1)
				break
			}
			// each label must be the ordinal word for its position
			// ("first", "second", ...), as the writer emits it
			labelStart := cur.Pos
			label := strings.ToLower(string(cur.ReadToken()))
			if label != ordinalArrayTag(len(dims)) {
				return nil, paxerr.AtOffset(labelStart, paxerr.ErrMalformedMetadata)
			}
			cur.SkipDelimiter()
			n, err := cur.ReadInt()
			if err != nil {
				return nil, err
			}
			dims = append(dims, uint32(n))
			cur.SkipWhitespace()
		}
		cur.SkipWhitespace()
	}

	b, ok = cur.Peek()
	if !ok || b != '=' {
		return nil, paxerr.AtOffset(cur.Pos, paxerr.ErrMalformedMetadata)
	}
	cur.Advance(1)

	stripped := false
	if b, ok := cur.Peek(); ok && b == ' ' {
		cur.Advance(1)
		stripped = true
	}

	maxLen := meta.MaxTextLength
	if cfg.MaxTextLength > 0 {
		maxLen = cfg.MaxTextLength
	}

	if kind == ptype.KindString {
		line, err := cur.ReadLine()
		if err != nil {
			return nil, err
		}
		text := string(line)
		if len(text) > maxLen {
			text = text[:maxLen]
		}
		return meta.NewString(name, text, stripped), nil
	}

	if len(dims) == 0 {
		tokStart := cur.Pos
		tok := string(cur.ReadToken())
		bits, err := numberToBits(tok, kind)
		if err != nil {
			return nil, paxerr.AtOffset(tokStart, paxerr.ErrMalformedMetadata)
		}
		if err := cur.ConsumeLineEnd(); err != nil {
			return nil, err
		}
		v := meta.NewScalar(name, kind)
		_ = v.SetScalar(kind, bits)
		return v, nil
	}

	count := 1
	for _, d := range dims {
		count *= int(d)
	}
	v := meta.NewArray(name, kind, dims)
	buf := v.ArrayBytes()
	for i := 0; i < count; i++ {
		cur.SkipAll()
		tokStart := cur.Pos
		tok := string(cur.ReadToken())
		if tok == "" {
			return nil, paxerr.AtOffset(tokStart, paxerr.ErrMalformedMetadata)
		}
		bits, err := numberToBits(tok, kind)
		if err != nil {
			return nil, paxerr.AtOffset(tokStart, paxerr.ErrMalformedMetadata)
		}
		putArrayElement(buf, i, kind, bits)
	}
	if err := cur.ConsumeLineEnd(); err != nil {
		return nil, err
	}
	return v, nil
}
