package ptype

import "strings"

// MetaKind identifies the type of a single metadata value stored in a
// pax header. Comment is a special kind reserved for "#" lines, which
// carry text but no name and no declared type tag.
type MetaKind int

const (
	KindComment MetaKind = iota - 2
	KindInvalid
	KindString
	KindFloat
	KindDouble
	KindInt64
	KindUint64
	KindInt32
	KindUint32
	KindInt16
	KindUint16
	KindInt8
	KindUint8
)

type metaKindInfo struct {
	tag      string
	byteSize int
}

var metaKindTable = map[MetaKind]metaKindInfo{
	KindComment: {tag: "", byteSize: 0},
	KindString:  {tag: "string", byteSize: 0},
	KindFloat:   {tag: "float", byteSize: 4},
	KindDouble:  {tag: "double", byteSize: 8},
	KindInt64:   {tag: "int64", byteSize: 8},
	KindUint64:  {tag: "uint64", byteSize: 8},
	KindInt32:   {tag: "int32", byteSize: 4},
	KindUint32:  {tag: "uint32", byteSize: 4},
	KindInt16:   {tag: "int16", byteSize: 2},
	KindUint16:  {tag: "uint16", byteSize: 2},
	KindInt8:    {tag: "int8", byteSize: 1},
	KindUint8:   {tag: "uint8", byteSize: 1},
}

var tagToKind = func() map[string]MetaKind {
	m := make(map[string]MetaKind, len(metaKindTable))
	for k, info := range metaKindTable {
		if k == KindComment {
			continue
		}
		m[strings.ToUpper(info.tag)] = k
	}
	return m
}()

// Tag returns the lowercase bracketed-tag name used to write this kind,
// e.g. "int32" for KindInt32. KindComment returns "".
func (k MetaKind) Tag() string {
	return metaKindTable[k].tag
}

// ByteSize returns the width in bytes of one scalar value of this kind.
// String and Comment kinds return 0; callers must use len(text) instead.
func (k MetaKind) ByteSize() int {
	return metaKindTable[k].byteSize
}

// IsNumeric reports whether k is one of the fixed-width numeric kinds
// that can form a multi-dimensional array.
func (k MetaKind) IsNumeric() bool {
	return k >= KindFloat && k <= KindUint8
}

func (k MetaKind) String() string {
	if k == KindComment {
		return "comment"
	}
	if info, ok := metaKindTable[k]; ok {
		return info.tag
	}
	return "invalid"
}

// KindFromTag resolves the bracketed type tag from a "##" metadata line
// (e.g. "int32" from "## [int32] ...") to a MetaKind, case-insensitively.
func KindFromTag(tag string) (MetaKind, bool) {
	k, ok := tagToKind[strings.ToUpper(tag)]
	return k, ok
}
