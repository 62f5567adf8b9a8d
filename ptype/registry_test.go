package ptype_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sss-pax/pax/ptype"
)

func TestRegistryBijective(t *testing.T) {
	for _, typ := range ptype.All() {
		byCode, ok := ptype.FromCode(typ.Code())
		require.True(t, ok, "code %d should resolve", typ.Code())
		assert.Equal(t, typ.Name(), byCode.Name())

		byName, ok := ptype.FromName(typ.Name())
		require.True(t, ok, "name %q should resolve", typ.Name())
		assert.Equal(t, typ.Code(), byName.Code())

		// case-insensitivity
		lower, ok := ptype.FromName(strings.ToLower(typ.Name()))
		require.True(t, ok)
		assert.Equal(t, typ.Code(), lower.Code())
	}
}

func TestFromCodeUnknown(t *testing.T) {
	_, ok := ptype.FromCode(-999)
	assert.False(t, ok)
}

func TestMetaKindFromTag(t *testing.T) {
	cases := []struct {
		tag  string
		kind ptype.MetaKind
	}{
		{"float", ptype.KindFloat},
		{"DOUBLE", ptype.KindDouble},
		{"Int32", ptype.KindInt32},
		{"uint8", ptype.KindUint8},
		{"string", ptype.KindString},
	}
	for _, c := range cases {
		k, ok := ptype.KindFromTag(c.tag)
		require.True(t, ok, c.tag)
		assert.Equal(t, c.kind, k)
	}

	_, ok := ptype.KindFromTag("nonsense")
	assert.False(t, ok)
}

func TestMetaKindByteSize(t *testing.T) {
	assert.Equal(t, 4, ptype.KindFloat.ByteSize())
	assert.Equal(t, 8, ptype.KindDouble.ByteSize())
	assert.Equal(t, 1, ptype.KindUint8.ByteSize())
	assert.Equal(t, 0, ptype.KindString.ByteSize())
}
