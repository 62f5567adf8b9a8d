package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sss-pax/pax/meta"
	"github.com/sss-pax/pax/paxerr"
	"github.com/sss-pax/pax/ptype"
)

func TestScalarRoundTrip(t *testing.T) {
	v := meta.NewScalar("temperature", ptype.KindDouble)
	require.NoError(t, v.SetScalar(ptype.KindDouble, 0x4010000000000000)) // 4.0 as float64 bits
	assert.Equal(t, uint64(0x4010000000000000), v.ScalarBits())
	assert.False(t, v.IsArray())
}

func TestScalarTypeMismatch(t *testing.T) {
	v := meta.NewScalar("x", ptype.KindInt32)
	err := v.SetScalar(ptype.KindFloat, 0)
	assert.ErrorIs(t, err, paxerr.ErrTypeMismatch)
}

func TestArrayFlatIndexColumnMajor(t *testing.T) {
	v := meta.NewArray("grid", ptype.KindInt32, []uint32{2, 3})
	idx, err := v.FlatIndex([]uint32{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = v.FlatIndex([]uint32{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestArrayFlatIndexOutOfRange(t *testing.T) {
	v := meta.NewArray("grid", ptype.KindInt32, []uint32{2, 2})
	_, err := v.FlatIndex([]uint32{2, 0})
	assert.Error(t, err)
	_, err = v.FlatIndex([]uint32{0, 0, 0})
	assert.Error(t, err)
}

func TestArrayFlatIndexPartialIsAllowed(t *testing.T) {
	v := meta.NewArray("grid", ptype.KindInt32, []uint32{2, 3})
	idx, err := v.FlatIndex([]uint32{1})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = v.FlatIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestTextCap(t *testing.T) {
	long := make([]byte, meta.MaxTextLength+50)
	for i := range long {
		long[i] = 'a'
	}
	v := meta.NewString("s", string(long), false)
	assert.Len(t, v.Text(), meta.MaxTextLength)
}

func TestCloneIsDeep(t *testing.T) {
	v := meta.NewArray("grid", ptype.KindUint8, []uint32{4})
	buf := v.ArrayBytes()
	buf[0] = 7

	c := v.Clone()
	c.ArrayBytes()[0] = 99

	assert.Equal(t, byte(7), v.ArrayBytes()[0])
	assert.Equal(t, byte(99), c.ArrayBytes()[0])
}
