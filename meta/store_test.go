package meta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sss-pax/pax/meta"
	"github.com/sss-pax/pax/paxerr"
	"github.com/sss-pax/pax/ptype"
)

func TestStoreOrderingRoundTrip(t *testing.T) {
	s := meta.NewStore()

	s.SetLocation(meta.AfterTag)
	s.Insert(meta.NewComment("first comment", false))
	s.Insert(meta.NewScalar("a", ptype.KindInt32))

	s.SetLocation(meta.AfterVPE)
	s.Insert(meta.NewString("b", "hello", false))

	s.SetLocation(meta.AfterTag)
	s.Insert(meta.NewComment("second comment", false))

	var order []string
	for name, v := range s.IterSorted() {
		order = append(order, name+":"+v.Location().String())
	}

	// everything at AfterTag (in insertion order) must precede AfterVPE
	require.Len(t, order, 4)
	assert.Equal(t, meta.AfterTag, (func() meta.Location {
		v, _ := s.Get("a")
		return v.Location()
	})())

	last := order[len(order)-1]
	assert.Contains(t, last, "after_vpe")
}

func TestStoreGetMissing(t *testing.T) {
	s := meta.NewStore()
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestGetFloatAfterOverwriteWithDoubleIsTypeMismatch(t *testing.T) {
	s := meta.NewStore()
	s.SetLocation(meta.AfterVPE)

	pi := meta.NewScalar("pi", ptype.KindFloat)
	require.NoError(t, pi.SetScalar(ptype.KindFloat, 0))
	s.Insert(pi)

	v, _ := s.Get("pi")
	f, err := v.GetFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(0), f)

	piDouble := meta.NewScalar("pi", ptype.KindDouble)
	require.NoError(t, piDouble.SetScalar(ptype.KindDouble, 0x400921FB54442D18)) // pi as float64 bits
	s.Insert(piDouble)

	_, err = s.GetFloat("pi")
	assert.ErrorIs(t, err, paxerr.ErrTypeMismatch)

	d, err := s.GetDouble("pi")
	require.NoError(t, err)
	assert.InDelta(t, 3.14159265, d, 1e-6)
}

func TestGetUnknownNameIsUnknownMetadata(t *testing.T) {
	s := meta.NewStore()
	_, err := s.GetInt32("nope")
	assert.ErrorIs(t, err, paxerr.ErrUnknownMetadata)
}

func TestInsertOverwritePreservesLocationAndIndex(t *testing.T) {
	s := meta.NewStore()

	s.SetLocation(meta.AfterBPV)
	s.Insert(meta.NewScalar("x", ptype.KindInt32))
	s.Insert(meta.NewScalar("y", ptype.KindInt32))

	v, ok := s.Get("x")
	require.True(t, ok)
	loc, idx := v.Location(), v.Index()

	s.SetLocation(meta.AfterVPE)
	replacement := meta.NewScalar("x", ptype.KindInt32)
	require.NoError(t, replacement.SetScalar(ptype.KindInt32, 7))
	s.Insert(replacement)

	v, ok = s.Get("x")
	require.True(t, ok)
	assert.Equal(t, loc, v.Location())
	assert.Equal(t, idx, v.Index())
	n, err := v.GetInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(7), n)

	// x's overwrite must replace the entry, not add a second one.
	assert.Equal(t, 2, s.Len())
}

func TestStoreAtLocationOrder(t *testing.T) {
	s := meta.NewStore()
	s.SetLocation(meta.AfterBPV)
	s.Insert(meta.NewScalar("x", ptype.KindFloat))
	s.Insert(meta.NewScalar("y", ptype.KindFloat))

	var names []string
	for v := range s.AtLocation(meta.AfterBPV) {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"x", "y"}, names)
}
