package endian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sss-pax/pax/endian"
	"github.com/sss-pax/pax/ptype"
	"github.com/sss-pax/pax/raster"
)

func TestGetLittleEndianEngineMatchesWireFormat(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
}

func TestRasterUsesLittleEndianEngineByDefault(t *testing.T) {
	typ, ok := ptype.FromName("PAX_INT")
	require.True(t, ok)

	data := []byte{0x04, 0x03, 0x02, 0x01}
	r := raster.New(typ, []uint32{1, 1}, data)
	assert.Equal(t, endian.GetLittleEndianEngine(), r.Engine)

	v, ok := raster.ValueXY[int32](r, 0, 0)
	require.True(t, ok)
	assert.Equal(t, int32(0x01020304), v)
}
