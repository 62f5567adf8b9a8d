package raster_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sss-pax/pax/ptype"
	"github.com/sss-pax/pax/raster"
)

func TestValueXYFloat32(t *testing.T) {
	typ, ok := ptype.FromName("PAX_FLOAT")
	assert.True(t, ok)

	data := make([]byte, 4*2*2)
	values := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, xy := range values {
		bits := math.Float32bits(float32(i) + 0.5)
		binary.LittleEndian.PutUint32(data[i*4:], bits)
		_ = xy
	}

	r := raster.New(typ, []uint32{2, 2}, data)

	v, ok := raster.ValueXY[float32](r, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), v)

	v, ok = raster.ValueXY[float32](r, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, float32(1.5), v)

	v, ok = raster.ValueXY[float32](r, 0, 1)
	assert.True(t, ok)
	assert.Equal(t, float32(2.5), v)
}

func TestValueOutOfRange(t *testing.T) {
	typ, _ := ptype.FromName("PAX_UINT")
	r := raster.New(typ, []uint32{2, 2}, make([]byte, 16))

	_, ok := raster.ValueXY[uint32](r, 5, 5)
	assert.False(t, ok)
}

func TestValueWrongWidth(t *testing.T) {
	typ, _ := ptype.FromName("PAX_FLOAT")
	r := raster.New(typ, []uint32{2, 1}, make([]byte, 8))

	_, ok := raster.ValueXY[float64](r, 0, 0)
	assert.False(t, ok)
}

func TestValueRCIsTransposeOfXY(t *testing.T) {
	typ, _ := ptype.FromName("PAX_USHORT")
	data := make([]byte, 2*3*2)
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(i*10))
	}
	r := raster.New(typ, []uint32{3, 2}, data) // dims: x has 3, y has 2

	xy, ok := raster.ValueXY[uint16](r, 2, 1)
	assert.True(t, ok)
	rc, ok := raster.ValueRC[uint16](r, 1, 2)
	assert.True(t, ok)
	assert.Equal(t, xy, rc)
}
