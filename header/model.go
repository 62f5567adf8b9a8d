// Package header implements the pax text header: parsing it into a
// Model and writing a Model back out as header bytes.
package header

import (
	"github.com/sss-pax/pax/meta"
	"github.com/sss-pax/pax/ptype"
)

// Model is the fully parsed (or about-to-be-written) header of one pax
// stream: its declared pixel Type, structural fields, dimensions, and
// metadata store.
type Model struct {
	Type       ptype.Type
	Version    string
	Name       string
	Dims       []uint32
	Meta       *meta.Store
	DataLength int
}

// NewModel returns an empty Model for t with an initialized metadata
// store, ready to have dimensions and metadata added before encoding.
func NewModel(t ptype.Type, name string) *Model {
	return &Model{
		Type:    t,
		Version: defaultVersion,
		Name:    name,
		Meta:    meta.NewStore(),
	}
}

// ExpectedDataLength returns the DATA_LENGTH value this model's
// dimensions and Type imply: product(Dims) * BytesPerValue *
// ValuesPerElement.
func (m *Model) ExpectedDataLength() int {
	n := m.Type.BytesPerValue() * m.Type.ValuesPerElement()
	for _, d := range m.Dims {
		n *= int(d)
	}
	return n
}
