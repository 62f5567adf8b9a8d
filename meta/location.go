// Package meta implements the metadata value model and the per-stream
// store that tracks where each value was read from (or should be
// written to) in a pax header.
package meta

// Location identifies one of the five fixed points in a pax header
// where metadata and comment lines may appear, mirroring the original
// format's metaLoc enum.
type Location int

const (
	AfterTag Location = iota
	AfterBPV
	AfterVPE
	AfterFirstDim
	AfterSecondDim

	locationCount = int(AfterSecondDim) + 1
)

func (l Location) String() string {
	switch l {
	case AfterTag:
		return "after_tag"
	case AfterBPV:
		return "after_bpv"
	case AfterVPE:
		return "after_vpe"
	case AfterFirstDim:
		return "after_first_dim"
	case AfterSecondDim:
		return "after_second_dim"
	default:
		return "unknown"
	}
}
