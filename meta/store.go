package meta

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sss-pax/pax/internal/pool"
	"github.com/sss-pax/pax/paxerr"
)

// Store holds every metadata and comment entry belonging to one pax
// stream, keyed by name, while separately tracking the header location
// and insertion order each entry came from (or should be written to).
//
// This is deliberately a plain map plus a small counter array rather
// than a sorted structure: IterSorted does the one sort it needs at
// iteration time instead of paying for a hidden insertion-sort on
// every write.
type Store struct {
	values  map[string]*Value
	counts  [locationCount]int
	current Location
}

// NewStore returns an empty Store positioned at AfterTag.
func NewStore() *Store {
	return &Store{values: make(map[string]*Value)}
}

// SetLocation moves the store's current write location forward. Callers
// building a header call this once per structural tag they emit
// (BYTES_PER_VALUE, VALUES_PER_ELEMENT, each dimension tag) between
// groups of Insert calls.
func (s *Store) SetLocation(loc Location) {
	s.current = loc
}

// Insert adds v to the store at the store's current location, assigning
// it the next insertion index for that location. If a non-comment
// value is already stored under v's name, its payload is overwritten in
// place instead: v keeps the existing entry's location and index rather
// than claiming a new one, so re-setting a name never shifts its
// position in IterSorted's write-back order. Comment values are always
// inserted fresh, keyed by a synthetic name derived from their location
// and index, since comments have no user-visible name to overwrite by.
func (s *Store) Insert(v *Value) {
	if !v.IsComment() {
		if existing, ok := s.values[v.name]; ok {
			v.SetLocation(existing.location, existing.index)
			s.values[v.name] = v
			return
		}
	}

	idx := s.counts[s.current]
	s.counts[s.current]++
	v.SetLocation(s.current, idx)

	key := v.name
	if v.IsComment() {
		key = commentKey(s.current, idx)
	}
	s.values[key] = v
}

// InsertAt adds v at an explicit location and index instead of the
// store's current location and next index. The header parser does not
// use it; it calls Insert.
func (s *Store) InsertAt(loc Location, index int, v *Value) {
	v.SetLocation(loc, index)
	if index+1 > s.counts[loc] {
		s.counts[loc] = index + 1
	}
	key := v.name
	if v.IsComment() {
		key = commentKey(loc, index)
	}
	s.values[key] = v
}

func commentKey(loc Location, index int) string {
	return fmt.Sprintf(";%d;%d", loc, index)
}

// Get looks up a named (non-comment) value. Lookup is case-sensitive;
// callers that read a name off the wire must normalize case themselves
// if they want case-insensitive semantics for a particular field.
func (s *Store) Get(name string) (*Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the total number of entries (metadata and comments).
func (s *Store) Len() int {
	return len(s.values)
}

// GetFloat looks up name and reads it as a 32-bit float. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindFloat.
func (s *Store) GetFloat(name string, indices ...uint32) (float32, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetFloat(indices...)
}

// GetDouble looks up name and reads it as a 64-bit float. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindDouble.
func (s *Store) GetDouble(name string, indices ...uint32) (float64, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetDouble(indices...)
}

// GetInt8 looks up name and reads it as an int8. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindInt8.
func (s *Store) GetInt8(name string, indices ...uint32) (int8, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetInt8(indices...)
}

// GetInt16 looks up name and reads it as an int16. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindInt16.
func (s *Store) GetInt16(name string, indices ...uint32) (int16, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetInt16(indices...)
}

// GetInt32 looks up name and reads it as an int32. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindInt32.
func (s *Store) GetInt32(name string, indices ...uint32) (int32, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetInt32(indices...)
}

// GetInt64 looks up name and reads it as an int64. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindInt64.
func (s *Store) GetInt64(name string, indices ...uint32) (int64, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetInt64(indices...)
}

// GetUint8 looks up name and reads it as a uint8. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindUint8.
func (s *Store) GetUint8(name string, indices ...uint32) (uint8, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetUint8(indices...)
}

// GetUint16 looks up name and reads it as a uint16. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindUint16.
func (s *Store) GetUint16(name string, indices ...uint32) (uint16, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetUint16(indices...)
}

// GetUint32 looks up name and reads it as a uint32. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindUint32.
func (s *Store) GetUint32(name string, indices ...uint32) (uint32, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetUint32(indices...)
}

// GetUint64 looks up name and reads it as a uint64. It returns
// paxerr.ErrUnknownMetadata if no entry is stored under name, and
// paxerr.ErrTypeMismatch if the entry's kind is not ptype.KindUint64.
func (s *Store) GetUint64(name string, indices ...uint32) (uint64, error) {
	v, ok := s.Get(name)
	if !ok {
		return 0, paxerr.ErrUnknownMetadata
	}
	return v.GetUint64(indices...)
}

// IterSorted iterates every entry in the order it would appear when
// written back out: by Location, then by insertion Index within that
// location. Round-trip stability (decode, then encode, then decode
// again) depends on this ordering.
func (s *Store) IterSorted() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		keys, cleanup := pool.GetStringSlice(len(s.values))
		defer cleanup()
		i := 0
		for k := range s.values {
			keys[i] = k
			i++
		}
		slices.SortFunc(keys, func(a, b string) int {
			va, vb := s.values[a], s.values[b]
			if va.location != vb.location {
				return int(va.location) - int(vb.location)
			}
			return va.index - vb.index
		})
		for _, k := range keys {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}

// AtLocation iterates only the entries stored at loc, in insertion
// order, used by the header writer to emit one location's block at a
// time.
func (s *Store) AtLocation(loc Location) iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		items := make([]*Value, s.counts[loc])
		for _, v := range s.values {
			if v.location == loc && v.index < len(items) {
				items[v.index] = v
			}
		}
		for _, v := range items {
			if v == nil {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
