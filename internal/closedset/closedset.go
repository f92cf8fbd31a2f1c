// Package closedset tracks the locations a search run has expanded.
package closedset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/gridpath/model"
)

// Set is the closed set of a single search run: append-only membership
// over packed location keys, backed by a Roaring bitmap so per-step
// snapshots can hand out cheap immutable clones.
//
// Set is NOT thread-safe. It is owned by one run and discarded with it.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty closed set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Add marks a location as expanded.
func (s *Set) Add(loc model.Location) {
	s.rb.Add(loc.Key())
}

// Contains reports whether a location has been expanded.
func (s *Set) Contains(loc model.Location) bool {
	return s.rb.Contains(loc.Key())
}

// Cardinality returns the number of expanded locations.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy, used for step snapshots.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// ToBytes serializes the set in the portable roaring format.
func (s *Set) ToBytes() ([]byte, error) {
	return s.rb.ToBytes()
}

// FromBytes deserializes a set written by ToBytes.
func FromBytes(data []byte) (*Set, error) {
	rb := roaring.New()
	if err := rb.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &Set{rb: rb}, nil
}

// Iterator yields the expanded locations in packed-key order.
func (s *Set) Iterator() iter.Seq[model.Location] {
	return func(yield func(model.Location) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(model.LocationFromKey(it.Next())) {
				return
			}
		}
	}
}
