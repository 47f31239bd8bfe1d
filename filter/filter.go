// Package filter provides ID-set based search filtering backed by Roaring
// Bitmaps.
//
// An IDSet holds the item IDs a search is allowed to return. Sets compose
// with And/Or, so callers can intersect several criteria (e.g. "category A"
// and "visible") before running a single spatial query.
package filter

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// IDSet is a set of item IDs backed by a Roaring Bitmap.
// It is not safe for concurrent mutation.
type IDSet struct {
	rb *roaring.Bitmap
}

// NewIDSet creates an IDSet holding the given IDs.
func NewIDSet(ids ...uint32) *IDSet {
	s := &IDSet{rb: roaring.New()}
	s.rb.AddMany(ids)
	return s
}

// Add adds an ID to the set.
func (s *IDSet) Add(id uint32) {
	s.rb.Add(id)
}

// Remove removes an ID from the set.
func (s *IDSet) Remove(id uint32) {
	s.rb.Remove(id)
}

// Contains checks if an ID is in the set.
func (s *IDSet) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// IsEmpty returns true if the set is empty.
func (s *IDSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of IDs in the set.
func (s *IDSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the set.
func (s *IDSet) Clone() *IDSet {
	return &IDSet{rb: s.rb.Clone()}
}

// And computes the intersection with another set in place.
func (s *IDSet) And(other *IDSet) {
	s.rb.And(other.rb)
}

// Or computes the union with another set in place.
func (s *IDSet) Or(other *IDSet) {
	s.rb.Or(other.rb)
}

// Iterator returns an iterator over the IDs in ascending order.
func (s *IDSet) Iterator() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Predicate returns a filter function reporting set membership, suitable
// for use as a search filter.
func (s *IDSet) Predicate() func(id uint32) bool {
	return s.Contains
}
