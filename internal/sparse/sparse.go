// Package sparse provides a sparse set of input positions.
//
// The match engine keeps one set per memoized greedy loop and records every
// starting offset at which another iteration of the loop body has already
// failed. Sets are cleared on every match attempt, so Clear must be O(1);
// the sparse/dense layout gives that together with O(1) insert and lookup.
package sparse

import "github.com/coregx/btregex/internal/conv"

// SparseSet is a set of positions in [0, capacity).
// The sparse array maps a value to its index in dense; a value is present
// only when that index is in range and dense points back at the value.
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // inserted values, in insertion order
}

// NewSparseSet creates a set able to hold positions 0..capacity-1.
func NewSparseSet(capacity int) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, min(capacity, 64)),
	}
}

// Capacity returns the exclusive upper bound of storable positions.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Resize makes the set able to hold positions 0..capacity-1 and clears it.
// The backing array is reused when it is already large enough.
func (s *SparseSet) Resize(capacity int) {
	if cap(s.sparse) >= capacity {
		s.sparse = s.sparse[:capacity]
	} else {
		s.sparse = make([]uint32, capacity)
	}
	s.dense = s.dense[:0]
}

// Insert adds pos to the set. It returns false if pos was already present.
// Panics if pos is outside [0, Capacity()).
func (s *SparseSet) Insert(pos int) bool {
	if s.Contains(pos) {
		return false
	}
	v := conv.IntToUint32(pos)
	s.sparse[v] = conv.IntToUint32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// Contains reports whether pos is in the set.
func (s *SparseSet) Contains(pos int) bool {
	if pos < 0 || pos >= len(s.sparse) {
		return false
	}
	idx := s.sparse[pos]
	return int(idx) < len(s.dense) && s.dense[idx] == uint32(pos) //nolint:gosec // pos < len(sparse)
}

// Clear removes all positions in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of positions in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}
