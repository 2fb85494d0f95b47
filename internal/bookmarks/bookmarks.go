// Package bookmarks tracks which questions the test-taker flagged for review.
package bookmarks

import "slices"

// Set is a per-question bookmark flag, false by default.
type Set struct {
	marked map[int]bool
}

// New returns an empty Set.
func New() *Set {
	return &Set{marked: make(map[int]bool)}
}

// Toggle flips the flag of qid and returns the new value.
func (s *Set) Toggle(qid int) bool {
	if s.marked[qid] {
		delete(s.marked, qid)
		return false
	}
	s.marked[qid] = true
	return true
}

// IsMarked reports the flag of qid.
func (s *Set) IsMarked(qid int) bool {
	return s.marked[qid]
}

// Marked returns the bookmarked question ids in ascending order.
func (s *Set) Marked() []int {
	ids := make([]int, 0, len(s.marked))
	for id := range s.marked {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
