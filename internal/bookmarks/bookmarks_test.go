package bookmarks

import (
	"slices"
	"testing"
)

func TestToggle(t *testing.T) {
	s := New()
	if s.IsMarked(5) {
		t.Fatal("new set should have no bookmarks")
	}
	if !s.Toggle(5) {
		t.Error("first Toggle(5) = false, want true")
	}
	if !s.IsMarked(5) {
		t.Error("IsMarked(5) = false after toggle")
	}
	if s.Toggle(5) {
		t.Error("second Toggle(5) = true, want false")
	}
	if s.IsMarked(5) {
		t.Error("IsMarked(5) = true after toggling twice")
	}
}

func TestMarked(t *testing.T) {
	s := New()
	for _, id := range []int{9, 2, 7} {
		s.Toggle(id)
	}
	s.Toggle(7)

	got := s.Marked()
	want := []int{2, 9}
	if !slices.Equal(got, want) {
		t.Errorf("Marked() = %v, want %v", got, want)
	}
}
