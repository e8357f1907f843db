package sparse

import "testing"

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	if s.Len() != 0 {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSparseSet_OutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(-1) || s.Contains(4) || s.Contains(1000) {
		t.Error("out of range positions must not be reported as present")
	}
}

func TestSparseSet_StaleSparseEntry(t *testing.T) {
	// After Clear the sparse array still holds old indices; they must not
	// make a value look present once another value reuses dense slot 0.
	s := NewSparseSet(10)
	s.Insert(3)
	s.Clear()
	s.Insert(7)
	if s.Contains(3) {
		t.Error("3 should not be present after clear")
	}
	if !s.Contains(7) {
		t.Error("7 should be present")
	}
}

func TestSparseSet_Resize(t *testing.T) {
	s := NewSparseSet(2)
	s.Insert(1)
	s.Resize(50)
	if s.Capacity() != 50 {
		t.Fatalf("Capacity() = %d, want 50", s.Capacity())
	}
	if s.Len() != 0 {
		t.Error("Resize should clear the set")
	}
	if !s.Insert(49) || !s.Contains(49) {
		t.Error("resized set should accept 49")
	}

	s.Resize(10)
	if s.Capacity() != 10 || s.Contains(49) {
		t.Error("shrinking resize should drop positions beyond capacity")
	}
}

func TestSparseSet_InsertPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Insert beyond capacity should panic")
		}
	}()
	NewSparseSet(3).Insert(3)
}
