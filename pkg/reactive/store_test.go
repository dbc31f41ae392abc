package reactive

import "testing"

func TestStoreKeyGranularity(t *testing.T) {
	s := NewStoreOf(map[string]any{"a": 1, "b": 2})
	aRuns, bRuns := 0, 0

	NewEffect(func() Cleanup {
		aRuns++
		s.Get("a")
		return nil
	})
	NewEffect(func() Cleanup {
		bRuns++
		s.Get("b")
		return nil
	})

	s.Set("a", 10)
	if aRuns != 2 || bRuns != 1 {
		t.Errorf("aRuns=%d bRuns=%d, want 2/1 (per-key isolation)", aRuns, bRuns)
	}
}

func TestStoreIterationSubscribesToStructure(t *testing.T) {
	s := NewStore()
	s.Set("a", 1)
	keysRuns := 0

	NewEffect(func() Cleanup {
		keysRuns++
		s.Keys()
		return nil
	})

	// In-place update: no structural change, no re-run.
	s.Set("a", 2)
	if keysRuns != 1 {
		t.Errorf("keysRuns = %d after value update, want 1", keysRuns)
	}

	// Add and delete are structural.
	s.Set("b", 3)
	if keysRuns != 2 {
		t.Errorf("keysRuns = %d after add, want 2", keysRuns)
	}
	s.Delete("a")
	if keysRuns != 3 {
		t.Errorf("keysRuns = %d after delete, want 3", keysRuns)
	}
}

func TestStoreHasAndLen(t *testing.T) {
	s := NewStore()
	if s.Has("x") {
		t.Error("Has on empty store")
	}
	s.Set("x", 1)
	if !s.Has("x") || s.Len() != 1 {
		t.Errorf("Has=%v Len=%d", s.Has("x"), s.Len())
	}
	s.Delete("x")
	if s.Has("x") || s.Len() != 0 {
		t.Error("delete did not remove key")
	}
}

func TestListIndexGranularity(t *testing.T) {
	l := NewList("a", "b", "c")
	runs := 0
	var seen any

	NewEffect(func() Cleanup {
		runs++
		seen = l.At(1)
		return nil
	})

	l.SetAt(0, "a2")
	if runs != 1 {
		t.Errorf("runs = %d, want 1 (write to other index)", runs)
	}
	l.SetAt(1, "b2")
	if runs != 2 || seen != "b2" {
		t.Errorf("runs=%d seen=%v", runs, seen)
	}
}

func TestListLenAndValues(t *testing.T) {
	l := NewList(1, 2)
	lenRuns, valRuns := 0, 0

	NewEffect(func() Cleanup {
		lenRuns++
		l.Len()
		return nil
	})
	NewEffect(func() Cleanup {
		valRuns++
		l.Values()
		return nil
	})

	// Element overwrite: length unchanged, enumeration unchanged.
	l.SetAt(0, 10)
	if lenRuns != 1 {
		t.Errorf("lenRuns = %d after overwrite, want 1", lenRuns)
	}

	l.Append(3)
	if lenRuns != 2 || valRuns < 2 {
		t.Errorf("lenRuns=%d valRuns=%d after append", lenRuns, valRuns)
	}

	l.RemoveAt(0)
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestListOutOfRangeReadSubscribesToGrowth(t *testing.T) {
	l := NewList("a")
	runs := 0
	var seen any

	NewEffect(func() Cleanup {
		runs++
		seen = l.At(3)
		return nil
	})
	if seen != nil {
		t.Fatalf("out-of-range read = %v", seen)
	}

	l.Append("b", "c", "d")
	if runs != 2 {
		t.Fatalf("runs = %d, want 2 (growth must re-trigger)", runs)
	}
	if seen != "d" {
		t.Errorf("seen = %v, want d", seen)
	}
}

func TestListSnapshotDoesNotSubscribe(t *testing.T) {
	l := NewList(1, 2)
	runs := 0
	NewEffect(func() Cleanup {
		runs++
		l.Snapshot()
		return nil
	})

	l.Append(3)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}
