package ids

import "testing"

type testID uint32

func TestIDMapInsertGet(t *testing.T) {
	m := NewIDMap[testID, string](4)

	a := m.Insert("alpha")
	b := m.Insert("beta")
	if a == b {
		t.Fatalf("Expected distinct ids, got %d twice", a)
	}

	if v, ok := m.Get(b); !ok || v != "beta" {
		t.Errorf("Expected beta, got %q (ok=%v)", v, ok)
	}
	if _, ok := m.Get(testID(99)); ok {
		t.Error("Expected lookup of unknown id to fail")
	}
	if m.Len() != 2 {
		t.Errorf("Expected 2 values, got %d", m.Len())
	}
}

func TestIDMapRemoveDoesNotReuse(t *testing.T) {
	m := NewIDMap[testID, int](0)
	first := m.Insert(1)
	if !m.Remove(first) {
		t.Fatal("Expected remove to succeed")
	}
	if m.Remove(first) {
		t.Error("Expected second remove to fail")
	}

	second := m.Insert(2)
	if second == first {
		t.Errorf("Expected a fresh id after removal, got %d", second)
	}
	if _, ok := m.Get(first); ok {
		t.Error("Expected removed id to stay dead")
	}
}

func TestIDMapGetPtrMutates(t *testing.T) {
	m := NewIDMap[testID, int](0)
	id := m.Insert(10)

	p, ok := m.GetPtr(id)
	if !ok {
		t.Fatal("Expected pointer for live id")
	}
	*p = 42

	if v, _ := m.Get(id); v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
}

func TestIDMapAllSkipsRemoved(t *testing.T) {
	m := NewIDMap[testID, int](0)
	m.Insert(1)
	dead := m.Insert(2)
	m.Insert(3)
	m.Remove(dead)

	sum := 0
	for id, v := range m.All() {
		if id == dead {
			t.Errorf("Iterated removed id %d", id)
		}
		sum += v
	}
	if sum != 4 {
		t.Errorf("Expected sum 4, got %d", sum)
	}
}
