package arena

import (
	"errors"
	"testing"
)

func TestList_InsertGetRemove(t *testing.T) {
	var l List[string]
	a := l.Insert("a")
	b := l.Insert("b")

	if got, err := l.Get(a); err != nil || got != "a" {
		t.Fatalf("Get(a) = %q, %v", got, err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected len 2, got %d", l.Len())
	}

	v, err := l.Remove(a)
	if err != nil || v != "a" {
		t.Fatalf("Remove(a) = %q, %v", v, err)
	}
	if _, err := l.Get(a); !errors.Is(err, ErrVacant) {
		t.Fatalf("expected ErrVacant after remove, got %v", err)
	}
	if _, err := l.Remove(a); !errors.Is(err, ErrVacant) {
		t.Fatalf("expected ErrVacant on double remove, got %v", err)
	}
	if got, _ := l.Get(b); got != "b" {
		t.Fatalf("b disturbed by removing a: %q", got)
	}
}

func TestList_ReusesVacatedSlotsWithNewGeneration(t *testing.T) {
	var l List[int]
	first := l.Insert(1)
	l.Insert(2)
	l.Remove(first)

	reused := l.Insert(3)
	if reused.Index != first.Index {
		t.Fatalf("expected slot %d to be reused, got %d", first.Index, reused.Index)
	}
	if reused.Generation == first.Generation {
		t.Fatalf("expected generation to change on reuse")
	}
	if l.Contains(first) {
		t.Fatalf("stale id must not resolve to the new occupant")
	}
	if l.Cap() != 2 {
		t.Fatalf("expected no growth, cap=%d", l.Cap())
	}
}

func TestList_FreeListOrder(t *testing.T) {
	var l List[int]
	ids := []ID{l.Insert(0), l.Insert(1), l.Insert(2)}
	l.Remove(ids[0])
	l.Remove(ids[2])

	// Most recently vacated first.
	if id := l.Insert(9); id.Index != 2 {
		t.Fatalf("expected slot 2, got %d", id.Index)
	}
	if id := l.Insert(9); id.Index != 0 {
		t.Fatalf("expected slot 0, got %d", id.Index)
	}
	if id := l.Insert(9); id.Index != 3 {
		t.Fatalf("expected new slot 3, got %d", id.Index)
	}
}

func TestList_OutOfRangeAndSet(t *testing.T) {
	var l List[int]
	if _, err := l.Get(ID{Index: 4}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	id := l.Insert(1)
	if err := l.Set(id, 5); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := l.Get(id); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}

	var seen []int
	l.Each(func(_ ID, v int) { seen = append(seen, v) })
	if len(seen) != 1 || seen[0] != 5 {
		t.Fatalf("unexpected Each result %v", seen)
	}
}

func TestIDPackRoundTrip(t *testing.T) {
	id := ID{Index: 7, Generation: 3}
	if got := Unpack(id.Pack()); got != id {
		t.Fatalf("round trip %v -> %v", id, got)
	}
}
