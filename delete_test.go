package rbindex

import "testing"

func TestDeleteMissingKeyReturnsFalse(t *testing.T) {
	tr := New[uint32, int]()
	tr.Insert(FromInt(1), 1)
	if tr.Delete(FromInt(999)) {
		t.Fatalf("Delete of absent key reported true")
	}
	if tr.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 (delete of absent key must be a no-op)", tr.Size())
	}
}

func TestDeleteAllLeavesEmptyTree(t *testing.T) {
	tr := New[uint32, int]()
	keys := []int{15, 6, 18, 3, 7, 17, 20, 2, 4, 13, 9}
	for _, k := range keys {
		tr.Insert(FromInt(k), k)
	}
	for _, k := range keys {
		if !tr.Delete(FromInt(k)) {
			t.Fatalf("Delete(%d) reported not found", k)
		}
		checkInvariants(t, tr)
	}
	if !tr.IsEmpty() {
		t.Fatalf("tree not empty after deleting every key")
	}
	if _, ok := tr.lookupIndex(FromInt(keys[0])); ok {
		t.Fatalf("deleted key still resolves to a slot")
	}
}

func TestDeleteThenReinsertReusesFreedSlots(t *testing.T) {
	tr := New[uint32, int](WithCapacity[uint32, int](8))
	for i := 0; i < 8; i++ {
		tr.Insert(FromInt(i), i)
	}
	capBefore := tr.Capacity()
	for i := 0; i < 6; i++ {
		tr.Delete(FromInt(i))
	}
	checkInvariants(t, tr)
	for i := 100; i < 106; i++ {
		if err := tr.Insert(FromInt(i), i); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if tr.Capacity() != capBefore {
		t.Fatalf("Capacity() = %d, want unchanged %d (compaction should have freed slots for reuse)", tr.Capacity(), capBefore)
	}
	checkInvariants(t, tr)
}

func TestDeleteRandomOrderMaintainsInvariants(t *testing.T) {
	tr := New[uint32, int]()
	n := 500
	for i := 0; i < n; i++ {
		tr.Insert(FromInt(i), i)
	}
	// deterministic pseudo-random deletion order (no math/rand dependency on
	// test outcome): visit keys in the order i*2654435761 mod n, a
	// permutation of 0..n-1 because the multiplier is coprime to n, and
	// delete every visited key that is even.
	for i := 0; i < n; i++ {
		k := int(uint64(i) * 2654435761 % uint64(n))
		if k%2 == 0 {
			tr.Delete(FromInt(k))
		}
	}
	checkInvariants(t, tr)
}

func TestCompactMovesLastSlotIntoHole(t *testing.T) {
	tr := New[uint32, int]()
	for i := 0; i < 5; i++ {
		tr.Insert(FromInt(i), i*10)
	}
	tr.Delete(FromInt(2))
	if tr.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", tr.Size())
	}
	for i := 0; i < 5; i++ {
		if i == 2 {
			continue
		}
		v, ok := tr.Search(FromInt(i))
		if !ok || v != i*10 {
			t.Fatalf("Search(%d) = (%d, %v), want (%d, true)", i, v, ok, i*10)
		}
	}
}
