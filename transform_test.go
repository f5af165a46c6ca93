package rbindex

import "testing"

func TestTransformWideningPreservesContents(t *testing.T) {
	src := New[uint16, string]()
	for _, k := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		src.Insert(FromInt(k), "v")
	}
	dst := New[uint64, string]()
	if err := Transform(src, dst); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if dst.Size() != src.Size() {
		t.Fatalf("dst.Size() = %d, want %d", dst.Size(), src.Size())
	}
	if dst.IndexWidth() != 64 {
		t.Fatalf("dst.IndexWidth() = %d, want 64", dst.IndexWidth())
	}
	checkInvariants(t, dst)
	for _, k := range []int{3, 1, 4, 5, 9, 2, 6} {
		if !dst.ContainsKey(FromInt(k)) {
			t.Fatalf("dst missing key %d after widening transform", k)
		}
	}
}

func TestTransformNarrowingPreservesContents(t *testing.T) {
	src := New[uint64, int]()
	for i := 0; i < 100; i++ {
		src.Insert(FromInt(i), i)
	}
	dst := New[uint16, int]()
	if err := Transform(src, dst); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	checkInvariants(t, dst)
	for i := 0; i < 100; i++ {
		v, ok := dst.Search(FromInt(i))
		if !ok || v != i {
			t.Fatalf("dst.Search(%d) = (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
}

func TestTransformChain16to32to64(t *testing.T) {
	t16 := New[uint16, int]()
	for i := 0; i < 50; i++ {
		t16.Insert(FromInt(i), i*i)
	}
	t32 := New[uint32, int]()
	if err := Transform(t16, t32); err != nil {
		t.Fatalf("16->32 Transform: %v", err)
	}
	t64 := New[uint64, int]()
	if err := Transform(t32, t64); err != nil {
		t.Fatalf("32->64 Transform: %v", err)
	}
	checkInvariants(t, t64)
	for i := 0; i < 50; i++ {
		v, ok := t64.Search(FromInt(i))
		if !ok || v != i*i {
			t.Fatalf("t64.Search(%d) = (%d, %v), want (%d, true)", i, v, ok, i*i)
		}
	}
}

func TestTransformFailsWhenSourceExceedsTargetWidth(t *testing.T) {
	src := New[uint32, int](WithCapacity[uint32, int](10))
	src.hdr.liveCount = uint32(maxCount[uint16]()) + 1
	dst := New[uint16, int]()
	if err := Transform(src, dst); err == nil {
		t.Fatalf("expected ErrCapacityExceeded transforming an oversized source into a narrower width")
	}
}

func TestCloneProducesIndependentTree(t *testing.T) {
	src := New[uint32, int]()
	src.Insert(FromInt(1), 100)
	dst, err := Clone[uint32, int](src)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	dst.Insert(FromInt(2), 200)
	if src.ContainsKey(FromInt(2)) {
		t.Fatalf("mutating the clone affected the source")
	}
	if !dst.ContainsKey(FromInt(1)) {
		t.Fatalf("clone missing key present in source at clone time")
	}
}
