package rbindex

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func encodeIntValue(v int) []byte {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], uint64(v))
	return b[:]
}

func decodeIntValue(b []byte) int {
	return int(binary.NativeEndian.Uint64(b))
}

func TestWriteImageReadImageRoundTrip(t *testing.T) {
	src := New[uint32, int]()
	for i := 0; i < 64; i++ {
		src.Insert(FromInt(i), i*3)
	}
	src.Delete(FromInt(10))
	src.Delete(FromInt(20))

	var buf bytes.Buffer
	if err := src.WriteImage(&buf, encodeIntValue); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	dst, err := ReadImage[uint32, int](&buf, decodeIntValue)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if dst.Size() != src.Size() {
		t.Fatalf("dst.Size() = %d, want %d", dst.Size(), src.Size())
	}
	checkInvariants(t, dst)
	for i := 0; i < 64; i++ {
		if i == 10 || i == 20 {
			continue
		}
		v, ok := dst.Search(FromInt(i))
		if !ok || v != i*3 {
			t.Fatalf("dst.Search(%d) = (%d, %v), want (%d, true)", i, v, ok, i*3)
		}
	}
}

func TestReadImageRejectsWidthMismatch(t *testing.T) {
	src := New[uint32, int]()
	src.Insert(FromInt(1), 1)
	var buf bytes.Buffer
	if err := src.WriteImage(&buf, encodeIntValue); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	_, err := ReadImage[uint64, int](&buf, decodeIntValue)
	if err == nil {
		t.Fatalf("expected ErrWidthMismatch reading a uint32 image as uint64")
	}
}

func TestSetBackingAdoptsImageInPlace(t *testing.T) {
	src := New[uint32, int]()
	for i := 0; i < 10; i++ {
		src.Insert(FromInt(i), i)
	}
	var buf bytes.Buffer
	if err := src.WriteImage(&buf, encodeIntValue); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	live := New[uint32, int]()
	live.Insert(FromInt(999), 999)
	if err := live.SetBacking(&buf, decodeIntValue); err != nil {
		t.Fatalf("SetBacking: %v", err)
	}
	if live.ContainsKey(FromInt(999)) {
		t.Fatalf("SetBacking should fully replace prior contents")
	}
	if live.Size() != 10 {
		t.Fatalf("live.Size() = %d, want 10", live.Size())
	}
	checkInvariants(t, live)
}

func TestSetBackingRejectsWidthMismatchWithoutMutating(t *testing.T) {
	src := New[uint16, int]()
	src.Insert(FromInt(1), 1)
	var buf bytes.Buffer
	if err := src.WriteImage(&buf, encodeIntValue); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}

	live := New[uint64, int]()
	live.Insert(FromInt(5), 5)
	if err := live.SetBacking(&buf, decodeIntValue); err == nil {
		t.Fatalf("expected ErrWidthMismatch adopting a uint16 image into a uint64 tree")
	}
	if !live.ContainsKey(FromInt(5)) {
		t.Fatalf("failed SetBacking must leave the receiving tree untouched")
	}
}
