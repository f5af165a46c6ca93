package rbindex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// The backing allocation is itself the wire/file format: a fixed header
// (liveCount, rootIndex, capacity, indexWidth) at native endianness,
// followed by capacity slot records (three native-endianness link fields,
// a 4-byte color, then a length-prefixed key and a length-prefixed,
// caller-encoded value). The core never transcodes V itself — the caller
// supplies encode/decode functions, matching §6's "the core does not
// itself transcode" requirement.

func widthByteLen(bits uint8) int { return int(bits / 8) }

func putIndexField(buf []byte, bits uint8, v uint64) {
	switch bits {
	case 16:
		binary.NativeEndian.PutUint16(buf, uint16(v))
	case 32:
		binary.NativeEndian.PutUint32(buf, uint32(v))
	case 64:
		binary.NativeEndian.PutUint64(buf, v)
	default:
		invariantViolation(fmt.Sprintf("unsupported index width %d", bits))
	}
}

func getIndexField(buf []byte, bits uint8) uint64 {
	switch bits {
	case 16:
		return uint64(binary.NativeEndian.Uint16(buf))
	case 32:
		return uint64(binary.NativeEndian.Uint32(buf))
	case 64:
		return binary.NativeEndian.Uint64(buf)
	default:
		invariantViolation(fmt.Sprintf("unsupported index width %d", bits))
		return 0
	}
}

// WriteImage serializes the full backing array (header plus all capacity
// slots, live or reserved) to w. encodeValue produces the caller's chosen
// byte representation for a value; it is invoked once per slot, including
// reserved slots holding the zero value.
func (t *Tree[W, V]) WriteImage(w io.Writer, encodeValue func(V) []byte) error {
	bits := t.hdr.indexWidth
	n := widthByteLen(bits)

	head := make([]byte, 3*n+1)
	putIndexField(head[0:n], bits, uint64(t.hdr.liveCount))
	putIndexField(head[n:2*n], bits, uint64(t.hdr.rootIndex))
	putIndexField(head[2*n:3*n], bits, uint64(t.hdr.capacity))
	head[3*n] = bits
	if _, err := w.Write(head); err != nil {
		return err
	}

	var lenBuf [4]byte
	for i := W(0); i < t.hdr.capacity; i++ {
		s := &t.slots[i]
		rec := make([]byte, 3*n+4)
		putIndexField(rec[0:n], bits, uint64(s.parent))
		putIndexField(rec[n:2*n], bits, uint64(s.left))
		putIndexField(rec[2*n:3*n], bits, uint64(s.right))
		binary.NativeEndian.PutUint32(rec[3*n:3*n+4], uint32(s.color))
		if _, err := w.Write(rec); err != nil {
			return err
		}

		binary.NativeEndian.PutUint32(lenBuf[:], uint32(len(s.key)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if len(s.key) > 0 {
			if _, err := w.Write(s.key); err != nil {
				return err
			}
		}

		vb := encodeValue(s.value)
		binary.NativeEndian.PutUint32(lenBuf[:], uint32(len(vb)))
		if _, err := w.Write(lenBuf[:]); err != nil {
			return err
		}
		if len(vb) > 0 {
			if _, err := w.Write(vb); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadImage deserializes a byte image written by WriteImage into a fresh
// Tree of width W. It fails with ErrWidthMismatch if the image's recorded
// index width disagrees with W.
func ReadImage[W Index, V any](r io.Reader, decodeValue func([]byte) V) (*Tree[W, V], error) {
	bits := widthBits[W]()
	n := widthByteLen(bits)

	head := make([]byte, 3*n+1)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, err
	}
	liveCount := getIndexField(head[0:n], bits)
	rootIndex := getIndexField(head[n:2*n], bits)
	capacity := getIndexField(head[2*n:3*n], bits)
	imgWidth := head[3*n]
	if imgWidth != bits {
		return nil, fmt.Errorf("%w: image width %d, target width %d", ErrWidthMismatch, imgWidth, bits)
	}
	if liveCount > 0 && rootIndex >= liveCount {
		invariantViolation("image root index is a dangling link")
	}

	slots, err := allocSlots[W, V](W(capacity))
	if err != nil {
		return nil, err
	}
	t := &Tree[W, V]{
		hdr:   header[W]{liveCount: W(liveCount), rootIndex: W(rootIndex), capacity: W(capacity), indexWidth: bits},
		slots: slots,
	}

	var lenBuf [4]byte
	for i := uint64(0); i < capacity; i++ {
		rec := make([]byte, 3*n+4)
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, err
		}
		parent := getIndexField(rec[0:n], bits)
		left := getIndexField(rec[n:2*n], bits)
		right := getIndexField(rec[2*n:3*n], bits)
		col := binary.NativeEndian.Uint32(rec[3*n : 3*n+4])
		if col != uint32(red) && col != uint32(black) {
			invariantViolation("image slot has an unknown color byte")
		}
		if i < liveCount {
			for _, link := range [3]uint64{parent, left, right} {
				if link != uint64(nilIndex[W]()) && link >= liveCount {
					invariantViolation("image slot has a dangling link")
				}
			}
		}

		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, err
		}
		klen := binary.NativeEndian.Uint32(lenBuf[:])
		kb := make([]byte, klen)
		if klen > 0 {
			if _, err := io.ReadFull(r, kb); err != nil {
				return nil, err
			}
		}

		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, err
		}
		vlen := binary.NativeEndian.Uint32(lenBuf[:])
		vb := make([]byte, vlen)
		if vlen > 0 {
			if _, err := io.ReadFull(r, vb); err != nil {
				return nil, err
			}
		}

		s := &t.slots[W(i)]
		s.parent, s.left, s.right = W(parent), W(left), W(right)
		s.color = color(col)
		s.key = Key(kb)
		s.value = decodeValue(vb)
	}
	return t, nil
}

// SetBacking adopts a previously-written image as t's new backing in
// place. It fails with ErrWidthMismatch (without mutating t) if the
// image's index width does not match t's; use Transform for cross-width
// rehoming instead.
func (t *Tree[W, V]) SetBacking(r io.Reader, decodeValue func([]byte) V) error {
	fresh, err := ReadImage[W, V](r, decodeValue)
	if err != nil {
		if errors.Is(err, ErrWidthMismatch) {
			return err
		}
		return err
	}
	t.hdr = fresh.hdr
	t.slots = fresh.slots
	return nil
}
