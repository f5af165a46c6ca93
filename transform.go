package rbindex

// Transform rehomes src's logical tree into dst, translating every
// parent/left/right index to dst's width (widening or narrowing as
// needed) and mapping src's NIL to dst's NIL. No rebalancing is required:
// the tree shape and node colors are already valid, only the index
// encoding changes. dst's capacity is grown first if it is smaller than
// src's live count.
//
// Transform fails with ErrCapacityExceeded if src's live count exceeds
// dst's index width maximum. It is idempotent up to representation: two
// trees that transform into each other and back hold identical contents.
func Transform[W1, W2 Index, V any](src *Tree[W1, V], dst *Tree[W2, V]) error {
	n := uint64(src.hdr.liveCount)
	dstMax := uint64(maxCount[W2]())
	if n > dstMax {
		return capacityErrorf("source live count %d exceeds target index width maximum %d", n, dstMax)
	}
	if uint64(dst.hdr.capacity) < n {
		if err := dst.resizeTo(W2(n)); err != nil {
			return err
		}
	}

	srcNil := nilIndex[W1]()
	dstNil := nilIndex[W2]()
	translate := func(i W1) W2 {
		if i == srcNil {
			return dstNil
		}
		return W2(uint64(i))
	}

	for idx := uint64(0); idx < n; idx++ {
		s := &src.slots[W1(idx)]
		d := &dst.slots[W2(idx)]
		d.parent = translate(s.parent)
		d.left = translate(s.left)
		d.right = translate(s.right)
		d.color = s.color
		d.key = s.key.Clone()
		d.value = s.value
	}
	for idx := n; idx < uint64(dst.hdr.capacity); idx++ {
		dst.slots[W2(idx)].reset()
	}

	dst.hdr.liveCount = W2(n)
	dst.hdr.rootIndex = translate(src.hdr.rootIndex)
	return nil
}
