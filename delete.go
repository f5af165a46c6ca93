package rbindex

// Delete removes key if present and reports whether it was found. On
// success the tree is rebalanced and compacted so that live slots remain
// dense in [0, Size()).
func (t *Tree[W, V]) Delete(key Key) bool {
	i, ok := t.lookupIndex(key)
	if !ok {
		return false
	}
	t.deleteIndex(i)
	return true
}

// transplant replaces the subtree rooted at u with the subtree rooted at v,
// rewriting u's parent's child link (or rootIndex) and, when v is real,
// v's parent field.
func (t *Tree[W, V]) transplant(u, v W) {
	p := t.slots[u].parent
	switch {
	case t.isNil(p):
		t.hdr.rootIndex = v
	case u == t.slots[p].left:
		t.slots[p].left = v
	default:
		t.slots[p].right = v
	}
	if !t.isNil(v) {
		t.slots[v].parent = p
	}
}

// deleteIndex removes the node at slot z from the tree structure, runs the
// red-black fixup if a Black node was removed, then compacts the freed
// slot. Compaction runs only after the fixup has fully settled the tree, so
// the fixup's local index variables never need rewriting mid-flight: they
// are done being used by the time any slot is moved.
func (t *Tree[W, V]) deleteIndex(z W) {
	var x, xp W
	var xIsLeft bool
	y := z
	yColor := t.colorOf(y)

	switch {
	case t.isNil(t.slots[z].left):
		x = t.slots[z].right
		xp = t.slots[z].parent
		xIsLeft = !t.isNil(xp) && z == t.slots[xp].left
		t.transplant(z, x)
	case t.isNil(t.slots[z].right):
		x = t.slots[z].left
		xp = t.slots[z].parent
		xIsLeft = !t.isNil(xp) && z == t.slots[xp].left
		t.transplant(z, x)
	default:
		y = t.minIndex(t.slots[z].right)
		yColor = t.colorOf(y)
		x = t.slots[y].right
		if t.slots[y].parent == z {
			xp = y
			xIsLeft = false
			if !t.isNil(x) {
				t.slots[x].parent = y
			}
		} else {
			xp = t.slots[y].parent
			xIsLeft = y == t.slots[xp].left
			t.transplant(y, x)
			t.slots[y].right = t.slots[z].right
			t.slots[t.slots[y].right].parent = y
		}
		t.transplant(z, y)
		t.slots[y].left = t.slots[z].left
		t.slots[t.slots[y].left].parent = y
		t.slots[y].color = t.colorOf(z)
	}

	if yColor == black {
		t.deleteFixup(x, xp, xIsLeft)
	}
	t.compact(z)
	t.hdr.liveCount--
}

// deleteFixup restores the red-black invariants after a Black node has been
// unlinked, propagating a "double-black" from (x, xp) up through the five
// classical cases. x may be NIL (the hole left behind); xIsLeft records
// which child of xp the hole occupies for as long as x stays virtual.
func (t *Tree[W, V]) deleteFixup(x, xp W, xIsLeft bool) {
	for x != t.hdr.rootIndex && t.colorOf(x) == black {
		if t.isNil(xp) {
			break
		}
		isLeft := xIsLeft
		if !t.isNil(x) {
			isLeft = x == t.slots[xp].left
		}
		if isLeft {
			w := t.slots[xp].right
			if t.colorOf(w) == red {
				t.slots[w].color = black
				t.slots[xp].color = red
				t.rotateLeft(xp)
				w = t.slots[xp].right
			}
			if t.colorOf(t.slots[w].left) == black && t.colorOf(t.slots[w].right) == black {
				t.slots[w].color = red
				x = xp
				xp = t.slots[x].parent
				xIsLeft = !t.isNil(xp) && x == t.slots[xp].left
				continue
			}
			if t.colorOf(t.slots[w].right) == black {
				t.slots[t.slots[w].left].color = black
				t.slots[w].color = red
				t.rotateRight(w)
				w = t.slots[xp].right
			}
			t.slots[w].color = t.colorOf(xp)
			t.slots[xp].color = black
			t.slots[t.slots[w].right].color = black
			t.rotateLeft(xp)
			x = t.hdr.rootIndex
			xp = t.nilIdx()
		} else {
			w := t.slots[xp].left
			if t.colorOf(w) == red {
				t.slots[w].color = black
				t.slots[xp].color = red
				t.rotateRight(xp)
				w = t.slots[xp].left
			}
			if t.colorOf(t.slots[w].right) == black && t.colorOf(t.slots[w].left) == black {
				t.slots[w].color = red
				x = xp
				xp = t.slots[x].parent
				xIsLeft = !t.isNil(xp) && x == t.slots[xp].left
				continue
			}
			if t.colorOf(t.slots[w].left) == black {
				t.slots[t.slots[w].right].color = black
				t.slots[w].color = red
				t.rotateLeft(w)
				w = t.slots[xp].left
			}
			t.slots[w].color = t.colorOf(xp)
			t.slots[xp].color = black
			t.slots[t.slots[w].left].color = black
			t.rotateRight(xp)
			x = t.hdr.rootIndex
			xp = t.nilIdx()
		}
	}
	if !t.isNil(x) {
		t.slots[x].color = black
	}
}

// compact moves the last live slot into the just-freed slot d, keeping the
// live region dense in [0, liveCount). liveCount still holds its pre-delete
// value when compact runs; it is decremented by the caller afterward.
func (t *Tree[W, V]) compact(d W) {
	m := t.hdr.liveCount - 1
	if d == m {
		t.slots[d].reset()
		return
	}
	moved := t.slots[m]
	t.slots[d] = moved
	switch {
	case t.isNil(moved.parent):
		t.hdr.rootIndex = d
	case t.slots[moved.parent].left == m:
		t.slots[moved.parent].left = d
	default:
		t.slots[moved.parent].right = d
	}
	if !t.isNil(moved.left) {
		t.slots[moved.left].parent = d
	}
	if !t.isNil(moved.right) {
		t.slots[moved.right].parent = d
	}
	t.slots[m].reset()
}
