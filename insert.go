package rbindex

// rotateLeft performs a standard left rotation around x, rewriting only
// parent/left/right index fields (and rootIndex when x was the root).
func (t *Tree[W, V]) rotateLeft(x W) {
	y := t.slots[x].right
	t.slots[x].right = t.slots[y].left
	if !t.isNil(t.slots[y].left) {
		t.slots[t.slots[y].left].parent = x
	}
	t.slots[y].parent = t.slots[x].parent
	switch {
	case t.isNil(t.slots[x].parent):
		t.hdr.rootIndex = y
	case x == t.slots[t.slots[x].parent].left:
		t.slots[t.slots[x].parent].left = y
	default:
		t.slots[t.slots[x].parent].right = y
	}
	t.slots[y].left = x
	t.slots[x].parent = y
}

// rotateRight is the mirror of rotateLeft.
func (t *Tree[W, V]) rotateRight(x W) {
	y := t.slots[x].left
	t.slots[x].left = t.slots[y].right
	if !t.isNil(t.slots[y].right) {
		t.slots[t.slots[y].right].parent = x
	}
	t.slots[y].parent = t.slots[x].parent
	switch {
	case t.isNil(t.slots[x].parent):
		t.hdr.rootIndex = y
	case x == t.slots[t.slots[x].parent].right:
		t.slots[t.slots[x].parent].right = y
	default:
		t.slots[t.slots[x].parent].left = y
	}
	t.slots[y].right = x
	t.slots[x].parent = y
}

// Insert stores value under key. If key is already present, its value is
// overwritten and neither structure nor color is touched. Otherwise a new
// leaf is inserted and colored Red, growing the backing array first if
// needed. Returns ErrCapacityExceeded if the tree is already at its index
// width's maximum element count.
func (t *Tree[W, V]) Insert(key Key, value V) error {
	parent := t.nilIdx()
	cur := t.hdr.rootIndex
	goLeft := false
	for !t.isNil(cur) {
		s := &t.slots[cur]
		switch {
		case key.LessThan(s.key):
			parent, cur, goLeft = cur, s.left, true
		case s.key.LessThan(key):
			parent, cur, goLeft = cur, s.right, false
		default:
			s.value = value
			return nil
		}
	}

	if t.hdr.liveCount == t.hdr.capacity {
		if err := t.grow(); err != nil {
			return err
		}
	}

	z := t.hdr.liveCount
	t.hdr.liveCount++
	s := &t.slots[z]
	s.parent = parent
	s.left = t.nilIdx()
	s.right = t.nilIdx()
	s.color = red
	s.key = key.Clone()
	s.value = value

	if t.isNil(parent) {
		t.hdr.rootIndex = z
	} else if goLeft {
		t.slots[parent].left = z
	} else {
		t.slots[parent].right = z
	}

	t.insertFixup(z)
	return nil
}

func (t *Tree[W, V]) colorOf(i W) color {
	if t.isNil(i) {
		return black
	}
	return t.slots[i].color
}

func (t *Tree[W, V]) insertFixup(z W) {
	for t.colorOf(t.slots[z].parent) == red {
		p := t.slots[z].parent
		g := t.slots[p].parent
		if t.isNil(g) {
			break
		}
		if p == t.slots[g].left {
			u := t.slots[g].right
			if t.colorOf(u) == red {
				t.slots[p].color = black
				t.slots[u].color = black
				t.slots[g].color = red
				z = g
				continue
			}
			if z == t.slots[p].right { // LR
				z = p
				t.rotateLeft(z)
				p = t.slots[z].parent
				g = t.slots[p].parent
			}
			// LL
			t.slots[p].color = black
			t.slots[g].color = red
			t.rotateRight(g)
		} else {
			u := t.slots[g].left
			if t.colorOf(u) == red {
				t.slots[p].color = black
				t.slots[u].color = black
				t.slots[g].color = red
				z = g
				continue
			}
			if z == t.slots[p].left { // RL
				z = p
				t.rotateRight(z)
				p = t.slots[z].parent
				g = t.slots[p].parent
			}
			// RR
			t.slots[p].color = black
			t.slots[g].color = red
			t.rotateLeft(g)
		}
	}
	t.slots[t.hdr.rootIndex].color = black
}

// Entry returns a pointer to the value bound to key, inserting a zero-valued
// entry first if key is absent. The pointer is invalidated by any
// subsequent structural mutation (Insert, Delete, Resize, ShrinkToFit,
// Clear, TakeFrom).
func (t *Tree[W, V]) Entry(key Key) (*V, error) {
	i := t.hdr.rootIndex
	for !t.isNil(i) {
		s := &t.slots[i]
		switch {
		case key.LessThan(s.key):
			i = s.left
		case s.key.LessThan(key):
			i = s.right
		default:
			return &s.value, nil
		}
	}
	var zero V
	if err := t.Insert(key, zero); err != nil {
		return nil, err
	}
	v, _ := t.lookupIndex(key)
	return &t.slots[v].value, nil
}

func (t *Tree[W, V]) lookupIndex(key Key) (W, bool) {
	i := t.hdr.rootIndex
	for !t.isNil(i) {
		s := &t.slots[i]
		switch {
		case key.LessThan(s.key):
			i = s.left
		case s.key.LessThan(key):
			i = s.right
		default:
			return i, true
		}
	}
	return t.nilIdx(), false
}
