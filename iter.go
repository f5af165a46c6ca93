package rbindex

// UnorderedCursor walks the backing array in raw slot order (not key
// order). It is cheaper than OrderedCursor but yields pairs in an
// unspecified order that can change across any structural mutation.
// Iterating over a cursor concurrently with a mutation is undefined
// behavior.
type UnorderedCursor[W Index, V any] struct {
	t           *Tree[W, V]
	idx         W
	beforeBegin bool
}

// Unordered returns a cursor positioned before the first slot; call Advance
// to reach the first pair.
func (t *Tree[W, V]) Unordered() *UnorderedCursor[W, V] {
	return &UnorderedCursor[W, V]{t: t, beforeBegin: true}
}

// Advance moves to the next slot and reports whether the cursor now sits on
// a valid pair (index < Size()).
func (c *UnorderedCursor[W, V]) Advance() bool {
	if c.beforeBegin {
		c.beforeBegin = false
		c.idx = 0
	} else if c.idx < c.t.hdr.liveCount {
		c.idx++
	}
	return c.idx < c.t.hdr.liveCount
}

// Retreat moves to the previous slot. Once it has moved before the first
// slot, the sticky before-begin state is reached and further Retreat calls
// are no-ops that keep returning false.
func (c *UnorderedCursor[W, V]) Retreat() bool {
	if c.beforeBegin {
		return false
	}
	if c.idx == 0 {
		c.beforeBegin = true
		return false
	}
	c.idx--
	return true
}

// Valid reports whether the cursor currently sits on a live pair.
func (c *UnorderedCursor[W, V]) Valid() bool {
	return !c.beforeBegin && c.idx < c.t.hdr.liveCount
}

// Key returns the current pair's key. Calling it when !Valid() is a
// programming error.
func (c *UnorderedCursor[W, V]) Key() Key { return c.t.slots[c.idx].key }

// Value returns the current pair's value. Calling it when !Valid() is a
// programming error.
func (c *UnorderedCursor[W, V]) Value() V { return c.t.slots[c.idx].value }

// Equal reports whether c and other reference the same tree, slot, and
// before-begin state.
func (c *UnorderedCursor[W, V]) Equal(other *UnorderedCursor[W, V]) bool {
	return c.t == other.t && c.idx == other.idx && c.beforeBegin == other.beforeBegin
}

// OrderedCursor walks the tree in key order, bidirectionally. It carries
// only a slot index and two sticky boundary flags — no cached neighbor
// indices — so that compaction never needs to know a cursor exists.
type OrderedCursor[W Index, V any] struct {
	t                     *Tree[W, V]
	idx                   W
	beforeBegin, afterEnd bool
}

// Ordered returns a cursor positioned before the minimum key; call Advance
// to reach the first pair in ascending order.
func (t *Tree[W, V]) Ordered() *OrderedCursor[W, V] {
	return &OrderedCursor[W, V]{t: t, idx: t.nilIdx(), beforeBegin: true}
}

// OrderedAtEnd returns a cursor positioned after the maximum key; call
// Retreat to reach the last pair in ascending order.
func (t *Tree[W, V]) OrderedAtEnd() *OrderedCursor[W, V] {
	return &OrderedCursor[W, V]{t: t, idx: t.nilIdx(), afterEnd: true}
}

// Advance moves to the tree-order successor and reports whether the cursor
// now sits on a valid pair.
func (c *OrderedCursor[W, V]) Advance() bool {
	if c.beforeBegin {
		c.beforeBegin = false
		c.idx = c.t.minIndex(c.t.hdr.rootIndex)
		if c.t.isNil(c.idx) {
			c.afterEnd = true
			return false
		}
		return true
	}
	if c.afterEnd {
		return false
	}
	next := c.t.successorIndex(c.idx)
	if c.t.isNil(next) {
		c.afterEnd = true
		c.idx = c.t.nilIdx()
		return false
	}
	c.idx = next
	return true
}

// Retreat moves to the tree-order predecessor and reports whether the
// cursor now sits on a valid pair.
func (c *OrderedCursor[W, V]) Retreat() bool {
	if c.afterEnd {
		c.afterEnd = false
		c.idx = c.t.maxIndex(c.t.hdr.rootIndex)
		if c.t.isNil(c.idx) {
			c.beforeBegin = true
			return false
		}
		return true
	}
	if c.beforeBegin {
		return false
	}
	prev := c.t.predecessorIndex(c.idx)
	if c.t.isNil(prev) {
		c.beforeBegin = true
		c.idx = c.t.nilIdx()
		return false
	}
	c.idx = prev
	return true
}

// Valid reports whether the cursor currently sits on a live pair.
func (c *OrderedCursor[W, V]) Valid() bool {
	return !c.beforeBegin && !c.afterEnd
}

// Key returns the current pair's key. Calling it when !Valid() is a
// programming error.
func (c *OrderedCursor[W, V]) Key() Key { return c.t.slots[c.idx].key }

// Value returns the current pair's value. Calling it when !Valid() is a
// programming error.
func (c *OrderedCursor[W, V]) Value() V { return c.t.slots[c.idx].value }

// Equal reports whether c and other reference the same tree, slot, and
// boundary flags.
func (c *OrderedCursor[W, V]) Equal(other *OrderedCursor[W, V]) bool {
	return c.t == other.t && c.idx == other.idx &&
		c.beforeBegin == other.beforeBegin && c.afterEnd == other.afterEnd
}
