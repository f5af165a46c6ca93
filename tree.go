package rbindex

const defaultCapacity = 256

// Tree is an ordered key/value container whose nodes live in a single
// contiguous, index-addressed slice. W selects the index width (uint16,
// uint32, or uint64) and bounds both the maximum element count and the
// per-slot footprint; V is the stored value type.
//
// A Tree has no internal synchronization: concurrent access from more than
// one goroutine, or any access concurrent with a mutation, is undefined
// behavior. Wrap a Tree in an external mutex if it must be shared.
type Tree[W Index, V any] struct {
	hdr   header[W]
	slots []slot[W, V]
}

// Option configures a Tree at construction time.
type Option[W Index, V any] func(*treeConfig[W])

type treeConfig[W Index] struct {
	capacity W
}

// WithCapacity requests an initial backing capacity of n slots, clamped to
// the index width's maximum (MAX_COUNT(W)).
func WithCapacity[W Index, V any](n W) Option[W, V] {
	return func(c *treeConfig[W]) { c.capacity = n }
}

// New constructs an empty Tree. With no options the initial capacity is 256,
// clamped to the width's maximum.
func New[W Index, V any](opts ...Option[W, V]) *Tree[W, V] {
	cfg := treeConfig[W]{capacity: W(defaultCapacity)}
	for _, opt := range opts {
		opt(&cfg)
	}
	cap := cfg.capacity
	if max := maxCount[W](); cap > max {
		cap = max
	}
	if cap == 0 {
		cap = 1
	}
	t := &Tree[W, V]{
		hdr:   newHeader[W](cap),
		slots: make([]slot[W, V], cap),
	}
	return t
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[W, V]) IsEmpty() bool { return t.hdr.isEmpty() }

// Size returns the number of key/value pairs currently stored.
func (t *Tree[W, V]) Size() uint64 { return uint64(t.hdr.liveCount) }

// Capacity returns the number of node slots in the current backing array.
func (t *Tree[W, V]) Capacity() uint64 { return uint64(t.hdr.capacity) }

// IndexWidth returns the tree's fixed index width: 16, 32, or 64.
func (t *Tree[W, V]) IndexWidth() uint8 { return t.hdr.indexWidth }

// Available returns MAX_COUNT(W) - Size(): how many more keys can ever be
// stored before the index width itself is exhausted (irrespective of
// current capacity, which can still grow up to that bound).
func (t *Tree[W, V]) Available() uint64 {
	return uint64(maxCount[W]()) - uint64(t.hdr.liveCount)
}

func (t *Tree[W, V]) nilIdx() W { return nilIndex[W]() }

func (t *Tree[W, V]) isNil(i W) bool { return i == t.nilIdx() }
