package rbindex

// header is the fixed-size control block that precedes the node slots in the
// backing array. It is the single source of truth for capacity, live count,
// root index, and index width.
type header[W Index] struct {
	liveCount  W
	rootIndex  W
	capacity   W
	indexWidth uint8
}

func newHeader[W Index](capacity W) header[W] {
	return header[W]{
		liveCount:  0,
		rootIndex:  nilIndex[W](),
		capacity:   capacity,
		indexWidth: widthBits[W](),
	}
}

func (h *header[W]) isEmpty() bool { return h.liveCount == 0 }

// slot is the fixed per-position record: parent/left/right indices, color,
// key, value. Slots at position < liveCount are live and every field is
// meaningful; slots at liveCount <= i < capacity are reserved and only key
// and value are held at their default (zero) value.
type slot[W Index, V any] struct {
	parent, left, right W
	color               color
	key                 Key
	value               V
}

func (s *slot[W, V]) reset() {
	var zeroKey Key
	var zeroVal V
	s.parent, s.left, s.right = 0, 0, 0
	s.color = red
	s.key = zeroKey
	s.value = zeroVal
}
