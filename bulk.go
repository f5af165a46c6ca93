package rbindex

// Predicate decides whether the pair (key, value) should be deleted by
// ConditionalDelete/ConditionalDeleteOnce. A non-nil error aborts the bulk
// operation; it is never swallowed, only wrapped in ErrInvalidPredicate.
type Predicate[V any] func(Key, V) (bool, error)

// Pair is a materialized key/value pair, as returned by Pairs.
type Pair[V any] struct {
	Key   Key
	Value V
}

// ConditionalDelete removes every pair for which pred reports true and
// returns the number deleted.
//
// pred is invoked exactly once per live pair regardless of which tier below
// ends up doing the work: a single pre-pass materializes the set of
// matching keys, and all three tiers consume that materialized set rather
// than re-invoking pred (see DESIGN.md for why this was chosen over the
// source's ambiguous tier-dependent call count). The match rate r then
// selects a tier:
//
//   - r < 0.25 (sparse): delete each matching key directly.
//   - 0.25 <= r < 0.5 (medium): walk the tree in key order, deleting
//     matches as they're reached and recomputing the successor of the just
//     -deleted key (compaction can move any index, so no index is cached
//     across a delete).
//   - r >= 0.5 (heavy): rebuild into a fresh tree of the same capacity
//     holding only the non-matching pairs, then adopt it in place.
//
// If the heavy tier's rebuild cannot proceed, ConditionalDelete falls back
// to the medium tier.
func (t *Tree[W, V]) ConditionalDelete(pred Predicate[V]) (int, error) {
	if t.hdr.liveCount == 0 {
		return 0, nil
	}
	matched := make(map[string]struct{})
	live := t.hdr.liveCount
	for i := W(0); i < live; i++ {
		s := &t.slots[i]
		ok, err := pred(s.key, s.value)
		if err != nil {
			return 0, predicateErrorf(err)
		}
		if ok {
			matched[string(s.key)] = struct{}{}
		}
	}
	total := len(matched)
	if total == 0 {
		return 0, nil
	}

	rate := float64(total) / float64(live)
	switch {
	case rate < 0.25:
		return t.conditionalDeleteSparse(matched)
	case rate < 0.5:
		return t.conditionalDeleteMedium(matched)
	default:
		n, err := t.conditionalDeleteHeavy(matched)
		if err != nil {
			return t.conditionalDeleteMedium(matched)
		}
		return n, nil
	}
}

func (t *Tree[W, V]) conditionalDeleteSparse(matched map[string]struct{}) (int, error) {
	count := 0
	for ks := range matched {
		if t.Delete(Key(ks)) {
			count++
		}
	}
	return count, nil
}

func (t *Tree[W, V]) conditionalDeleteMedium(matched map[string]struct{}) (int, error) {
	count := 0
	curKey, _, ok := t.Min()
	for ok {
		_, isMatch := matched[string(curKey)]
		if isMatch {
			snapshot := curKey
			t.Delete(snapshot)
			count++
			curKey, _, ok = t.Ceiling(snapshot)
			continue
		}
		curKey, _, ok = t.Ceiling(curKey)
	}
	return count, nil
}

func (t *Tree[W, V]) conditionalDeleteHeavy(matched map[string]struct{}) (int, error) {
	fresh := New[W, V](WithCapacity[W, V](t.hdr.capacity))
	kept := 0
	live := t.hdr.liveCount
	for i := W(0); i < live; i++ {
		s := &t.slots[i]
		if _, isMatch := matched[string(s.key)]; isMatch {
			continue
		}
		if err := fresh.Insert(s.key, s.value); err != nil {
			return 0, err
		}
		kept++
	}
	deleted := int(live) - kept
	t.TakeFrom(fresh)
	return deleted, nil
}

// ConditionalDeleteOnce scans slot order, deletes the first pair for which
// pred reports true, and returns 1 (deleted) or 0 (no match).
func (t *Tree[W, V]) ConditionalDeleteOnce(pred Predicate[V]) (int, error) {
	live := t.hdr.liveCount
	for i := W(0); i < live; i++ {
		s := &t.slots[i]
		ok, err := pred(s.key, s.value)
		if err != nil {
			return 0, predicateErrorf(err)
		}
		if ok {
			t.Delete(s.key)
			return 1, nil
		}
	}
	return 0, nil
}

// Keys materializes every key in slot order (unordered).
func (t *Tree[W, V]) Keys() []Key {
	out := make([]Key, 0, t.hdr.liveCount)
	for i := W(0); i < t.hdr.liveCount; i++ {
		out = append(out, t.slots[i].key.Clone())
	}
	return out
}

// Values materializes every value in slot order (unordered).
func (t *Tree[W, V]) Values() []V {
	out := make([]V, 0, t.hdr.liveCount)
	for i := W(0); i < t.hdr.liveCount; i++ {
		out = append(out, t.slots[i].value)
	}
	return out
}

// Pairs materializes every (key, value) pair in slot order (unordered).
func (t *Tree[W, V]) Pairs() []Pair[V] {
	out := make([]Pair[V], 0, t.hdr.liveCount)
	for i := W(0); i < t.hdr.liveCount; i++ {
		out = append(out, Pair[V]{Key: t.slots[i].key.Clone(), Value: t.slots[i].value})
	}
	return out
}
