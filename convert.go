package pairmap

import "iter"

// Seq returns an iterator over all entries in stored order. Each call
// yields a fresh iteration from the front, compatible with Go 1.23+
// range-over-func syntax:
//
//	for key, value := range m.Seq() {
//	    // entries arrive in insertion order
//	}
//
// The iterator reflects live state; do not mutate the map while ranging.
func (m *Map[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range m.pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Pairs returns a copy of all entries in stored order. The map is
// unchanged. Transferring the entries into any other map-like storage is a
// single pass over the returned slice.
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	pairs := make([]Pair[K, V], len(m.pairs))
	copy(pairs, m.pairs)

	return pairs
}

// Unwrap returns the backing slice of entries in stored order and leaves
// the map empty. This is the O(1) counterpart of Pairs for callers that are
// done with the map. The returned slice is owned by the caller.
func (m *Map[K, V]) Unwrap() []Pair[K, V] {
	pairs := m.pairs
	m.pairs = nil

	return pairs
}

// Keys returns all keys in stored order, including duplicates.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.pairs))

	for i := range m.pairs {
		keys[i] = m.pairs[i].Key
	}

	return keys
}

// Values returns all values in stored order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, len(m.pairs))

	for i := range m.pairs {
		values[i] = m.pairs[i].Value
	}

	return values
}

// GoMap converts the map to a plain Go map in one pass. Entry order is
// lost, and when duplicate keys exist the later entry overwrites the
// earlier one.
func (m *Map[K, V]) GoMap() map[K]V {
	goMap := make(map[K]V, len(m.pairs))

	for _, p := range m.pairs {
		goMap[p.Key] = p.Value
	}

	return goMap
}

// Clone creates a shallow copy of the map: entries are duplicated in order,
// but keys and values are referenced as-is.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return FromPairs(m.pairs)
}
