// Package pairmap provides an order-preserving map backed by a flat slice of
// key-value pairs rather than a hash table.
//
// The map appends entries in arrival order and never reorders them, which
// makes it a natural carrier for serialized key-value data: deserializing a
// wire map into a pairmap keeps the exact key order of the input, and
// serializing it back reproduces that order. Lookup is a deliberate linear
// scan; the trade-off is order fidelity and duplicate-key tolerance over
// asymptotic lookup speed. If you need fast lookup and don't care about
// order or duplicates, convert to a plain Go map with GoMap.
//
// Unlike a hash map, duplicate keys may coexist. Every operation that
// targets a key by equality (Get, Remove, InsertOrReplace) resolves to the
// first matching entry, counted from the front. This policy is fixed;
// there is no last-match mode.
//
// Key transformation during serialization is handled by the keycodec
// package and the format adapters (jsonmap, yamlmap, msgpackmap); the
// container itself never transforms keys.
//
// Thread-safety: Map is not safe for concurrent use. Callers that share a
// Map across goroutines must synchronize access themselves.
package pairmap

import (
	"iter"

	"github.com/amp-labs/amp-common/optional"
	"github.com/amp-labs/amp-common/zero"
)

// Pair is a single entry of a Map. Pairs are plain values; copying a Pair
// copies the key and value as-is.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Map is an order-preserving map backed by a flat slice of pairs.
//
// The zero value is an empty map ready to use. Entries keep their insertion
// order for the lifetime of the map; duplicate keys are allowed and
// first-match-wins for keyed operations (see the package documentation).
type Map[K comparable, V any] struct {
	pairs []Pair[K, V]
}

// New creates a new empty map.
//
// Example:
//
//	m := pairmap.New[string, int]()
//	m.Insert("a", 1)
//	m.Insert("b", 2)
//	// Iteration and Pairs() will always yield "a" before "b".
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{}
}

// WithCapacity creates a new empty map with storage preallocated for n
// entries. Useful when the entry count is known up front, e.g. when
// deserializing a length-prefixed wire map.
func WithCapacity[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{pairs: make([]Pair[K, V], 0, n)}
}

// FromPairs creates a map holding a copy of the given pairs, in the given
// order. The input slice is not retained; use Wrap to adopt a slice without
// copying. No deduplication or reordering is performed.
func FromPairs[K comparable, V any](pairs []Pair[K, V]) *Map[K, V] {
	m := &Map[K, V]{pairs: make([]Pair[K, V], len(pairs))}
	copy(m.pairs, pairs)

	return m
}

// Wrap creates a map that adopts the given slice as its backing storage,
// in O(1). The caller must not use the slice afterwards. No deduplication
// or reordering is performed.
func Wrap[K comparable, V any](pairs []Pair[K, V]) *Map[K, V] {
	return &Map[K, V]{pairs: pairs}
}

// FromGoMap creates a map from a plain Go map. The entry order is
// unspecified, since Go map iteration order is non-deterministic; once
// created, the order is fixed like any other pairmap.
func FromGoMap[K comparable, V any](goMap map[K]V) *Map[K, V] {
	m := WithCapacity[K, V](len(goMap))

	for k, v := range goMap {
		m.Insert(k, v)
	}

	return m
}

// Collect creates a map by draining the given iterator, preserving its
// yield order.
func Collect[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	m := New[K, V]()

	for k, v := range seq {
		m.Insert(k, v)
	}

	return m
}

// Insert appends a new entry at the end of the map. It does not check for
// an existing entry with the same key; duplicates accumulate in insertion
// order. Use InsertOrReplace for replace-on-conflict semantics.
func (m *Map[K, V]) Insert(key K, value V) {
	m.pairs = append(m.pairs, Pair[K, V]{Key: key, Value: value})
}

// InsertOrReplace replaces the value of the first entry matching key,
// keeping that entry's position, or appends a new entry if no match exists.
// Returns true if an existing entry was replaced.
func (m *Map[K, V]) InsertOrReplace(key K, value V) bool {
	for i := range m.pairs {
		if m.pairs[i].Key == key {
			m.pairs[i].Value = value

			return true
		}
	}

	m.Insert(key, value)

	return false
}

// Get returns the value of the first entry matching key, scanning from the
// front. The second return value reports whether a match was found; a miss
// is not an error. Lookup is O(n).
func (m *Map[K, V]) Get(key K) (V, bool) {
	for i := range m.pairs {
		if m.pairs[i].Key == key {
			return m.pairs[i].Value, true
		}
	}

	return zero.Value[V](), false
}

// GetAll returns the values of every entry matching key, in stored order.
// Returns nil if no entry matches.
func (m *Map[K, V]) GetAll(key K) []V {
	var values []V

	for i := range m.pairs {
		if m.pairs[i].Key == key {
			values = append(values, m.pairs[i].Value)
		}
	}

	return values
}

// Contains reports whether at least one entry matches key.
func (m *Map[K, V]) Contains(key K) bool {
	_, found := m.Get(key)

	return found
}

// Remove deletes the first entry matching key, preserving the relative
// order of the remaining entries, and returns its value. The second return
// value reports whether an entry was removed.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	for i := range m.pairs {
		if m.pairs[i].Key == key {
			value := m.pairs[i].Value
			m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)

			return value, true
		}
	}

	return zero.Value[V](), false
}

// RemoveAll deletes every entry matching key, preserving the relative order
// of the remaining entries, and returns the number of entries removed.
func (m *Map[K, V]) RemoveAll(key K) int {
	kept := m.pairs[:0]

	for i := range m.pairs {
		if m.pairs[i].Key != key {
			kept = append(kept, m.pairs[i])
		}
	}

	removed := len(m.pairs) - len(kept)
	m.pairs = kept

	return removed
}

// Len returns the number of entries in the map, counting duplicates.
func (m *Map[K, V]) Len() int {
	return len(m.pairs)
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return len(m.pairs) == 0
}

// Clear removes all entries, leaving an empty map ready for reuse.
func (m *Map[K, V]) Clear() {
	m.pairs = nil
}

// First returns the first entry, in stored order, for which the predicate
// returns true, or None if no entry matches. This also serves as lookup
// under a custom equality relation, which keyed operations don't support.
func (m *Map[K, V]) First(predicate func(key K, value V) bool) optional.Value[Pair[K, V]] {
	for _, p := range m.pairs {
		if predicate(p.Key, p.Value) {
			return optional.Some(p)
		}
	}

	return optional.None[Pair[K, V]]()
}

// PushToLast appends value to the last entry's slice if that entry's key
// equals key, and otherwise inserts a new entry holding a one-element
// slice. It groups a run of consecutive equal keys into a single entry,
// which is useful when consuming a wire stream that repeats the key for
// each element of a collection.
func PushToLast[K comparable, V any](m *Map[K, []V], key K, value V) {
	if n := len(m.pairs); n > 0 && m.pairs[n-1].Key == key {
		m.pairs[n-1].Value = append(m.pairs[n-1].Value, value)

		return
	}

	m.Insert(key, []V{value})
}
