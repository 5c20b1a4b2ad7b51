package pairmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/pairmap"
)

func TestMap_OrderPreservation(t *testing.T) {
	t.Parallel()

	t.Run("pairs follow insertion order exactly", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("charlie", 3)
		m.Insert("alpha", 1)
		m.Insert("bravo", 2)

		assert.Equal(t, []pairmap.Pair[string, int]{
			{Key: "charlie", Value: 3},
			{Key: "alpha", Value: 1},
			{Key: "bravo", Value: 2},
		}, m.Pairs())

		assert.Equal(t, []string{"charlie", "alpha", "bravo"}, m.Keys())
		assert.Equal(t, []int{3, 1, 2}, m.Values())
	})

	t.Run("from pairs round trips without reordering", func(t *testing.T) {
		t.Parallel()

		pairs := []pairmap.Pair[string, int]{
			{Key: "a", Value: 1},
			{Key: "b", Value: 2},
		}

		m := pairmap.FromPairs(pairs)

		assert.Equal(t, pairs, m.Pairs())
	})
}

func TestMap_DuplicateKeys(t *testing.T) {
	t.Parallel()

	m := pairmap.New[string, int]()
	m.Insert("k", 1)
	m.Insert("other", 10)
	m.Insert("k", 2)

	assert.Equal(t, 3, m.Len())

	t.Run("get returns the first match", func(t *testing.T) {
		t.Parallel()

		value, found := m.Get("k")
		require.True(t, found)
		assert.Equal(t, 1, value)
	})

	t.Run("get all returns every match in order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []int{1, 2}, m.GetAll("k"))
	})

	t.Run("both duplicates survive in pairs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []pairmap.Pair[string, int]{
			{Key: "k", Value: 1},
			{Key: "other", Value: 10},
			{Key: "k", Value: 2},
		}, m.Pairs())
	})
}

func TestMap_InsertOrReplace(t *testing.T) {
	t.Parallel()

	t.Run("appends when the key is absent", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("a", 1)

		replaced := m.InsertOrReplace("b", 2)

		assert.False(t, replaced)
		assert.Equal(t, []string{"a", "b"}, m.Keys())
	})

	t.Run("replaces the first match in place", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("a", 1)
		m.Insert("b", 2)
		m.Insert("a", 3)

		replaced := m.InsertOrReplace("a", 99)

		assert.True(t, replaced)
		assert.Equal(t, 3, m.Len())
		assert.Equal(t, []pairmap.Pair[string, int]{
			{Key: "a", Value: 99},
			{Key: "b", Value: 2},
			{Key: "a", Value: 3},
		}, m.Pairs())
	})
}

func TestMap_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes the first match and keeps order", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("a", 1)
		m.Insert("b", 2)
		m.Insert("a", 3)

		value, removed := m.Remove("a")

		require.True(t, removed)
		assert.Equal(t, 1, value)
		assert.Equal(t, []pairmap.Pair[string, int]{
			{Key: "b", Value: 2},
			{Key: "a", Value: 3},
		}, m.Pairs())
	})

	t.Run("miss is not an error", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("a", 1)

		value, removed := m.Remove("missing")

		assert.False(t, removed)
		assert.Zero(t, value)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("remove all clears every duplicate", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("a", 1)
		m.Insert("b", 2)
		m.Insert("a", 3)

		removed := m.RemoveAll("a")

		assert.Equal(t, 2, removed)
		assert.Equal(t, []string{"b"}, m.Keys())
	})
}

func TestMap_Empty(t *testing.T) {
	t.Parallel()

	m := pairmap.New[string, int]()

	assert.True(t, m.IsEmpty())
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Pairs())

	value, found := m.Get("anything")
	assert.False(t, found)
	assert.Zero(t, value)
}

func TestMap_ZeroValue(t *testing.T) {
	t.Parallel()

	var m pairmap.Map[string, int]

	assert.True(t, m.IsEmpty())

	m.Insert("a", 1)

	value, found := m.Get("a")
	require.True(t, found)
	assert.Equal(t, 1, value)
}

func TestMap_Seq(t *testing.T) {
	t.Parallel()

	m := pairmap.New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)

	t.Run("yields entries in stored order", func(t *testing.T) {
		t.Parallel()

		var keys []string
		for key, value := range m.Seq() {
			keys = append(keys, key)
			assert.Positive(t, value)
		}

		assert.Equal(t, []string{"a", "b", "c"}, keys)
	})

	t.Run("each call restarts from the front", func(t *testing.T) {
		t.Parallel()

		for range 2 {
			var first string
			for key := range m.Seq() {
				first = key

				break
			}

			assert.Equal(t, "a", first)
		}
	})
}

func TestMap_Conversions(t *testing.T) {
	t.Parallel()

	t.Run("wrap adopts and unwrap consumes", func(t *testing.T) {
		t.Parallel()

		pairs := []pairmap.Pair[string, int]{
			{Key: "a", Value: 1},
			{Key: "b", Value: 2},
		}

		m := pairmap.Wrap(pairs)
		assert.Equal(t, 2, m.Len())

		out := m.Unwrap()
		assert.Equal(t, []pairmap.Pair[string, int]{
			{Key: "a", Value: 1},
			{Key: "b", Value: 2},
		}, out)
		assert.True(t, m.IsEmpty())
	})

	t.Run("go map conversion is one pass with later duplicates winning", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("a", 1)
		m.Insert("b", 2)
		m.Insert("a", 3)

		assert.Equal(t, map[string]int{"a": 3, "b": 2}, m.GoMap())
	})

	t.Run("from go map holds every entry", func(t *testing.T) {
		t.Parallel()

		m := pairmap.FromGoMap(map[string]int{"a": 1, "b": 2})

		assert.Equal(t, 2, m.Len())
		assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())
	})

	t.Run("collect preserves iterator order", func(t *testing.T) {
		t.Parallel()

		src := pairmap.New[string, int]()
		src.Insert("x", 1)
		src.Insert("y", 2)

		m := pairmap.Collect(src.Seq())

		assert.Equal(t, src.Pairs(), m.Pairs())
	})

	t.Run("clone is independent of the original", func(t *testing.T) {
		t.Parallel()

		m := pairmap.New[string, int]()
		m.Insert("a", 1)

		clone := m.Clone()
		clone.Insert("b", 2)

		assert.Equal(t, 1, m.Len())
		assert.Equal(t, 2, clone.Len())
	})
}

func TestMap_First(t *testing.T) {
	t.Parallel()

	m := pairmap.New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 2)

	t.Run("returns the earliest match", func(t *testing.T) {
		t.Parallel()

		found := m.First(func(_ string, value int) bool { return value == 2 })

		pair, ok := found.Get()
		require.True(t, ok)
		assert.Equal(t, "b", pair.Key)
	})

	t.Run("returns none when nothing matches", func(t *testing.T) {
		t.Parallel()

		found := m.First(func(_ string, value int) bool { return value > 10 })

		assert.True(t, found.Empty())
	})
}

func TestPushToLast(t *testing.T) {
	t.Parallel()

	m := pairmap.New[string, []int]()

	pairmap.PushToLast(m, "a", 1)
	pairmap.PushToLast(m, "a", 2)
	pairmap.PushToLast(m, "b", 3)
	pairmap.PushToLast(m, "a", 4)

	assert.Equal(t, []pairmap.Pair[string, []int]{
		{Key: "a", Value: []int{1, 2}},
		{Key: "b", Value: []int{3}},
		{Key: "a", Value: []int{4}},
	}, m.Pairs())
}

func TestMap_Clear(t *testing.T) {
	t.Parallel()

	m := pairmap.New[string, int]()
	m.Insert("a", 1)

	m.Clear()

	assert.True(t, m.IsEmpty())

	m.Insert("b", 2)
	assert.Equal(t, []string{"b"}, m.Keys())
}
