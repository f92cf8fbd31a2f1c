package queue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessFloat(a, b float64) bool { return a < b }

func TestMinHeapPushPop(t *testing.T) {
	h := New(lessFloat, 8)

	assert.True(t, h.IsEmpty())
	h.Push(3)
	h.Push(1)
	h.Push(2)
	assert.Equal(t, 3, h.Len())

	top, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, 1.0, top)

	v, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, ok = h.Pop()
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
	v, ok = h.Pop()
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
	assert.True(t, h.IsEmpty())
}

func TestMinHeapEmptyPop(t *testing.T) {
	h := New(lessFloat, 0)
	_, ok := h.Pop()
	assert.False(t, ok)
	_, ok = h.Peek()
	assert.False(t, ok)
}

// Successive pops from a heap that is never repopulated must yield a
// non-decreasing key sequence.
func TestMinHeapPopOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := New(lessFloat, 64)

	const n = 1000
	for range n {
		h.Push(rng.Float64() * 100)
	}

	prev := -1.0
	for !h.IsEmpty() {
		v, ok := h.Pop()
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

// After any interleaving of pushes and pops, every non-root element
// must compare >= its parent under the supplied comparison.
func TestMinHeapInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := New(lessFloat, 16)

	for i := range 500 {
		if i%3 == 2 {
			h.Pop()
			continue
		}
		h.Push(rng.Float64() * 50)
		assertHeapInvariant(t, h)
	}
}

func assertHeapInvariant(t *testing.T, h *MinHeap[float64]) {
	t.Helper()
	items := h.Snapshot()
	for i := 1; i < len(items); i++ {
		p := (i - 1) / 2
		assert.False(t, h.less(items[i], items[p]),
			"child %v at %d ranks before parent %v at %d", items[i], i, items[p], p)
	}
}

func TestMinHeapDuplicatesTolerated(t *testing.T) {
	h := New(lessFloat, 4)
	h.Push(5)
	h.Push(5)
	h.Push(5)
	assert.Equal(t, 3, h.Len())

	for range 3 {
		v, ok := h.Pop()
		require.True(t, ok)
		assert.Equal(t, 5.0, v)
	}
}

func TestMinHeapSnapshotDoesNotMutate(t *testing.T) {
	h := New(lessFloat, 4)
	h.Push(2)
	h.Push(1)

	snap := h.Snapshot()
	assert.Len(t, snap, 2)
	snap[0] = 99 // Mutating the copy must not affect the heap.

	v, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestMinHeapInjectedOrdering(t *testing.T) {
	// Max-heap via inverted comparison.
	h := New(func(a, b float64) bool { return a > b }, 4)
	h.Push(1)
	h.Push(3)
	h.Push(2)

	v, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestMinHeapReset(t *testing.T) {
	h := New(lessFloat, 4)
	h.Push(1)
	h.Push(2)
	h.Reset()
	assert.True(t, h.IsEmpty())
	_, ok := h.Pop()
	assert.False(t, ok)
}
