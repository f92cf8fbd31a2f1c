// Package queue provides the binary min-heap used as the open-set
// priority queue of the search engine.
//
// The heap is parameterized by an injected comparison so alternative
// orderings (A* by f-cost, greedy by h-cost) plug in without touching
// heap code. There is no decrease-key operation: callers push fresh,
// cheaper items instead, and tolerate the stale duplicates this leaves
// behind.
package queue

// LessFunc reports whether a ranks strictly before b.
// It must implement a strict total order over all pushed items;
// NaN-valued keys break that contract and leave the heap order undefined.
type LessFunc[T any] func(a, b T) bool

// MinHeap is a binary heap over a backing slice, value-based for cache
// locality. Not safe for concurrent use; a search run owns its heap.
type MinHeap[T any] struct {
	less  LessFunc[T]
	items []T
}

// New creates a heap with the given comparison and initial capacity.
func New[T any](less LessFunc[T], capacity int) *MinHeap[T] {
	return &MinHeap[T]{
		less:  less,
		items: make([]T, 0, capacity),
	}
}

// Push inserts an item while maintaining the heap invariant. O(log n).
func (h *MinHeap[T]) Push(item T) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the item the comparison ranks first.
// The second return is false when the heap is empty. O(log n).
func (h *MinHeap[T]) Pop() (T, bool) {
	n := len(h.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	root := h.items[0]
	last := h.items[n-1]
	var zero T
	h.items[n-1] = zero
	h.items = h.items[:n-1]
	if n-1 > 0 {
		h.items[0] = last
		h.siftDown(0)
	}
	return root, true
}

// Peek returns the top item without removing it. O(1).
func (h *MinHeap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// IsEmpty reports whether the heap holds no items. O(1).
func (h *MinHeap[T]) IsEmpty() bool { return len(h.items) == 0 }

// Len returns the number of items in the heap. O(1).
func (h *MinHeap[T]) Len() int { return len(h.items) }

// Snapshot returns a copy of the backing slice without mutating the heap.
// The slice is heap-ordered, not sorted; consumers must not assume any
// particular order. O(n).
func (h *MinHeap[T]) Snapshot() []T {
	out := make([]T, len(h.items))
	copy(out, h.items)
	return out
}

// Reset clears the heap for reuse without freeing the backing storage.
func (h *MinHeap[T]) Reset() {
	var zero T
	for i := range h.items {
		h.items[i] = zero
	}
	h.items = h.items[:0]
}

func (h *MinHeap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(h.items[i], h.items[p]) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

// siftDown restores the invariant below i, preferring the left child
// when both children rank equal.
func (h *MinHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && h.less(h.items[r], h.items[l]) {
			best = r
		}
		if !h.less(h.items[best], h.items[i]) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
