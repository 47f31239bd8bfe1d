// Package queue provides a generic binary min-heap used by the search
// algorithms.
package queue

// PriorityQueue is a binary min-heap over entries of type T. The ordering is
// defined by the comparator supplied at construction, so a queue instance
// carries no global state and multiple queues can run concurrently.
//
// Storage is value-based for cache locality; entries are never mutated after
// insertion.
type PriorityQueue[T any] struct {
	less  func(a, b T) bool
	items []T
}

// New creates a priority queue with the given initial capacity and
// comparator. less must report whether a sorts before b.
func New[T any](capacity int, less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{
		less:  less,
		items: make([]T, 0, capacity),
	}
}

// Len returns the number of entries in the queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

// Push inserts an entry while maintaining the heap invariant.
func (pq *PriorityQueue[T]) Push(item T) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// Pop removes and returns the minimum entry. The second return value is
// false when the queue is empty; callers rely on this to terminate loops.
func (pq *PriorityQueue[T]) Pop() (T, bool) {
	n := len(pq.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	var zero T
	pq.items[n-1] = zero // release for GC
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Peek returns the minimum entry without removing it. The second return
// value is false when the queue is empty.
func (pq *PriorityQueue[T]) Peek() (T, bool) {
	if len(pq.items) == 0 {
		var zero T
		return zero, false
	}
	return pq.items[0], true
}

// Reset clears the queue for reuse, keeping the backing array.
func (pq *PriorityQueue[T]) Reset() {
	var zero T
	for i := range pq.items {
		pq.items[i] = zero
	}
	pq.items = pq.items[:0]
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(pq.items[i], pq.items[p]) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && pq.less(pq.items[r], pq.items[l]) {
			best = r
		}
		if !pq.less(pq.items[best], pq.items[i]) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
