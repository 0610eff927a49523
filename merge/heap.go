package merge

import (
	"container/heap"

	"github.com/Siarh199/external-sorter/internal/numeric"
)

// entry is a min-heap element: the index of the run it came from and its
// current head value.
type entry[N numeric.Number] struct {
	runIndex int
	value    N
}

// innerHeap implements heap.Interface; it is the Go generics counterpart of
// queue/priority_queue.go's innerPriorityQueue, specialised to (run index,
// value) pairs instead of boxed interface{} values.
type innerHeap[N numeric.Number] struct {
	items []entry[N]
}

func (h *innerHeap[N]) Len() int            { return len(h.items) }
func (h *innerHeap[N]) Less(i, j int) bool  { return h.items[i].value < h.items[j].value }
func (h *innerHeap[N]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *innerHeap[N]) Push(x interface{})  { h.items = append(h.items, x.(entry[N])) }
func (h *innerHeap[N]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Heap is a min-heap of at most R entries, each (run_index, value). Exactly
// one entry per non-exhausted run is resident at any time.
type Heap[N numeric.Number] struct {
	inner innerHeap[N]
}

// NewHeap returns an empty Heap.
func NewHeap[N numeric.Number]() *Heap[N] {
	h := &Heap[N]{}
	heap.Init(&h.inner)
	return h
}

// Len returns the number of resident entries.
func (h *Heap[N]) Len() int { return h.inner.Len() }

// Push adds (runIndex, value) to the heap.
func (h *Heap[N]) Push(runIndex int, value N) {
	heap.Push(&h.inner, entry[N]{runIndex: runIndex, value: value})
}

// PopMin removes and returns the minimum entry.
func (h *Heap[N]) PopMin() (runIndex int, value N) {
	e := heap.Pop(&h.inner).(entry[N])
	return e.runIndex, e.value
}

// PeekMinValue returns the value of the minimum entry without removing it,
// and false if the heap is empty.
func (h *Heap[N]) PeekMinValue() (value N, ok bool) {
	if h.inner.Len() == 0 {
		return value, false
	}
	return h.inner.items[0].value, true
}
