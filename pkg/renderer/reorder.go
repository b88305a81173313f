package renderer

import "container/heap"

// rowHeap is a min-heap of results keyed by row
type rowHeap []RowResult

func (h rowHeap) Len() int           { return len(h) }
func (h rowHeap) Less(i, j int) bool { return h[i].Row < h[j].Row }
func (h rowHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rowHeap) Push(x any) {
	*h = append(*h, x.(RowResult))
}

func (h *rowHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = RowResult{}
	*h = old[:n-1]
	return item
}

// ReorderBuffer turns rows finished in any order back into ascending row
// order. It is owned by a single goroutine.
type ReorderBuffer struct {
	next    int
	pending rowHeap
}

// NewReorderBuffer creates a buffer expecting row 0 first
func NewReorderBuffer() *ReorderBuffer {
	return &ReorderBuffer{}
}

// Push stores a finished row
func (b *ReorderBuffer) Push(result RowResult) {
	heap.Push(&b.pending, result)
}

// Pop returns the next row in order if it has arrived
func (b *ReorderBuffer) Pop() (RowResult, bool) {
	if len(b.pending) == 0 || b.pending[0].Row != b.next {
		return RowResult{}, false
	}
	b.next++
	return heap.Pop(&b.pending).(RowResult), true
}

// Next returns the row the buffer is waiting for
func (b *ReorderBuffer) Next() int {
	return b.next
}

// Pending returns the number of rows held back
func (b *ReorderBuffer) Pending() int {
	return len(b.pending)
}
