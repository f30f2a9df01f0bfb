package datastructure

import "errors"

var (
	ErrPriorityQueueEmpty  = errors.New("priority queue is empty")
	ErrPQItemNotFound      = errors.New("item not found in priority queue")
	ErrPQRankBiggerThanOld = errors.New("new rank is bigger than old rank")
)

type PriorityQueueNode[T comparable] struct {
	Rank float64
	Item T
}

func NewPriorityQueueNode[T comparable](rank float64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{Rank: rank, Item: item}
}

type pqEntry[T comparable] struct {
	node PriorityQueueNode[T]
	seq  uint64
}

// MinHeap is a binary min-heap keyed by Rank. Entries with equal rank are
// extracted in insertion order, so repeated runs over the same input pop in
// the same sequence.
type MinHeap[T comparable] struct {
	heap    []pqEntry[T]
	indexes map[T]int
	counter uint64
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap:    make([]pqEntry[T], 0),
		indexes: make(map[T]int),
	}
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].node.Rank != h.heap[j].node.Rank {
		return h.heap[i].node.Rank < h.heap[j].node.Rank
	}
	return h.heap[i].seq < h.heap[j].seq
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.indexes[h.heap[i].node.Item] = i
	h.indexes[h.heap[j].node.Item] = j
}

func (h *MinHeap[T]) up(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if !h.less(idx, parent) {
			break
		}
		h.swap(idx, parent)
		idx = parent
	}
}

func (h *MinHeap[T]) down(idx int) {
	n := len(h.heap)
	for {
		smallest := idx
		left := 2*idx + 1
		right := 2*idx + 2
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == idx {
			break
		}
		h.swap(idx, smallest)
		idx = smallest
	}
}

func (h *MinHeap[T]) Insert(item PriorityQueueNode[T]) {
	h.heap = append(h.heap, pqEntry[T]{node: item, seq: h.counter})
	h.counter++
	idx := len(h.heap) - 1
	h.indexes[item.Item] = idx
	h.up(idx)
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrPriorityQueueEmpty
	}
	return h.heap[0].node, nil
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrPriorityQueueEmpty
	}
	min := h.heap[0].node
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.indexes, min.Item)
	if last > 0 {
		h.down(0)
	}
	return min, nil
}

// DecreaseKey lowers the rank of an item already in the heap. The updated
// entry keeps its original insertion sequence.
func (h *MinHeap[T]) DecreaseKey(item PriorityQueueNode[T]) error {
	idx, ok := h.indexes[item.Item]
	if !ok {
		return ErrPQItemNotFound
	}
	if item.Rank > h.heap[idx].node.Rank {
		return ErrPQRankBiggerThanOld
	}
	h.heap[idx].node.Rank = item.Rank
	h.up(idx)
	return nil
}

func (h *MinHeap[T]) Contains(item T) bool {
	_, ok := h.indexes[item]
	return ok
}
