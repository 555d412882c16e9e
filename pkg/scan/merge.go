// The list keyspace is split into shards, each able to list its names in increasing order. Answering KEYS sorted
// doesn't need to collect and sort every name: the shard streams are merged lazily with a heap holding one head per
// shard.

package scan

import (
	"container/heap"
	"errors"
	"iter"

	"github.com/nobletooth/linear/pkg/utils"
)

// CompareFn defines a three-way comparison. It must return a negative value if x < y, 0 if x == y, and a positive
// value if x > y.
type CompareFn[T any] func(x, y T) int

// heapElement is the latest value pulled from sequences[seqIdx].
type heapElement[T any] struct {
	value  T
	seqIdx int
}

// mergeHeap holds the heads of every sequence that still has values.
type mergeHeap[T any] struct { // Implements heap.Interface.
	compare  CompareFn[T]
	elements []heapElement[T]
}

var _ heap.Interface = (*mergeHeap[int])(nil)

func (mh *mergeHeap[T]) Len() int { return len(mh.elements) }

// Less orders by value, then by sequence index so earlier sequences win ties.
func (mh *mergeHeap[T]) Less(i, j int) bool {
	if c := mh.compare(mh.elements[i].value, mh.elements[j].value); c != 0 {
		return c < 0
	}
	return mh.elements[i].seqIdx < mh.elements[j].seqIdx
}

func (mh *mergeHeap[T]) Swap(i, j int) {
	mh.elements[i], mh.elements[j] = mh.elements[j], mh.elements[i]
}

func (mh *mergeHeap[T]) Push(x any) {
	element, ok := x.(heapElement[T])
	if !ok {
		utils.RaiseInvariant("scan", "pushed_invalid_type", "An item with invalid type was pushed to merge heap.")
		return
	}
	mh.elements = append(mh.elements, element)
}

func (mh *mergeHeap[T]) Pop() any {
	last := mh.elements[len(mh.elements)-1]
	mh.elements = mh.elements[:len(mh.elements)-1]
	return last
}

// MergeSorted merges increasing `sequences` into a single increasing sequence. Values equal to the previously yielded
// one are dropped, so the output is strictly increasing.
func MergeSorted[T any](compare CompareFn[T], sequences ...iter.Seq[T]) (iter.Seq[T], error) {
	if compare == nil {
		return nil, errors.New("expected a non-nil comparison function")
	}
	return func(yield func(T) bool) {
		mh := &mergeHeap[T]{compare: compare, elements: make([]heapElement[T], 0, len(sequences))}
		pull := make([]func() (T, bool), len(sequences))
		for i, seq := range sequences {
			pullFn, stopFn := iter.Pull(seq)
			defer stopFn()
			pull[i] = pullFn
			if first, ok := pullFn(); ok {
				heap.Push(mh, heapElement[T]{value: first, seqIdx: i})
			}
		}

		var last T
		hasLast := false
		for mh.Len() > 0 {
			top := heap.Pop(mh).(heapElement[T])
			if next, ok := pull[top.seqIdx](); ok {
				heap.Push(mh, heapElement[T]{value: next, seqIdx: top.seqIdx})
			}
			if hasLast && compare(last, top.value) == 0 {
				continue // Duplicate of the value just yielded.
			}
			if !yield(top.value) {
				return
			}
			last, hasLast = top.value, true
		}
	}, nil
}
