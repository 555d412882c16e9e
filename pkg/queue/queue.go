// Package queue provides an unbounded FIFO queue backed by a doubly linked list.
// Values enter at the list tail and leave from the list head.
package queue

import "github.com/nobletooth/linear/pkg/list"

// Queue is a first-in first-out container. It's not safe for concurrent use.
type Queue[T any] struct {
	elements list.Sequence[T]
}

// New creates a queue holding `values`; the first value is the front.
func New[T any](values ...T) *Queue[T] {
	return &Queue[T]{elements: list.NewFunc[T](nil, values...)}
}

// On creates a queue on top of `elements`, whose head is the front.
func On[T any](elements list.Sequence[T]) *Queue[T] {
	return &Queue[T]{elements: elements}
}

// Enqueue adds `v` to the back of the queue.
func (q *Queue[T]) Enqueue(v T) {
	q.elements.Append(v)
}

// EnqueueMany adds `values` to the back of the queue in order.
func (q *Queue[T]) EnqueueMany(values ...T) {
	for _, v := range values {
		q.elements.Append(v)
	}
}

// Dequeue removes the front value; false if the queue is empty.
func (q *Queue[T]) Dequeue() (T, bool) {
	return q.elements.PopFront()
}

// DequeueMany removes up to `count` values from the front. It returns fewer values if the queue runs out.
func (q *Queue[T]) DequeueMany(count int) []T {
	values := make([]T, 0, min(max(count, 0), q.Len()))
	for range count {
		v, ok := q.elements.PopFront()
		if !ok {
			break
		}
		values = append(values, v)
	}
	return values
}

// Peek returns the front value without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	return q.elements.Head()
}

// Front is an alias of Peek.
func (q *Queue[T]) Front() (T, bool) {
	return q.elements.Head()
}

// Back returns the most recently enqueued value.
func (q *Queue[T]) Back() (T, bool) {
	return q.elements.Tail()
}

func (q *Queue[T]) Len() int      { return q.elements.Len() }
func (q *Queue[T]) IsEmpty() bool { return q.elements.IsEmpty() }
func (q *Queue[T]) Clear()        { q.elements.Clear() }

// Concat enqueues every value of `other` in order; `other` is left untouched.
func (q *Queue[T]) Concat(other *Queue[T]) {
	// Snapshot first so q.Concat(q) terminates.
	for _, v := range other.ToSlice() {
		q.elements.Append(v)
	}
}

// Clone returns a new queue with the same values.
func (q *Queue[T]) Clone() *Queue[T] {
	return New(q.ToSlice()...)
}

// ToSlice returns the values from front to back.
func (q *Queue[T]) ToSlice() []T {
	return q.elements.ToSlice()
}

// ForEach calls `fn` on every value from front to back.
func (q *Queue[T]) ForEach(fn func(T)) {
	for v := range q.elements.All() {
		fn(v)
	}
}

// Filter returns a new queue with the values for which `keep` returns true.
func (q *Queue[T]) Filter(keep func(T) bool) *Queue[T] {
	filtered := New[T]()
	for v := range q.elements.All() {
		if keep(v) {
			filtered.Enqueue(v)
		}
	}
	return filtered
}

func (q *Queue[T]) String() string {
	return q.elements.String()
}
