// Package list provides a generic doubly linked list.
//
// Every lookup by value (Find, Delete, InsertAfter, InsertBefore) runs a bidirectional search: one cursor walks
// forward from the head while another walks backward from the tail, so a value near either end is found in a few
// steps. When both cursors match in the same round, the head-side node wins.
//
// Absence is never an error. Looking up, deleting or inserting relative to a value that isn't present leaves the list
// untouched. Inserting relative to an anchor on an empty list ignores the anchor and makes the new value the only
// element of the list.
//
// WARNING: DoublyLinkedList is not safe for concurrent use; callers sharing a list must serialize access.
package list

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/nobletooth/linear/pkg/utils"
)

// EqualFn reports whether two values of type T are considered equal.
type EqualFn[T any] func(x, y T) bool

// DoublyLinkedList is a list of values linked in both directions.
type DoublyLinkedList[T any] struct {
	head  *Node[T]
	tail  *Node[T]
	size  int
	equal EqualFn[T]
}

var _ Sequence[int] = (*DoublyLinkedList[int])(nil)

// New creates a list holding `values` in the given order, comparing values with ==.
func New[T comparable](values ...T) *DoublyLinkedList[T] {
	return NewFunc(func(x, y T) bool { return x == y }, values...)
}

// NewFunc creates a list holding `values` in the given order, comparing values with `equal`.
// A nil `equal` compares values structurally with reflect.DeepEqual.
func NewFunc[T any](equal EqualFn[T], values ...T) *DoublyLinkedList[T] {
	if equal == nil {
		equal = func(x, y T) bool { return reflect.DeepEqual(x, y) }
	}
	l := &DoublyLinkedList[T]{equal: equal}
	for _, v := range values {
		l.Append(v)
	}
	return l
}

// Len returns the number of elements in the list.
func (l *DoublyLinkedList[T]) Len() int {
	return l.size
}

// IsEmpty returns true if the list holds no nodes.
func (l *DoublyLinkedList[T]) IsEmpty() bool {
	return l.head == nil && l.tail == nil
}

// Front returns the first node of the list or nil if the list is empty.
func (l *DoublyLinkedList[T]) Front() *Node[T] {
	return l.head
}

// Back returns the last node of the list or nil if the list is empty.
func (l *DoublyLinkedList[T]) Back() *Node[T] {
	return l.tail
}

// Head returns the first value and false if the list is empty.
func (l *DoublyLinkedList[T]) Head() (T, bool) {
	if l.head == nil {
		return *new(T), false
	}
	return l.head.value, true
}

// Tail returns the last value and false if the list is empty.
func (l *DoublyLinkedList[T]) Tail() (T, bool) {
	if l.tail == nil {
		return *new(T), false
	}
	return l.tail.value, true
}

// Append adds a new value to the back of the list.
func (l *DoublyLinkedList[T]) Append(v T) {
	n := &Node[T]{value: v, prev: l.tail}
	if l.tail != nil {
		l.tail.setNext(n)
	} else {
		// List was empty.
		l.head = n
	}
	l.tail = n
	l.size++
}

// Prepend adds a new value to the front of the list.
func (l *DoublyLinkedList[T]) Prepend(v T) {
	n := &Node[T]{value: v, next: l.head}
	if l.head != nil {
		l.head.setPrev(n)
	} else { // List was empty.
		l.tail = n
	}
	l.head = n
	l.size++
}

// search runs the bidirectional search for `v` and returns the matching node or nil.
func (l *DoublyLinkedList[T]) search(v T) *Node[T] {
	for fwd, bwd := l.head, l.tail; fwd != nil && bwd != nil; fwd, bwd = fwd.next, bwd.prev {
		if l.equal(fwd.value, v) {
			return fwd
		}
		if l.equal(bwd.value, v) {
			return bwd
		}
		// Cursors met or are about to cross; every node has been compared.
		if fwd == bwd || fwd.next == bwd {
			break
		}
	}
	return nil
}

// Find returns the node holding `v`, searching from both ends at once.
func (l *DoublyLinkedList[T]) Find(v T) (*Node[T], bool /*found*/) {
	n := l.search(v)
	return n, n != nil
}

// Contains returns true if `v` is in the list.
func (l *DoublyLinkedList[T]) Contains(v T) bool {
	return l.search(v) != nil
}

// InsertAfter inserts `v` right after the node holding `anchor`. It's a no-op if `anchor` is missing.
// On an empty list `v` becomes the only element regardless of `anchor`.
func (l *DoublyLinkedList[T]) InsertAfter(anchor, v T) {
	if l.IsEmpty() {
		l.Append(v)
		return
	}
	if n := l.search(anchor); n != nil {
		n.insertAfter(&Node[T]{value: v}, l)
		l.size++
	}
}

// InsertBefore inserts `v` right before the node holding `anchor`. It's a no-op if `anchor` is missing.
// On an empty list `v` becomes the only element regardless of `anchor`.
func (l *DoublyLinkedList[T]) InsertBefore(anchor, v T) {
	if l.IsEmpty() {
		l.Prepend(v)
		return
	}
	if n := l.search(anchor); n != nil {
		n.insertBefore(&Node[T]{value: v}, l)
		l.size++
	}
}

// Delete removes the node holding `v`. It's a no-op if `v` is missing.
func (l *DoublyLinkedList[T]) Delete(v T) {
	if n := l.search(v); n != nil {
		n.removeNode(l)
		l.size--
	}
}

// PopFront removes the first node and returns its value; false if the list is empty.
func (l *DoublyLinkedList[T]) PopFront() (T, bool) {
	n := l.head
	if n == nil {
		return *new(T), false
	}
	n.removeNode(l)
	l.size--
	return n.value, true
}

// PopBack removes the last node and returns its value; false if the list is empty.
func (l *DoublyLinkedList[T]) PopBack() (T, bool) {
	n := l.tail
	if n == nil {
		return *new(T), false
	}
	n.removeNode(l)
	l.size--
	return n.value, true
}

// Clear drops every node of the list.
func (l *DoublyLinkedList[T]) Clear() {
	l.head, l.tail = nil, nil
	l.size = 0
}

// ToSlice returns the values of the list from head to tail.
func (l *DoublyLinkedList[T]) ToSlice() []T {
	values := make([]T, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		values = append(values, n.value)
	}
	if len(values) != l.size {
		utils.RaiseInvariant("list", "size_mismatch", "Forward traversal length differs from list size.",
			"traversed", len(values), "size", l.size)
	}
	return values
}

// All iterates over the values from head to tail.
func (l *DoublyLinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Backward iterates over the values from tail to head.
func (l *DoublyLinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.tail; n != nil; n = n.prev {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Reverse reverses the list in place by swapping the links of every node.
func (l *DoublyLinkedList[T]) Reverse() {
	visited := 0
	for n := l.head; n != nil; visited++ {
		n.prev, n.next = n.next, n.prev
		// Links are swapped already; prev now points to the node that used to follow n.
		n = n.prev
	}
	if visited != l.size {
		utils.RaiseInvariant("list", "size_mismatch", "Reverse visited a different number of nodes than list size.",
			"visited", visited, "size", l.size)
	}
	l.head, l.tail = l.tail, l.head
}

// String renders the list values like a slice, e.g. [1 2 3].
func (l *DoublyLinkedList[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			sb.WriteByte(' ')
		}
		_, _ = fmt.Fprint(&sb, n.value)
	}
	sb.WriteByte(']')
	return sb.String()
}
