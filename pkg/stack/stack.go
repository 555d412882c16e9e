// Package stack provides an unbounded LIFO stack backed by a doubly linked list; the list head is the top.
package stack

import "github.com/nobletooth/linear/pkg/list"

// Stack is a last-in first-out container. It's not safe for concurrent use.
type Stack[T any] struct {
	elements list.Sequence[T]
}

// New creates a stack by pushing `values` in order, so the last value ends up on top.
func New[T any](values ...T) *Stack[T] {
	s := &Stack[T]{elements: list.NewFunc[T](nil)}
	for _, v := range values {
		s.Push(v)
	}
	return s
}

// On creates a stack on top of `elements`, whose head is the top.
func On[T any](elements list.Sequence[T]) *Stack[T] {
	return &Stack[T]{elements: elements}
}

// Push puts `v` on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.elements.Prepend(v)
}

// Pop removes the top value; false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	return s.elements.PopFront()
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.elements.Head()
}

func (s *Stack[T]) Len() int      { return s.elements.Len() }
func (s *Stack[T]) IsEmpty() bool { return s.elements.IsEmpty() }
func (s *Stack[T]) Clear()        { s.elements.Clear() }

// ToSlice returns the values from top to bottom.
func (s *Stack[T]) ToSlice() []T {
	return s.elements.ToSlice()
}

func (s *Stack[T]) String() string {
	return s.elements.String()
}
