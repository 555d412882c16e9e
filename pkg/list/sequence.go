package list

import (
	"fmt"
	"iter"
)

// Sequence is the capability set shared by linear containers that keep their values in insertion order.
// Stacks and queues hold a Sequence rather than a concrete list type.
type Sequence[T any] interface {
	fmt.Stringer

	Append(v T)          // Adds `v` after the last value.
	Prepend(v T)         // Adds `v` before the first value.
	Delete(v T)          // Removes one occurrence of `v`; no-op if missing.
	PopFront() (T, bool) // Removes and returns the first value.
	Head() (T, bool)     // Returns the first value.
	Tail() (T, bool)     // Returns the last value.
	Clear()              // Removes every value.
	IsEmpty() bool       // Returns true when there are no values.
	Len() int            // Returns the number of values.
	ToSlice() []T        // Returns the values in order.
	All() iter.Seq[T]    // Iterates over the values in order.
}
