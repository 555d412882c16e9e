package queue

import (
	"testing"

	"github.com/nobletooth/linear/pkg/list"
	"github.com/stretchr/testify/assert"
)

func TestQueue_EnqueueDequeue(t *testing.T) {
	q := New(1, 2)
	q.Enqueue(3)
	q.EnqueueMany(4, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, q.ToSlice())

	front, ok := q.Front()
	assert.True(t, ok)
	assert.Equal(t, 1, front)
	back, ok := q.Back()
	assert.True(t, ok)
	assert.Equal(t, 5, back)

	got, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 1, got)
	peeked, _ := q.Peek()
	assert.Equal(t, 2, peeked)
	assert.Equal(t, 4, q.Len())
}

func TestQueue_DequeueMany(t *testing.T) {
	for _, testCase := range []struct {
		name      string
		count     int
		expected  []int
		remaining []int
	}{
		{name: "some", count: 2, expected: []int{1, 2}, remaining: []int{3}},
		{name: "more than available", count: 10, expected: []int{1, 2, 3}, remaining: []int{}},
		{name: "zero", count: 0, expected: []int{}, remaining: []int{1, 2, 3}},
		{name: "negative", count: -1, expected: []int{}, remaining: []int{1, 2, 3}},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			q := New(1, 2, 3)
			assert.Equal(t, testCase.expected, q.DequeueMany(testCase.count))
			assert.Equal(t, testCase.remaining, q.ToSlice())
		})
	}
}

func TestQueue_Empty(t *testing.T) {
	q := New[string]()
	assert.True(t, q.IsEmpty())
	_, ok := q.Dequeue()
	assert.False(t, ok)
	_, ok = q.Peek()
	assert.False(t, ok)
	_, ok = q.Back()
	assert.False(t, ok)
	assert.Equal(t, "[]", q.String())
}

func TestQueue_ConcatCloneFilter(t *testing.T) {
	q := New(1, 2, 3)
	other := New(4, 5)
	q.Concat(other)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, q.ToSlice())
	assert.Equal(t, []int{4, 5}, other.ToSlice(), "Concat must not drain the other queue")

	q.Concat(q)
	assert.Equal(t, 10, q.Len())

	clone := q.Clone()
	clone.Clear()
	assert.True(t, clone.IsEmpty())
	assert.Equal(t, 10, q.Len(), "Clearing a clone must not affect the original")

	even := New(1, 2, 3, 4, 5, 6).Filter(func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, even.ToSlice())

	var sum int
	even.ForEach(func(v int) { sum += v })
	assert.Equal(t, 12, sum)
}

func TestQueue_On(t *testing.T) {
	elements := list.New(1, 2, 3)
	q := On(elements)
	q.Enqueue(4)
	assert.Equal(t, []int{1, 2, 3, 4}, elements.ToSlice(), "Queue must write through to its sequence")

	got, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, 1, got)
	head, _ := elements.Head()
	assert.Equal(t, 2, head)
}
