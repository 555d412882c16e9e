package port

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListStore_UpdateRead(t *testing.T) {
	store := newListStoreWith(4)

	assert.False(t, store.Update("missing", false /*create*/, func(l *StringList) { t.Fail() }))
	assert.False(t, store.Read("missing", func(l *StringList) { t.Fail() }))

	assert.True(t, store.Update("tasks", true /*create*/, func(l *StringList) {
		l.Append("a")
		l.Append("b")
	}))
	var got []string
	assert.True(t, store.Read("tasks", func(l *StringList) { got = l.ToSlice() }))
	assert.Equal(t, []string{"a", "b"}, got)

	// Emptied lists leave the keyspace.
	store.Update("tasks", false /*create*/, func(l *StringList) { l.Clear() })
	assert.False(t, store.Read("tasks", func(l *StringList) {}))
	// Creating a list without putting values in it doesn't keep it either.
	store.Update("ghost", true /*create*/, func(l *StringList) {})
	assert.Empty(t, store.Names("*"))
}

func TestListStore_NamesDeleteFlush(t *testing.T) {
	store := newListStoreWith(3)
	for _, name := range []string{"queue:b", "stack:a", "queue:a", "queue:c"} {
		store.Update(name, true /*create*/, func(l *StringList) { l.Append("x") })
	}
	assert.Equal(t, []string{"queue:a", "queue:b", "queue:c", "stack:a"}, store.Names("*"))
	assert.Equal(t, []string{"queue:a", "queue:b", "queue:c"}, store.Names("queue:*"))

	assert.Equal(t, 2, store.Delete("queue:a", "stack:a", "nope"))
	assert.Equal(t, []string{"queue:b", "queue:c"}, store.Names("*"))

	store.Flush()
	assert.Empty(t, store.Names("*"))
	assert.NoError(t, store.Close())
}

func TestListStore_NonPositiveShards(t *testing.T) {
	store := newListStoreWith(0)
	assert.Len(t, store.shards, 1)
}

func TestListStore_ConcurrentUpdates(t *testing.T) {
	store := newListStoreWith(8)
	const writers, perWriter = 8, 100
	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWriter {
				name := fmt.Sprintf("list-%d", i%4)
				store.Update(name, true /*create*/, func(l *StringList) { l.Append(fmt.Sprint(w)) })
			}
		}()
	}
	wg.Wait()

	total := 0
	for i := range 4 {
		store.Read(fmt.Sprintf("list-%d", i), func(l *StringList) { total += l.Len() })
	}
	assert.Equal(t, writers*perWriter, total)
}
