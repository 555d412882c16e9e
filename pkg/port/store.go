// The list store keeps every named list of the server. Lists themselves are not thread-safe, so the keyspace is split
// into shards, each guarding its lists with its own mutex. A command only locks the shard its list name hashes to and
// doesn't block commands on lists living in other shards.

package port

import (
	"cmp"
	"flag"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/nobletooth/linear/pkg/list"
	"github.com/nobletooth/linear/pkg/scan"
	"github.com/nobletooth/linear/pkg/utils"
)

var shardCount = flag.Int("shards", 16, "Number of keyspace shards; each shard has its own lock.")

// StringList is the list type stored by the server.
type StringList = list.DoublyLinkedList[string]

// listShard owns a part of the keyspace.
type listShard struct {
	mux   sync.RWMutex
	lists map[string]*StringList
}

// ListStore maps list names to lists. Empty lists are dropped from the keyspace, like Redis does.
type ListStore struct {
	shards []*listShard
}

// NewListStore creates a store with the number of shards given by --shards.
func NewListStore() *ListStore {
	return newListStoreWith(*shardCount)
}

func newListStoreWith(shards int) *ListStore {
	if !utils.CheckInvariant(shards > 0, "port", "non_positive_shard_count",
		"Invalid shard count has been given to list store.", "shards", shards) {
		shards = 1
	}
	store := &ListStore{shards: make([]*listShard, shards)}
	for i := range shards {
		store.shards[i] = &listShard{lists: make(map[string]*StringList)}
	}
	return store
}

// getShard hashes the list `name` to pick its shard.
func (s *ListStore) getShard(name string) *listShard {
	return s.shards[xxhash.Sum64String(name)%uint64(len(s.shards))]
}

// Read calls `fn` with the list called `name` under a read lock. It returns false if there is no such list.
// `fn` must not mutate the list.
func (s *ListStore) Read(name string, fn func(l *StringList)) bool /*found*/ {
	shard := s.getShard(name)
	shard.mux.RLock()
	defer shard.mux.RUnlock()

	l, found := shard.lists[name]
	if found {
		fn(l)
	}
	return found
}

// Update calls `fn` with the list called `name` under a write lock. A missing list is created when `create` is true;
// otherwise Update returns false without calling `fn`. Lists left empty by `fn` are removed.
func (s *ListStore) Update(name string, create bool, fn func(l *StringList)) bool /*found*/ {
	shard := s.getShard(name)
	shard.mux.Lock()
	defer shard.mux.Unlock()

	l, found := shard.lists[name]
	if !found {
		if !create {
			return false
		}
		l = list.New[string]()
		shard.lists[name] = l
	}
	fn(l)
	if l.IsEmpty() {
		delete(shard.lists, name)
	}
	return true
}

// Delete removes the given lists and returns how many of them existed.
func (s *ListStore) Delete(names ...string) int {
	deleted := 0
	for _, name := range names {
		shard := s.getShard(name)
		shard.mux.Lock()
		if _, found := shard.lists[name]; found {
			delete(shard.lists, name)
			deleted++
		}
		shard.mux.Unlock()
	}
	return deleted
}

// sortedNames returns the list names of the shard in increasing order.
func (sh *listShard) sortedNames() iter.Seq[string] {
	sh.mux.RLock()
	names := slices.Sorted(maps.Keys(sh.lists))
	sh.mux.RUnlock()
	return slices.Values(names)
}

// Names returns the names of the lists matching the glob `pattern` in increasing order.
func (s *ListStore) Names(pattern string) []string {
	perShard := make([]iter.Seq[string], len(s.shards))
	for i, shard := range s.shards {
		perShard[i] = shard.sortedNames()
	}
	merged, err := scan.MergeSorted(cmp.Compare[string], perShard...)
	if err != nil {
		utils.RaiseInvariant("port", "merge_failed", "Failed to merge shard names.", "error", err)
		return nil
	}
	return slices.AppendSeq([]string{}, scan.MatchGlob(pattern, merged))
}

// Flush clears and drops every list.
func (s *ListStore) Flush() {
	for _, shard := range s.shards {
		shard.mux.Lock()
		for _, l := range shard.lists {
			l.Clear()
		}
		clear(shard.lists)
		shard.mux.Unlock()
	}
}

// Close releases the lists held by the store.
func (s *ListStore) Close() error {
	s.Flush()
	return nil
}
