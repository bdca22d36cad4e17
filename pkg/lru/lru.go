// Package lru implements an in-memory, entry-count-bounded LRU cache with
// write-back to a caller-supplied Supplier.
//
// Size is entry-count, not bytes; the eviction victim is always written back
// to the Supplier regardless of dirty status — there is no dirty tracking at
// this tier (see package bytelru for the byte-budgeted, dirty-tracked
// two-tier variant).
//
// © 2025 arclet authors. MIT License.
package lru

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/arclet/arclet/internal/llist"
)

// Supplier is the write-back and miss-fill target for a Cache. Implementations
// must be safe for concurrent use.
type Supplier[T any] interface {
	// Add persists val under key. Called on eviction and on explicit
	// write-back. Errors from eviction write-back are discarded by the
	// cache; Put with writeBackNow and FlushAllBackNow return them to the
	// caller.
	Add(key string, val T) error
	// Get returns the value for key and whether it was present.
	Get(key string) (T, bool, error)
}

// Cache is a fixed-capacity, entry-count-bounded LRU keyed by string, backed
// by a Supplier for miss-fill and eviction write-back.
type Cache[T any] struct {
	mu       sync.Mutex
	capacity int
	list     *llist.List[string, T]
	index    map[string]*llist.Node[string, T]
	supplier Supplier[T]
	fill     singleflight.Group
}

// New constructs a Cache with the given maximum entry count (capacity <= 0
// panics, since an LRU with no room can never hold anything).
func New[T any](capacity int, supplier Supplier[T]) *Cache[T] {
	if capacity <= 0 {
		panic("lru: capacity must be > 0")
	}
	return &Cache[T]{
		capacity: capacity,
		list:     llist.New[string, T](),
		index:    make(map[string]*llist.Node[string, T]),
		supplier: supplier,
	}
}

// supplierResult carries the outcome of a single Supplier.Get call through
// singleflight, which only returns (any, error).
type supplierResult[T any] struct {
	val T
	ok  bool
}

// Get returns the value for key, re-promoting it to most-recently-used. On a
// local miss the Supplier is consulted; a present result is admitted to the
// cache before being returned. Concurrent misses on the same key are
// collapsed through singleflight so only one goroutine actually calls the
// Supplier, the rest share its result.
func (c *Cache[T]) Get(key string) (T, bool, error) {
	c.mu.Lock()
	if n, ok := c.index[key]; ok {
		c.list.MoveToFront(n)
		v := n.Value
		c.mu.Unlock()
		return v, true, nil
	}
	c.mu.Unlock()

	res, err, _ := c.fill.Do(key, func() (any, error) {
		val, ok, err := c.supplier.Get(key)
		if err != nil {
			return supplierResult[T]{}, err
		}
		if ok {
			c.mu.Lock()
			c.admit(key, val)
			c.mu.Unlock()
		}
		return supplierResult[T]{val: val, ok: ok}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	sr := res.(supplierResult[T])
	if !sr.ok {
		var zero T
		return zero, false, nil
	}
	return sr.val, true, nil
}

// Put inserts or updates key, re-promoting it to most-recently-used. When
// writeBackNow is true the value is forwarded to the Supplier immediately, in
// addition to whatever write-back later eviction performs.
func (c *Cache[T]) Put(key string, val T, writeBackNow bool) error {
	c.mu.Lock()
	c.admit(key, val)
	c.mu.Unlock()

	if writeBackNow {
		return c.supplier.Add(key, val)
	}
	return nil
}

// admit inserts/updates key -> val at the front, evicting the
// least-recently-used entry if this insertion pushed the cache over
// capacity. Called with mu held.
//
// The victim is written back to the Supplier synchronously, before admit
// returns: a prior async write-back left a window where a concurrent Get
// miss on the just-evicted key could reach the Supplier before the write
// landed, spuriously reporting the key absent.
func (c *Cache[T]) admit(key string, val T) {
	if n, ok := c.index[key]; ok {
		n.Value = val
		c.list.MoveToFront(n)
		return
	}

	n := c.list.PushFront(key, val, 1)
	c.index[key] = n

	if c.list.Len() <= c.capacity {
		return
	}

	victim := c.list.Back()
	if victim == nil {
		return
	}
	delete(c.index, victim.Key)
	c.list.Remove(victim)
	_ = c.supplier.Add(victim.Key, victim.Value)
}

// FlushAllBackNow writes every cached entry to the Supplier without evicting
// any of them.
func (c *Cache[T]) FlushAllBackNow() error {
	c.mu.Lock()
	entries := make(map[string]T, c.list.Len())
	for n := c.list.Front(); n != nil; n = n.Next() {
		entries[n.Key] = n.Value
	}
	c.mu.Unlock()

	var firstErr error
	for k, v := range entries {
		if err := c.supplier.Add(k, v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close runs FlushAllBackNow, mirroring the "flush on drop" contract.
func (c *Cache[T]) Close() error {
	return c.FlushAllBackNow()
}

// Len returns the current number of resident entries.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}
