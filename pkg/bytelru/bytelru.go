// Package bytelru implements the disk-bounded two-tier cache: a disk_cache
// hot tier plus an in-memory metadata list tracking {key, dirty, byteSize,
// lastUsedIndex} per resident key, evicted by a monotonic last-used counter
// until the byte budget is respected.
//
// © 2025 arclet authors. MIT License.
package bytelru

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/arclet/arclet/pkg/arcerr"
	"github.com/arclet/arclet/pkg/diskcache"
)

// Supplier is the write-back and miss-fill target for a Cache.
type Supplier interface {
	Add(key string, val []byte) error
	Get(key string) ([]byte, bool, error)
	Delete(key string) (bool, error)
}

type record struct {
	key           string
	dirty         bool
	size          int64
	lastUsedIndex uint64
}

// Cache is a byte-budgeted two-tier cache: disk_cache as the hot tier, a
// metadata record per key for dirty/size/recency bookkeeping, and a
// Supplier as the cold tier consulted on miss and written on dirty eviction.
type Cache struct {
	mu       sync.Mutex
	hot      *diskcache.Cache
	supplier Supplier
	capacity int64
	used     int64
	records  map[string]*record
	counter  uint64
	fill     singleflight.Group
}

// New constructs a Cache with the given byte capacity, fronted by hot (the
// disk_cache tier) and backed by supplier (the cold tier).
func New(capacity int64, hot *diskcache.Cache, supplier Supplier) *Cache {
	return &Cache{
		capacity: capacity,
		hot:      hot,
		supplier: supplier,
		records:  make(map[string]*record),
	}
}

func (c *Cache) nextIndex() uint64 {
	c.counter++
	return c.counter
}

// Add inserts key/val. writeThrough=true marks the entry clean (no future
// write-back needed); writeThrough=false marks it dirty (write back on
// eviction or explicit flush). Insertion may trigger eviction of other
// entries to respect the byte budget; an incoming item larger than the
// entire budget is still accepted once the cache has been fully drained.
func (c *Cache) Add(key string, val []byte, writeThrough bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.records[key]; ok {
		c.used -= old.size
		delete(c.records, key)
	}

	if err := c.hot.Add([]byte(key), val); err != nil {
		return err
	}

	incoming := int64(len(val))
	for c.used+incoming > c.capacity && len(c.records) > 0 {
		if !c.evictOne() {
			break
		}
	}

	c.records[key] = &record{
		key:           key,
		dirty:         !writeThrough,
		size:          incoming,
		lastUsedIndex: c.nextIndex(),
	}
	c.used += incoming
	return nil
}

// byteSupplierResult carries the outcome of a single Supplier.Get call
// through singleflight, which only returns (any, error).
type byteSupplierResult struct {
	val []byte
	ok  bool
}

// Get returns the value for key, consulting the hot tier first, then the
// Supplier on miss; a Supplier hit is admitted into the cache (clean).
// Concurrent misses on the same key are collapsed through singleflight so
// only one goroutine calls the Supplier.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	c.mu.Lock()
	if r, ok := c.records[key]; ok {
		r.lastUsedIndex = c.nextIndex()
		v := c.hot.Get([]byte(key), nil)
		c.mu.Unlock()
		if v != nil {
			return v, true, nil
		}
		return nil, false, nil
	}
	c.mu.Unlock()

	res, err, _ := c.fill.Do(key, func() (any, error) {
		val, ok, err := c.supplier.Get(key)
		if err != nil {
			return byteSupplierResult{}, err
		}
		if !ok || len(val) == 0 {
			return byteSupplierResult{}, nil
		}
		if err := c.Add(key, val, true); err != nil {
			return byteSupplierResult{}, err
		}
		return byteSupplierResult{val: val, ok: true}, nil
	})
	if err != nil {
		return nil, false, err
	}

	sr := res.(byteSupplierResult)
	if !sr.ok {
		return nil, false, nil
	}
	return sr.val, true, nil
}

// Delete removes key from the hot tier, the metadata tier, and the Supplier.
// It returns true if any of the three tiers actually removed something.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	r, hadRecord := c.records[key]
	if hadRecord {
		c.used -= r.size
		delete(c.records, key)
	}
	hotRemoved := c.hot.Delete([]byte(key))
	c.mu.Unlock()

	supplierRemoved, _ := c.supplier.Delete(key)

	return hadRecord || hotRemoved || supplierRemoved
}

// FlushAllBackNow writes back every dirty entry to the Supplier.
// Implementations may leave entries marked clean afterward to avoid
// redundant re-write on a later eviction; this implementation does so.
func (c *Cache) FlushAllBackNow() error {
	c.mu.Lock()
	dirty := make([]*record, 0, len(c.records))
	for _, r := range c.records {
		if r.dirty {
			dirty = append(dirty, r)
		}
	}
	c.mu.Unlock()

	var firstErr error
	for _, r := range dirty {
		v := c.hot.Get([]byte(r.key), nil)
		if v == nil {
			continue
		}
		if err := c.supplier.Add(r.key, v); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.mu.Lock()
		r.dirty = false
		c.mu.Unlock()
	}
	return firstErr
}

// evictOne removes the record with the lowest lastUsedIndex, writing it back
// to the Supplier first if dirty. Called with mu held; returns false if
// nothing was evicted (should not happen when len(records) > 0).
func (c *Cache) evictOne() bool {
	var victim *record
	for _, r := range c.records {
		if victim == nil || r.lastUsedIndex < victim.lastUsedIndex {
			victim = r
		}
	}
	if victim == nil {
		return false
	}

	if victim.dirty {
		v := c.hot.Get([]byte(victim.key), nil)
		if v != nil {
			_ = c.supplier.Add(victim.key, v)
		}
	}

	c.hot.Delete([]byte(victim.key))
	c.used -= victim.size
	delete(c.records, victim.key)
	return true
}

// Close flushes dirty entries and closes the hot tier.
func (c *Cache) Close() error {
	if err := c.FlushAllBackNow(); err != nil {
		return err
	}
	if err := c.hot.Close(); err != nil {
		return arcerr.Wrap(arcerr.IO, "bytelru: close hot tier", err)
	}
	return nil
}
