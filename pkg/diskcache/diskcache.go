// Package diskcache wraps pkg/kv as a directory-scoped cache: every Add is
// implicitly overwrite=true, and Close either leaves the backing directory
// in place (persist) or deletes it.
//
// © 2025 arclet authors. MIT License.
package diskcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arclet/arclet/pkg/arcerr"
	"github.com/arclet/arclet/pkg/concurrent"
	"github.com/arclet/arclet/pkg/kv"
)

// Cache is a kv.Engine plus a persist-on-close flag.
type Cache struct {
	engine  *kv.Engine
	dir     string
	persist bool
}

// Open opens (or creates) a cache rooted at dir, persisting it on Close.
// Reopening the same path restores the full key-space.
func Open(dir string) (*Cache, error) {
	e, err := kv.Open(dir)
	if err != nil {
		return nil, err
	}
	return &Cache{engine: e, dir: dir, persist: true}, nil
}

// OpenTemp creates a fresh cache under a temp directory named with prefix;
// it is deleted on Close unless the caller later flips Persist.
func OpenTemp(prefix string) (*Cache, error) {
	dir, err := os.MkdirTemp("", fmt.Sprintf("%s-*", prefix))
	if err != nil {
		return nil, arcerr.Wrap(arcerr.IO, "diskcache: mktemp", err)
	}
	e, err := kv.Open(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return &Cache{engine: e, dir: dir, persist: false}, nil
}

// Dir returns the backing directory path.
func (c *Cache) Dir() string { return c.dir }

// SetPersist overrides whether Close deletes the backing directory.
func (c *Cache) SetPersist(persist bool) { c.persist = persist }

// Add writes key/value, always overwriting any existing value.
func (c *Cache) Add(key, value []byte) error {
	return c.engine.Add(key, value, true)
}

// Get returns the value for key, or def if absent.
func (c *Cache) Get(key, def []byte) []byte {
	return c.engine.Get(key, def)
}

// Delete removes key, returning false if it was absent.
func (c *Cache) Delete(key []byte) bool {
	return c.engine.Delete(key)
}

// NextIter/PrevIter delegate to the backing engine.
func (c *Cache) NextIter(refKey []byte) *concurrent.Generator[kv.KV] { return c.engine.NextIter(refKey) }
func (c *Cache) PrevIter(refKey []byte) *concurrent.Generator[kv.KV] { return c.engine.PrevIter(refKey) }

// Close closes the backing engine, then deletes the directory unless persist
// is set.
func (c *Cache) Close() error {
	if err := c.engine.Close(); err != nil {
		return err
	}
	if !c.persist {
		return os.RemoveAll(filepath.Clean(c.dir))
	}
	return nil
}
