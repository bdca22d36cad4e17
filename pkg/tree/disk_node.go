// © 2025 arclet authors. MIT License.
package tree

import (
	"strconv"

	"github.com/arclet/arclet/internal/filestring"
	"github.com/arclet/arclet/pkg/diskcache"
)

// diskNode owns a handle to a shared disk_cache and the two key strings for
// its children; children are materialized on demand by looking up the
// serialized node under that key. The node's own key is the stringified
// value; the serialized payload is a packed tuple (value, height, left_key,
// right_key).
type diskNode[T any] struct {
	cache      *diskcache.Cache
	toString   func(T) string
	fromString func(string) (T, error)

	value             T
	height            int64
	leftKey, rightKey string // empty means "no child"
}

func (n *diskNode[T]) Value() T          { return n.value }
func (n *diskNode[T]) Height() int64     { return n.height }
func (n *diskNode[T]) Key() string       { return n.toString(n.value) }

func (n *diskNode[T]) SetHeight(h int64) {
	n.height = h
	n.flush()
}

func (n *diskNode[T]) Left() (Node[T], bool)  { return n.loadChild(n.leftKey) }
func (n *diskNode[T]) Right() (Node[T], bool) { return n.loadChild(n.rightKey) }

func (n *diskNode[T]) SetLeft(c Node[T]) {
	n.leftKey = n.flushChild(c)
	n.flush()
}

func (n *diskNode[T]) SetRight(c Node[T]) {
	n.rightKey = n.flushChild(c)
	n.flush()
}

func (n *diskNode[T]) flushChild(c Node[T]) string {
	if c == nil {
		return ""
	}
	if dc, ok := c.(*diskNode[T]); ok {
		dc.flush()
		return dc.Key()
	}
	// Foreign node kind (e.g. memory_node handed to a disk-backed tree):
	// adopt it as a disk node under its own key before linking.
	adopted := &diskNode[T]{
		cache: n.cache, toString: n.toString, fromString: n.fromString,
		value: c.Value(), height: c.Height(),
	}
	if left, ok := c.Left(); ok {
		adopted.leftKey = n.flushChild(left)
	}
	if right, ok := c.Right(); ok {
		adopted.rightKey = n.flushChild(right)
	}
	adopted.flush()
	return adopted.Key()
}

func (n *diskNode[T]) loadChild(key string) (Node[T], bool) {
	if key == "" {
		return nil, false
	}
	raw := n.cache.Get([]byte(key), nil)
	if raw == nil {
		return nil, false
	}
	child, err := decodeDiskNode(n.cache, n.toString, n.fromString, raw)
	if err != nil {
		return nil, false
	}
	return child, true
}

// flush writes this node's serialized payload to the cache under its own
// key. Every structural change (SetLeft, SetRight, SetHeight) calls flush.
func (n *diskNode[T]) flush() {
	payload := filestring.Pack([][]byte{
		[]byte(n.toString(n.value)),
		[]byte(strconv.FormatInt(n.height, 10)),
		[]byte(n.leftKey),
		[]byte(n.rightKey),
	})
	_ = n.cache.Add([]byte(n.Key()), payload)
}

func decodeDiskNode[T any](cache *diskcache.Cache, toString func(T) string, fromString func(string) (T, error), raw []byte) (*diskNode[T], error) {
	fields, err := filestring.Unpack(raw)
	if err != nil {
		return nil, err
	}
	value, err := fromString(string(fields[0]))
	if err != nil {
		return nil, err
	}
	height, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return nil, err
	}
	return &diskNode[T]{
		cache: cache, toString: toString, fromString: fromString,
		value: value, height: height,
		leftKey: string(fields[2]), rightKey: string(fields[3]),
	}, nil
}

// DiskAllocator builds disk_node instances backed by a shared disk_cache.
type DiskAllocator[T any] struct {
	Cache      *diskcache.Cache
	ToString   func(T) string
	FromString func(string) (T, error)
}

func (a DiskAllocator[T]) New(value T, height int64, left, right Node[T]) Node[T] {
	n := &diskNode[T]{cache: a.Cache, toString: a.ToString, fromString: a.FromString, value: value, height: height}
	if left != nil {
		n.leftKey = n.flushChild(left)
	}
	if right != nil {
		n.rightKey = n.flushChild(right)
	}
	n.flush()
	return n
}

// Load resolves a previously persisted node by its stringified-value key, to
// support reopening a tree whose root key was recorded externally.
func (a DiskAllocator[T]) Load(key string) (Node[T], bool, error) {
	raw := a.Cache.Get([]byte(key), nil)
	if raw == nil {
		return nil, false, nil
	}
	n, err := decodeDiskNode(a.Cache, a.ToString, a.FromString, raw)
	if err != nil {
		return nil, false, err
	}
	return n, true, nil
}

// Delete removes the persisted entry for key.
func (a DiskAllocator[T]) Delete(key string) {
	a.Cache.Delete([]byte(key))
}
