// Package datatree implements an append-only, versioned parent/child DAG:
// a hash-addressed node map plus a single head hash, supporting item
// addition under any existing parent, recursive or re-parenting deletion,
// and depth-based "deepest leaf" queries.
//
// © 2025 arclet authors. MIT License.
package datatree

import (
	"sync"
	"time"

	"github.com/arclet/arclet/pkg/arcerr"
	"github.com/arclet/arclet/pkg/hashutil"
)

// Node is a single entry in the DAG.
type Node[T any] struct {
	Value      T
	IsLeaf     bool
	Hash       string
	ParentHash string
	Timestamp  time.Time
}

// Tree is a hash -> Node map plus a head hash; every non-head node's parent
// is either the head or another node already in the map.
type Tree[T any] struct {
	mu       sync.RWMutex
	headHash string
	nodes    map[string]*Node[T]
}

// New constructs a Tree. An empty rootHash draws a fresh CSPRNG hash as the
// head; a caller-supplied rootHash is used as-is and need not (yet) name an
// existing node.
func New[T any](rootHash string) (*Tree[T], error) {
	if rootHash == "" {
		h, err := hashutil.RandomSHA256(true)
		if err != nil {
			return nil, arcerr.Wrap(arcerr.IO, "datatree: generate head hash", err)
		}
		rootHash = h
	}
	return &Tree[T]{headHash: rootHash, nodes: make(map[string]*Node[T])}, nil
}

// HeadHash returns the hash of the head item, usable as a parent for the
// tree's first real items.
func (t *Tree[T]) HeadHash() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.headHash
}

func (t *Tree[T]) exists(hash string) bool {
	_, ok := t.nodes[hash]
	return ok
}

// AddItem stores value under parentHash, which must be the head hash or an
// existing node's hash. itemHash may be supplied by the caller (it must not
// already exist) or left empty to draw a fresh CSPRNG hash. Returns the
// item's hash.
func (t *Tree[T]) AddItem(value T, parentHash, itemHash string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if parentHash != t.headHash && !t.exists(parentHash) {
		return "", arcerr.New(arcerr.InvalidInput, "datatree: parent hash not found")
	}

	if itemHash == "" {
		h, err := hashutil.RandomSHA256(true)
		if err != nil {
			return "", arcerr.Wrap(arcerr.IO, "datatree: generate item hash", err)
		}
		itemHash = h
	} else if t.exists(itemHash) {
		return "", arcerr.New(arcerr.AlreadyExists, "datatree: item hash already present")
	}

	t.nodes[itemHash] = &Node[T]{
		Value: value, IsLeaf: true, Hash: itemHash,
		ParentHash: parentHash, Timestamp: time.Now(),
	}
	if parent, ok := t.nodes[parentHash]; ok {
		parent.IsLeaf = false
	}
	return itemHash, nil
}

// GetItem returns the value stored at itemHash.
func (t *Tree[T]) GetItem(itemHash string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[itemHash]
	if !ok {
		var zero T
		return zero, false
	}
	return n.Value, true
}

// GetParentForItem returns the parent hash of itemHash.
func (t *Tree[T]) GetParentForItem(itemHash string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[itemHash]
	if !ok {
		return "", false
	}
	return n.ParentHash, true
}

// IsItemALeaf reports whether itemHash names a node with no children.
func (t *Tree[T]) IsItemALeaf(itemHash string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[itemHash]
	return ok && n.IsLeaf
}

// GetChildrenOfItem returns the direct (or, if recursive, all transitive)
// children of parentHash.
func (t *Tree[T]) GetChildrenOfItem(parentHash string, recursive bool) []*Node[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.childrenOfLocked(parentHash, recursive)
}

func (t *Tree[T]) childrenOfLocked(parentHash string, recursive bool) []*Node[T] {
	var direct []*Node[T]
	for _, n := range t.nodes {
		if n.ParentHash == parentHash {
			direct = append(direct, n)
		}
	}
	if !recursive {
		return direct
	}
	all := append([]*Node[T]{}, direct...)
	for _, n := range direct {
		all = append(all, t.childrenOfLocked(n.Hash, true)...)
	}
	return all
}

// GetAllLeaves returns every node currently marked as a leaf.
func (t *Tree[T]) GetAllLeaves() []*Node[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var leaves []*Node[T]
	for _, n := range t.nodes {
		if n.IsLeaf {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// GetAllItems returns every node in the tree.
func (t *Tree[T]) GetAllItems() []*Node[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	items := make([]*Node[T], 0, len(t.nodes))
	for _, n := range t.nodes {
		items = append(items, n)
	}
	return items
}

// nodeDepth returns the root-to-node depth of nodeHash, walking parent links
// up to the head hash, or -1 if nodeHash is absent. Called with mu held.
func (t *Tree[T]) nodeDepth(nodeHash string) int64 {
	if !t.exists(nodeHash) {
		return -1
	}
	var depth int64
	cur := nodeHash
	for cur != t.headHash {
		n, ok := t.nodes[cur]
		if !ok {
			break
		}
		depth++
		cur = n.ParentHash
	}
	return depth
}

// Deepest returns the hash of the leaf with maximum root-to-node depth,
// breaking ties by oldest timestamp.
func (t *Tree[T]) Deepest() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var best string
	bestDepth := int64(-1)
	var bestTime time.Time
	found := false

	for _, n := range t.leavesLocked() {
		depth := t.nodeDepth(n.Hash)
		if depth > bestDepth || (depth == bestDepth && n.Timestamp.Before(bestTime)) {
			best = n.Hash
			bestDepth = depth
			bestTime = n.Timestamp
			found = true
		}
	}
	return best, found
}

func (t *Tree[T]) leavesLocked() []*Node[T] {
	var leaves []*Node[T]
	for _, n := range t.nodes {
		if n.IsLeaf {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// DeleteItem removes itemHash from the tree. If deleteChildren is true, its
// entire subtree is deleted recursively; otherwise its direct children are
// re-parented onto itemHash's own parent. Because the head hash is always a
// valid parent (it never needs a storable node of its own), re-parenting a
// deleted top-level item's children onto the head is always well-defined —
// there is no "new root" to pick, unlike a tree without a permanent head.
func (t *Tree[T]) DeleteItem(itemHash string, deleteChildren bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleteItemLocked(itemHash, deleteChildren)
}

func (t *Tree[T]) deleteItemLocked(itemHash string, deleteChildren bool) error {
	node, ok := t.nodes[itemHash]
	if !ok {
		return arcerr.New(arcerr.NotFound, "datatree: item not found")
	}

	for _, child := range t.childrenOfLocked(itemHash, false) {
		if deleteChildren {
			if err := t.deleteItemLocked(child.Hash, true); err != nil {
				return err
			}
		} else {
			child.ParentHash = node.ParentHash
		}
	}

	delete(t.nodes, itemHash)

	if parent, ok := t.nodes[node.ParentHash]; ok {
		if len(t.childrenOfLocked(node.ParentHash, false)) == 0 {
			parent.IsLeaf = true
		}
	}
	return nil
}
