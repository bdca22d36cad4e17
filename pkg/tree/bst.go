// © 2025 arclet authors. MIT License.
package tree

import "github.com/arclet/arclet/pkg/concurrent"

// Comparator orders two values of T: negative if a < b, zero if equal,
// positive if a > b.
type Comparator[T any] func(a, b T) int

// BST is an ordered binary search tree generic over the node storage
// strategy supplied by alloc. Duplicates are rejected silently. postInsert
// and postRemove are invoked on every unwind step; the base tree's hooks are
// the identity function, while AVL installs a rebalancing hook in their
// place — this is the "trait object instead of rebalance-via-inheritance"
// shape the rest of the tree package follows.
type BST[T any] struct {
	root  Node[T]
	cmp   Comparator[T]
	alloc Allocator[T]

	postInsert func(Node[T]) Node[T]
	postRemove func(Node[T]) Node[T]
}

// NewBST constructs an empty BST using alloc for node creation.
func NewBST[T any](cmp Comparator[T], alloc Allocator[T]) *BST[T] {
	identity := func(n Node[T]) Node[T] { return n }
	return &BST[T]{cmp: cmp, alloc: alloc, postInsert: identity, postRemove: identity}
}

// Height returns the tree's overall height, or -1 if empty.
func (t *BST[T]) Height() int64 { return heightOf(t.root) }

// IsEmpty reports whether the tree holds no values.
func (t *BST[T]) IsEmpty() bool { return t.root == nil }

// OverrideRoot re-opens a previously persisted tree by loading the node
// stored under rootKey via the allocator.
func (t *BST[T]) OverrideRoot(rootKey string) error {
	n, ok, err := t.alloc.Load(rootKey)
	if err != nil {
		return err
	}
	if !ok {
		t.root = nil
		return nil
	}
	t.root = n
	return nil
}

// RootKey returns the stringified root value, or "" if the tree is empty.
func (t *BST[T]) RootKey() string {
	if t.root == nil {
		return ""
	}
	return t.root.Key()
}

func (t *BST[T]) recompute(n Node[T]) {
	left, _ := n.Left()
	right, _ := n.Right()
	n.SetHeight(1 + maxInt64(heightOf(left), heightOf(right)))
}

// Insert adds value, returning true iff it was not already present.
func (t *BST[T]) Insert(value T) bool {
	inserted := false
	t.root = t.insertNode(t.root, value, &inserted)
	return inserted
}

func (t *BST[T]) insertNode(node Node[T], value T, inserted *bool) Node[T] {
	if node == nil {
		*inserted = true
		return t.alloc.New(value, 0, nil, nil)
	}

	switch c := t.cmp(value, node.Value()); {
	case c < 0:
		left, _ := node.Left()
		node.SetLeft(t.insertNode(left, value, inserted))
	case c > 0:
		right, _ := node.Right()
		node.SetRight(t.insertNode(right, value, inserted))
	default:
		return node // duplicate, dropped silently
	}

	t.recompute(node)
	return t.postInsert(node)
}

// Exists reports whether value is present in the tree.
func (t *BST[T]) Exists(value T) bool {
	n := t.root
	for n != nil {
		switch c := t.cmp(value, n.Value()); {
		case c < 0:
			n, _ = n.Left()
		case c > 0:
			n, _ = n.Right()
		default:
			return true
		}
	}
	return false
}

// Remove deletes value if present, returning true iff a removal occurred.
func (t *BST[T]) Remove(value T) bool {
	removed := false
	t.root = t.removeNode(t.root, value, &removed)
	return removed
}

func (t *BST[T]) removeNode(node Node[T], value T, removed *bool) Node[T] {
	if node == nil {
		return nil
	}

	switch c := t.cmp(value, node.Value()); {
	case c < 0:
		left, _ := node.Left()
		node.SetLeft(t.removeNode(left, value, removed))
	case c > 0:
		right, _ := node.Right()
		node.SetRight(t.removeNode(right, value, removed))
	default:
		*removed = true
		return t.removeTarget(node)
	}

	t.recompute(node)
	return t.postRemove(node)
}

// removeTarget dispatches on child count: 0 children returns nil, 1 child
// returns that child, and 2 children pick the taller subtree's extreme value
// as the replacement, recursively deleting it from the donor subtree before
// rebuilding this node with the replacement value.
func (t *BST[T]) removeTarget(node Node[T]) Node[T] {
	left, hasLeft := node.Left()
	right, hasRight := node.Right()
	t.alloc.Delete(node.Key())

	switch {
	case !hasLeft && !hasRight:
		return nil
	case hasLeft && !hasRight:
		return left
	case !hasLeft && hasRight:
		return right
	}

	var replacement T
	var newLeft, newRight Node[T]
	discard := false

	if heightOf(left) >= heightOf(right) {
		replacement = t.maxValue(left)
		newLeft = t.removeNode(left, replacement, &discard)
		newRight = right
	} else {
		replacement = t.minValue(right)
		newRight = t.removeNode(right, replacement, &discard)
		newLeft = left
	}

	rebuilt := t.alloc.New(replacement, 0, newLeft, newRight)
	t.recompute(rebuilt)
	return t.postRemove(rebuilt)
}

func (t *BST[T]) maxValue(n Node[T]) T {
	for {
		right, ok := n.Right()
		if !ok {
			return n.Value()
		}
		n = right
	}
}

func (t *BST[T]) minValue(n Node[T]) T {
	for {
		left, ok := n.Left()
		if !ok {
			return n.Value()
		}
		n = left
	}
}

// Traverse exposes an in-order walk as a lazy, finite, non-restartable
// generator.
func (t *BST[T]) Traverse() *concurrent.Generator[T] {
	root := t.root
	return concurrent.NewGenerator(func(yield func(T) bool) {
		var walk func(Node[T]) bool
		walk = func(n Node[T]) bool {
			if n == nil {
				return true
			}
			if left, ok := n.Left(); ok {
				if !walk(left) {
					return false
				}
			}
			if !yield(n.Value()) {
				return false
			}
			if right, ok := n.Right(); ok {
				return walk(right)
			}
			return true
		}
		walk(root)
	})
}
