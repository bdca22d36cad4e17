// © 2025 arclet authors. MIT License.
package tree

// memoryNode owns its children inline; no persistence involved.
type memoryNode[T any] struct {
	value       T
	height      int64
	left, right Node[T]
	toString    func(T) string
}

func (n *memoryNode[T]) Value() T         { return n.value }
func (n *memoryNode[T]) Height() int64    { return n.height }
func (n *memoryNode[T]) SetHeight(h int64) { n.height = h }

func (n *memoryNode[T]) Left() (Node[T], bool) {
	if n.left == nil {
		return nil, false
	}
	return n.left, true
}

func (n *memoryNode[T]) Right() (Node[T], bool) {
	if n.right == nil {
		return nil, false
	}
	return n.right, true
}

func (n *memoryNode[T]) SetLeft(c Node[T])  { n.left = c }
func (n *memoryNode[T]) SetRight(c Node[T]) { n.right = c }
func (n *memoryNode[T]) Key() string        { return n.toString(n.value) }

// MemoryAllocator builds memory_node instances. toString is used only to
// produce Key(), which matters for callers that need a stable node
// identifier (e.g. data structures indexing by tree node key); it has no
// effect on tree ordering.
type MemoryAllocator[T any] struct {
	ToString func(T) string
}

func (a MemoryAllocator[T]) New(value T, height int64, left, right Node[T]) Node[T] {
	return &memoryNode[T]{value: value, height: height, left: left, right: right, toString: a.ToString}
}

// Load always fails: in-memory nodes have no independent persisted form.
func (a MemoryAllocator[T]) Load(string) (Node[T], bool, error) { return nil, false, nil }

// Delete is a no-op: in-memory nodes have no backing storage to reclaim.
func (a MemoryAllocator[T]) Delete(string) {}
