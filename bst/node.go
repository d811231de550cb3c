package bst

import (
	"sync"
	"sync/atomic"
)

// Node is a single vertex of the tree. Value never changes after creation; each of the two child slots goes
// from empty to occupied at most once while writers are active.
type Node struct {
	Value uint32

	left  atomic.Pointer[Node]
	right atomic.Pointer[Node]

	// guards the decision to fill either slot of this node
	mu sync.Mutex
}

func newNode(val uint32) *Node {
	return &Node{Value: val}
}

// Left returns the left child, or nil if the slot is empty.
func (n *Node) Left() *Node {
	return n.left.Load()
}

// Right returns the right child, or nil if the slot is empty.
func (n *Node) Right() *Node {
	return n.right.Load()
}

// IsLeaf reports whether both slots are empty.
func (n *Node) IsLeaf() bool {
	return n.left.Load() == nil && n.right.Load() == nil
}

// slotFor picks the slot a value routes to. Equal values go left.
func (n *Node) slotFor(val uint32) *atomic.Pointer[Node] {
	if val <= n.Value {
		return &n.left
	}
	return &n.right
}
