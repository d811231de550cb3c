package bst

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Tree is the root handle of a concurrent binary search tree. The zero value is an empty tree ready for use.
type Tree struct {
	root atomic.Pointer[Node]

	// guards installation of the root node, the same way Node.mu guards child slots
	mu sync.Mutex
}

var ErrEmptyTree = errors.New("no tree was built")

var ErrOrderViolation = errors.New("binary search tree order violated")

var ErrCountMismatch = errors.New("node count does not match number of values")

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root.Load()
}

func (t *Tree) IsEmpty() bool {
	return t.root.Load() == nil
}

// NewTreeFromKeys inserts keys one at a time, in order, on the calling goroutine.
func NewTreeFromKeys(keys []uint32) *Tree {
	t := &Tree{}
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}
