package bst

import (
	"errors"
	"fmt"
	"time"
)

type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// OrderError reports a child that sits on the wrong side of its parent. It can only come out of a broken
// insertion protocol, never from bad input.
type OrderError struct {
	Side   Side
	Parent uint32
	Child  uint32
}

func (e *OrderError) Error() string {
	if e.Side == SideLeft {
		return fmt.Sprintf("left subtree contains larger value (node %d, left child %d)", e.Parent, e.Child)
	}
	return fmt.Sprintf("right subtree contains smaller or equal value (node %d, right child %d)", e.Parent, e.Child)
}

func (e *OrderError) Unwrap() error {
	return ErrOrderViolation
}

// CountError reports that the tree holds a different number of nodes than values were offered to it.
type CountError struct {
	Expected int
	Counted  int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("# of values (%d) != # of nodes (%d)", e.Expected, e.Counted)
}

func (e *CountError) Unwrap() error {
	return ErrCountMismatch
}

// CheckCount compares the number of values a build was given against the number of nodes verification found.
func CheckCount(expected, counted int) error {
	if expected != counted {
		return &CountError{Expected: expected, Counted: counted}
	}
	return nil
}

func checkChildren(n *Node) error {
	if l := n.left.Load(); l != nil && l.Value > n.Value {
		return &OrderError{Side: SideLeft, Parent: n.Value, Child: l.Value}
	}
	if r := n.right.Load(); r != nil && r.Value <= n.Value {
		return &OrderError{Side: SideRight, Parent: n.Value, Child: r.Value}
	}
	return nil
}

// Verify checks every parent/child pair for ordering without modifying the tree. Like VerifyAndRelease it must
// not run while writers are active.
func (t *Tree) Verify() error {
	root := t.root.Load()
	if root == nil {
		return ErrEmptyTree
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := checkChildren(n); err != nil {
			return err
		}
		if l := n.left.Load(); l != nil {
			stack = append(stack, l)
		}
		if r := n.right.Load(); r != nil {
			stack = append(stack, r)
		}
	}
	return nil
}

// VerifyAndRelease checks the ordering of every parent/child pair, counts the nodes, and tears the tree down.
// It returns the number of nodes visited, root included.
//
// It must only be called once all writers are done; it reads without locks. The first ordering violation stops
// the pass and is returned as an *OrderError, along with the count so far. Either way the tree is empty
// afterwards and must not be used again.
func VerifyAndRelease(t *Tree) (int, error) {
	start := time.Now()
	defer func() {
		verifyDuration.Observe(time.Since(start).Seconds())
	}()

	root := t.root.Swap(nil)
	if root == nil {
		return 0, ErrEmptyTree
	}

	// explicit stack: all-duplicate key sets produce a single left spine as deep as the tree is large
	count := 0
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]
		count++

		if err := checkChildren(n); err != nil {
			verifyFailures.Inc()
			return count, err
		}

		// hand the children over to the stack, then drop this node's links to them
		if l := n.left.Swap(nil); l != nil {
			stack = append(stack, l)
		}
		if r := n.right.Swap(nil); r != nil {
			stack = append(stack, r)
		}
	}
	return count, nil
}

// IsOrderViolation reports whether err came from a broken ordering invariant.
func IsOrderViolation(err error) bool {
	return errors.Is(err, ErrOrderViolation)
}
