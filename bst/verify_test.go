package bst

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mkNode(val uint32, left, right *Node) *Node {
	n := newNode(val)
	if left != nil {
		n.left.Store(left)
	}
	if right != nil {
		n.right.Store(right)
	}
	return n
}

func mkTree(root *Node) *Tree {
	t := &Tree{}
	t.root.Store(root)
	return t
}

func TestVerifyAndReleaseOrderViolations(t *testing.T) {
	assert := assert.New(t)

	testVec := []struct {
		Name string
		Root *Node
		Side Side
		Msg  string
	}{
		{
			Name: "left larger",
			Root: mkNode(10, mkNode(20, nil, nil), nil),
			Side: SideLeft,
			Msg:  "left subtree contains larger value",
		},
		{
			Name: "right equal",
			Root: mkNode(10, nil, mkNode(10, nil, nil)),
			Side: SideRight,
			Msg:  "right subtree contains smaller or equal value",
		},
		{
			Name: "right smaller",
			Root: mkNode(10, mkNode(3, nil, nil), mkNode(15, mkNode(12, nil, nil), mkNode(1, nil, nil))),
			Side: SideRight,
			Msg:  "right subtree contains smaller or equal value",
		},
	}

	for _, c := range testVec {
		tree := mkTree(c.Root)
		assert.Error(tree.Verify(), c.Name)

		_, err := VerifyAndRelease(tree)
		assert.Error(err, c.Name)
		assert.True(IsOrderViolation(err), c.Name)
		assert.ErrorContains(err, c.Msg, c.Name)

		var oe *OrderError
		if assert.True(errors.As(err, &oe), c.Name) {
			assert.Equal(c.Side, oe.Side, c.Name)
		}
		assert.True(tree.IsEmpty(), c.Name)
	}
}

func TestVerifyAndReleaseEmpty(t *testing.T) {
	assert := assert.New(t)

	var tree Tree
	count, err := VerifyAndRelease(&tree)
	assert.ErrorIs(err, ErrEmptyTree)
	assert.Zero(count)
	assert.ErrorIs(tree.Verify(), ErrEmptyTree)
}

func TestVerifyAndReleaseClearsLinks(t *testing.T) {
	assert := assert.New(t)

	leaf := mkNode(1, nil, nil)
	mid := mkNode(4, leaf, mkNode(6, nil, nil))
	root := mkNode(8, mid, mkNode(9, nil, nil))
	tree := mkTree(root)

	assert.NoError(tree.Verify())
	assert.Equal(5, tree.Len())

	count, err := VerifyAndRelease(tree)
	assert.NoError(err)
	assert.Equal(5, count)
	assert.True(tree.IsEmpty())
	assert.True(root.IsLeaf())
	assert.True(mid.IsLeaf())
}

func TestVerifyAndReleaseCountResets(t *testing.T) {
	assert := assert.New(t)

	// counting is per call; a second cycle in the same process starts from zero
	for range 3 {
		tree, _ := Build(context.Background(), 100, 3, 4)
		count, err := VerifyAndRelease(tree)
		assert.NoError(err)
		assert.Equal(100, count)
	}
}

func TestVerifyAndReleaseDeepSpine(t *testing.T) {
	assert := assert.New(t)

	keys := make([]uint32, 50_000)
	for i := range keys {
		keys[i] = 7
	}
	tree := NewTreeFromKeys(keys[:1])
	// build the spine by hand; inserting 50k duplicates one by one would be quadratic
	n := tree.Root()
	for range len(keys) - 1 {
		c := newNode(7)
		n.left.Store(c)
		n = c
	}

	count, err := VerifyAndRelease(tree)
	assert.NoError(err)
	assert.Equal(len(keys), count)
}

func TestCheckCount(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(CheckCount(5, 5))

	err := CheckCount(5, 4)
	assert.ErrorIs(err, ErrCountMismatch)
	assert.EqualError(err, "# of values (5) != # of nodes (4)")
	assert.False(IsOrderViolation(err))
}
