package bst

import (
	"strconv"

	"github.com/xlab/treeprint"
)

// Render draws up to limit nodes of the tree, pre-order, as an indented diagram. Subtrees past the limit are
// shown as a single ellipsis entry. A limit below 1 means no limit.
func Render(t *Tree, limit int) string {
	root := t.root.Load()
	if root == nil {
		return treeprint.NewWithRoot("(empty)").String()
	}
	out := treeprint.NewWithRoot(strconv.FormatUint(uint64(root.Value), 10))
	budget := limit - 1
	renderChildren(out, root, &budget, limit < 1)
	return out.String()
}

func renderChildren(branch treeprint.Tree, n *Node, budget *int, unlimited bool) {
	for _, c := range []struct {
		label string
		node  *Node
	}{
		{"L", n.left.Load()},
		{"R", n.right.Load()},
	} {
		if c.node == nil {
			continue
		}
		if !unlimited && *budget <= 0 {
			branch.AddNode(c.label + " …")
			continue
		}
		*budget--
		sub := branch.AddMetaBranch(c.label, strconv.FormatUint(uint64(c.node.Value), 10))
		renderChildren(sub, c.node, budget, unlimited)
	}
}
