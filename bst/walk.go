package bst

// Walk visits every value in order (non-decreasing). It stops early if fn returns false.
//
// Walk takes no locks; it is only meaningful once writers are done.
func (t *Tree) Walk(fn func(val uint32) bool) {
	var stack []*Node
	n := t.root.Load()
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left.Load()
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n.Value) {
			return
		}
		n = n.right.Load()
	}
}

// Values returns every value in order.
func (t *Tree) Values() []uint32 {
	var out []uint32
	t.Walk(func(val uint32) bool {
		out = append(out, val)
		return true
	})
	return out
}

// Len counts the nodes without modifying the tree.
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(uint32) bool {
		count++
		return true
	})
	return count
}

// Height is the number of nodes on the longest root-to-leaf path; zero for an empty tree.
func (t *Tree) Height() int {
	root := t.root.Load()
	if root == nil {
		return 0
	}
	height := 0
	level := []*Node{root}
	for len(level) > 0 {
		height++
		var next []*Node
		for _, n := range level {
			if l := n.left.Load(); l != nil {
				next = append(next, l)
			}
			if r := n.right.Load(); r != nil {
				next = append(next, r)
			}
		}
		level = next
	}
	return height
}

// Equal reports whether two trees have exactly the same shape and values.
func Equal(a, b *Tree) bool {
	type pair struct{ a, b *Node }
	stack := []pair{{a.root.Load(), b.root.Load()}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == nil || p.b == nil {
			if p.a != p.b {
				return false
			}
			continue
		}
		if p.a.Value != p.b.Value {
			return false
		}
		stack = append(stack,
			pair{p.a.left.Load(), p.b.left.Load()},
			pair{p.a.right.Load(), p.b.right.Load()},
		)
	}
	return true
}
