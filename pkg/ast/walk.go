package ast

// Walk traverses the tree depth-first in pre-order and calls fn for each node.
// If fn returns false, the children of that node are skipped.
func Walk(n *Node, fn func(n *Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns the first node in pre-order for which pred holds.
func Find(n *Node, pred func(n *Node) bool) *Node {
	var found *Node
	Walk(n, func(c *Node) bool {
		if found != nil {
			return false
		}
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// Collect returns all nodes of the given kinds in pre-order.
func Collect(n *Node, kinds ...string) []*Node {
	var out []*Node
	Walk(n, func(c *Node) bool {
		if c.Is(kinds...) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Contains reports whether the subtree rooted at n has a node of the given kinds.
func Contains(n *Node, kinds ...string) bool {
	return Find(n, func(c *Node) bool { return c.Is(kinds...) }) != nil
}

// Equal reports whether a and b are structurally identical: same kinds,
// same leaf text and equal children. Spans and field names are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || len(a.Children) != len(b.Children) {
		return false
	}
	if len(a.Children) == 0 {
		return a.Text == b.Text
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Unparen strips parenthesized_expression wrappers.
func Unparen(n *Node) *Node {
	for n != nil && n.Kind == KindParenthesized {
		inner := n.NamedChild(0)
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}
