// Package ast defines the read-only syntax tree consumed by the lint engine.
//
// Trees are produced by pkg/parser from tree-sitter output. Node kinds use the
// tree-sitter Rust grammar names (binary_expression, call_expression, ...).
// Anonymous tokens such as operators and keywords are kept as unnamed leaves
// so rule predicates can inspect them.
package ast

import (
	"github.com/WolffM/vibecheck/pkg/token"
)

// Node is one syntax tree node.
type Node struct {
	Kind     string     // grammar kind, e.g. "binary_expression" or "==" for tokens
	Field    string     // field name within the parent, e.g. "left"; empty if none
	Named    bool       // false for anonymous tokens (operators, keywords, punctuation)
	Span     token.Span // source range
	Text     string     // source text for leaves; empty for interior nodes
	Children []*Node    // ordered by source position
}

// File is a parsed source file.
type File struct {
	Path     string
	Source   []byte
	Root     *Node
	Comments []token.Comment
}

// Text returns the source text covered by n.
func (f *File) Text(n *Node) string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 && n.Text != "" {
		return n.Text
	}
	start, end := n.Span.Start.Offset, n.Span.End.Offset
	if f == nil || start < 0 || end > len(f.Source) || start > end {
		return n.Text
	}
	return string(f.Source[start:end])
}

// Bounds returns the span of the whole file, from 1:1 to the position just
// past the last byte. Columns count bytes, like the parser's positions.
func (f *File) Bounds() token.Span {
	if f == nil {
		return token.Span{}
	}
	if f.Source == nil {
		if f.Root == nil {
			return token.Span{}
		}
		return f.Root.Span
	}
	line, col := 1, 1
	for _, b := range f.Source {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return token.Span{
		Start: token.Position{Line: 1, Column: 1},
		End:   token.Position{Line: line, Column: col, Offset: len(f.Source)},
	}
}

// Is reports whether n has one of the given kinds.
func (n *Node) Is(kinds ...string) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// ChildByField returns the first child stored under field, or nil.
func (n *Node) ChildByField(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// NamedChildren returns the named children of n.
func (n *Node) NamedChildren() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// NamedCount returns the number of named children.
func (n *Node) NamedCount() int {
	if n == nil {
		return 0
	}
	count := 0
	for _, c := range n.Children {
		if c.Named {
			count++
		}
	}
	return count
}

// NamedChild returns the i-th named child, or nil.
func (n *Node) NamedChild(i int) *Node {
	named := n.NamedChildren()
	if i < 0 || i >= len(named) {
		return nil
	}
	return named[i]
}

// FirstChildOfKind returns the first direct child with one of the kinds.
func (n *Node) FirstChildOfKind(kinds ...string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Is(kinds...) {
			return c
		}
	}
	return nil
}

// HasToken reports whether n has a direct anonymous child with the given text.
func (n *Node) HasToken(tok string) bool {
	if n == nil {
		return false
	}
	for _, c := range n.Children {
		if !c.Named && c.Kind == tok {
			return true
		}
	}
	return false
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n != nil && len(n.Children) == 0
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
