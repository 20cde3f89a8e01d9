package lint

import (
	"github.com/WolffM/vibecheck/pkg/ast"
)

// Pass is the read-only context handed to a rule predicate for one node.
type Pass struct {
	Node    *ast.Node      // node under inspection
	File    *ast.File      // file being scanned
	Scope   *Scope         // innermost lexical scope, nil at file level
	Options map[string]any // options configured for the rule
	Rule    string         // name of the rule being evaluated

	ancestors []*ast.Node // bounded view, outermost first, parent last
}

// Parent returns the parent of Node, or nil at the root.
func (p *Pass) Parent() *ast.Node {
	return p.Ancestor(0)
}

// Ancestor returns the i-th ancestor (0 is the parent). Ancestors beyond the
// configured view return nil.
func (p *Pass) Ancestor(i int) *ast.Node {
	j := len(p.ancestors) - 1 - i
	if i < 0 || j < 0 {
		return nil
	}
	return p.ancestors[j]
}

// Depth returns the number of visible ancestors.
func (p *Pass) Depth() int {
	return len(p.ancestors)
}

// Enclosing returns the nearest visible ancestor of one of the kinds.
func (p *Pass) Enclosing(kinds ...string) *ast.Node {
	for i := len(p.ancestors) - 1; i >= 0; i-- {
		if p.ancestors[i].Is(kinds...) {
			return p.ancestors[i]
		}
	}
	return nil
}

// ParentOf returns the visible parent of n, which must be Node or one of
// its ancestors.
func (p *Pass) ParentOf(n *ast.Node) *ast.Node {
	if n == p.Node {
		return p.Parent()
	}
	for i := len(p.ancestors) - 1; i > 0; i-- {
		if p.ancestors[i] == n {
			return p.ancestors[i-1]
		}
	}
	return nil
}

// Siblings returns the named siblings before and after n within its parent.
// n must be Node or one of its visible ancestors.
func (p *Pass) Siblings(n *ast.Node) (before, after []*ast.Node) {
	parent := p.ParentOf(n)
	if parent == nil {
		return nil, nil
	}
	named := parent.NamedChildren()
	for i, c := range named {
		if c == n {
			return named[:i], named[i+1:]
		}
	}
	return nil, nil
}

// Text returns the source text of n.
func (p *Pass) Text(n *ast.Node) string {
	return p.File.Text(n)
}

// Lookup resolves a local binding through the current scope chain.
func (p *Pass) Lookup(name string) (Binding, bool) {
	return p.Scope.Lookup(name)
}

// IntOption returns an integer rule option.
func (p *Pass) IntOption(key string, defaultVal int) int {
	return GetIntOption(p.Options, key, defaultVal)
}
