package lint

import (
	"strings"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/token"
)

// Binding is a local name introduced by a let statement, a for pattern or a
// parameter.
type Binding struct {
	Name    string
	Type    *ast.Node // declared type, nil when inferred
	Init    *ast.Node // initialiser of a let, or the iterated value of a for loop
	Mutable bool
	Param   bool
	Loop    bool       // bound by a for pattern
	Span    token.Span // span of the declaring statement or parameter
}

// Scope is a bounded local symbol table for one block or parameter list.
// Scopes form a chain through Parent; lookups walk outwards.
type Scope struct {
	parent   *Scope
	node     *ast.Node // block, function_item or closure_expression
	region   *ast.Node // region searched by UsedAfter
	bindings []Binding
	limit    int

	uses map[string][]int // identifier offsets within region, built lazily
}

func newScope(parent *Scope, node, region *ast.Node, limit int) *Scope {
	return &Scope{parent: parent, node: node, region: region, limit: limit}
}

// Parent returns the enclosing scope, or nil at file level.
func (s *Scope) Parent() *Scope {
	if s == nil {
		return nil
	}
	return s.parent
}

// Node returns the syntax node that opened the scope.
func (s *Scope) Node() *ast.Node {
	if s == nil {
		return nil
	}
	return s.node
}

// Bindings returns the bindings declared directly in s, in source order.
func (s *Scope) Bindings() []Binding {
	if s == nil {
		return nil
	}
	return s.bindings
}

// declare records a binding. Declarations beyond the limit are dropped and
// later lookups of those names report unknown.
func (s *Scope) declare(b Binding) {
	if s == nil || b.Name == "" || b.Name == "_" || len(s.bindings) >= s.limit {
		return
	}
	s.bindings = append(s.bindings, b)
}

// Lookup resolves name to the innermost visible binding. Later bindings of
// the same scope shadow earlier ones.
func (s *Scope) Lookup(name string) (Binding, bool) {
	b, _, ok := s.lookup(name)
	return b, ok
}

func (s *Scope) lookup(name string) (Binding, *Scope, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		for i := len(sc.bindings) - 1; i >= 0; i-- {
			if sc.bindings[i].Name == name {
				return sc.bindings[i], sc, true
			}
		}
	}
	return Binding{}, nil, false
}

// UsedAfter reports whether name is referenced at or after offset within the
// region of the scope that declares it. Unknown names are reported as used.
func (s *Scope) UsedAfter(name string, offset int) bool {
	_, decl, ok := s.lookup(name)
	if !ok {
		return true
	}
	for _, off := range decl.useIndex()[name] {
		if off >= offset {
			return true
		}
	}
	return false
}

// useIndex maps identifier names to the offsets where they appear in the
// region. Identifiers inside macro token trees and `{name}` captures in
// format strings count as uses.
func (s *Scope) useIndex() map[string][]int {
	if s.uses != nil {
		return s.uses
	}
	s.uses = make(map[string][]int)
	ast.Walk(s.region, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindIdentifier:
			s.uses[n.Text] = append(s.uses[n.Text], n.Span.Start.Offset)
		case ast.KindStringLiteral:
			for _, name := range formatCaptures(ast.LeafText(n)) {
				s.uses[name] = append(s.uses[name], n.Span.Start.Offset)
			}
			return false
		}
		return true
	})
	return s.uses
}

// formatCaptures extracts inline captures like {name} or {name:?}.
func formatCaptures(lit string) []string {
	var names []string
	for {
		open := strings.IndexByte(lit, '{')
		if open < 0 {
			return names
		}
		lit = lit[open+1:]
		if strings.HasPrefix(lit, "{") {
			lit = lit[1:]
			continue
		}
		end := strings.IndexAny(lit, ":}")
		if end <= 0 {
			continue
		}
		name := lit[:end]
		if isIdentifier(name) {
			names = append(names, name)
		}
	}
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}

// bindingsFromLet extracts the bindings of a let_declaration.
func bindingsFromLet(n *ast.Node) []Binding {
	pattern := n.ChildByField("pattern")
	typ := n.ChildByField("type")
	value := n.ChildByField("value")
	mutable := n.FirstChildOfKind(ast.KindMutSpecifier) != nil

	names := patternNames(pattern)
	out := make([]Binding, 0, len(names))
	for _, pn := range names {
		b := Binding{Name: pn.name, Mutable: mutable || pn.mutable, Span: n.Span}
		if len(names) == 1 && pattern != nil && pattern.Is(ast.KindIdentifier, ast.KindMutPattern) {
			b.Type = typ
			b.Init = value
		}
		out = append(out, b)
	}
	return out
}

// bindingsFromParams extracts the bindings of a function or closure
// parameter list.
func bindingsFromParams(params *ast.Node) []Binding {
	var out []Binding
	for _, p := range params.NamedChildren() {
		switch p.Kind {
		case ast.KindParameter:
			pattern := p.ChildByField("pattern")
			typ := p.ChildByField("type")
			for _, pn := range patternNames(pattern) {
				out = append(out, Binding{
					Name:    pn.name,
					Type:    typ,
					Mutable: pn.mutable || p.FirstChildOfKind(ast.KindMutSpecifier) != nil,
					Param:   true,
					Span:    p.Span,
				})
			}
		case ast.KindIdentifier:
			// untyped closure parameter
			out = append(out, Binding{Name: p.Text, Param: true, Span: p.Span})
		default:
			for _, pn := range patternNames(p) {
				out = append(out, Binding{Name: pn.name, Mutable: pn.mutable, Param: true, Span: p.Span})
			}
		}
	}
	return out
}

type patternName struct {
	name    string
	mutable bool
}

// patternNames lists identifiers bound by a pattern.
func patternNames(pattern *ast.Node) []patternName {
	if pattern == nil {
		return nil
	}
	switch pattern.Kind {
	case ast.KindIdentifier:
		return []patternName{{name: pattern.Text}}
	case ast.KindMutPattern:
		var out []patternName
		for _, pn := range patternNames(pattern.NamedChild(pattern.NamedCount() - 1)) {
			pn.mutable = true
			out = append(out, pn)
		}
		return out
	case "shorthand_field_identifier":
		return []patternName{{name: pattern.Text}}
	case ast.KindScopedIdent:
		// enum variant or constant path, binds nothing
		return nil
	}
	var out []patternName
	for _, c := range pattern.Children {
		if !c.Named {
			continue
		}
		if pattern.Kind == ast.KindTupleStructPat && c.Field == "type" {
			continue
		}
		if c.Kind == ast.KindFieldIdentifier || c.Kind == ast.KindTypeIdentifier {
			continue
		}
		out = append(out, patternNames(c)...)
	}
	return out
}
