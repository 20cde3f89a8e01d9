package pedantic

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(MutMut)
}

// MutMut flags `&mut &mut T` types and `&mut &mut x` expressions. Only the
// outermost layer of a chain is reported.
var MutMut = lint.RuleDef{
	Name:        "mut_mut",
	Group:       "pedantic",
	Description: "Mutable reference to a mutable reference.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindReferenceType, ast.KindReference},
	Check:       checkMutMut,
	BadExample:  "fn set(x: &mut &mut i32) { **x = 42; }",
	GoodExample: "fn set(x: &mut i32) { *x = 42; }",
}

func checkMutMut(p *lint.Pass) *lint.Match {
	if !isMutRef(p.Node) || !isMutRef(innerRef(p.Node)) || isMutRef(p.Parent()) {
		return nil
	}
	if p.Node.Kind == ast.KindReferenceType {
		return lint.MatchNode(p.Node, "generally you want to avoid `&mut &mut _` if possible")
	}
	return lint.MatchNode(p.Node, "this expression mutably borrows a mutable reference; reborrow instead")
}

func isMutRef(n *ast.Node) bool {
	return n != nil && n.Is(ast.KindReferenceType, ast.KindReference) &&
		n.FirstChildOfKind(ast.KindMutSpecifier) != nil
}

func innerRef(n *ast.Node) *ast.Node {
	if n.Kind == ast.KindReferenceType {
		return n.ChildByField("type")
	}
	return ast.Unparen(n.ChildByField("value"))
}
