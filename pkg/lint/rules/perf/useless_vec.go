package perf

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(UselessVec)
}

// UselessVec flags `vec![..]` that is immediately iterated or borrowed,
// where an array or slice would do.
var UselessVec = lint.RuleDef{
	Name:        "useless_vec",
	Group:       "perf",
	Description: "Heap-allocated vec! where an array would do.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindMacroInvocation},
	Check:       checkUselessVec,
	BadExample:  "let sum: i32 = vec![1, 2, 3].iter().sum();",
	GoodExample: "let sum: i32 = [1, 2, 3].iter().sum();",
}

var iterMethods = map[string]bool{"iter": true, "into_iter": true, "iter_mut": true}

func checkUselessVec(p *lint.Pass) *lint.Match {
	if ast.MacroName(p.Node) != "vec" || !constantLength(p.Node) {
		return nil
	}
	parent := p.Parent()
	switch {
	case parent == nil:
		return nil
	case parent.Kind == ast.KindReference:
		return lint.MatchNode(parent, "useless use of `vec!`; borrow an array instead")
	case parent.Kind == ast.KindFor && parent.ChildByField("value") == p.Node:
		return lint.MatchNode(p.Node, "useless use of `vec!`; iterate an array instead")
	case parent.Kind == ast.KindField && iterMethods[ast.LeafText(parent.ChildByField("field"))]:
		if call := p.Ancestor(1); call != nil && call.Kind == ast.KindCall {
			return lint.MatchNode(p.Node, "useless use of `vec!`; iterate an array instead")
		}
	}
	return nil
}

// constantLength rejects `vec![x; n]` whose length is not a literal.
func constantLength(n *ast.Node) bool {
	tt := n.FirstChildOfKind(ast.KindTokenTree)
	if tt == nil || !tt.HasToken(";") {
		return true
	}
	named := tt.NamedChildren()
	return len(named) > 0 && named[len(named)-1].Kind == ast.KindIntegerLiteral
}
