package perf

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(InefficientToString)
}

// InefficientToString flags `.to_string()` on a binding known to be a &str:
// one initialised from a string literal or a parameter typed `&str`.
var InefficientToString = lint.RuleDef{
	Name:        "inefficient_to_string",
	Group:       "perf",
	Description: "Calling to_string on a &str binding.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkInefficientToString,
	Rationale:   "to_string goes through the Display machinery; to_owned copies the bytes directly.",
	BadExample:  "let s = \"hello\";\nlet owned = s.to_string();",
	GoodExample: "let s = \"hello\";\nlet owned = s.to_owned();",
}

func checkInefficientToString(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "to_string" || len(args) != 0 {
		return nil
	}
	recv = ast.Unparen(recv)
	if recv == nil || recv.Kind != ast.KindIdentifier {
		return nil
	}
	b, found := p.Lookup(recv.Text)
	if !found || !isStrBinding(b) {
		return nil
	}
	return lint.MatchNode(p.Node, "calling `to_string` on `&str`; use `%s.to_owned()` or `String::from(%s)`", recv.Text, recv.Text)
}

func isStrBinding(b lint.Binding) bool {
	if b.Type != nil {
		if b.Type.Kind != ast.KindReferenceType {
			return false
		}
		inner := b.Type.ChildByField("type")
		return inner != nil && inner.Kind == ast.KindPrimitiveType && inner.Text == "str"
	}
	return !b.Loop && b.Init != nil && ast.IsStringLiteral(b.Init)
}
