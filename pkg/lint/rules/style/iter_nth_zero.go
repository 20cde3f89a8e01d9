package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(IterNthZero)
}

// IterNthZero flags `.nth(0)`.
var IterNthZero = lint.RuleDef{
	Name:        "iter_nth_zero",
	Group:       "style",
	Description: "Calling .nth(0) on an iterator instead of .next().",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkIterNthZero,
	BadExample:  "let first = v.iter().nth(0);",
	GoodExample: "let first = v.iter().next();",
}

func checkIterNthZero(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "nth" || len(args) != 1 || !ast.IsIntLiteral(args[0], "0") {
		return nil
	}
	return lint.MatchNode(p.Node, "called `.nth(0)` on an iterator; use `%s.next()` instead", p.Text(recv))
}
