package perf

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(CmpOwned)
}

// CmpOwned flags `x.to_owned() == y` and similar comparisons that allocate
// an owned value only to compare it.
var CmpOwned = lint.RuleDef{
	Name:        "cmp_owned",
	Group:       "perf",
	Description: "Creating an owned value just to compare it.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindBinary},
	Check:       checkCmpOwned,
	BadExample:  "s.to_owned() == \"hello\"",
	GoodExample: "s == \"hello\"",
}

func checkCmpOwned(p *lint.Pass) *lint.Match {
	op, left, right, ok := ast.BinaryOperands(p.Node)
	if !ok || (op != "==" && op != "!=") {
		return nil
	}
	for _, side := range []*ast.Node{left, right} {
		if borrowed := ownedFrom(ast.Unparen(side)); borrowed != nil {
			return lint.MatchNode(side, "this creates an owned instance just for comparison; compare `%s` directly", p.Text(borrowed))
		}
	}
	return nil
}

// ownedFrom returns x for `x.to_owned()`, `x.to_string()` or `String::from(x)`.
func ownedFrom(n *ast.Node) *ast.Node {
	if recv, method, args, ok := ast.MethodCall(n); ok {
		if len(args) == 0 && (method == "to_owned" || method == "to_string") {
			return recv
		}
		return nil
	}
	if path, args, ok := ast.FunctionCall(n); ok && len(args) == 1 && path == "String::from" {
		return args[0]
	}
	return nil
}
