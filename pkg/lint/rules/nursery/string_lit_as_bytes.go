package nursery

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(StringLitAsBytes)
}

// StringLitAsBytes flags `"lit".as_bytes()`.
var StringLitAsBytes = lint.RuleDef{
	Name:        "string_lit_as_bytes",
	Group:       "nursery",
	Description: "Calling as_bytes on a string literal.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkStringLitAsBytes,
	BadExample:  "let b = \"hello\".as_bytes();",
	GoodExample: "let b = b\"hello\";",
}

func checkStringLitAsBytes(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "as_bytes" || len(args) != 0 || !ast.IsStringLiteral(recv) {
		return nil
	}
	return lint.MatchNode(p.Node, "calling `as_bytes()` on a string literal; use a byte string literal instead: `b%s`", p.Text(recv))
}
