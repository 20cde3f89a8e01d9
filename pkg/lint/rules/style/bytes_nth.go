package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(BytesNth)
}

// BytesNth flags `s.bytes().nth(n)`.
var BytesNth = lint.RuleDef{
	Name:        "bytes_nth",
	Group:       "style",
	Description: "Calling .bytes().nth() on a string.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkBytesNth,
	Rationale:   "Indexing the byte slice is direct; walking an iterator to position n is not.",
	BadExample:  "let b = s.bytes().nth(3);",
	GoodExample: "let b = s.as_bytes().get(3).copied();",
}

func checkBytesNth(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "nth" || len(args) != 1 {
		return nil
	}
	inner, innerMethod, innerArgs, ok := ast.MethodCall(recv)
	if !ok || innerMethod != "bytes" || len(innerArgs) != 0 {
		return nil
	}
	return lint.MatchNode(p.Node, "called `.bytes().nth()` on a `str`; use `%s.as_bytes().get(%s)`",
		p.Text(inner), p.Text(args[0]))
}
