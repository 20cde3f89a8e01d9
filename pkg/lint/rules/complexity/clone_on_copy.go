package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(CloneOnCopy)
}

// CloneOnCopy flags `.clone()` on literals and bindings of primitive Copy types.
var CloneOnCopy = lint.RuleDef{
	Name:        "clone_on_copy",
	Group:       "complexity",
	Description: "Calling .clone() on a value whose type is Copy.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkCloneOnCopy,
	BadExample:  "let x: i32 = 42;\nlet y = x.clone();",
	GoodExample: "let x: i32 = 42;\nlet y = x;",
}

func checkCloneOnCopy(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "clone" || len(args) != 0 || !rustast.IsCopyValue(p, recv) {
		return nil
	}
	return lint.MatchNode(p.Node, "using `clone` on a `Copy` type; try removing the `clone` call: `%s`", p.Text(recv))
}
