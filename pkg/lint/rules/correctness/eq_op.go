package correctness

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(EqOp)
}

// EqOp flags binary operators whose operands are the same expression.
var EqOp = lint.RuleDef{
	Name:        "eq_op",
	Group:       "correctness",
	Description: "Equal expressions on both sides of a binary operator.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindBinary},
	Check:       checkEqOp,
	Rationale:   "`x == x` is always true and `x - x` is always zero; usually one side was meant to be something else.",
	BadExample:  "if x == x { }",
	GoodExample: "if x == y { }",
}

var eqOpOperators = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true, "-": true, "/": true, "^": true, "&": true, "|": true,
}

func checkEqOp(p *lint.Pass) *lint.Match {
	op, left, right, ok := ast.BinaryOperands(p.Node)
	if !ok || !eqOpOperators[op] {
		return nil
	}
	if !ast.IsSideEffectFree(left) || !ast.Equal(ast.Unparen(left), ast.Unparen(right)) {
		return nil
	}
	return lint.MatchNode(p.Node, "equal expressions as operands to `%s`", op)
}
