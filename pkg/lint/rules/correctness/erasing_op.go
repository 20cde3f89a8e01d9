package correctness

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(ErasingOp)
}

// ErasingOp flags arithmetic that always evaluates to zero.
var ErasingOp = lint.RuleDef{
	Name:        "erasing_op",
	Group:       "correctness",
	Description: "Operation that always evaluates to zero.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindBinary},
	Check:       checkErasingOp,
	Rationale:   "Multiplying or masking with zero discards the other operand entirely.",
	BadExample:  "let y = x * 0;",
	GoodExample: "let y = 0;",
}

func checkErasingOp(p *lint.Pass) *lint.Match {
	op, left, right, ok := ast.BinaryOperands(p.Node)
	if !ok {
		return nil
	}
	zeroLeft, zeroRight := ast.IsIntLiteral(left, "0"), ast.IsIntLiteral(right, "0")
	switch op {
	case "*", "&":
		if !zeroLeft && !zeroRight {
			return nil
		}
	case "/":
		if !zeroLeft || zeroRight {
			return nil
		}
	default:
		return nil
	}
	return lint.MatchNode(p.Node, "this operation will always return zero")
}
