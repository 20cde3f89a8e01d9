package correctness

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(BadBitMask)
}

// BadBitMask flags comparisons of a masked value whose outcome is fixed by
// the constants alone.
var BadBitMask = lint.RuleDef{
	Name:        "bad_bit_mask",
	Group:       "correctness",
	Description: "Bit mask comparison that is always true or always false.",
	Severity:    core.SeverityError,
	Kinds:       []string{ast.KindBinary},
	Check:       checkBadBitMask,
	Rationale:   "`x & m == c` can never hold when c has bits outside m; such checks are almost always a typo.",
	BadExample:  "if x & 1 == 2 { }",
	GoodExample: "if x & 2 == 2 { }",
}

func checkBadBitMask(p *lint.Pass) *lint.Match {
	op, left, right, ok := ast.BinaryOperands(p.Node)
	if !ok || (op != "==" && op != "!=") {
		return nil
	}
	cmp, ok := rustast.IntValue(right)
	masked := left
	if !ok {
		if cmp, ok = rustast.IntValue(left); !ok {
			return nil
		}
		masked = right
	}

	maskOp, a, b, ok := ast.BinaryOperands(ast.Unparen(masked))
	if !ok {
		return nil
	}
	mask, ok := rustast.IntValue(b)
	if !ok {
		if mask, ok = rustast.IntValue(a); !ok {
			return nil
		}
	}

	switch maskOp {
	case "&":
		if mask == 0 {
			return lint.MatchNode(p.Node, "&-masking with zero")
		}
		if mask&cmp != cmp {
			return lint.MatchNode(p.Node, "incompatible bit mask: `_ & %d` can never be equal to `%d`", mask, cmp)
		}
	case "|":
		if mask|cmp != cmp {
			return lint.MatchNode(p.Node, "incompatible bit mask: `_ | %d` can never be equal to `%d`", mask, cmp)
		}
	}
	return nil
}
