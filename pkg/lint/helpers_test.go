package lint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/token"
)

// eqRule flags `a == a` style comparisons.
func eqRule() RuleDef {
	return RuleDef{
		Name:        "eq_op",
		Group:       "correctness",
		Description: "Equal operands on both sides of a comparison.",
		Severity:    core.SeverityWarning,
		Kinds:       []string{ast.KindBinary},
		Check: func(p *Pass) *Match {
			op, left, right, ok := ast.BinaryOperands(p.Node)
			if !ok || op != "==" || !ast.Equal(left, right) {
				return nil
			}
			return MatchNode(p.Node, "equal expressions as operands to `%s`", op)
		},
	}
}

// lenZeroRule flags `x.len() == 0`.
func lenZeroRule() RuleDef {
	return RuleDef{
		Name:        "len_zero",
		Group:       "style",
		Description: "Comparing a length to zero.",
		Severity:    core.SeverityWarning,
		Kinds:       []string{ast.KindBinary},
		Check: func(p *Pass) *Match {
			op, left, right, ok := ast.BinaryOperands(p.Node)
			if !ok || op != "==" || !ast.IsMethodCall(left, "len") || !ast.IsIntLiteral(right, "0") {
				return nil
			}
			return MatchNode(p.Node, "length comparison to zero")
		},
	}
}

func newTestSet(t *testing.T, rules ...RuleDef) *RuleSet {
	t.Helper()
	reg := NewRegistry()
	for _, r := range rules {
		require.NoError(t, reg.Register(r))
	}
	return reg.Snapshot()
}

func ruleNames(findings []Finding) []string {
	names := make([]string, len(findings))
	for i, f := range findings {
		names[i] = f.RuleName
	}
	return names
}

func lineSpan(start, end int) token.Span {
	return token.LineSpan(start, end)
}
