package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(LenZero)
}

// LenZero flags length comparisons against zero or one that mean
// "is empty" or "is not empty".
var LenZero = lint.RuleDef{
	Name:        "len_zero",
	Group:       "style",
	Description: "Checking emptiness by comparing .len() to zero.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindBinary},
	Check:       checkLenZero,
	Rationale:   "is_empty states the intent and exists on types where len is expensive.",
	BadExample:  "if v.len() == 0 { }",
	GoodExample: "if v.is_empty() { }",
}

// emptyChecks maps operator and literal, with the length on the left, to
// whether the comparison tests emptiness.
var emptyChecks = map[string]map[string]bool{
	"==": {"0": true},
	"!=": {"0": false},
	">":  {"0": false},
	"<":  {"1": true},
	">=": {"1": false},
}

// mirrored flips an operator for `0 == x.len()` style comparisons.
var mirrored = map[string]string{
	"==": "==", "!=": "!=", "<": ">", ">": "<", "<=": ">=", ">=": "<=",
}

func checkLenZero(p *lint.Pass) *lint.Match {
	op, left, right, ok := ast.BinaryOperands(p.Node)
	if !ok {
		return nil
	}
	recv, lit, ok := lenOperand(left, right)
	if !ok {
		if recv, lit, ok = lenOperand(right, left); !ok {
			return nil
		}
		op = mirrored[op]
	}
	empty, ok := emptyChecks[op][lit]
	if !ok {
		return nil
	}
	if empty {
		return lint.MatchNode(p.Node, "length comparison to zero: use `%s.is_empty()`", p.Text(recv))
	}
	return lint.MatchNode(p.Node, "length comparison to zero: use `!%s.is_empty()`", p.Text(recv))
}

func lenOperand(call, lit *ast.Node) (recv *ast.Node, digits string, ok bool) {
	recv, method, args, ok := ast.MethodCall(ast.Unparen(call))
	if !ok || method != "len" || len(args) != 0 {
		return nil, "", false
	}
	lit = ast.Unparen(lit)
	if lit == nil || lit.Kind != ast.KindIntegerLiteral {
		return nil, "", false
	}
	return recv, ast.IntLiteralDigits(lit.Text), true
}
