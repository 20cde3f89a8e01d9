package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
	"github.com/WolffM/vibecheck/pkg/token"
)

func init() {
	lint.MustRegister(NeedlessBool)
}

// NeedlessBool flags ifs that return boolean literals instead of the
// condition, in both the if/else and the early-return form.
var NeedlessBool = lint.RuleDef{
	Name:        "needless_bool",
	Group:       "complexity",
	Description: "if expression that returns a bool literal from each branch.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindIf},
	Check:       checkNeedlessBool,
	BadExample:  "if x { true } else { false }",
	GoodExample: "x",
}

func checkNeedlessBool(p *lint.Pass) *lint.Match {
	n := p.Node
	cond := n.ChildByField("condition")
	if cond == nil || rustast.HasLetCondition(n) {
		return nil
	}
	then, thenRet, ok := branchBool(n.ChildByField("consequence"))
	if !ok {
		return nil
	}

	if alt := n.ChildByField("alternative"); alt != nil {
		els, elseRet, ok := branchBool(rustast.ElseBlock(n))
		if !ok || thenRet != elseRet {
			return nil
		}
		return boolMatch(p, n.Span, cond, then, els)
	}

	// if c { return true; } return false;
	if !thenRet {
		return nil
	}
	stmt := rustast.StatementOf(p, n)
	_, after := p.Siblings(stmt)
	if len(after) == 0 {
		return nil
	}
	next := ast.StatementExpr(after[0])
	if next == nil || next.Kind != ast.KindReturn {
		return nil
	}
	els, ok := ast.BoolLiteral(next.NamedChild(0))
	if !ok {
		return nil
	}
	return boolMatch(p, token.Span{Start: n.Span.Start, End: after[0].Span.End}, cond, then, els)
}

// branchBool reads the bool literal a branch evaluates to or returns.
func branchBool(block *ast.Node) (value, isReturn, ok bool) {
	expr := ast.SingleExpr(block)
	if expr != nil && expr.Kind == ast.KindReturn {
		value, ok = ast.BoolLiteral(expr.NamedChild(0))
		return value, true, ok
	}
	value, ok = ast.BoolLiteral(expr)
	return value, false, ok
}

func boolMatch(p *lint.Pass, span token.Span, cond *ast.Node, then, els bool) *lint.Match {
	var msg string
	switch {
	case then && !els:
		msg = "this if-then-else expression returns a bool literal; you can reduce it to `" + p.Text(cond) + "`"
	case !then && els:
		msg = "this if-then-else expression returns a bool literal; you can reduce it to `!(" + p.Text(cond) + ")`"
	case then:
		msg = "this if-then-else expression will always return true"
	default:
		msg = "this if-then-else expression will always return false"
	}
	return &lint.Match{Span: span, Message: msg}
}
