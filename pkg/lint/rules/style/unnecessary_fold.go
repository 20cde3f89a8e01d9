package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(UnnecessaryFold)
}

// UnnecessaryFold flags folds that reimplement any, all, sum or product.
var UnnecessaryFold = lint.RuleDef{
	Name:        "unnecessary_fold",
	Group:       "style",
	Description: "Fold that is equivalent to any, all, sum or product.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkUnnecessaryFold,
	Rationale:   "The dedicated adaptors say what they do and any/all short-circuit.",
	BadExample:  "let has = v.iter().fold(false, |acc, x| acc || *x > 2);",
	GoodExample: "let has = v.iter().any(|x| *x > 2);",
}

type foldShape struct {
	init, op, replacement string
}

var foldShapes = []foldShape{
	{"false", "||", "any"},
	{"true", "&&", "all"},
	{"0", "+", "sum"},
	{"1", "*", "product"},
}

func checkUnnecessaryFold(p *lint.Pass) *lint.Match {
	_, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "fold" || len(args) != 2 {
		return nil
	}
	init := foldInit(args[0])
	params := rustast.ClosureParamList(args[1])
	_, body, ok := ast.ClosureParams(args[1])
	if init == "" || !ok || len(params) != 2 {
		return nil
	}
	acc := rustast.ParamName(params[0])
	if acc == "" {
		return nil
	}
	if b := ast.Unparen(body); b != nil && b.Kind == ast.KindBlock {
		body = ast.SingleExpr(b)
	}
	op, left, right, ok := ast.BinaryOperands(ast.Unparen(body))
	if !ok {
		return nil
	}
	other := right
	if !ast.IsIdent(left, acc) {
		if !ast.IsIdent(right, acc) {
			return nil
		}
		other = left
	}
	if rustast.ContainsIdent(other, acc) {
		return nil
	}
	for _, s := range foldShapes {
		if s.init == init && s.op == op {
			return lint.MatchNode(p.Node, "this `.fold` can be written more succinctly using another method: use `.%s(..)`", s.replacement)
		}
	}
	return nil
}

func foldInit(n *ast.Node) string {
	n = ast.Unparen(n)
	switch {
	case n == nil:
		return ""
	case n.Kind == ast.KindBooleanLiteral:
		return ast.LeafText(n)
	case n.Kind == ast.KindIntegerLiteral:
		return ast.IntLiteralDigits(n.Text)
	}
	return ""
}
