package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(CharsNextCmp)
}

// CharsNextCmp flags `s.chars().next() == Some(c)`.
var CharsNextCmp = lint.RuleDef{
	Name:        "chars_next_cmp",
	Group:       "style",
	Description: "Comparing the first char through .chars().next() instead of starts_with.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindBinary},
	Check:       checkCharsNextCmp,
	BadExample:  "if s.chars().next() == Some('a') { }",
	GoodExample: "if s.starts_with('a') { }",
}

func checkCharsNextCmp(p *lint.Pass) *lint.Match {
	op, left, right, ok := ast.BinaryOperands(p.Node)
	if !ok || (op != "==" && op != "!=") {
		return nil
	}
	str, ch, ok := charsNextOperands(left, right)
	if !ok {
		if str, ch, ok = charsNextOperands(right, left); !ok {
			return nil
		}
	}
	neg := ""
	if op == "!=" {
		neg = "!"
	}
	return lint.MatchNode(p.Node, "you should use the `starts_with` method: `%s%s.starts_with(%s)`",
		neg, p.Text(str), p.Text(ch))
}

func charsNextOperands(call, some *ast.Node) (str, ch *ast.Node, ok bool) {
	recv, method, args, ok := ast.MethodCall(ast.Unparen(call))
	if !ok || method != "next" || len(args) != 0 {
		return nil, nil, false
	}
	str, method, args, ok = ast.MethodCall(recv)
	if !ok || method != "chars" || len(args) != 0 {
		return nil, nil, false
	}
	path, someArgs, ok := ast.FunctionCall(ast.Unparen(some))
	if !ok || path != "Some" || len(someArgs) != 1 || someArgs[0].Kind != ast.KindCharLiteral {
		return nil, nil, false
	}
	return str, someArgs[0], true
}
