package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(ExplicitCounterLoop)
}

// ExplicitCounterLoop flags `let mut i = 0;` followed by a for loop whose
// body increments i by one.
var ExplicitCounterLoop = lint.RuleDef{
	Name:        "explicit_counter_loop",
	Group:       "complexity",
	Description: "Loop maintains an index counter by hand.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindFor},
	Check:       checkExplicitCounterLoop,
	BadExample:  "let mut i = 0;\nfor item in v {\n    println!(\"{i}: {item}\");\n    i += 1;\n}",
	GoodExample: "for (i, item) in v.iter().enumerate() {\n    println!(\"{i}: {item}\");\n}",
}

func checkExplicitCounterLoop(p *lint.Pass) *lint.Match {
	pattern, value, body, ok := rustast.ForLoop(p.Node)
	if !ok {
		return nil
	}
	for _, st := range rustast.BodyStatements(body) {
		counter, ok := increment(st)
		if !ok {
			continue
		}
		b, found := p.Lookup(counter)
		if !found || b.Param || !b.Mutable || b.Span.End.Offset > p.Node.Span.Start.Offset {
			continue
		}
		start, isInt := rustast.IntValue(b.Init)
		if !isInt || assignments(body, counter) != 1 {
			continue
		}
		if start == 0 {
			return lint.MatchNode(p.Node, "the variable `%s` is used as a loop counter; consider `for (%s, %s) in %s.into_iter().enumerate()`",
				counter, counter, p.Text(pattern), p.Text(value))
		}
		return lint.MatchNode(p.Node, "the variable `%s` is used as a loop counter; consider `for (%s, %s) in (%d_usize..).zip(%s.into_iter())`",
			counter, counter, p.Text(pattern), start, p.Text(value))
	}
	return nil
}

// increment matches `name += 1`.
func increment(n *ast.Node) (string, bool) {
	if n == nil || n.Kind != ast.KindCompoundAssign || ast.Operator(n) != "+=" {
		return "", false
	}
	left, right := n.ChildByField("left"), n.ChildByField("right")
	if left == nil || left.Kind != ast.KindIdentifier || !ast.IsIntLiteral(right, "1") {
		return "", false
	}
	return left.Text, true
}

// assignments counts assignments of any kind to name within n.
func assignments(n *ast.Node, name string) int {
	count := 0
	ast.Walk(n, func(c *ast.Node) bool {
		if c.Is(ast.KindAssignment, ast.KindCompoundAssign) && ast.IsIdent(c.ChildByField("left"), name) {
			count++
		}
		return true
	})
	return count
}
