package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(CollapsibleIf)
}

// CollapsibleIf flags `if a { if b { .. } }` where neither if has an else.
var CollapsibleIf = lint.RuleDef{
	Name:        "collapsible_if",
	Group:       "style",
	Description: "Nested if statements that can be collapsed into one.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindIf},
	Check:       checkCollapsibleIf,
	Rationale:   "Each nesting level costs indentation and attention without adding meaning.",
	BadExample:  "if a {\n    if b {\n        run();\n    }\n}",
	GoodExample: "if a && b {\n    run();\n}",
	Fix:         "Join both conditions with && (parenthesize them if they contain || ).",
}

func checkCollapsibleIf(p *lint.Pass) *lint.Match {
	outer := p.Node
	if !collapsibleCandidate(outer) {
		return nil
	}
	inner := ast.SingleExpr(outer.ChildByField("consequence"))
	if inner == nil || inner.Kind != ast.KindIf || !collapsibleCandidate(inner) {
		return nil
	}
	return lint.MatchNode(outer, "this `if` statement can be collapsed: `if %s && %s { .. }`",
		p.Text(outer.ChildByField("condition")), p.Text(inner.ChildByField("condition")))
}

func collapsibleCandidate(n *ast.Node) bool {
	return n.ChildByField("alternative") == nil &&
		n.ChildByField("condition") != nil &&
		!rustast.HasLetCondition(n)
}
