package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(SingleMatch)
}

// SingleMatch flags two-arm matches whose fallback arm does nothing.
var SingleMatch = lint.RuleDef{
	Name:        "single_match",
	Group:       "style",
	Description: "Match with a single interesting arm that reads better as if let.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindMatch},
	Check:       checkSingleMatch,
	BadExample:  "match x {\n    Some(v) => println!(\"{v}\"),\n    _ => {}\n}",
	GoodExample: "if let Some(v) = x {\n    println!(\"{v}\");\n}",
}

func checkSingleMatch(p *lint.Pass) *lint.Match {
	scrutinee, arms, ok := rustast.MatchArms(p.Node)
	if !ok || len(arms) != 2 || arms[0].Guard || arms[1].Guard {
		return nil
	}
	if rustast.IsWildcard(arms[0].Pattern) || !rustast.IsWildcard(arms[1].Pattern) || !rustast.IsUnit(arms[1].Value) {
		return nil
	}
	return lint.MatchNode(p.Node, "you seem to be trying to use `match` for destructuring a single pattern; consider using `if let %s = %s`",
		p.Text(arms[0].Pattern), p.Text(scrutinee))
}
