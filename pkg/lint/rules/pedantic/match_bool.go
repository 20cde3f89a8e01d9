package pedantic

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(MatchBool)
}

// MatchBool flags matches whose arms test the literals true and false.
var MatchBool = lint.RuleDef{
	Name:        "match_bool",
	Group:       "pedantic",
	Description: "Matching on a bool instead of using if/else.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindMatch},
	Check:       checkMatchBool,
	BadExample:  "match b {\n    true => 1,\n    false => 0,\n}",
	GoodExample: "if b { 1 } else { 0 }",
}

func checkMatchBool(p *lint.Pass) *lint.Match {
	_, arms, ok := rustast.MatchArms(p.Node)
	if !ok || len(arms) != 2 {
		return nil
	}
	literals := 0
	for _, arm := range arms {
		if arm.Guard {
			return nil
		}
		switch ast.LeafText(arm.Pattern) {
		case "true", "false":
			literals++
		case "_":
		default:
			return nil
		}
	}
	if literals == 0 {
		return nil
	}
	return lint.MatchNode(p.Node, "you seem to be trying to match on a boolean expression; consider using an `if`/`else` expression")
}
