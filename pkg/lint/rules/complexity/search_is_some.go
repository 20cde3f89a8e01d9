package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(SearchIsSome)
}

// SearchIsSome flags `.find(..).is_some()`, `.position(..).is_some()` and
// their is_none forms.
var SearchIsSome = lint.RuleDef{
	Name:        "search_is_some",
	Group:       "complexity",
	Description: "Searching an iterator only to test whether something was found.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkSearchIsSome,
	BadExample:  "v.iter().find(|&&x| x == target).is_some()",
	GoodExample: "v.iter().any(|&x| x == target)",
}

func checkSearchIsSome(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || len(args) != 0 || (method != "is_some" && method != "is_none") {
		return nil
	}
	_, search, searchArgs, ok := ast.MethodCall(recv)
	if !ok || len(searchArgs) != 1 {
		return nil
	}
	switch search {
	case "find", "position", "rposition":
	default:
		return nil
	}
	replacement := "any"
	if method == "is_none" {
		replacement = "!_.any"
	}
	return lint.MatchNode(p.Node, "called `%s()` after searching an `Iterator` with `%s`; use `%s(..)` instead",
		method, search, replacement)
}
