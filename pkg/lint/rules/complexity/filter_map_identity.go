package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(FilterMapIdentity)
}

// FilterMapIdentity flags `.filter_map(|x| x)` and `.filter_map(identity)`.
var FilterMapIdentity = lint.RuleDef{
	Name:        "filter_map_identity",
	Group:       "complexity",
	Description: "filter_map with the identity function.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkFilterMapIdentity,
	BadExample:  "let xs: Vec<i32> = opts.into_iter().filter_map(|x| x).collect();",
	GoodExample: "let xs: Vec<i32> = opts.into_iter().flatten().collect();",
}

func checkFilterMapIdentity(p *lint.Pass) *lint.Match {
	_, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "filter_map" || len(args) != 1 || !isIdentityFn(args[0]) {
		return nil
	}
	return lint.MatchNode(p.Node, "use of `filter_map` with an identity function; use `flatten()` instead")
}

func isIdentityFn(n *ast.Node) bool {
	if n.Is(ast.KindIdentifier, ast.KindScopedIdent) {
		return rustast.LastSegment(ast.LeafText(n)) == "identity"
	}
	param, body, ok := ast.ClosureIdentity(n)
	return ok && ast.IsIdent(body, param)
}
