package perf

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(OrFunCall)
}

// OrFunCall flags eager calls passed to unwrap_or, map_or, ok_or and or.
var OrFunCall = lint.RuleDef{
	Name:        "or_fun_call",
	Group:       "perf",
	Description: "Function call inside an eagerly evaluated fallback argument.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkOrFunCall,
	Rationale:   "The fallback is computed even when it is not needed; the _else variants take a closure instead.",
	BadExample:  "x.unwrap_or(String::new())",
	GoodExample: "x.unwrap_or_default()",
}

// lazyVariants maps each eager method to its closure-taking form.
var lazyVariants = map[string]string{
	"unwrap_or":     "unwrap_or_else",
	"map_or":        "map_or_else",
	"ok_or":         "ok_or_else",
	"or":            "or_else",
	"get_or_insert": "get_or_insert_with",
}

func checkOrFunCall(p *lint.Pass) *lint.Match {
	_, method, args, ok := ast.MethodCall(p.Node)
	lazy, eager := lazyVariants[method]
	if !ok || !eager || len(args) == 0 {
		return nil
	}
	arg := ast.Unparen(args[0])
	if !isCostly(arg) {
		return nil
	}
	if method == "unwrap_or" && rustast.IsDefaultCall(arg) {
		return lint.MatchNode(p.Node, "use of `unwrap_or` to construct a default value; use `unwrap_or_default()` instead")
	}
	return lint.MatchNode(p.Node, "use of `%s` followed by a function call; use `%s(|| %s)` instead",
		method, lazy, p.Text(arg))
}

// isCostly reports whether evaluating n calls a function or allocates.
func isCostly(n *ast.Node) bool {
	switch {
	case n == nil:
		return false
	case n.Kind == ast.KindMacroInvocation:
		name := ast.MacroName(n)
		return name == "vec" || name == "format"
	case n.Kind != ast.KindCall:
		return false
	case rustast.IsConstructorCall(n):
		return false
	}
	return true
}
