package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(ManualFilterMap)
}

// ManualFilterMap flags `.filter(|x| x.is_some()).map(|x| x.unwrap())` and
// the is_ok variant.
var ManualFilterMap = lint.RuleDef{
	Name:        "manual_filter_map",
	Group:       "complexity",
	Description: "filter followed by an unwrapping map.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkManualFilterMap,
	BadExample:  "v.into_iter().filter(|x| x.is_some()).map(|x| x.unwrap())",
	GoodExample: "v.into_iter().flatten()",
}

func checkManualFilterMap(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "map" || len(args) != 1 || !callsOnParam(args[0], "unwrap") {
		return nil
	}
	_, inner, innerArgs, ok := ast.MethodCall(recv)
	if !ok || inner != "filter" || len(innerArgs) != 1 || !callsOnParam(innerArgs[0], "is_some", "is_ok") {
		return nil
	}
	return lint.MatchNode(p.Node, "`filter(..).map(..)` can be simplified as `filter_map(..)`")
}

// callsOnParam reports whether n is a closure `|x| x.m()` for one of methods.
func callsOnParam(n *ast.Node, methods ...string) bool {
	param, body, ok := ast.ClosureIdentity(n)
	if !ok {
		return false
	}
	recv, _, args, ok := ast.MethodCall(body)
	if !ok || len(args) != 0 || !ast.IsMethodCall(body, methods...) {
		return false
	}
	recv = ast.Unparen(recv)
	if recv != nil && recv.Kind == ast.KindUnary {
		recv = recv.NamedChild(0)
	}
	return ast.IsIdent(recv, param)
}
