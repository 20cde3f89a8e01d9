package style

import (
	"strings"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(MapClone)
}

// MapClone flags `.map(|x| x.clone())`, `.map(|x| *x)` and `.map(Clone::clone)`.
var MapClone = lint.RuleDef{
	Name:        "map_clone",
	Group:       "style",
	Description: "Mapping with a closure that only clones its argument.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkMapClone,
	BadExample:  "let owned: Vec<String> = names.iter().map(|x| x.clone()).collect();",
	GoodExample: "let owned: Vec<String> = names.iter().cloned().collect();",
}

func checkMapClone(p *lint.Pass) *lint.Match {
	_, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "map" || len(args) != 1 {
		return nil
	}
	if isCloneFn(args[0]) || isCloneClosure(args[0]) {
		return lint.MatchNode(p.Node, "you are using an explicit closure for cloning elements; consider calling `cloned()`")
	}
	return nil
}

func isCloneFn(n *ast.Node) bool {
	if n.Kind != ast.KindScopedIdent {
		return false
	}
	path := ast.LeafText(n)
	return path == "Clone::clone" || strings.HasSuffix(path, "::Clone::clone")
}

func isCloneClosure(n *ast.Node) bool {
	param, body, ok := ast.ClosureIdentity(n)
	if !ok {
		return false
	}
	recv, method, args, ok := ast.MethodCall(body)
	if ok {
		return method == "clone" && len(args) == 0 && ast.IsIdent(recv, param)
	}
	if body.Kind == ast.KindUnary && ast.Operator(body) == "*" {
		return ast.IsIdent(body.NamedChild(0), param)
	}
	return false
}
