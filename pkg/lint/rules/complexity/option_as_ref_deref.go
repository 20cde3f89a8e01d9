package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(OptionAsRefDeref)
}

// OptionAsRefDeref flags `.as_ref().map(|x| x.as_str())` and friends.
var OptionAsRefDeref = lint.RuleDef{
	Name:        "option_as_ref_deref",
	Group:       "complexity",
	Description: "as_ref().map() that dereferences the inner value.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkOptionAsRefDeref,
	BadExample:  "let name: Option<&str> = opt.as_ref().map(|x| x.as_str());",
	GoodExample: "let name: Option<&str> = opt.as_deref();",
}

var derefMethods = map[string]bool{
	"as_str": true, "as_slice": true, "as_path": true, "as_os_str": true, "deref": true,
}

func checkOptionAsRefDeref(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "map" || len(args) != 1 {
		return nil
	}
	opt, inner, innerArgs, ok := ast.MethodCall(recv)
	if !ok || inner != "as_ref" || len(innerArgs) != 0 || !isDerefFn(args[0]) {
		return nil
	}
	return lint.MatchNode(p.Node, "called `.as_ref().map(..)` on an Option value; use `%s.as_deref()`", p.Text(opt))
}

func isDerefFn(n *ast.Node) bool {
	if n.Kind == ast.KindScopedIdent {
		return derefMethods[rustast.LastSegment(ast.LeafText(n))]
	}
	param, body, ok := ast.ClosureIdentity(n)
	if !ok {
		return false
	}
	recv, method, args, ok := ast.MethodCall(body)
	return ok && derefMethods[method] && len(args) == 0 && ast.IsIdent(recv, param)
}
