package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(UnitArg)
}

// UnitArg flags calls passing a unit value, such as the result of println!.
var UnitArg = lint.RuleDef{
	Name:        "unit_arg",
	Group:       "complexity",
	Description: "Passing a unit value to a function.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkUnitArg,
	Rationale:   "A unit argument carries no information; the call usually hides a side effect that belongs on its own line.",
	BadExample:  "takes_option(Some(println!(\"side effect\")));",
	GoodExample: "println!(\"side effect\");\ntakes_option(None);",
}

// unitMacros expand to expressions of type ().
var unitMacros = map[string]bool{
	"println": true, "print": true, "eprintln": true, "eprint": true,
	"assert": true, "assert_eq": true, "assert_ne": true,
	"debug_assert": true, "debug_assert_eq": true, "debug_assert_ne": true,
}

func checkUnitArg(p *lint.Pass) *lint.Match {
	for _, arg := range ast.CallArgs(p.Node) {
		arg = ast.Unparen(arg)
		if arg.Kind == ast.KindUnit {
			return lint.MatchNode(p.Node, "passing a unit value to a function")
		}
		if unitMacros[ast.MacroName(arg)] {
			return lint.MatchNode(p.Node, "passing a unit value to a function; move the `%s!` call out of the argument list",
				ast.MacroName(arg))
		}
	}
	return nil
}
