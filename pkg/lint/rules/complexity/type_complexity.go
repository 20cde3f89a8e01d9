package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(TypeComplexity)
}

// TypeComplexity flags generic types nested deeper than max_depth, or with
// more than max_args type arguments at one level.
var TypeComplexity = lint.RuleDef{
	Name:        "type_complexity",
	Group:       "complexity",
	Description: "Type is too deeply nested to read comfortably.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindGenericType},
	Check:       checkTypeComplexity,
	ConfigKeys:  []string{"max_depth", "max_args"},
	Rationale:   "Deeply nested types hide their meaning; a type alias or struct gives it a name.",
	BadExample:  "fn load() -> Option<Result<HashMap<String, Vec<Option<Rc<RefCell<i32>>>>>, String>> { None }",
	GoodExample: "type Cache = HashMap<String, Vec<Option<Shared>>>;\nfn load() -> Option<Result<Cache, String>> { None }",
	Fix:         "Introduce a type alias or a named struct for the inner part.",
}

// TypeComplexityOptions are the options accepted by type_complexity.
type TypeComplexityOptions struct {
	MaxDepth int `mapstructure:"max_depth"`
	MaxArgs  int `mapstructure:"max_args"`
}

// typeNodes are type kinds that nest inside another type.
var typeNodes = map[string]bool{
	ast.KindGenericType:   true,
	ast.KindTypeArguments: true,
	ast.KindReferenceType: true,
	ast.KindTupleType:     true,
	ast.KindArrayType:     true,
	"pointer_type":        true,
}

func checkTypeComplexity(p *lint.Pass) *lint.Match {
	if parent := p.Parent(); parent != nil && typeNodes[parent.Kind] {
		return nil
	}
	opts := TypeComplexityOptions{MaxDepth: 4, MaxArgs: 6}
	if err := lint.DecodeOptions(p.Options, &opts); err != nil {
		return nil
	}
	depth, args := measure(p.Node)
	if depth > opts.MaxDepth {
		return lint.MatchNode(p.Node, "very complex type used (nesting depth %d exceeds %d); consider factoring parts into `type` definitions",
			depth, opts.MaxDepth)
	}
	if args > opts.MaxArgs {
		return lint.MatchNode(p.Node, "very complex type used (%d type arguments exceed %d); consider factoring parts into `type` definitions",
			args, opts.MaxArgs)
	}
	return nil
}

// measure returns the generic nesting depth of t and the widest argument list.
func measure(t *ast.Node) (depth, args int) {
	var walk func(n *ast.Node, d int)
	walk = func(n *ast.Node, d int) {
		if n.Kind == ast.KindGenericType {
			d++
			if d > depth {
				depth = d
			}
			if targs := n.ChildByField("type_arguments"); targs != nil && targs.NamedCount() > args {
				args = targs.NamedCount()
			}
		}
		for _, c := range n.Children {
			walk(c, d)
		}
	}
	walk(t, 0)
	return depth, args
}
