package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(PtrArg)
}

// PtrArg flags function parameters typed `&Vec<T>`, `&String` or `&PathBuf`.
var PtrArg = lint.RuleDef{
	Name:        "ptr_arg",
	Group:       "style",
	Description: "Parameter borrows an owned container where a slice would do.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindParameter},
	Check:       checkPtrArg,
	Rationale:   "&[T], &str and &Path accept more callers and cost one less indirection.",
	BadExample:  "fn total(v: &Vec<i32>) -> i32 { v.iter().sum() }",
	GoodExample: "fn total(v: &[i32]) -> i32 { v.iter().sum() }",
}

func checkPtrArg(p *lint.Pass) *lint.Match {
	fn := p.Ancestor(1)
	if fn == nil || fn.Kind != ast.KindFunctionItem {
		return nil
	}
	// Trait impls cannot change the signature.
	if impl := p.Enclosing("impl_item"); impl != nil && impl.ChildByField("trait") != nil {
		return nil
	}
	typ := p.Node.ChildByField("type")
	if typ == nil || typ.Kind != ast.KindReferenceType || typ.FirstChildOfKind(ast.KindMutSpecifier) != nil {
		return nil
	}
	inner := typ.ChildByField("type")
	if inner == nil {
		return nil
	}
	var owned, slice string
	switch inner.Kind {
	case ast.KindGenericType:
		if ast.LeafText(inner.ChildByField("type")) != "Vec" {
			return nil
		}
		owned = "Vec"
		slice = "[_]"
		if targs := inner.ChildByField("type_arguments"); targs != nil && targs.NamedCount() == 1 {
			slice = "[" + p.Text(targs.NamedChild(0)) + "]"
		}
	case ast.KindTypeIdentifier:
		switch inner.Text {
		case "String":
			owned, slice = "String", "str"
		case "PathBuf":
			owned, slice = "PathBuf", "Path"
		default:
			return nil
		}
	default:
		return nil
	}
	return lint.MatchNode(typ, "writing `&%s` instead of `&%s` involves a new object where a slice will do", owned, slice)
}
