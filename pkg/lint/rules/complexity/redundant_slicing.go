package complexity

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(RedundantSlicing)
}

// RedundantSlicing flags `&v[..]` where v is already a slice reference.
var RedundantSlicing = lint.RuleDef{
	Name:        "redundant_slicing",
	Group:       "complexity",
	Description: "Slicing the whole of something that is already a slice.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindReference},
	Check:       checkRedundantSlicing,
	BadExample:  "fn f(v: &[i32]) -> &[i32] { &v[..] }",
	GoodExample: "fn f(v: &[i32]) -> &[i32] { v }",
}

func checkRedundantSlicing(p *lint.Pass) *lint.Match {
	base, index, ok := rustast.IndexParts(p.Node.ChildByField("value"))
	if !ok {
		return nil
	}
	start, end, _, ok := rustast.RangeBounds(index)
	if !ok || start != nil || end != nil {
		return nil
	}
	base = ast.Unparen(base)
	if base == nil || base.Kind != ast.KindIdentifier {
		return nil
	}
	b, found := p.Lookup(base.Text)
	if !found || !isSliceRef(b.Type) {
		return nil
	}
	return lint.MatchNode(p.Node, "redundant slicing of the whole range; use `%s`", base.Text)
}

// isSliceRef matches `&[T]`, `&mut [T]` and `&str`.
func isSliceRef(t *ast.Node) bool {
	if t == nil || t.Kind != ast.KindReferenceType {
		return false
	}
	inner := t.ChildByField("type")
	switch {
	case inner == nil:
		return false
	case inner.Kind == ast.KindArrayType:
		return inner.ChildByField("length") == nil
	case inner.Kind == ast.KindPrimitiveType:
		return inner.Text == "str"
	}
	return false
}
