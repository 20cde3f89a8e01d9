package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(NeedlessRangeLoop)
}

// NeedlessRangeLoop flags `for i in 0..v.len()` loops whose body indexes v[i].
// Element-wise copies are left to manual_memcpy.
var NeedlessRangeLoop = lint.RuleDef{
	Name:        "needless_range_loop",
	Group:       "style",
	Description: "Index loop over a range that only serves to index a collection.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindFor},
	Check:       checkNeedlessRangeLoop,
	Rationale:   "Iterating the collection directly avoids bounds checks and off-by-one mistakes.",
	BadExample:  "for i in 0..v.len() {\n    sum += v[i];\n}",
	GoodExample: "for item in &v {\n    sum += item;\n}",
}

func checkNeedlessRangeLoop(p *lint.Pass) *lint.Match {
	pattern, value, body, ok := rustast.ForLoop(p.Node)
	if !ok || pattern.Kind != ast.KindIdentifier {
		return nil
	}
	if _, _, isMemcpy := rustast.MemcpyShape(p.Node); isMemcpy {
		return nil
	}
	_, end, inclusive, ok := rustast.RangeBounds(value)
	if !ok || inclusive {
		return nil
	}
	coll, method, args, ok := ast.MethodCall(ast.Unparen(end))
	if !ok || method != "len" || len(args) != 0 {
		return nil
	}

	idx := pattern.Text
	indexed := 0
	ast.Walk(body, func(n *ast.Node) bool {
		if base, ok := rustast.IsIndexBy(n, idx); ok && ast.Equal(base, coll) {
			indexed++
		}
		if n.Kind == ast.KindTokenTree {
			indexed += macroIndexes(n, coll, idx)
		}
		return true
	})
	if indexed == 0 {
		return nil
	}
	if rustast.CountIdent(body, idx) > indexed {
		return lint.MatchNode(p.Node, "the loop variable `%s` is used to index `%s`; consider using `.iter().enumerate()`",
			idx, p.Text(coll))
	}
	return lint.MatchNode(p.Node, "the loop variable `%s` is only used to index `%s`; consider iterating `&%s`",
		idx, p.Text(coll), p.Text(coll))
}

// macroIndexes counts `coll [ idx ]` token sequences directly inside a macro
// token tree. Only plain identifiers are recognised.
func macroIndexes(tree, coll *ast.Node, idx string) int {
	if coll == nil || coll.Kind != ast.KindIdentifier {
		return 0
	}
	count := 0
	for i := 0; i+1 < len(tree.Children); i++ {
		name, next := tree.Children[i], tree.Children[i+1]
		if !ast.IsIdent(name, coll.Text) || next.Kind != ast.KindTokenTree {
			continue
		}
		if len(next.Children) == 0 || next.Children[0].Kind != "[" {
			continue
		}
		if inner := next.NamedChildren(); len(inner) == 1 && ast.IsIdent(inner[0], idx) {
			count++
		}
	}
	return count
}
