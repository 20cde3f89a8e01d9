package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
	"github.com/WolffM/vibecheck/pkg/token"
)

func init() {
	lint.MustRegister(WhileLetOnIterator)
}

// WhileLetOnIterator flags `while let Some(x) = it.next()` loops.
var WhileLetOnIterator = lint.RuleDef{
	Name:        "while_let_on_iterator",
	Group:       "style",
	Description: "while let loop driving an iterator by hand.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindWhile, ast.KindWhileLet},
	Check:       checkWhileLetOnIterator,
	BadExample:  "while let Some(x) = iter.next() {\n    use_it(x);\n}",
	GoodExample: "for x in iter {\n    use_it(x);\n}",
}

func checkWhileLetOnIterator(p *lint.Pass) *lint.Match {
	pattern, value, ok := rustast.LetCondition(p.Node)
	if !ok {
		return nil
	}
	name, inner, ok := rustast.TupleVariant(pattern)
	if !ok || name != "Some" || inner == nil {
		return nil
	}
	iter, method, args, ok := ast.MethodCall(ast.Unparen(value))
	if !ok || method != "next" || len(args) != 0 || !iter.Is(ast.KindIdentifier, ast.KindField) {
		return nil
	}
	target := p.Text(iter)
	if iter.Kind != ast.KindIdentifier || p.Scope.UsedAfter(iter.Text, p.Node.Span.End.Offset) {
		target = "&mut " + target
	}
	return &lint.Match{
		Span:    token.Span{Start: p.Node.Span.Start, End: value.Span.End},
		Message: "this loop could be written as a `for` loop: `for " + p.Text(inner) + " in " + target + "`",
	}
}
