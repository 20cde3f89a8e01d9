package style

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
	"github.com/WolffM/vibecheck/pkg/token"
)

func init() {
	lint.MustRegister(RedundantPatternMatching)
}

// RedundantPatternMatching flags matches and if/while lets that only test
// which variant of Option or Result a value holds.
var RedundantPatternMatching = lint.RuleDef{
	Name:        "redundant_pattern_matching",
	Group:       "style",
	Description: "Pattern matching that only checks the variant of an Option or Result.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindMatch, ast.KindIf, ast.KindIfLet, ast.KindWhile, ast.KindWhileLet},
	Check:       checkRedundantPatternMatching,
	BadExample:  "let found = match x { Some(_) => true, None => false };",
	GoodExample: "let found = x.is_some();",
}

// variantTests maps a variant to the method that tests for it.
var variantTests = map[string]string{
	"Some": "is_some()",
	"None": "is_none()",
	"Ok":   "is_ok()",
	"Err":  "is_err()",
}

// complement pairs each variant with the other variant of its type.
var complement = map[string]string{"Some": "None", "None": "Some", "Ok": "Err", "Err": "Ok"}

func checkRedundantPatternMatching(p *lint.Pass) *lint.Match {
	if p.Node.Kind == ast.KindMatch {
		return checkRedundantMatch(p)
	}
	pattern, value, ok := rustast.LetCondition(p.Node)
	if !ok {
		return nil
	}
	variant, ok := emptyVariant(pattern)
	if !ok {
		return nil
	}
	span := token.Span{Start: p.Node.Span.Start, End: value.Span.End}
	return &lint.Match{
		Span:    span,
		Message: "redundant pattern matching, consider using `" + p.Text(value) + "." + variantTests[variant] + "`",
	}
}

func checkRedundantMatch(p *lint.Pass) *lint.Match {
	scrutinee, arms, ok := rustast.MatchArms(p.Node)
	if !ok || len(arms) != 2 || arms[0].Guard || arms[1].Guard {
		return nil
	}
	first, ok := emptyVariant(arms[0].Pattern)
	if !ok {
		return nil
	}
	second, ok := emptyVariant(arms[1].Pattern)
	if !ok && !rustast.IsWildcard(arms[1].Pattern) {
		return nil
	}
	if ok && complement[first] != second {
		return nil
	}
	v1, ok1 := ast.BoolLiteral(armExpr(arms[0].Value))
	v2, ok2 := ast.BoolLiteral(armExpr(arms[1].Value))
	if !ok1 || !ok2 || v1 == v2 {
		return nil
	}
	variant := first
	if !v1 {
		variant = complement[first]
	}
	return lint.MatchNode(p.Node, "redundant pattern matching, consider using `%s.%s`",
		p.Text(scrutinee), variantTests[variant])
}

// emptyVariant accepts `Some(_)`, `None`, `Ok(_)` and `Err(_)`.
func emptyVariant(pattern *ast.Node) (string, bool) {
	name, inner, ok := rustast.TupleVariant(pattern)
	if !ok {
		return "", false
	}
	if _, known := variantTests[name]; !known {
		return "", false
	}
	if name == "None" {
		return name, inner == nil
	}
	return name, inner != nil && rustast.IsWildcard(inner)
}

// armExpr unwraps `{ expr }` arm bodies.
func armExpr(n *ast.Node) *ast.Node {
	if n != nil && n.Kind == ast.KindBlock {
		return ast.SingleExpr(n)
	}
	return n
}
