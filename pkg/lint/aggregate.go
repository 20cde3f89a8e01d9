package lint

import (
	"cmp"
	"slices"

	"github.com/WolffM/vibecheck/pkg/token"
)

type findingKey struct {
	rule string
	span token.Span
}

// Aggregate removes duplicate (rule, span) findings, keeping the first, and
// sorts the rest by start line, start column and rule name. Ties are broken
// by end position and message so the order is total. Overlapping findings of
// different rules are all kept. The input is not modified.
func Aggregate(findings []Finding) []Finding {
	seen := make(map[findingKey]struct{}, len(findings))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		key := findingKey{rule: f.RuleName, span: f.Span}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	slices.SortStableFunc(out, compareFindings)
	return out
}

func compareFindings(a, b Finding) int {
	return cmp.Or(
		cmp.Compare(a.Span.Start.Line, b.Span.Start.Line),
		cmp.Compare(a.Span.Start.Column, b.Span.Start.Column),
		cmp.Compare(a.RuleName, b.RuleName),
		a.Span.End.Compare(b.Span.End),
		cmp.Compare(a.Message, b.Message),
	)
}
