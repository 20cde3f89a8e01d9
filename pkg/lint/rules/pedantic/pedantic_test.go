package pedantic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/pkg/lint"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules" // register rules
)

// Helper to run analysis and filter by rule name
func runRule(t *testing.T, src string, rule string) []lint.Finding {
	t.Helper()
	analyzer, err := lint.NewAnalyzer(lint.DefaultRules(), lint.NewConfig(), nil)
	require.NoError(t, err)
	res := analyzer.AnalyzeFile(context.Background(), lint.Source{Path: "src/lib.rs", Content: []byte(src)})

	var filtered []lint.Finding
	for _, f := range res.Findings {
		if f.RuleName == rule {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

type ruleCase struct {
	name     string
	src      string
	wantDiag bool
}

func runCases(t *testing.T, rule string, tests []ruleCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.src, rule)
			if tt.wantDiag {
				assert.NotEmpty(t, findings, "expected %s finding", rule)
			} else {
				assert.Empty(t, findings, "unexpected %s finding", rule)
			}
		})
	}
}

func TestMatchBool(t *testing.T) {
	runCases(t, "match_bool", []ruleCase{
		{name: "true false", src: "fn f(b: bool) -> i32 {\n    match b {\n        true => 1,\n        false => 0,\n    }\n}", wantDiag: true},
		{name: "true wildcard", src: "fn f(b: bool) -> i32 {\n    match b {\n        true => 1,\n        _ => 0,\n    }\n}", wantDiag: true},
		{name: "option", src: "fn f(x: Option<i32>) -> i32 {\n    match x {\n        Some(v) => v,\n        None => 0,\n    }\n}", wantDiag: false},
		{name: "integers", src: "fn f(x: i32) -> i32 {\n    match x {\n        0 => 1,\n        _ => 0,\n    }\n}", wantDiag: false},
	})
}

func TestMutMut(t *testing.T) {
	runCases(t, "mut_mut", []ruleCase{
		{name: "parameter type", src: "fn f(x: &mut &mut i32) {\n    **x = 42;\n}", wantDiag: true},
		{name: "expression", src: "fn f(mut x: i32) {\n    let mut r = &mut x;\n    g(&mut &mut r);\n}", wantDiag: true},
		{name: "single mut", src: "fn f(x: &mut i32) { *x = 1; }", wantDiag: false},
		{name: "shared outer", src: "fn f(x: & &mut i32) {}", wantDiag: false},
	})
}

func TestMutMutReportsOutermostOnly(t *testing.T) {
	findings := runRule(t, "fn f(x: &mut &mut &mut i32) {}", "mut_mut")
	require.Len(t, findings, 1)
	assert.Equal(t, 9, findings[0].Span.Start.Column)
}
