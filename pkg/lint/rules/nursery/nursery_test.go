package nursery_test

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

func TestStringLitAsBytes(t *testing.T) {
	runCases(t, "string_lit_as_bytes", []ruleCase{
		{name: "literal", src: "fn f() -> &'static [u8] { \"hello\".as_bytes() }", wantDiag: true},
		{name: "byte literal", src: "fn f() -> &'static [u8] { b\"hello\" }", wantDiag: false},
		{name: "binding", src: "fn f(s: &str) -> &[u8] { s.as_bytes() }", wantDiag: false},
	})
}

func TestStringLitAsBytesMessage(t *testing.T) {
	findings := runRule(t, "fn f() -> &'static [u8] { \"hello\".as_bytes() }", "string_lit_as_bytes")
	require.Len(t, findings, 1)
	assert.Equal(t, "calling `as_bytes()` on a string literal; use a byte string literal instead: `b\"hello\"`", findings[0].Message)
}
