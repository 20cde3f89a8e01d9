package rules_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/pkg/lint"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules"
)

func TestAllRulesRegistered(t *testing.T) {
	rules := lint.DefaultRules()
	assert.Equal(t, 35, rules.Len())
	assert.Equal(t, []string{"complexity", "correctness", "nursery", "pedantic", "perf", "style"}, rules.Groups())

	for _, r := range rules.All() {
		assert.NotEmpty(t, r.Description, r.Name)
		assert.NotEmpty(t, r.Kinds, r.Name)
		assert.NotEmpty(t, r.BadExample, r.Name)
		assert.NotEmpty(t, r.GoodExample, r.Name)
		assert.NotEmpty(t, lint.BuildDocURL(r.Name), r.Name)
	}
}

func TestFixtureTriggersEveryRule(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "fixture.rs"))
	require.NoError(t, err)

	analyzer, err := lint.NewAnalyzer(lint.DefaultRules(), lint.NewConfig(), nil)
	require.NoError(t, err)
	res := analyzer.AnalyzeFile(context.Background(), lint.Source{Path: "fixture.rs", Content: src})
	require.False(t, res.Incomplete)

	fired := make(map[string]int)
	for _, f := range res.Findings {
		assert.False(t, f.Structural(), "structural finding: %s", f.Message)
		fired[f.RuleName]++
	}
	for _, r := range lint.DefaultRules().All() {
		assert.Positive(t, fired[r.Name], "rule %s did not fire on the fixture", r.Name)
	}
}

func TestFixtureIsDeterministic(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "fixture.rs"))
	require.NoError(t, err)

	analyzer, err := lint.NewAnalyzer(lint.DefaultRules(), lint.NewConfig(), nil)
	require.NoError(t, err)
	first := analyzer.AnalyzeFile(context.Background(), lint.Source{Path: "fixture.rs", Content: src})
	second := analyzer.AnalyzeFile(context.Background(), lint.Source{Path: "fixture.rs", Content: src})
	assert.Equal(t, first.Findings, second.Findings)
}

func TestGroupDisable(t *testing.T) {
	src := "fn f(x: i32, v: &Vec<i32>) -> bool {\n    x == x && v.len() == 0\n}\n"

	analyzer, err := lint.NewAnalyzer(lint.DefaultRules(), lint.NewConfig().Disable("style"), nil)
	require.NoError(t, err)
	res := analyzer.AnalyzeFile(context.Background(), lint.Source{Path: "lib.rs", Content: []byte(src)})

	var names []string
	for _, f := range res.Findings {
		names = append(names, f.RuleName)
	}
	assert.Contains(t, names, "eq_op")
	assert.NotContains(t, names, "len_zero")
	assert.NotContains(t, names, "ptr_arg")
}
