package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/internal/cli/testutil"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func runRules(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommand(t, NewRulesCommand(), args...)
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-name]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"group", "full", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListAll(t *testing.T) {
	out, err := runRules(t)
	require.NoError(t, err)

	// Piped output defaults to markdown.
	assert.Contains(t, out, "# Lint Rules")
	assert.Contains(t, out, "## Correctness")
	assert.Contains(t, out, "## Engine")
	assert.Contains(t, out, "**eq_op**")
	assert.Contains(t, out, "**parse_error**")
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
}

func TestRulesCommand_Text(t *testing.T) {
	out, err := runRules(t, "--format", "text", "--full")
	require.NoError(t, err)

	assert.Contains(t, out, "Lint Rules (")
	assert.Contains(t, out, "Perf")
	assert.Contains(t, out, "needless_range_loop")
	assert.Contains(t, out, "WHY", "table headers are upper-cased")
}

func TestRulesCommand_FilterByGroup(t *testing.T) {
	t.Run("known group", func(t *testing.T) {
		out, err := runRules(t, "--group", "perf")
		require.NoError(t, err)
		assert.Contains(t, out, "## Perf")
		assert.NotContains(t, out, "## Style")
		assert.NotContains(t, out, "**eq_op**")
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := runRules(t, "--group", "vibes")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown rule group")
	})
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := runRules(t, "--format", "json")
	require.NoError(t, err)

	var result RulesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	want := lint.DefaultRules().Len() + len(lint.StructuralRules())
	assert.Equal(t, want, result.Total)
	assert.Len(t, result.Rules, want)
	assert.Equal(t, len(lint.StructuralRules()), result.Groups[lint.GroupEngine])

	for i := 1; i < len(result.Rules); i++ {
		prev, cur := result.Rules[i-1], result.Rules[i]
		assert.True(t, prev.Group < cur.Group || (prev.Group == cur.Group && prev.Name < cur.Name),
			"rules should be sorted by group then name: %s/%s before %s/%s", prev.Group, prev.Name, cur.Group, cur.Name)
	}
}

func TestRulesCommand_ShowRule(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		out, err := runRules(t, "eq_op")
		require.NoError(t, err)
		assert.Contains(t, out, "# eq_op")
		assert.Contains(t, out, "**Group:** correctness")
		assert.Contains(t, out, "## Bad Example")
		assert.Contains(t, out, "```rust")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("text", func(t *testing.T) {
		out, err := runRules(t, "eq_op", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "Why This Matters")
		assert.Contains(t, out, lint.BuildDocURL("eq_op"))
	})

	t.Run("json", func(t *testing.T) {
		out, err := runRules(t, "len_zero", "--format", "json")
		require.NoError(t, err)

		var info core.RuleInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "len_zero", info.Name)
		assert.Equal(t, "style", info.Group)
		assert.Equal(t, core.SeverityWarning, info.DefaultSeverity)
	})

	t.Run("engine rule", func(t *testing.T) {
		out, err := runRules(t, "unused_suppression", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "engine")
		assert.NotContains(t, out, "Docs:")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := runRules(t, "nonexistent")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `rule "nonexistent" not found`)
	})
}

func TestRulesCommand_SARIFUnsupported(t *testing.T) {
	_, err := runRules(t, "--format", "sarif")
	require.Error(t, err)
}

func TestTruncateOneLine(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"line one\nline two", 40, "line one line two"},
		{"abcdefghijklmnop", 10, "abcdefg..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateOneLine(tt.in, tt.max))
	}
}
