package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/internal/cli/config"
	"github.com/WolffM/vibecheck/internal/cli/output"
	"github.com/WolffM/vibecheck/internal/state"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/token"
)

func runLintCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommand(t, NewLintCommand(), args...)
}

func decodeLint(t *testing.T, out string) output.LintOutput {
	t.Helper()
	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	return result
}

func TestBuildLintConfig(t *testing.T) {
	rules := lint.DefaultRules()
	eqOp, ok := rules.Lookup("eq_op")
	require.True(t, ok)
	lenZero, ok := rules.Lookup("len_zero")
	require.True(t, ok)

	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{}, rules)
		require.NoError(t, err)
		assert.True(t, cfg.IsEnabled(eqOp))
		assert.True(t, cfg.IsEnabled(lenZero))
	})

	t.Run("disable adds to configured list", func(t *testing.T) {
		c := config.Default()
		c.Lint.Disabled = []string{"style"}
		cfg, err := buildLintConfig(c, &LintOptions{Disable: []string{" eq_op ", ""}}, rules)
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("eq_op"))
		assert.True(t, cfg.IsDisabled("style"))
		assert.False(t, cfg.IsEnabled(lenZero))
	})

	t.Run("rule replaces configured allow list", func(t *testing.T) {
		c := config.Default()
		c.Lint.Enabled = []string{"style"}
		cfg, err := buildLintConfig(c, &LintOptions{Rules: []string{"correctness"}}, rules)
		require.NoError(t, err)
		assert.True(t, cfg.IsEnabled(eqOp))
		assert.False(t, cfg.IsEnabled(lenZero))
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := buildLintConfig(nil, &LintOptions{Disable: []string{"AM01"}}, rules)
		var cfgErr *lint.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), `unknown rule or group "AM01"`)
	})
}

func TestWaiverSuppressions(t *testing.T) {
	sups := waiverSuppressions([]*state.Waiver{
		{Path: "src/lib.rs", StartLine: 3, EndLine: 5, Rule: "eq_op"},
		{Path: "src/main.rs", StartLine: 7, EndLine: 7},
	})
	require.Len(t, sups, 2)

	assert.Equal(t, lint.OriginWaiver, sups[0].Origin)
	assert.Equal(t, []string{"eq_op"}, sups[0].Rules)
	assert.Equal(t, token.LineSpan(3, 5), sups[0].Span)
	assert.True(t, sups[0].AppliesTo("src/lib.rs"))
	assert.False(t, sups[0].AppliesTo("src/main.rs"))

	assert.Empty(t, sups[1].Rules, "a waiver without a rule covers every rule")
}

func TestBuildOutput(t *testing.T) {
	finding := func(rule string, sev core.Severity, line int) lint.Finding {
		return lint.Finding{
			RuleName: rule,
			Severity: sev,
			Span: token.Span{
				Start: token.Position{Line: line, Column: 5},
				End:   token.Position{Line: line, Column: 11},
			},
			Message: rule + " fired",
		}
	}
	report := &lint.Report{Files: []lint.FileResult{
		{Path: "src/a.rs", Findings: []lint.Finding{
			finding("eq_op", core.SeverityWarning, 2),
			finding("parse_error", core.SeverityError, 1),
		}, Suppressed: 2},
		{Path: "src/b.rs", Findings: []lint.Finding{
			finding("unused_suppression", core.SeverityInfo, 4),
		}},
		{Path: "src/c.rs"},
	}}
	rules := lint.DefaultRules()

	t.Run("warning threshold", func(t *testing.T) {
		out := buildOutput(report, core.SeverityWarning, rules)
		assert.Equal(t, 3, out.Summary.FilesAnalyzed)
		assert.Equal(t, 2, out.Summary.TotalIssues)
		assert.Equal(t, 1, out.Summary.Errors)
		assert.Equal(t, 1, out.Summary.Warnings)
		assert.Equal(t, 2, out.Summary.Suppressed)
		require.Len(t, out.Files, 1, "files without remaining findings are omitted")

		d := out.Files[0].Diagnostics[0]
		assert.Equal(t, "eq_op", d.Rule)
		assert.Equal(t, 2, d.Line)
		assert.Equal(t, 5, d.Column)
		assert.Equal(t, 11, d.EndColumn)
		assert.Equal(t, lint.BuildDocURL("eq_op"), d.DocURL)
		assert.Empty(t, out.Files[0].Diagnostics[1].DocURL, "engine rules have no docs")

		assert.Contains(t, out.Rules, "eq_op")
		assert.Contains(t, out.Rules, "parse_error")
	})

	t.Run("info threshold", func(t *testing.T) {
		out := buildOutput(report, core.SeverityInfo, rules)
		assert.Equal(t, 3, out.Summary.TotalIssues)
		assert.Equal(t, 1, out.Summary.Info)
		assert.Len(t, out.Files, 2)
	})

	t.Run("error threshold", func(t *testing.T) {
		out := buildOutput(report, core.SeverityError, rules)
		assert.Equal(t, 1, out.Summary.TotalIssues)
		assert.Equal(t, "parse_error", out.Files[0].Diagnostics[0].Rule)
	})

	t.Run("line spans end at column zero", func(t *testing.T) {
		r := &lint.Report{Files: []lint.FileResult{{Path: "x.rs", Findings: []lint.Finding{{
			RuleName: "eq_op",
			Severity: core.SeverityWarning,
			Span:     token.LineSpan(3, 4),
		}}}}}
		out := buildOutput(r, core.SeverityInfo, rules)
		assert.Equal(t, 0, out.Files[0].Diagnostics[0].EndColumn)
		assert.Equal(t, 4, out.Files[0].Diagnostics[0].EndLine)
	})

	t.Run("incomplete", func(t *testing.T) {
		r := &lint.Report{Incomplete: true, Files: []lint.FileResult{{Path: "x.rs", Incomplete: true}}}
		out := buildOutput(r, core.SeverityWarning, rules)
		assert.True(t, out.Summary.Incomplete)
		assert.Equal(t, []string{"x.rs"}, out.Summary.IncompleteFiles)
	})
}

func TestExitStatus(t *testing.T) {
	assert.NoError(t, exitStatus(&output.LintOutput{}))
	assert.ErrorIs(t, exitStatus(&output.LintOutput{Summary: output.LintSummary{TotalIssues: 1}}), ErrLintIssues)

	err := exitStatus(&output.LintOutput{Summary: output.LintSummary{
		TotalIssues:     1,
		Incomplete:      true,
		IncompleteFiles: []string{"a.rs"},
	}})
	assert.ErrorIs(t, err, lint.ErrIncomplete, "incomplete runs take precedence over findings")
	assert.Contains(t, err.Error(), "1 files not fully analysed")
}

func TestLintCommand_Clean(t *testing.T) {
	setupProject(t, map[string]string{"src/lib.rs": cleanSource})

	out, err := runLintCmd(t)
	require.NoError(t, err)

	assert.Contains(t, out, "# Lint Results")
	assert.Contains(t, out, "No lint issues found in 1 files.")
}

func TestLintCommand_Findings(t *testing.T) {
	setupProject(t, map[string]string{
		"src/lib.rs":            eqOpSource,
		"src/clean.rs":          cleanSource,
		"target/debug/gen.rs":   eqOpSource,
		".hidden/scratch.rs":    eqOpSource,
		"benches/throughput.rs": eqOpSource,
	})

	out, err := runLintCmd(t, "--format", "json", "--no-history")
	require.ErrorIs(t, err, ErrLintIssues)

	result := decodeLint(t, out)
	assert.Equal(t, 3, result.Summary.FilesAnalyzed)
	assert.Empty(t, result.Summary.RunID, "no run is recorded with --no-history")

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.Path)
		require.NotEmpty(t, f.Diagnostics)
		assert.Equal(t, "eq_op", f.Diagnostics[0].Rule)
		assert.Equal(t, 2, f.Diagnostics[0].Line)
	}
	assert.Equal(t, []string{"benches/throughput.rs", "src/lib.rs"}, paths)

	_, statErr := os.Stat(filepath.Join(".vibecheck", "state.db"))
	assert.True(t, os.IsNotExist(statErr), "--no-history does not create the state database")
}

func TestLintCommand_Flags(t *testing.T) {
	setupProject(t, map[string]string{"src/lib.rs": eqOpSource})

	t.Run("disable", func(t *testing.T) {
		out, err := runLintCmd(t, "--format", "json", "--no-history", "--disable", "eq_op")
		require.NoError(t, err)
		assert.Zero(t, decodeLint(t, out).Summary.TotalIssues)
	})

	t.Run("severity error", func(t *testing.T) {
		out, err := runLintCmd(t, "--format", "json", "--no-history", "--severity", "error")
		require.NoError(t, err)
		assert.Zero(t, decodeLint(t, out).Summary.TotalIssues)
	})

	t.Run("invalid severity", func(t *testing.T) {
		_, err := runLintCmd(t, "--severity", "fatal")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --severity")
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := runLintCmd(t, "--rule", "no_such_rule")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown rule or group")
	})

	t.Run("no sources", func(t *testing.T) {
		require.NoError(t, os.MkdirAll("empty", 0750))
		_, err := runLintCmd(t, "empty")
		assert.ErrorIs(t, err, ErrNoSources)
	})
}

func TestLintCommand_SARIF(t *testing.T) {
	setupProject(t, map[string]string{"src/lib.rs": eqOpSource})

	out, err := runLintCmd(t, "--format", "sarif", "--no-history")
	require.ErrorIs(t, err, ErrLintIssues)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2.1.0", doc["version"])
	assert.Contains(t, out, `"ruleId": "eq_op"`)
}

func TestLintCommand_HistoryAndWaivers(t *testing.T) {
	dir := setupProject(t, map[string]string{"src/lib.rs": eqOpSource})
	statePath := filepath.Join(dir, config.DefaultStateFile)

	out, err := runLintCmd(t, "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)
	first := decodeLint(t, out)
	require.NotEmpty(t, first.Summary.RunID)

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(statePath))
	run, err := store.GetRun(first.Summary.RunID)
	require.NoError(t, err)
	assert.Equal(t, state.RunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.Stats.Warnings)
	assert.Equal(t, []string{"."}, run.Paths)

	require.NoError(t, store.AddWaiver(&state.Waiver{Path: "src/lib.rs", Rule: "eq_op", StartLine: 2}))
	require.NoError(t, store.Close())

	t.Run("waived", func(t *testing.T) {
		out, err := runLintCmd(t, "--format", "json")
		require.NoError(t, err)
		result := decodeLint(t, out)
		assert.Zero(t, result.Summary.TotalIssues)
		assert.Equal(t, 1, result.Summary.Suppressed)
	})

	t.Run("waivers apply without history", func(t *testing.T) {
		out, err := runLintCmd(t, "--format", "json", "--no-history")
		require.NoError(t, err)
		assert.Equal(t, 1, decodeLint(t, out).Summary.Suppressed)
	})
}

func TestLintOnce_CanceledContext(t *testing.T) {
	setupProject(t, map[string]string{"src/lib.rs": eqOpSource})
	c := &CommandContext{Cfg: config.GetCurrentConfig(), Logger: config.GetLogger(context.Background())}
	c.Cfg.NoHistory = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := lintOnce(ctx, c, &LintOptions{}, core.SeverityWarning)
	require.NoError(t, err)
	assert.True(t, out.Summary.Incomplete)
	assert.Equal(t, []string{"src/lib.rs"}, out.Summary.IncompleteFiles)
	assert.ErrorIs(t, exitStatus(out), lint.ErrIncomplete)
}
