package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WolffM/vibecheck/internal/cli/config"
	"github.com/WolffM/vibecheck/internal/cli/output"
	"github.com/WolffM/vibecheck/internal/state"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules" // register rules
	"github.com/WolffM/vibecheck/pkg/parser"
	"github.com/WolffM/vibecheck/pkg/token"
)

// ErrLintIssues is returned when findings remain after filtering.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string // Files or directories to lint
	Format   string   // Output format override
	Disable  []string // Rule or group names to disable
	Rules    []string // Run only these rules or groups
	Severity string   // Minimum severity reported: error, warning, info
	Watch    bool     // Re-lint when .rs files change
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Lint Rust source files",
		Long: `Analyze Rust sources for common mistakes and non-idiomatic patterns.

Walks the given files and directories for .rs files (skipping target/ and
hidden directories) and reports every finding at or above --severity.
Rules can be configured in vibecheck.yaml; stored waivers and inline
suppressions are applied.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML/SARIF: Machine-readable formats`,
		Example: `  # Lint the current directory
  vibecheck lint

  # Lint specific paths
  vibecheck lint src/ benches/bench.rs

  # Output SARIF for code scanning
  vibecheck lint --format sarif > vibecheck.sarif

  # Disable a rule and a whole group
  vibecheck lint --disable eq_op,pedantic

  # Only run the perf group, reporting errors only
  vibecheck lint --rule perf --severity error

  # Re-lint on every change
  vibecheck lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: auto, text, markdown, json, yaml, sarif")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule or group names to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only these rules or groups")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint when .rs files change")

	// Config-backed flags, read by the config loader.
	cmd.Flags().Duration("timeout", 0, "Abort analysis after this long (0 disables)")
	cmd.Flags().Int("concurrency", 0, "Files analysed in parallel (default GOMAXPROCS)")
	cmd.Flags().String("depth", "", "Analysis depth for usage checks: block or function")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the state database")
	cmd.Flags().Int("max-file-size", 0, "Largest file in bytes that is parsed")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return modeNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("depth", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"block", "function"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid --severity %q: expected error, warning or info", opts.Severity)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Watch {
		return watchLint(ctx, cmdCtx, opts, threshold)
	}

	out, err := lintOnce(ctx, cmdCtx, opts, threshold)
	if err != nil {
		return err
	}
	if err := cmdCtx.Renderer.RenderLint(out); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	return exitStatus(out)
}

// exitStatus turns the rendered outcome into the command error.
func exitStatus(out *output.LintOutput) error {
	if out.Summary.Incomplete {
		return fmt.Errorf("%w: %d files not fully analysed", lint.ErrIncomplete, len(out.Summary.IncompleteFiles))
	}
	if out.Summary.TotalIssues > 0 {
		return ErrLintIssues
	}
	return nil
}

// lintOnce collects sources, runs the linter and records the run.
func lintOnce(ctx context.Context, c *CommandContext, opts *LintOptions, threshold core.Severity) (*output.LintOutput, error) {
	cfg := c.Cfg
	sources, err := CollectSources(opts.Paths, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if cfg.DocsURL != "" {
		lint.SetDocsBaseURL(cfg.DocsURL)
	}

	rules := lint.DefaultRules()
	lintCfg, err := buildLintConfig(cfg, opts, rules)
	if err != nil {
		return nil, err
	}

	open := c.OpenStore
	if cfg.NoHistory {
		open = c.OpenExistingStore
	}
	store, cleanup, err := open()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if store != nil {
		waivers, err := store.ListWaivers()
		if err != nil {
			return nil, err
		}
		for _, s := range waiverSuppressions(waivers) {
			lintCfg.AddSuppression(s)
		}
	}

	p := parser.NewRustParser(parser.WithMaxFileSize(cfg.MaxFileSize), parser.WithLogger(c.Logger))
	analyzer, err := lint.NewAnalyzer(rules, lintCfg, p, lint.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	runner := lint.NewRunner(analyzer,
		lint.WithLogger(c.Logger),
		lint.WithConcurrency(cfg.Concurrency),
		lint.WithTimeout(cfg.Timeout),
	)

	var run *state.Run
	if store != nil && !cfg.NoHistory {
		run, err = store.CreateRun(runPaths(opts.Paths))
		if err != nil {
			return nil, err
		}
	}

	report, err := runner.Run(ctx, sources)
	if err != nil {
		if run != nil {
			_ = store.CompleteRun(run.ID, state.RunStatusFailed, state.RunStats{Files: len(sources)})
		}
		return nil, err
	}

	out := buildOutput(report, threshold, rules)
	if run != nil {
		status := state.RunStatusCompleted
		if report.Incomplete {
			status = state.RunStatusIncomplete
		}
		if err := store.CompleteRun(run.ID, status, report.Stats()); err != nil {
			return nil, err
		}
		out.Summary.RunID = run.ID
	}
	return out, nil
}

// buildLintConfig merges the configured lint section with command flags.
// --rule replaces the configured allow list; --disable adds to it.
func buildLintConfig(cfg *config.Config, opts *LintOptions, rules *lint.RuleSet) (*lint.Config, error) {
	var lc core.LintConfig
	if cfg != nil && cfg.Lint != nil {
		lc = *cfg.Lint
	}
	lintCfg, err := lint.ConfigFromCore(lc, rules)
	if err != nil {
		return nil, err
	}

	for _, name := range opts.Disable {
		if name = strings.TrimSpace(name); name != "" {
			lintCfg.Disable(name)
		}
	}
	if len(opts.Rules) > 0 {
		lintCfg.EnabledRules = make(map[string]bool)
		for _, name := range opts.Rules {
			if name = strings.TrimSpace(name); name != "" {
				lintCfg.Enable(name)
			}
		}
	}

	if err := lintCfg.Validate(rules); err != nil {
		return nil, err
	}
	return lintCfg, nil
}

// waiverSuppressions turns stored waivers into path-scoped suppressions.
func waiverSuppressions(waivers []*state.Waiver) []lint.Suppression {
	out := make([]lint.Suppression, 0, len(waivers))
	for _, w := range waivers {
		s := lint.Suppression{
			Path:   w.Path,
			Span:   token.LineSpan(w.StartLine, w.EndLine),
			Origin: lint.OriginWaiver,
		}
		if w.Rule != "" {
			s.Rules = []string{w.Rule}
		}
		out = append(out, s)
	}
	return out
}

// buildOutput keeps the findings at or above threshold. Files without
// remaining findings are omitted from the file list but counted.
func buildOutput(report *lint.Report, threshold core.Severity, rules *lint.RuleSet) *output.LintOutput {
	out := &output.LintOutput{Rules: ruleInfos(rules)}
	out.Summary.FilesAnalyzed = len(report.Files)
	out.Summary.Incomplete = report.Incomplete
	out.Summary.IncompleteFiles = report.IncompleteFiles()

	for _, file := range report.Files {
		out.Summary.Suppressed += file.Suppressed
		res := output.LintFileResult{Path: file.Path}
		for _, f := range file.Findings {
			if f.Severity > threshold {
				continue
			}
			d := output.LintDiagnostic{
				Rule:      f.RuleName,
				Severity:  f.Severity,
				Message:   f.Message,
				Line:      f.Span.Start.Line,
				Column:    f.Span.Start.Column,
				EndLine:   f.Span.End.Line,
				EndColumn: f.Span.End.Column,
				DocURL:    lint.BuildDocURL(f.RuleName),
			}
			if d.EndColumn == token.EndOfLine {
				d.EndColumn = 0
			}
			out.Summary.Add(d)
			res.Diagnostics = append(res.Diagnostics, d)
		}
		if len(res.Diagnostics) > 0 {
			out.Files = append(out.Files, res)
		}
	}
	return out
}

func ruleInfos(rules *lint.RuleSet) map[string]core.RuleInfo {
	infos := make(map[string]core.RuleInfo)
	for _, info := range rules.Infos() {
		infos[info.Name] = info
	}
	for _, info := range lint.StructuralRules() {
		infos[info.Name] = info
	}
	return infos
}

func runPaths(paths []string) []string {
	if len(paths) == 0 {
		return []string{"."}
	}
	return paths
}

func modeNames() []string {
	names := make([]string, len(output.Modes))
	for i, m := range output.Modes {
		names[i] = string(m)
	}
	return names
}
