package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/WolffM/vibecheck/internal/cli/config"
	"github.com/WolffM/vibecheck/internal/cli/output"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

// Health check statuses.
const (
	checkPass  = "pass"
	checkWarn  = "warn"
	checkError = "error"
)

// maxRecommendations caps the recommendations list.
const maxRecommendations = 5

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Paths  []string // Files or directories to check
	Format string   // Output format override
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor [path...]",
		Short: "Summarize configuration and rule health",
		Long: `Check the crate with every enabled rule and summarize the results.

The report includes:
- Configuration summary (config file, state database, enabled rules,
  severity overrides, suppressions and waivers)
- One health check per rule, grouped by rule group
- Health score (0-100)
- Actionable recommendations

Runs are not recorded in the history.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable formats`,
		Example: `  # Run health check
  vibecheck doctor

  # Output as JSON
  vibecheck doctor --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: auto, text, markdown, json, yaml")

	return cmd
}

// DoctorOutput is the machine-readable output of the doctor command.
type DoctorOutput struct {
	Summary         ConfigSummary `json:"summary" yaml:"summary"`
	HealthChecks    []HealthCheck `json:"health_checks" yaml:"health_checks"`
	Score           int           `json:"score" yaml:"score"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
	IssueCount      int           `json:"issue_count" yaml:"issue_count"`
}

// ConfigSummary describes the effective configuration and the checked crate.
type ConfigSummary struct {
	ConfigFile        string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	StatePath         string `json:"state_path" yaml:"state_path"`
	HasHistory        bool   `json:"has_history" yaml:"has_history"`
	AnalysisDepth     string `json:"analysis_depth" yaml:"analysis_depth"`
	RulesEnabled      int    `json:"rules_enabled" yaml:"rules_enabled"`
	RulesDisabled     int    `json:"rules_disabled" yaml:"rules_disabled"`
	SeverityOverrides int    `json:"severity_overrides" yaml:"severity_overrides"`
	Suppressions      int    `json:"suppressions" yaml:"suppressions"`
	Waivers           int    `json:"waivers" yaml:"waivers"`
	FilesAnalyzed     int    `json:"files_analyzed" yaml:"files_analyzed"`
	Incomplete        bool   `json:"incomplete" yaml:"incomplete"`
}

// HealthCheck is the outcome of one rule over the crate.
type HealthCheck struct {
	Rule       string   `json:"rule" yaml:"rule"`
	Group      string   `json:"group" yaml:"group"`
	Status     string   `json:"status" yaml:"status"` // pass, warn or error
	IssueCount int      `json:"issue_count" yaml:"issue_count"`
	Details    []string `json:"details,omitempty" yaml:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeSARIF {
		return fmt.Errorf("doctor does not support sarif output")
	}

	rules := lint.DefaultRules()
	lintOpts := &LintOptions{Paths: opts.Paths}
	lintCfg, err := buildLintConfig(cmdCtx.Cfg, lintOpts, rules)
	if err != nil {
		return err
	}

	// Check without recording a run.
	cfg := *cmdCtx.Cfg
	cfg.NoHistory = true
	checkCtx := *cmdCtx
	checkCtx.Cfg = &cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, err := lintOnce(ctx, &checkCtx, lintOpts, core.SeverityInfo)
	if errors.Is(err, ErrNoSources) {
		r.Warn("No .rs files found")
		return nil
	}
	if err != nil {
		return err
	}

	summary, err := buildConfigSummary(&checkCtx, lintCfg, rules)
	if err != nil {
		return err
	}
	doctorOutput := buildDoctorOutput(summary, rules.Enabled(lintCfg), out)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeYAML:
		return r.YAML(doctorOutput)
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, doctorOutput)
	default:
		renderDoctorText(r, doctorOutput)
	}
	return nil
}

func buildConfigSummary(c *CommandContext, lintCfg *lint.Config, rules *lint.RuleSet) (ConfigSummary, error) {
	enabled := rules.Enabled(lintCfg).Len()
	summary := ConfigSummary{
		ConfigFile:        config.GetConfigFileUsed(),
		StatePath:         c.Cfg.StatePath,
		AnalysisDepth:     lintCfg.AnalysisDepth.String(),
		RulesEnabled:      enabled,
		RulesDisabled:     rules.Len() - enabled,
		SeverityOverrides: len(lintCfg.SeverityOverrides),
	}
	if c.Cfg.Lint != nil {
		summary.Suppressions = len(c.Cfg.Lint.Suppressions)
	}

	store, cleanup, err := c.OpenExistingStore()
	if err != nil {
		return summary, err
	}
	defer cleanup()
	if store != nil {
		summary.HasHistory = true
		waivers, err := store.ListWaivers()
		if err != nil {
			return summary, err
		}
		summary.Waivers = len(waivers)
	}
	return summary, nil
}

func buildDoctorOutput(summary ConfigSummary, enabled *lint.RuleSet, out *output.LintOutput) *DoctorOutput {
	summary.FilesAnalyzed = out.Summary.FilesAnalyzed
	summary.Incomplete = out.Summary.Incomplete

	type finding struct {
		path string
		d    output.LintDiagnostic
	}
	byRule := make(map[string][]finding)
	for _, file := range out.Files {
		for _, d := range file.Diagnostics {
			byRule[d.Rule] = append(byRule[d.Rule], finding{path: file.Path, d: d})
		}
	}

	infos := enabled.Infos()
	for _, info := range lint.StructuralRules() {
		if len(byRule[info.Name]) > 0 {
			infos = append(infos, info)
		}
	}

	checks := make([]HealthCheck, 0, len(infos))
	for _, info := range infos {
		findings := byRule[info.Name]
		check := HealthCheck{
			Rule:       info.Name,
			Group:      info.Group,
			Status:     checkPass,
			IssueCount: len(findings),
		}
		for _, f := range findings {
			if f.d.Severity == core.SeverityError {
				check.Status = checkError
			} else if check.Status == checkPass {
				check.Status = checkWarn
			}
			check.Details = append(check.Details, fmt.Sprintf("%s:%d: %s", f.path, f.d.Line, f.d.Message))
		}
		checks = append(checks, check)
	}

	sort.Slice(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return checks[i].Group < checks[j].Group
		}
		return checks[i].Rule < checks[j].Rule
	})

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks, summary.FilesAnalyzed),
		Recommendations: generateRecommendations(checks, out.Rules),
		IssueCount:      out.Summary.TotalIssues,
	}
}

// calculateHealthScore computes a health score from 0-100. Each issue costs
// a penalty that shrinks as the crate grows; errors count double.
func calculateHealthScore(checks []HealthCheck, fileCount int) int {
	basePenalty := 5.0
	if fileCount > 10 {
		basePenalty = 3.0
	}
	if fileCount > 50 {
		basePenalty = 2.0
	}
	if fileCount > 100 {
		basePenalty = 1.0
	}

	score := 100.0
	for _, check := range checks {
		switch check.Status {
		case checkError:
			score -= float64(check.IssueCount) * basePenalty * 2
		case checkWarn:
			score -= float64(check.IssueCount) * basePenalty
		}
	}
	return int(max(0, min(100, score)))
}

// generateRecommendations returns the fix advice of the failing rules, most
// frequent first.
func generateRecommendations(checks []HealthCheck, infos map[string]core.RuleInfo) []string {
	failing := make([]HealthCheck, 0, len(checks))
	for _, check := range checks {
		if check.IssueCount > 0 {
			failing = append(failing, check)
		}
	}
	sort.SliceStable(failing, func(i, j int) bool {
		return failing[i].IssueCount > failing[j].IssueCount
	})

	var recommendations []string
	for _, check := range failing {
		fix := firstSentence(infos[check.Rule].Fix)
		if fix == "" {
			fix = firstSentence(infos[check.Rule].Description)
		}
		if fix == "" {
			continue
		}
		recommendations = append(recommendations, fmt.Sprintf("%s: %s", check.Rule, fix))
		if len(recommendations) == maxRecommendations {
			break
		}
	}
	return recommendations
}

func firstSentence(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("vibecheck Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	s := out.Summary
	r.Println(styles.Header2.Render("Configuration"))
	configFile := s.ConfigFile
	if configFile == "" {
		configFile = "(defaults)"
	}
	r.Printf("   Config: %s | Depth: %s\n", configFile, s.AnalysisDepth)
	r.Printf("   Rules: %d enabled, %d disabled | Severity overrides: %d\n", s.RulesEnabled, s.RulesDisabled, s.SeverityOverrides)
	r.Printf("   Suppressions: %d | Waivers: %d | History: %s\n", s.Suppressions, s.Waivers, historyLabel(s))
	r.Printf("   Files analysed: %d\n", s.FilesAnalyzed)
	if s.Incomplete {
		r.Println("   " + styles.Warning.Render("! analysis incomplete; some findings may be missing"))
	}
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case checkWarn:
			icon = styles.Warning.Render("!")
		case checkError:
			icon = styles.StatusFailed.String()
		}

		status := fmt.Sprintf("%s %s", icon, check.Rule)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# vibecheck Health Report")
	r.Println("")

	s := out.Summary
	r.Println("## Configuration")
	r.Println("")
	if s.ConfigFile != "" {
		r.Printf("- **Config file**: `%s`\n", s.ConfigFile)
	} else {
		r.Println("- **Config file**: defaults")
	}
	r.Printf("- **Analysis depth**: %s\n", s.AnalysisDepth)
	r.Printf("- **Rules**: %d enabled, %d disabled\n", s.RulesEnabled, s.RulesDisabled)
	r.Printf("- **Severity overrides**: %d\n", s.SeverityOverrides)
	r.Printf("- **Suppressions**: %d\n", s.Suppressions)
	r.Printf("- **Waivers**: %d\n", s.Waivers)
	r.Printf("- **History**: %s\n", historyLabel(s))
	r.Printf("- **Files analysed**: %d\n", s.FilesAnalyzed)
	if s.Incomplete {
		r.Println("- **Analysis incomplete**: some findings may be missing")
	}
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case checkWarn:
			status = "WARN"
		case checkError:
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s", status, check.Rule)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}

func historyLabel(s ConfigSummary) string {
	if s.HasHistory {
		return s.StatePath
	}
	return "none"
}
