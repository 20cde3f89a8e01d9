package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/WolffM/vibecheck/internal/cli/output"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules" // register rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (correctness, style, complexity, perf,
pedantic, nursery). The engine group holds the diagnostics produced by the
linter itself. Use --full to see the rationale of each rule.

Output adapts to environment:
  - Terminal: Styled tables
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable formats`,
		Example: `  # List all rules
  vibecheck rules

  # Show details for a specific rule
  vibecheck rules needless_range_loop

  # List rules in the perf group
  vibecheck rules --group perf

  # Show full documentation
  vibecheck rules -V

  # Output as JSON
  vibecheck rules --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, r := range allRuleInfos() {
				names = append(names, r.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "full", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// allRuleInfos returns registered and engine rules sorted by group, then name.
func allRuleInfos() []core.RuleInfo {
	rules := append(lint.DefaultRules().Infos(), lint.StructuralRules()...)
	slices.SortFunc(rules, func(a, b core.RuleInfo) int {
		if c := strings.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return rules
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rules := filterRulesByGroup(allRuleInfos(), opts.Group)
	if opts.Group != "" && len(rules) == 0 {
		return fmt.Errorf("unknown rule group %q", opts.Group)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(newRulesOutput(rules))
	case output.ModeYAML:
		return r.YAML(newRulesOutput(rules))
	case output.ModeSARIF:
		return fmt.Errorf("sarif output is only available for lint results")
	case output.ModeMarkdown:
		listRulesMarkdown(r, rules, opts.Verbose)
	default:
		listRulesText(r, rules, opts.Verbose)
	}
	return nil
}

func filterRulesByGroup(rules []core.RuleInfo, group string) []core.RuleInfo {
	if group == "" {
		return rules
	}
	var filtered []core.RuleInfo
	for _, r := range rules {
		if strings.EqualFold(r.Group, group) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func showRule(cmd *cobra.Command, name string, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	var rule *core.RuleInfo
	for _, ri := range allRuleInfos() {
		if ri.Name == name {
			rule = &ri
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", name)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeYAML:
		return r.YAML(rule)
	case output.ModeSARIF:
		return fmt.Errorf("sarif output is only available for lint results")
	case output.ModeMarkdown:
		showRuleMarkdown(r, rule)
	default:
		showRuleText(r, rule)
	}
	return nil
}

// listRulesText outputs one table per group.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) {
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	for _, group := range groupRules(rules) {
		r.Println(styles.Header2.Render(titleCaser.String(group[0].Group)))

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		header := table.Row{"Rule", "Severity", "Description"}
		if verbose {
			header = append(header, "Why")
		}
		t.AppendHeader(header)
		for _, rule := range group {
			row := table.Row{
				rule.Name,
				r.SeverityStyle(rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
				rule.Description,
			}
			if verbose {
				row = append(row, truncateOneLine(rule.Rationale, 60))
			}
			t.AppendRow(row)
		}
		t.Render()
		r.Println("")
	}

	r.Println(styles.Muted.Render("Use 'vibecheck rules <rule-name>' for detailed documentation"))
	r.Println("")
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) {
	titleCaser := cases.Title(language.English)

	r.Println("# Lint Rules")
	r.Println("")

	for _, group := range groupRules(rules) {
		r.Println("## " + titleCaser.String(group[0].Group))
		r.Println("")
		for _, rule := range group {
			r.Printf("- **%s** - %s (`%s`)\n", rule.Name, rule.Description, rule.DefaultSeverity)
			if verbose && rule.Rationale != "" {
				r.Println("  > " + rule.Rationale)
			}
		}
		r.Println("")
	}
}

// groupRules splits rules, already sorted by group, into runs of one group.
func groupRules(rules []core.RuleInfo) [][]core.RuleInfo {
	var groups [][]core.RuleInfo
	for i, rule := range rules {
		if i == 0 || rule.Group != rules[i-1].Group {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], rule)
	}
	return groups
}

// RulesOutput is the structured output of the rules listing.
type RulesOutput struct {
	Rules  []core.RuleInfo `json:"rules" yaml:"rules"`
	Groups map[string]int  `json:"groups" yaml:"groups"`
	Total  int             `json:"total" yaml:"total"`
}

func newRulesOutput(rules []core.RuleInfo) RulesOutput {
	out := RulesOutput{Rules: rules, Groups: make(map[string]int), Total: len(rules)}
	for _, rule := range rules {
		out.Groups[rule.Group]++
	}
	return out
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *core.RuleInfo) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(rule.Name))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), r.SeverityStyle(rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	if url := lint.BuildDocURL(rule.Name); url != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), url)
	}
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *core.RuleInfo) {
	r.Printf("# %s\n\n", rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s`\n\n", rule.Group, rule.DefaultSeverity)
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```rust")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```rust")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println("## How to Fix")
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println("## Configuration")
		r.Println("")
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
