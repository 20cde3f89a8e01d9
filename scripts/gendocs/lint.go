package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules" // register rules
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"complexity":     "Code that does something simple in a roundabout way.",
	"correctness":    "Code that is outright wrong or useless.",
	"nursery":        "Lints that are still being refined.",
	"pedantic":       "Stricter lints with occasional false positives.",
	"perf":           "Code that can be written to run faster.",
	"style":          "Code that should be written in a more idiomatic way.",
	lint.GroupEngine: "Diagnostics produced by the analysis engine itself.",
}

var titleCase = cases.Title(language.English)

// generateLintDocs generates the rule index and one page per rule group.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	grouped := ruleInfosByGroup()
	groups := lint.DefaultRules().Groups()
	groups = append(groups, lint.GroupEngine)

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), renderLintIndex(groups, grouped), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, group := range groups {
		filename := group + ".md"
		if err := os.WriteFile(filepath.Join(outDir, filename), renderGroupPage(group, grouped[group]), 0600); err != nil {
			return err
		}
		log.Printf("  Generated %s", filename)
	}

	return nil
}

// ruleInfosByGroup returns registered and structural rules keyed by group.
func ruleInfosByGroup() map[string][]core.RuleInfo {
	grouped := make(map[string][]core.RuleInfo)
	for _, info := range lint.DefaultRules().Infos() {
		grouped[info.Group] = append(grouped[info.Group], info)
	}
	grouped[lint.GroupEngine] = append(grouped[lint.GroupEngine], lint.StructuralRules()...)
	return grouped
}

func renderLintIndex(groups []string, grouped map[string][]core.RuleInfo) []byte {
	total := 0
	for _, g := range groups {
		total += len(grouped[g])
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Lint Rules", "Rust lint rules checked by vibecheck")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")
	w.Paragraph(fmt.Sprintf("vibecheck checks **%d rules** across %d groups.", total, len(groups)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode(core.SeverityError.String()), "Critical issue that should be fixed"},
			{InlineCode(core.SeverityWarning.String()), "Potential issue that should be reviewed"},
			{InlineCode(core.SeverityInfo.String()), "Informational feedback"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph(fmt.Sprintf("Rules can be configured in %s:", InlineCode("vibecheck.yaml")))
	w.CodeBlock("yaml", `lint:
  disabled:
    - pedantic          # disable a whole group
    - needless_return   # or a single rule
  severity:
    eq_op: error        # override severity
  rules:
    type_complexity:
      max_depth: 6      # rule-specific option`)

	w.Paragraph(fmt.Sprintf("Findings can also be silenced in source with %s or %s.",
		InlineCode("#[allow(clippy::rule_name)]"), InlineCode("// vibecheck:ignore rule_name")))

	w.Header(2, "Rule Groups")
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/rules/%s)", titleCase.String(g), g),
			fmt.Sprintf("%d", len(grouped[g])),
			groupDescriptions[g],
		})
	}
	w.Table([]string{"Group", "Rules", "Description"}, rows)

	return w.Bytes()
}

func renderGroupPage(group string, rules []core.RuleInfo) []byte {
	title := titleCase.String(group) + " Rules"

	w := NewMarkdownWriter()

	w.Frontmatter(title, groupDescriptions[group])
	w.GeneratedMarker()

	w.Header(1, title)
	if desc, ok := groupDescriptions[group]; ok {
		w.Paragraph(desc)
	}

	for _, rule := range rules {
		writeRuleDoc(w, rule)
	}

	return w.Bytes()
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule core.RuleInfo) {
	w.Line(fmt.Sprintf("## %s {#%s}", rule.Name, rule.Name))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity.String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))

	if rationale := rule.Rationale; rationale != "" {
		w.Header(3, "Why This Matters")
		w.Paragraph(strings.TrimSpace(rationale))
	}

	if rule.BadExample != "" {
		w.Header(3, "Bad")
		w.CodeBlock("rust", rule.BadExample)
	}

	if rule.GoodExample != "" {
		w.Header(3, "Good")
		w.CodeBlock("rust", rule.GoodExample)
	}

	if fix := rule.Fix; fix != "" {
		w.Header(3, "How to Fix")
		w.Paragraph(strings.TrimSpace(fix))
	}

	if len(rule.ConfigKeys) > 0 {
		w.Header(3, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(rule.ConfigKeys, ", "))))
	}

	if url := lint.BuildDocURL(rule.Name); url != "" {
		w.Line(fmt.Sprintf("[Upstream documentation](%s)", url))
		w.Newline()
	}

	w.Line("---")
	w.Newline()
}
