package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/WolffM/vibecheck/pkg/core"
)

// LintOutput is the rendered form of a lint run.
type LintOutput struct {
	Summary LintSummary      `json:"summary" yaml:"summary"`
	Files   []LintFileResult `json:"files" yaml:"files"`

	// Rules describes every rule referenced by a diagnostic; used by SARIF.
	Rules map[string]core.RuleInfo `json:"-" yaml:"-"`
}

// LintSummary holds run totals.
type LintSummary struct {
	FilesAnalyzed   int      `json:"files_analyzed" yaml:"files_analyzed"`
	TotalIssues     int      `json:"total_issues" yaml:"total_issues"`
	Errors          int      `json:"errors" yaml:"errors"`
	Warnings        int      `json:"warnings" yaml:"warnings"`
	Info            int      `json:"info" yaml:"info"`
	Suppressed      int      `json:"suppressed" yaml:"suppressed"`
	Incomplete      bool     `json:"incomplete" yaml:"incomplete"`
	IncompleteFiles []string `json:"incomplete_files,omitempty" yaml:"incomplete_files,omitempty"`
	RunID           string   `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// LintFileResult groups the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path" yaml:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// LintDiagnostic is one reported finding.
type LintDiagnostic struct {
	Rule      string        `json:"rule" yaml:"rule"`
	Severity  core.Severity `json:"severity" yaml:"severity"`
	Message   string        `json:"message" yaml:"message"`
	Line      int           `json:"line" yaml:"line"`
	Column    int           `json:"column" yaml:"column"`
	EndLine   int           `json:"end_line" yaml:"end_line"`
	EndColumn int           `json:"end_column" yaml:"end_column"`
	DocURL    string        `json:"doc_url,omitempty" yaml:"doc_url,omitempty"`
}

// Add counts d into the summary totals.
func (s *LintSummary) Add(d LintDiagnostic) {
	s.TotalIssues++
	switch d.Severity {
	case core.SeverityError:
		s.Errors++
	case core.SeverityWarning:
		s.Warnings++
	default:
		s.Info++
	}
}

// RenderLint writes out in the renderer's effective mode.
func (r *Renderer) RenderLint(out *LintOutput) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(out)
	case ModeYAML:
		return r.YAML(out)
	case ModeSARIF:
		return r.SARIF(out)
	case ModeMarkdown:
		r.lintMarkdown(out)
	default:
		r.lintText(out)
	}
	return nil
}

func (r *Renderer) lintText(out *LintOutput) {
	styles := r.Styles()
	for _, file := range out.Files {
		r.Println(styles.FilePath.Render(file.Path))
		for _, d := range file.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Line, d.Column)
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityStyle(styles, d.Severity).Render(fmt.Sprintf("%-7s", d.Severity)),
				styles.Rule.Render(d.Rule),
				d.Message,
			)
		}
		r.Println("")
	}

	if out.Summary.Incomplete {
		r.Println(styles.Error.Render(incompleteNotice(out.Summary)))
		for _, path := range out.Summary.IncompleteFiles {
			r.Println(styles.Muted.Render("  " + path))
		}
		r.Println("")
	}

	if out.Summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", out.Summary.FilesAnalyzed))
		return
	}
	r.Printf("Summary: %s\n", summaryLine(out.Summary))
}

func (r *Renderer) lintMarkdown(out *LintOutput) {
	r.Println("# Lint Results")
	r.Println("")

	if out.Summary.Incomplete {
		r.Println("> **" + incompleteNotice(out.Summary) + "**")
		for _, path := range out.Summary.IncompleteFiles {
			r.Println("> - `" + path + "`")
		}
		r.Println("")
	}

	for _, file := range out.Files {
		r.Println("## " + file.Path)
		r.Println("")
		for _, d := range file.Diagnostics {
			r.Printf("- `%d:%d` **%s** `%s`: %s\n", d.Line, d.Column, d.Severity, d.Rule, d.Message)
		}
		r.Println("")
	}

	if out.Summary.TotalIssues == 0 {
		r.Printf("No lint issues found in %d files.\n", out.Summary.FilesAnalyzed)
		return
	}
	r.Printf("**Summary:** %s\n", summaryLine(out.Summary))
}

func incompleteNotice(s LintSummary) string {
	return fmt.Sprintf("INCOMPLETE: %d of %d files were not fully analysed", len(s.IncompleteFiles), s.FilesAnalyzed)
}

func summaryLine(s LintSummary) string {
	parts := []string{plural(s.TotalIssues, "issue")}
	if s.Errors > 0 {
		parts = append(parts, plural(s.Errors, "error"))
	}
	if s.Warnings > 0 {
		parts = append(parts, plural(s.Warnings, "warning"))
	}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	line := fmt.Sprintf("%s in %s", strings.Join(parts, ", "), plural(s.FilesAnalyzed, "file"))
	if s.Suppressed > 0 {
		line += fmt.Sprintf(" (%d suppressed)", s.Suppressed)
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// SeverityStyle returns the style used for a severity label.
func (r *Renderer) SeverityStyle(sev core.Severity) lipgloss.Style {
	return severityStyle(r.styles, sev)
}

func severityStyle(styles *Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}
