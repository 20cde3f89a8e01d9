package output

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/WolffM/vibecheck/pkg/core"
)

// ToolName and ToolURI identify the linter in SARIF reports.
const (
	ToolName = "vibecheck"
	ToolURI  = "https://github.com/WolffM/vibecheck"
)

// SARIF writes out as a SARIF 2.1.0 log with one run.
func (r *Renderer) SARIF(out *LintOutput) error {
	report, err := BuildSARIF(out)
	if err != nil {
		return err
	}
	return report.PrettyWrite(r.out)
}

// BuildSARIF converts out into a SARIF report. Each referenced rule is
// declared once, in order of first use. An incomplete run is reported as an
// unsuccessful invocation.
func BuildSARIF(out *LintOutput) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(ToolName, ToolURI)
	declared := make(map[string]bool)
	for _, file := range out.Files {
		for _, d := range file.Diagnostics {
			if !declared[d.Rule] {
				declared[d.Rule] = true
				rule := run.AddRule(d.Rule)
				if info, ok := out.Rules[d.Rule]; ok {
					rule.WithDescription(info.Description).
						WithDefaultConfiguration(&sarif.ReportingConfiguration{
							Level: sarifLevel(info.DefaultSeverity),
						})
				}
				if d.DocURL != "" {
					rule.WithHelpURI(d.DocURL)
				}
			}

			region := sarif.NewRegion().
				WithStartLine(d.Line).
				WithStartColumn(d.Column)
			if d.EndLine > 0 {
				region.WithEndLine(d.EndLine)
				if d.EndColumn > 0 {
					region.WithEndColumn(d.EndColumn)
				}
			}
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(file.Path)).
					WithRegion(region),
			)

			result := sarif.NewRuleResult(d.Rule).
				WithMessage(sarif.NewTextMessage(d.Message)).
				WithLevel(sarifLevel(d.Severity)).
				WithLocations([]*sarif.Location{location})
			run.AddResult(result)
		}
	}
	addInvocation(run, out.Summary)
	report.AddRun(run)
	return report, nil
}

// addInvocation records whether analysis finished. Each file that was not
// fully analysed gets a tool execution notification.
func addInvocation(run *sarif.Run, summary LintSummary) {
	inv := run.AddInvocation(!summary.Incomplete)
	if !summary.Incomplete {
		return
	}
	notes := make([]*sarif.Notification, 0, len(summary.IncompleteFiles))
	for _, path := range summary.IncompleteFiles {
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(path)),
		)
		notes = append(notes, sarif.NewNotification().
			WithLevel("warning").
			WithTextMessage("analysis incomplete: "+path).
			WithLocations([]*sarif.Location{location}))
	}
	inv.WithToolExecutionNotifications(notes)
}

func sarifLevel(sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return "error"
	case core.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
