package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/WolffM/vibecheck/internal/cli/output"
	"github.com/WolffM/vibecheck/internal/state"
)

const defaultHistoryLimit = 20

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent lint runs",
		Long: `Show the lint runs recorded in the state database, newest first.
Runs made with --no-history are not recorded.`,
		Example: `  # Last 20 runs
  vibecheck history

  # Last 5 runs as JSON
  vibecheck history --limit 5 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit, format)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Number of runs to show")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int, format string) error {
	if limit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}
	cmdCtx, err := NewCommandContext(cmd, format)
	if err != nil {
		return err
	}

	store, cleanup, err := cmdCtx.OpenExistingStore()
	if err != nil {
		return err
	}
	defer cleanup()

	var runs []*state.Run
	if store != nil {
		if runs, err = store.ListRuns(limit); err != nil {
			return err
		}
	}

	out := make([]RunOutput, len(runs))
	for i, run := range runs {
		out[i] = newRunOutput(run)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	case output.ModeSARIF:
		return fmt.Errorf("sarif output is only available for lint results")
	}

	if len(runs) == 0 {
		r.Println("No runs recorded")
		return nil
	}

	rows := make([]table.Row, len(out))
	for i, run := range out {
		rows[i] = table.Row{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			statusCell(r, run.Status),
			strings.Join(run.Paths, " "),
			run.Files,
			run.Errors,
			run.Warnings,
			run.Infos,
			run.Suppressed,
			run.duration(),
		}
	}
	renderTable(r, table.Row{"ID", "Started", "Status", "Paths", "Files", "Errors", "Warnings", "Info", "Suppressed", "Duration"}, rows)
	return nil
}

// RunOutput is the structured form of a recorded run.
type RunOutput struct {
	ID          string     `json:"id" yaml:"id"`
	Paths       []string   `json:"paths" yaml:"paths"`
	Status      string     `json:"status" yaml:"status"`
	StartedAt   time.Time  `json:"started_at" yaml:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Files       int        `json:"files" yaml:"files"`
	Findings    int        `json:"findings" yaml:"findings"`
	Errors      int        `json:"errors" yaml:"errors"`
	Warnings    int        `json:"warnings" yaml:"warnings"`
	Infos       int        `json:"infos" yaml:"infos"`
	Suppressed  int        `json:"suppressed" yaml:"suppressed"`
}

func newRunOutput(run *state.Run) RunOutput {
	return RunOutput{
		ID:          run.ID,
		Paths:       run.Paths,
		Status:      string(run.Status),
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
		Files:       run.Stats.Files,
		Findings:    run.Stats.Findings,
		Errors:      run.Stats.Errors,
		Warnings:    run.Stats.Warnings,
		Infos:       run.Stats.Infos,
		Suppressed:  run.Stats.Suppressed,
	}
}

func (r RunOutput) duration() string {
	if r.CompletedAt == nil {
		return "-"
	}
	return r.CompletedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
}

// statusCell decorates a run status with a marker in text mode.
func statusCell(r *output.Renderer, status string) string {
	if r.EffectiveMode() != output.ModeText {
		return status
	}
	switch state.RunStatus(status) {
	case state.RunStatusCompleted:
		return r.Styles().StatusSuccess.String() + " " + status
	case state.RunStatusFailed, state.RunStatusIncomplete:
		return r.Styles().StatusFailed.String() + " " + status
	}
	return status
}
