package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/WolffM/vibecheck/internal/cli/output"
	"github.com/WolffM/vibecheck/internal/state"
	"github.com/WolffM/vibecheck/pkg/lint"
)

// WaiverOptions holds options for the waiver add command.
type WaiverOptions struct {
	Line   int
	Start  int
	End    int
	Rule   string
	Reason string
}

// NewWaiverCommand creates the waiver command and its subcommands.
func NewWaiverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waiver",
		Short: "Manage stored lint waivers",
		Long: `Waivers silence findings over a line range of a file without editing
the source. They are stored in the state database and applied on every lint
run, including runs with --no-history.`,
	}

	cmd.AddCommand(newWaiverAddCommand())
	cmd.AddCommand(newWaiverListCommand())
	cmd.AddCommand(newWaiverRemoveCommand())

	return cmd
}

func newWaiverAddCommand() *cobra.Command {
	opts := &WaiverOptions{}
	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Waive findings in a file",
		Example: `  # Waive every rule on line 42
  vibecheck waiver add src/main.rs --line 42

  # Waive one rule over a range
  vibecheck waiver add src/legacy.rs --start 10 --end 80 --rule needless_range_loop --reason "ported code"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWaiverAdd(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Line, "line", "l", 0, "Single line to waive")
	cmd.Flags().IntVar(&opts.Start, "start", 0, "First line of the waived range")
	cmd.Flags().IntVar(&opts.End, "end", 0, "Last line of the waived range")
	cmd.Flags().StringVarP(&opts.Rule, "rule", "r", "", "Rule to waive (default: all rules)")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "Why the finding is waived")
	cmd.MarkFlagsMutuallyExclusive("line", "start")

	return cmd
}

func runWaiverAdd(cmd *cobra.Command, path string, opts *WaiverOptions) error {
	cmdCtx, err := NewCommandContext(cmd, "")
	if err != nil {
		return err
	}

	start, end := opts.Start, opts.End
	if opts.Line > 0 {
		start, end = opts.Line, opts.Line
	}
	if start <= 0 {
		return fmt.Errorf("a line is required: use --line or --start")
	}

	rule := strings.TrimSpace(opts.Rule)
	if rule != "" {
		if _, ok := lint.DefaultRules().Lookup(rule); !ok {
			return fmt.Errorf("rule %q not found", rule)
		}
	}

	store, cleanup, err := cmdCtx.OpenStore()
	if err != nil {
		return err
	}
	defer cleanup()

	w := &state.Waiver{
		Path:      filepath.ToSlash(filepath.Clean(path)),
		Rule:      rule,
		StartLine: start,
		EndLine:   end,
		Reason:    opts.Reason,
	}
	if err := store.AddWaiver(w); err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(newWaiverOutput(w))
	case output.ModeYAML:
		return r.YAML(newWaiverOutput(w))
	}
	r.Success(fmt.Sprintf("Added waiver %s for %s", w.ID, describeWaiver(w)))
	return nil
}

func newWaiverListCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored waivers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWaiverList(cmd, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json, yaml")
	return cmd
}

func runWaiverList(cmd *cobra.Command, format string) error {
	cmdCtx, err := NewCommandContext(cmd, format)
	if err != nil {
		return err
	}

	store, cleanup, err := cmdCtx.OpenExistingStore()
	if err != nil {
		return err
	}
	defer cleanup()

	var waivers []*state.Waiver
	if store != nil {
		if waivers, err = store.ListWaivers(); err != nil {
			return err
		}
	}

	out := make([]WaiverOutput, len(waivers))
	for i, w := range waivers {
		out[i] = newWaiverOutput(w)
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

	if len(waivers) == 0 {
		r.Println("No waivers stored")
		return nil
	}

	rows := make([]table.Row, len(out))
	for i, w := range out {
		rule := w.Rule
		if rule == "" {
			rule = "*"
		}
		rows[i] = table.Row{w.ID, w.Path, w.lines(), rule, w.Reason}
	}
	renderTable(r, table.Row{"ID", "Path", "Lines", "Rule", "Reason"}, rows)
	return nil
}

func newWaiverRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored waiver",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}
			store, cleanup, err := cmdCtx.OpenStore()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.DeleteWaiver(args[0]); err != nil {
				return err
			}
			cmdCtx.Renderer.Success("Removed waiver " + args[0])
			return nil
		},
	}
}

// WaiverOutput is the structured form of a stored waiver.
type WaiverOutput struct {
	ID        string    `json:"id" yaml:"id"`
	Path      string    `json:"path" yaml:"path"`
	Rule      string    `json:"rule,omitempty" yaml:"rule,omitempty"`
	StartLine int       `json:"start_line" yaml:"start_line"`
	EndLine   int       `json:"end_line" yaml:"end_line"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

func newWaiverOutput(w *state.Waiver) WaiverOutput {
	return WaiverOutput{
		ID:        w.ID,
		Path:      w.Path,
		Rule:      w.Rule,
		StartLine: w.StartLine,
		EndLine:   w.EndLine,
		Reason:    w.Reason,
		CreatedAt: w.CreatedAt,
	}
}

func (w WaiverOutput) lines() string {
	if w.StartLine == w.EndLine {
		return fmt.Sprintf("%d", w.StartLine)
	}
	return fmt.Sprintf("%d-%d", w.StartLine, w.EndLine)
}

func describeWaiver(w *state.Waiver) string {
	rule := "all rules"
	if w.Rule != "" {
		rule = w.Rule
	}
	return fmt.Sprintf("%s in %s:%s", rule, w.Path, newWaiverOutput(w).lines())
}
