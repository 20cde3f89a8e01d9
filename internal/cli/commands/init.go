package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WolffM/vibecheck/internal/cli/config"
	"github.com/WolffM/vibecheck/pkg/lint"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a default vibecheck.yaml",
		Long: `Write a vibecheck.yaml holding the default settings.

The file lists every top-level key with its default value and the rule
groups that can be disabled, ready to be edited.`,
		Example: `  # Initialize in the current directory
  vibecheck init

  # Initialize a crate in another directory
  vibecheck init path/to/crate

  # Force overwrite existing config
  vibecheck init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cmdCtx, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer

			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}

			r.Success("Created " + path)
			r.Println("")
			r.Println("Next steps:")
			r.Println("  1. Disable rules or groups under lint.disabled")
			r.Println("  2. Run 'vibecheck rules' to browse the rules")
			r.Println("  3. Run 'vibecheck lint' to check the crate")
			r.Println("  4. Run 'vibecheck doctor' for a health summary")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// writeDefaultConfig writes the default configuration into dir and returns
// the file written.
func writeDefaultConfig(dir string, force bool) (string, error) {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	for _, name := range []string{config.ConfigFileName, config.ConfigFileNameAlt} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil && !force {
			return "", fmt.Errorf("%s already exists. Use --force to overwrite", name)
		}
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(defaultConfigYAML()), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// defaultConfigYAML renders config.Default() as an annotated vibecheck.yaml.
func defaultConfigYAML() string {
	def := config.Default()
	groups := append(lint.DefaultRules().Groups(), lint.GroupEngine)

	var b strings.Builder
	b.WriteString("# vibecheck configuration\n\n")
	b.WriteString("# Output format: auto, text, markdown, json, yaml, sarif\n")
	fmt.Fprintf(&b, "output: %s\n\n", def.OutputFormat)
	b.WriteString("# SQLite database recording runs and waivers\n")
	fmt.Fprintf(&b, "state_path: %s\n\n", def.StatePath)
	b.WriteString("# Abort analysis after this duration (0s disables)\n")
	b.WriteString("timeout: 0s\n\n")
	b.WriteString("# Files analysed in parallel (0 uses the CPU count)\n")
	b.WriteString("concurrency: 0\n\n")
	b.WriteString("# Skip sources larger than this many bytes\n")
	fmt.Fprintf(&b, "max_file_size: %d\n\n", def.MaxFileSize)
	b.WriteString("# Directory names or paths skipped during discovery\n")
	b.WriteString("exclude: []\n\n")
	b.WriteString("lint:\n")
	b.WriteString("  # Region searched for later uses: block or function\n")
	fmt.Fprintf(&b, "  analysis_depth: %s\n", def.Lint.AnalysisDepth)
	fmt.Fprintf(&b, "  # Rules or groups to disable. Groups: %s\n", strings.Join(groups, ", "))
	b.WriteString("  disabled: []\n")
	b.WriteString("  # Per-rule severity overrides, e.g. eq_op: error\n")
	b.WriteString("  severity: {}\n")
	return b.String()
}
