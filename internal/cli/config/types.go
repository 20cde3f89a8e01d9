// Package config provides configuration management for the vibecheck CLI.
//
// Settings are layered with koanf: built-in defaults, then vibecheck.yaml,
// then VIBECHECK_ environment variables, then explicitly set flags. The lint
// section is the shared core.LintConfig and is validated by pkg/lint.
package config

import (
	"time"

	"github.com/WolffM/vibecheck/pkg/core"
)

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// SuppressionConfig is an alias for the shared suppression entry.
type SuppressionConfig = core.SuppressionConfig

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string        `koanf:"state_path"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Concurrency  int           `koanf:"concurrency"`
	Timeout      time.Duration `koanf:"timeout"`
	NoHistory    bool          `koanf:"no_history"`
	MaxFileSize  int           `koanf:"max_file_size"`
	Exclude      []string      `koanf:"exclude"`
	DocsURL      string        `koanf:"docs_url"`
	Lint         *LintConfig   `koanf:"lint"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none. Relative paths are resolved against it.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultStateFile    = ".vibecheck/state.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxFileSize  = 10 * 1024 * 1024
	DefaultDepth        = "block"
	ConfigFileName      = "vibecheck.yaml"
	ConfigFileNameAlt   = "vibecheck.yml"
	EnvPrefix           = "VIBECHECK_"
	maxUpwardSearchDirs = 10
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
		MaxFileSize:  DefaultMaxFileSize,
		Lint:         &LintConfig{AnalysisDepth: DefaultDepth},
	}
}
