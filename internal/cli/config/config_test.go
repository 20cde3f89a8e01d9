package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultMaxFileSize, cfg.MaxFileSize)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.False(t, cfg.NoHistory)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, DefaultDepth, cfg.Lint.AnalysisDepth)
	assert.Equal(t, filepath.Join(cfg.ProjectRoot, DefaultStateFile), cfg.StatePath)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `output: json
state_path: state/history.db
timeout: 30s
concurrency: 4
exclude:
  - benches
lint:
  disabled:
    - style
  severity:
    eq_op: error
  rules:
    type_complexity:
      max_depth: 6
  suppressions:
    - path: src/legacy.rs
      rules: [needless_bool]
      start_line: 10
      end_line: 20
  analysis_depth: function
  max_ancestors: 16
  report_unused_suppressions: true
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, cfgPath, GetConfigFileUsed())
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, filepath.Join(dir, "state", "history.db"), cfg.StatePath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, []string{"benches"}, cfg.Exclude)

	lc := cfg.Lint
	assert.Equal(t, []string{"style"}, lc.Disabled)
	assert.Equal(t, "error", lc.Severity["eq_op"])
	assert.EqualValues(t, 6, lc.Rules["type_complexity"]["max_depth"])
	require.Len(t, lc.Suppressions, 1)
	assert.Equal(t, SuppressionConfig{
		Path:      "src/legacy.rs",
		Rules:     []string{"needless_bool"},
		StartLine: 10,
		EndLine:   20,
	}, lc.Suppressions[0])
	assert.Equal(t, "function", lc.AnalysisDepth)
	assert.Equal(t, 16, lc.MaxAncestors)
	assert.True(t, lc.ReportUnusedSuppressions)
}

func TestLoadConfig_UpwardSearch(t *testing.T) {
	ResetConfig()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	writeConfig(t, root, "output: yaml\n")
	nested := filepath.Join(root, "crates", "core", "src")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, filepath.Join(root, DefaultStateFile), cfg.StatePath)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown output", content: "output: html\n", errMsg: "unknown output format"},
		{name: "negative concurrency", content: "concurrency: -1\n", errMsg: "concurrency must not be negative"},
		{name: "bad timeout", content: "timeout: soon\n", errMsg: "unable to decode config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			cfgPath := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "output: markdown\n")
	t.Setenv("VIBECHECK_OUTPUT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	require.NoError(t, flags.Set("output", "json"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat, "flag value should override config file and env var")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "output: markdown\nlint:\n  analysis_depth: block\n")
	t.Setenv("VIBECHECK_OUTPUT", "yaml")
	t.Setenv("VIBECHECK_LINT__ANALYSIS_DEPTH", "function")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.OutputFormat, "env var should override config file")
	assert.Equal(t, "function", cfg.Lint.AnalysisDepth, "double underscore should nest")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	cfgPath := writeConfig(t, t.TempDir(), "concurrency: 2\n")
	t.Setenv("VIBECHECK_CONCURRENCY", "3")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("concurrency", 0, "workers")

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Concurrency, "env var should be used when flag is not set")
}

func TestLoadConfig_FlagMapping(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "verbose: false\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("state", "", "state path")
	flags.String("depth", "", "analysis depth")
	flags.Bool("no-history", false, "skip history")
	flags.Duration("timeout", 0, "timeout")
	flags.StringSlice("disable", nil, "not a config key")
	require.NoError(t, flags.Set("state", "custom.db"))
	require.NoError(t, flags.Set("depth", "function"))
	require.NoError(t, flags.Set("no-history", "true"))
	require.NoError(t, flags.Set("timeout", "2m"))
	require.NoError(t, flags.Set("disable", "eq_op"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	abs, err := filepath.Abs("custom.db")
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.StatePath, "flag paths resolve against the working directory")
	assert.Equal(t, "function", cfg.Lint.AnalysisDepth)
	assert.True(t, cfg.NoHistory)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Empty(t, cfg.Lint.Disabled, "command flags are not config keys")
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"VIBECHECK_OUTPUT", "output"},
		{"VIBECHECK_STATE_PATH", "state_path"},
		{"VIBECHECK_LINT__ANALYSIS_DEPTH", "lint.analysis_depth"},
		{"VIBECHECK_LINT__MAX_ANCESTORS", "lint.max_ancestors"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "markdown alias", mutate: func(c *Config) { c.OutputFormat = "md" }},
		{name: "bad output", mutate: func(c *Config) { c.OutputFormat = "xml" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: true},
		{name: "zero file size", mutate: func(c *Config) { c.MaxFileSize = 0 }, wantErr: true},
		{name: "no state path", mutate: func(c *Config) { c.StatePath = "" }, wantErr: true},
		{name: "no state path without history", mutate: func(c *Config) {
			c.StatePath = ""
			c.NoHistory = true
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "fallback logger")

	logger := NewLogger(os.Stderr, true)
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
