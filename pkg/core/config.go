package core

// LintConfig holds lint rule configuration as decoded from vibecheck.yaml.
// Values are kept as strings here; pkg/lint validates and converts them.
type LintConfig struct {
	// Enabled restricts the run to these rule names (empty means all)
	Enabled []string `koanf:"enabled"`

	// Disabled contains rule names to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule name to severity override (error, warning, info)
	Severity map[string]string `koanf:"severity"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules"`

	// Suppressions silence rules over line ranges of a file
	Suppressions []SuppressionConfig `koanf:"suppressions"`

	// AnalysisDepth selects the region used by "used later" reasoning: block or function
	AnalysisDepth string `koanf:"analysis_depth"`

	// MaxAncestors bounds the ancestor view handed to rule predicates
	MaxAncestors int `koanf:"max_ancestors"`

	// ReportUnusedSuppressions reports source directives that silenced nothing
	ReportUnusedSuppressions bool `koanf:"report_unused_suppressions"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// SuppressionConfig is a suppression directive declared in configuration.
type SuppressionConfig struct {
	// Path limits the directive to one file (empty matches every file)
	Path string `koanf:"path"`

	// Rules lists the silenced rules (empty silences all)
	Rules []string `koanf:"rules"`

	// StartLine and EndLine delimit the covered lines, inclusive
	StartLine int `koanf:"start_line"`
	EndLine   int `koanf:"end_line"`
}
