package lint

import (
	"slices"
	"strings"

	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/token"
)

// Defaults for the matcher.
const (
	DefaultMaxAncestors = 32
	DefaultMaxBindings  = 512
)

// AnalysisDepth selects the region searched by Scope.UsedAfter.
type AnalysisDepth int

// Analysis depths.
const (
	// DepthBlock limits reasoning to the block declaring a binding.
	DepthBlock AnalysisDepth = iota
	// DepthFunction extends reasoning to the whole enclosing function body.
	DepthFunction
)

func (d AnalysisDepth) String() string {
	if d == DepthFunction {
		return "function"
	}
	return "block"
}

// IsValid reports whether d is a known depth.
func (d AnalysisDepth) IsValid() bool {
	return d == DepthBlock || d == DepthFunction
}

// ParseAnalysisDepth converts "block" or "function"; empty means block.
func ParseAnalysisDepth(s string) (AnalysisDepth, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return DepthBlock, true
	case "function", "fn":
		return DepthFunction, true
	default:
		return DepthBlock, false
	}
}

// Config controls which rules are enabled, their severity and options, and
// the suppressions applied to their findings.
type Config struct {
	// EnabledRules restricts the run to these rules or groups (empty = all)
	EnabledRules map[string]bool

	// DisabledRules contains rule or group names to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds rule-specific options keyed by rule name
	RuleOptions map[string]map[string]any

	// Suppressions silence findings independent of the source text
	Suppressions []Suppression

	AnalysisDepth            AnalysisDepth
	MaxAncestors             int
	ReportUnusedSuppressions bool
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		EnabledRules:      make(map[string]bool),
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
		MaxAncestors:      DefaultMaxAncestors,
	}
}

// IsDisabled returns true if the rule name was disabled explicitly.
func (c *Config) IsDisabled(name string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[name]
}

// IsEnabled reports whether rule runs under c. Rule names and group names
// are both accepted in the enable and disable lists; disabling wins.
func (c *Config) IsEnabled(rule RuleDef) bool {
	if c == nil {
		return true
	}
	if c.DisabledRules[rule.Name] || c.DisabledRules[rule.Group] {
		return false
	}
	if len(c.EnabledRules) == 0 {
		return true
	}
	return c.EnabledRules[rule.Name] || c.EnabledRules[rule.Group]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(name string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[name]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(name string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[name]
}

// Enable adds a rule or group to the allow list.
func (c *Config) Enable(name string) *Config {
	c.EnabledRules[name] = true
	return c
}

// Disable disables a rule or group by name.
func (c *Config) Disable(name string) *Config {
	c.DisabledRules[name] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(name string, severity core.Severity) *Config {
	c.SeverityOverrides[name] = severity
	return c
}

// SetRuleOptions sets the options of a rule.
func (c *Config) SetRuleOptions(name string, opts map[string]any) *Config {
	c.RuleOptions[name] = opts
	return c
}

// AddSuppression appends a suppression directive.
func (c *Config) AddSuppression(s Suppression) *Config {
	c.Suppressions = append(c.Suppressions, s)
	return c
}

func (c *Config) maxAncestors() int {
	if c == nil || c.MaxAncestors <= 0 {
		return DefaultMaxAncestors
	}
	return c.MaxAncestors
}

func (c *Config) depth() AnalysisDepth {
	if c == nil {
		return DepthBlock
	}
	return c.AnalysisDepth
}

// Validate checks c against the known rules. Unknown rule or group names,
// unknown option keys and invalid suppressions produce a *ConfigError.
func (c *Config) Validate(rules *RuleSet) error {
	if c == nil {
		return nil
	}
	known := func(name string) bool {
		if isStructural(name) || rules.HasGroup(name) {
			return true
		}
		_, ok := rules.Lookup(name)
		return ok
	}

	for _, list := range []struct {
		field string
		names map[string]bool
	}{
		{"enabled", c.EnabledRules},
		{"disabled", c.DisabledRules},
	} {
		for _, name := range sortedKeys(list.names) {
			if !known(name) {
				return configErrorf("%s: unknown rule or group %q", list.field, name)
			}
		}
	}

	for _, name := range sortedKeys(c.SeverityOverrides) {
		if !known(name) {
			return configErrorf("severity: unknown rule %q", name)
		}
		if sev := c.SeverityOverrides[name]; !sev.IsValid() {
			return configErrorf("severity: invalid level %d for %q", sev, name)
		}
	}

	for _, name := range sortedKeys(c.RuleOptions) {
		rule, ok := rules.Lookup(name)
		if !ok {
			return configErrorf("rules: unknown rule %q", name)
		}
		for _, key := range sortedKeys(c.RuleOptions[name]) {
			if !rule.AcceptsOption(key) {
				return configErrorf("rules.%s: unknown option %q (accepted: %s)",
					name, key, strings.Join(rule.ConfigKeys, ", "))
			}
		}
	}

	for i, s := range c.Suppressions {
		if !s.Span.IsValid() {
			return configErrorf("suppressions[%d]: invalid line range %s", i, s.Span)
		}
		for _, name := range s.Rules {
			if !known(name) {
				return configErrorf("suppressions[%d]: unknown rule %q", i, name)
			}
		}
	}

	if c.MaxAncestors < 0 {
		return configErrorf("max_ancestors must not be negative, got %d", c.MaxAncestors)
	}
	if !c.AnalysisDepth.IsValid() {
		return configErrorf("analysis_depth: invalid value %d", int(c.AnalysisDepth))
	}
	return nil
}

// ConfigFromCore converts the decoded configuration file section into a
// Config and validates it against rules.
func ConfigFromCore(lc core.LintConfig, rules *RuleSet) (*Config, error) {
	cfg := NewConfig()

	for _, name := range lc.Enabled {
		cfg.Enable(strings.TrimSpace(name))
	}
	for _, name := range lc.Disabled {
		cfg.Disable(strings.TrimSpace(name))
	}
	for name, level := range lc.Severity {
		sev, ok := core.ParseSeverity(level)
		if !ok {
			return nil, configErrorf("severity: invalid level %q for %q", level, name)
		}
		cfg.SetSeverity(name, sev)
	}
	for name, opts := range lc.Rules {
		cfg.SetRuleOptions(name, opts)
	}
	for i, sc := range lc.Suppressions {
		if sc.StartLine <= 0 {
			return nil, configErrorf("suppressions[%d]: start_line must be positive", i)
		}
		end := sc.EndLine
		if end == 0 {
			end = sc.StartLine
		}
		if end < sc.StartLine {
			return nil, configErrorf("suppressions[%d]: end_line %d before start_line %d", i, end, sc.StartLine)
		}
		cfg.AddSuppression(Suppression{
			Path:   sc.Path,
			Span:   token.LineSpan(sc.StartLine, end),
			Rules:  sc.Rules,
			Origin: OriginConfig,
		})
	}

	depth, ok := ParseAnalysisDepth(lc.AnalysisDepth)
	if !ok {
		return nil, configErrorf("analysis_depth: expected block or function, got %q", lc.AnalysisDepth)
	}
	cfg.AnalysisDepth = depth
	if lc.MaxAncestors != 0 {
		cfg.MaxAncestors = lc.MaxAncestors
	}
	cfg.ReportUnusedSuppressions = lc.ReportUnusedSuppressions

	if err := cfg.Validate(rules); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
