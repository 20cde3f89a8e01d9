package lint

import (
	"fmt"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/token"
)

// Names of the structural rules owned by the engine.
const (
	RuleParseError        = "parse_error"
	RuleInternalError     = "internal_error"
	RuleUnusedSuppression = "unused_suppression"
)

// GroupEngine is the group of the structural rules.
const GroupEngine = "engine"

// RuleDef is a data-driven rule definition.
// Rules are stateless: all context comes through the Pass handed to Check.
type RuleDef struct {
	Name        string        // Unique identifier, e.g., "eq_op"
	Group       string        // Category, e.g., "correctness", "style", "perf"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Kinds       []string      // Node kinds the predicate is evaluated on
	Check       CheckFunc     // The predicate
	ConfigKeys  []string      // Option keys accepted under lint.rules.<name>

	// Documentation fields
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc inspects p.Node and returns a match, or nil when the node is fine.
// Implementations must be pure: they may run concurrently on different files.
type CheckFunc func(p *Pass) *Match

// Match is the result of a predicate that fired.
type Match struct {
	Span    token.Span
	Message string
}

// MatchNode is a convenience for a match spanning n.
func MatchNode(n *ast.Node, format string, args ...any) *Match {
	return &Match{Span: n.Span, Message: fmt.Sprintf(format, args...)}
}

// Info returns the rule metadata for documentation and tooling.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Kinds:           r.Kinds,
		ConfigKeys:      r.ConfigKeys,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
		Fix:             r.Fix,
	}
}

// AcceptsOption reports whether key is one of the rule's ConfigKeys.
func (r RuleDef) AcceptsOption(key string) bool {
	for _, k := range r.ConfigKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (r RuleDef) validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("rule has no name")
	case r.Check == nil:
		return fmt.Errorf("rule %q has no check function", r.Name)
	case len(r.Kinds) == 0:
		return fmt.Errorf("rule %q has no node kinds", r.Name)
	case !r.Severity.IsValid():
		return fmt.Errorf("rule %q has invalid severity %d", r.Name, r.Severity)
	case isStructural(r.Name):
		return fmt.Errorf("rule name %q is reserved", r.Name)
	}
	return nil
}

// StructuralRules describes the findings produced by the engine itself.
func StructuralRules() []core.RuleInfo {
	return []core.RuleInfo{
		{
			Name:            RuleParseError,
			Group:           GroupEngine,
			Description:     "The file could not be parsed; no other rules ran on it.",
			DefaultSeverity: core.SeverityError,
		},
		{
			Name:            RuleInternalError,
			Group:           GroupEngine,
			Description:     "A rule failed while inspecting a node.",
			DefaultSeverity: core.SeverityError,
		},
		{
			Name:            RuleUnusedSuppression,
			Group:           GroupEngine,
			Description:     "A suppression comment or attribute matched no finding.",
			DefaultSeverity: core.SeverityInfo,
		},
	}
}

func isStructural(name string) bool {
	return name == RuleParseError || name == RuleInternalError || name == RuleUnusedSuppression
}
