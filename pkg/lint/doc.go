// Package lint is a pattern-based static lint engine for Rust syntax trees.
//
// # Architecture
//
// Rules are small pure predicates keyed by node kind. The pipeline for one
// file is strictly linear:
//
//  1. Parse: pkg/parser builds an ast.File; a failure becomes one parse_error finding
//  2. Match: Scan walks the tree once and evaluates the rules for each node kind
//  3. Aggregate: duplicates are dropped and findings are sorted by position
//  4. Resolve: suppressions remove findings and severity overrides apply
//
// Runner fans files out over a bounded worker pool and merges results in
// path order.
//
// # Rule Registration
//
// Rules register themselves from init() functions when their package is
// imported:
//
//	import _ "github.com/WolffM/vibecheck/pkg/lint/rules"
//
// The registry is frozen by the first call to DefaultRules; the returned
// RuleSet is immutable and shared by all workers without locking.
//
// # Configuration
//
// Use Config to control which rules run and how they are reported:
//
//	config := lint.NewConfig()
//	config.Disable("single_match")
//	config.SetSeverity("eq_op", core.SeverityError)
//	config.SetRuleOptions("type_complexity", map[string]any{"max_depth": 5})
//
// # Suppressions
//
// Findings can be silenced from configuration, stored waivers, comments and
// attributes:
//
//	let same = x == x; // vibecheck:ignore[eq_op]
//
//	// vibecheck:disable[len_zero]
//	...
//	// vibecheck:enable
//
//	#[allow(clippy::needless_range_loop)]
//	fn copy(dst: &mut [u8], src: &[u8]) { ... }
//
// A directive silences a finding only when the finding's span lies entirely
// within the directive's span. Parse and internal errors are never silenced.
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		Name:        "my_rule",
//		Group:       "style",
//		Description: "My custom rule description",
//		Severity:    core.SeverityWarning,
//		Kinds:       []string{ast.KindCall},
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.MustRegister(MyRule)
//	}
package lint
