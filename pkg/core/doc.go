// Package core defines the shared language of the vibecheck system.
//
// This package contains:
//   - Diagnostic vocabulary (Severity, RuleInfo)
//   - Configuration types decoded by the CLI (LintConfig, SuppressionConfig)
//   - Persisted entities and the Store contract (Run, Waiver)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
