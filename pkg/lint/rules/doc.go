// Package rules provides the built-in Rust lint rules.
//
// Rules are organized by group, mirroring Clippy's lint groups:
//   - correctness: code that is outright wrong or useless
//   - style: code that should be written more idiomatically
//   - complexity: simple things done in a roundabout way
//   - perf: needless allocations, copies and calls
//   - pedantic: stricter rules that may be noisy
//   - nursery: newer rules still being tuned
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/WolffM/vibecheck/pkg/lint/rules"
//
// Individual groups can also be imported:
//
//	import _ "github.com/WolffM/vibecheck/pkg/lint/rules/correctness"
package rules
