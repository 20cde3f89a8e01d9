// Package pedantic provides stricter lint rules that some codebases may
// want to disable.
//
// Rules in this package:
//   - match_bool: match on a boolean instead of if/else
//   - mut_mut: &mut &mut types and expressions
package pedantic
