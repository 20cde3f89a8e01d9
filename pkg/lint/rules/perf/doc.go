// Package perf provides lint rules for code that does needless work at
// runtime: extra allocations, copies and calls.
//
// Rules in this package:
//   - cmp_owned: creating an owned value only to compare it
//   - inefficient_to_string: to_string on a &str
//   - manual_memcpy: element-wise copy loop
//   - or_fun_call: eagerly evaluated call passed to unwrap_or and friends
//   - redundant_clone: clone of a value that is never used again
//   - useless_vec: vec! where an array would do
package perf
