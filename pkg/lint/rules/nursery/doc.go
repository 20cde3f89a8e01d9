// Package nursery provides newer lint rules that are still being tuned.
//
// Rules in this package:
//   - string_lit_as_bytes: "lit".as_bytes() instead of a byte string literal
package nursery
