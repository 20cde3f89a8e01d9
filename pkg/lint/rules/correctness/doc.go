// Package correctness provides lint rules for code that is outright wrong
// or useless. Findings default to Error or Warning.
//
// Rules in this package:
//   - approx_constant: float literal approximating a known constant
//   - bad_bit_mask: bit mask comparison with a constant result
//   - eq_op: identical operands of a binary operator
//   - erasing_op: operation that always yields zero
package correctness
