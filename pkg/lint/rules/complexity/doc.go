// Package complexity provides lint rules for code that does something
// simple in a roundabout way.
//
// Rules in this package:
//   - clone_on_copy: .clone() on a Copy value
//   - explicit_counter_loop: hand-maintained loop counter
//   - filter_map_identity: .filter_map(|x| x)
//   - manual_filter_map: .filter(..is_some()).map(..unwrap())
//   - needless_bool: if c { true } else { false }
//   - option_as_ref_deref: .as_ref().map(|x| x.as_str())
//   - redundant_slicing: &v[..] on a slice
//   - search_is_some: .find(..).is_some()
//   - type_complexity: deeply nested generic types
//   - unit_arg: unit value passed as an argument
package complexity
