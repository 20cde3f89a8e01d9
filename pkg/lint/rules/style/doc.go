// Package style provides lint rules for code that works but should be
// written in a more idiomatic way.
//
// Rules in this package:
//   - bytes_nth: .bytes().nth(n) instead of .as_bytes().get(n)
//   - chars_next_cmp: .chars().next() == Some(c) instead of starts_with
//   - collapsible_if: nested ifs without else that can be joined with &&
//   - iter_nth_zero: .nth(0) instead of .next()
//   - len_zero: comparing .len() to zero instead of is_empty
//   - map_clone: .map(|x| x.clone()) instead of cloned
//   - needless_range_loop: index loop over 0..v.len()
//   - ptr_arg: &Vec<T>, &String or &PathBuf parameters
//   - redundant_pattern_matching: match or if let that is is_some/is_ok
//   - single_match: match with one interesting arm
//   - unnecessary_fold: fold that is any/all/sum/product
//   - while_let_on_iterator: while let Some(x) = it.next()
package style
