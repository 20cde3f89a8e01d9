// Package rustast provides Rust pattern helpers shared by lint rules.
package rustast

import (
	"strconv"
	"strings"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/lint"
)

var copyPrimitives = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"f32": true, "f64": true, "bool": true, "char": true,
}

// IsCopyType reports whether t names a primitive Copy type.
func IsCopyType(t *ast.Node) bool {
	return t != nil && t.Kind == ast.KindPrimitiveType && copyPrimitives[ast.LeafText(t)]
}

// IsCopyLiteral reports whether n is a numeric, bool or char literal.
func IsCopyLiteral(n *ast.Node) bool {
	n = ast.Unparen(n)
	return n.Is(ast.KindIntegerLiteral, ast.KindFloatLiteral, ast.KindBooleanLiteral, ast.KindCharLiteral)
}

// IsCopyValue reports whether n is a literal or a local binding of a
// primitive Copy type, either declared or inferred from a literal.
func IsCopyValue(p *lint.Pass, n *ast.Node) bool {
	n = ast.Unparen(n)
	if IsCopyLiteral(n) {
		return true
	}
	if n == nil || n.Kind != ast.KindIdentifier {
		return false
	}
	b, ok := p.Lookup(n.Text)
	if !ok {
		return false
	}
	if b.Type != nil {
		return IsCopyType(b.Type)
	}
	return !b.Loop && b.Init != nil && IsCopyLiteral(b.Init)
}

// StatementOf returns the expression_statement wrapping n, or n itself.
func StatementOf(p *lint.Pass, n *ast.Node) *ast.Node {
	if parent := p.ParentOf(n); parent != nil && parent.Kind == ast.KindExprStatement {
		return parent
	}
	return n
}

// LetCondition returns the pattern and scrutinee of `if let` / `while let`.
// Both the let_condition and the older if_let_expression shapes are handled.
func LetCondition(n *ast.Node) (pattern, value *ast.Node, ok bool) {
	switch n.Kind {
	case ast.KindIfLet, ast.KindWhileLet:
		pattern, value = n.ChildByField("pattern"), n.ChildByField("value")
	case ast.KindIf, ast.KindWhile:
		cond := n.ChildByField("condition")
		if cond == nil || cond.Kind != ast.KindLetCondition {
			return nil, nil, false
		}
		pattern, value = cond.ChildByField("pattern"), cond.ChildByField("value")
	default:
		return nil, nil, false
	}
	return pattern, value, pattern != nil && value != nil
}

// HasLetCondition reports whether an if or while tests a pattern.
func HasLetCondition(n *ast.Node) bool {
	if n.Is(ast.KindIfLet, ast.KindWhileLet) {
		return true
	}
	cond := n.ChildByField("condition")
	return cond != nil && (cond.Kind == ast.KindLetCondition || ast.Contains(cond, ast.KindLetCondition))
}

// ElseBlock returns the block of a plain `else { ... }`, or nil when there
// is no else or it is an `else if`.
func ElseBlock(ifNode *ast.Node) *ast.Node {
	alt := ifNode.ChildByField("alternative")
	if alt == nil {
		return nil
	}
	if alt.Kind == ast.KindBlock {
		return alt
	}
	if b := alt.FirstChildOfKind(ast.KindBlock); b != nil {
		return b
	}
	return nil
}

// IsUnit reports whether n is `()` or an empty block `{}`.
func IsUnit(n *ast.Node) bool {
	n = ast.Unparen(n)
	switch {
	case n == nil:
		return false
	case n.Kind == ast.KindUnit:
		return true
	case n.Kind == ast.KindBlock:
		return n.NamedCount() == 0
	}
	return false
}

// TupleVariant decomposes a pattern like `Some(_)` into its variant name and
// inner pattern. A bare path like `None` yields the name and a nil inner.
func TupleVariant(pattern *ast.Node) (name string, inner *ast.Node, ok bool) {
	if pattern != nil && pattern.Kind == ast.KindMatchPattern {
		pattern = pattern.NamedChild(0)
	}
	if pattern == nil {
		return "", nil, false
	}
	switch pattern.Kind {
	case ast.KindIdentifier, ast.KindScopedIdent:
		return lastSegment(ast.LeafText(pattern)), nil, true
	case ast.KindTupleStructPat:
		typ := pattern.ChildByField("type")
		if typ == nil {
			typ = pattern.NamedChild(0)
		}
		var args []*ast.Node
		for _, c := range pattern.Children {
			if c != typ && (c.Named || c.Kind == "_") {
				args = append(args, c)
			}
		}
		if len(args) != 1 {
			return lastSegment(ast.LeafText(typ)), nil, false
		}
		return lastSegment(ast.LeafText(typ)), args[0], true
	}
	return "", nil, false
}

// IsWildcard reports whether a pattern is `_`.
func IsWildcard(pattern *ast.Node) bool {
	if pattern == nil {
		return false
	}
	return ast.LeafText(pattern) == "_"
}

// RangeBounds returns the operands of `a..b`; either may be nil.
func RangeBounds(n *ast.Node) (start, end *ast.Node, inclusive, ok bool) {
	n = ast.Unparen(n)
	if n == nil || n.Kind != ast.KindRange {
		return nil, nil, false, false
	}
	seenOp := false
	for _, c := range n.Children {
		if !c.Named {
			if c.Kind == ".." || c.Kind == "..=" || c.Kind == "..." {
				seenOp = true
				inclusive = c.Kind != ".."
			}
			continue
		}
		if seenOp {
			end = c
		} else {
			start = c
		}
	}
	return start, end, inclusive, true
}

// IndexParts returns the base and index of `base[index]`.
func IndexParts(n *ast.Node) (base, index *ast.Node, ok bool) {
	n = ast.Unparen(n)
	if n == nil || n.Kind != ast.KindIndex {
		return nil, nil, false
	}
	named := n.NamedChildren()
	if len(named) != 2 {
		return nil, nil, false
	}
	return named[0], named[1], true
}

// IsIndexBy reports whether n is `base[idx]` with idx the given identifier.
func IsIndexBy(n *ast.Node, idx string) (base *ast.Node, ok bool) {
	base, index, ok := IndexParts(n)
	if !ok || !ast.IsIdent(index, idx) {
		return nil, false
	}
	return base, true
}

// IsConstructorCall reports whether call invokes a tuple struct or enum
// variant such as `Some(x)` or `Ok(x)`, which costs nothing to evaluate.
func IsConstructorCall(call *ast.Node) bool {
	path, _, ok := ast.FunctionCall(call)
	if !ok {
		return false
	}
	seg := lastSegment(path)
	return seg != "" && seg[0] >= 'A' && seg[0] <= 'Z'
}

// IsDefaultCall reports whether call is `T::new()`, `T::default()` or
// `Default::default()` without arguments.
func IsDefaultCall(call *ast.Node) bool {
	path, args, ok := ast.FunctionCall(call)
	if !ok || len(args) != 0 {
		return false
	}
	seg := lastSegment(path)
	return strings.Contains(path, "::") && (seg == "new" || seg == "default")
}

// ParseInt parses a Rust integer literal: decimal, hex, octal or binary,
// with optional separators and type suffix.
func ParseInt(text string) (uint64, bool) {
	text = strings.ReplaceAll(text, "_", "")
	base := 10
	switch {
	case strings.HasPrefix(text, "0x"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0o"):
		base, text = 8, text[2:]
	case strings.HasPrefix(text, "0b"):
		base, text = 2, text[2:]
	}
	end := len(text)
	for i, r := range text {
		if !isDigit(r, base) {
			end = i
			break
		}
	}
	v, err := strconv.ParseUint(text[:end], base, 64)
	return v, err == nil
}

func isDigit(r rune, base int) bool {
	switch {
	case r >= '0' && r <= '9':
		return int(r-'0') < base
	case base == 16 && (r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'):
		return true
	}
	return false
}

// IntValue returns the value of an integer literal node.
func IntValue(n *ast.Node) (uint64, bool) {
	n = ast.Unparen(n)
	if n == nil || n.Kind != ast.KindIntegerLiteral {
		return 0, false
	}
	return ParseInt(ast.LeafText(n))
}

// BodyStatements returns the expressions of a block, unwrapping statements.
func BodyStatements(block *ast.Node) []*ast.Node {
	body := ast.BlockBody(block)
	out := make([]*ast.Node, len(body))
	for i, st := range body {
		out[i] = ast.StatementExpr(st)
	}
	return out
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "::"); i >= 0 {
		return path[i+2:]
	}
	return path
}

// LastSegment returns the final segment of a `a::b::c` path.
func LastSegment(path string) string {
	return lastSegment(path)
}
