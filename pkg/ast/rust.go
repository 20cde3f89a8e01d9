package ast

import "strings"

// Operator returns the operator token of a binary, unary or compound
// assignment expression.
func Operator(n *Node) string {
	if n == nil {
		return ""
	}
	if op := n.ChildByField("operator"); op != nil {
		return op.Kind
	}
	for _, c := range n.Children {
		if !c.Named {
			return c.Kind
		}
	}
	return ""
}

// BinaryOperands returns the operator and both operands of a binary_expression.
func BinaryOperands(n *Node) (op string, left, right *Node, ok bool) {
	if n == nil || n.Kind != KindBinary {
		return "", nil, nil, false
	}
	left = n.ChildByField("left")
	right = n.ChildByField("right")
	if left == nil || right == nil {
		named := n.NamedChildren()
		if len(named) != 2 {
			return "", nil, nil, false
		}
		left, right = named[0], named[1]
	}
	return Operator(n), left, right, true
}

// MethodCall decomposes `recv.method(args)`; generic calls such as
// `it.collect::<Vec<_>>()` are unwrapped.
func MethodCall(n *Node) (recv *Node, method string, args []*Node, ok bool) {
	if n == nil || n.Kind != KindCall {
		return nil, "", nil, false
	}
	fn := n.ChildByField("function")
	if fn != nil && fn.Kind == KindGenericFunction {
		fn = fn.ChildByField("function")
	}
	if fn == nil || fn.Kind != KindField {
		return nil, "", nil, false
	}
	recv = fn.ChildByField("value")
	name := fn.ChildByField("field")
	if recv == nil || name == nil {
		return nil, "", nil, false
	}
	return recv, LeafText(name), CallArgs(n), true
}

// IsMethodCall reports whether n is a method call named one of names.
func IsMethodCall(n *Node, names ...string) bool {
	_, method, _, ok := MethodCall(n)
	if !ok {
		return false
	}
	for _, name := range names {
		if method == name {
			return true
		}
	}
	return false
}

// FunctionCall decomposes a path call such as `Some(x)` or `String::from(s)`.
func FunctionCall(n *Node) (path string, args []*Node, ok bool) {
	if n == nil || n.Kind != KindCall {
		return "", nil, false
	}
	fn := n.ChildByField("function")
	if fn == nil || !fn.Is(KindIdentifier, KindScopedIdent) {
		return "", nil, false
	}
	return LeafText(fn), CallArgs(n), true
}

// CallArgs returns the argument expressions of a call_expression.
func CallArgs(n *Node) []*Node {
	args := n.ChildByField("arguments")
	if args == nil {
		args = n.FirstChildOfKind(KindArguments)
	}
	if args == nil {
		return nil
	}
	return args.NamedChildren()
}

// MacroName returns the name of a macro_invocation without the bang.
func MacroName(n *Node) string {
	if n == nil || n.Kind != KindMacroInvocation {
		return ""
	}
	if m := n.ChildByField("macro"); m != nil {
		return LeafText(m)
	}
	if id := n.FirstChildOfKind(KindIdentifier, KindScopedIdent); id != nil {
		return LeafText(id)
	}
	return ""
}

// LeafText concatenates the text of all leaves under n. For paths and simple
// expressions this yields the source without whitespace, e.g. "String::new".
func LeafText(n *Node) string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var b strings.Builder
	Walk(n, func(c *Node) bool {
		if len(c.Children) == 0 {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}

// IsIdent reports whether n is the identifier name.
func IsIdent(n *Node, name string) bool {
	n = Unparen(n)
	return n != nil && n.Kind == KindIdentifier && n.Text == name
}

// IsIntLiteral reports whether n is the integer literal with the given value,
// ignoring type suffixes and digit separators (0, 0u32, 0_usize).
func IsIntLiteral(n *Node, value string) bool {
	n = Unparen(n)
	if n == nil || n.Kind != KindIntegerLiteral {
		return false
	}
	return IntLiteralDigits(n.Text) == value
}

// IntLiteralDigits strips separators and type suffixes from a decimal literal.
func IntLiteralDigits(text string) string {
	text = strings.ReplaceAll(text, "_", "")
	end := len(text)
	for i, r := range text {
		if r < '0' || r > '9' {
			end = i
			break
		}
	}
	return text[:end]
}

// BoolLiteral returns the value of a boolean_literal.
func BoolLiteral(n *Node) (value, ok bool) {
	n = Unparen(n)
	if n == nil || n.Kind != KindBooleanLiteral {
		return false, false
	}
	return LeafText(n) == "true", true
}

// IsStringLiteral reports whether n is a (raw) string literal.
func IsStringLiteral(n *Node) bool {
	n = Unparen(n)
	return n != nil && n.Is(KindStringLiteral, KindRawString)
}

// BlockBody returns the statements and trailing expression of a block,
// i.e. its named children.
func BlockBody(n *Node) []*Node {
	if n == nil || n.Kind != KindBlock {
		return nil
	}
	return n.NamedChildren()
}

// StatementExpr unwraps an expression_statement to its expression.
func StatementExpr(n *Node) *Node {
	if n != nil && n.Kind == KindExprStatement {
		return n.NamedChild(0)
	}
	return n
}

// SingleExpr returns the only expression of a block such as `{ true }` or
// `{ return true; }`, or nil when the block holds anything else.
func SingleExpr(block *Node) *Node {
	body := BlockBody(block)
	if len(body) != 1 {
		return nil
	}
	return StatementExpr(body[0])
}

// ClosureParams returns the parameter nodes and body of a closure.
func ClosureParams(n *Node) (params []*Node, body *Node, ok bool) {
	n = Unparen(n)
	if n == nil || n.Kind != KindClosure {
		return nil, nil, false
	}
	if p := n.ChildByField("parameters"); p != nil {
		params = p.NamedChildren()
	} else if p := n.FirstChildOfKind(KindClosureParams); p != nil {
		params = p.NamedChildren()
	}
	body = n.ChildByField("body")
	if body == nil {
		named := n.NamedChildren()
		if len(named) > 0 {
			body = named[len(named)-1]
		}
	}
	return params, body, body != nil
}

// ClosureIdentity reports the single parameter name of `|x| body` when the
// parameter is a plain identifier.
func ClosureIdentity(n *Node) (param string, body *Node, ok bool) {
	params, body, ok := ClosureParams(n)
	if !ok || len(params) != 1 {
		return "", nil, false
	}
	p := params[0]
	if p.Kind == KindParameter {
		p = p.ChildByField("pattern")
	}
	if p == nil || p.Kind != KindIdentifier {
		return "", nil, false
	}
	body = Unparen(body)
	if body != nil && body.Kind == KindBlock {
		if inner := SingleExpr(body); inner != nil {
			body = inner
		}
	}
	return p.Text, body, true
}

// IsSideEffectFree reports whether evaluating n cannot run user code:
// it contains no calls, macros, assignments or blocks.
func IsSideEffectFree(n *Node) bool {
	return !Contains(n, KindCall, KindMacroInvocation, KindAssignment, KindCompoundAssign,
		KindBlock, KindClosure)
}
