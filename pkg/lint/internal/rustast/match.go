package rustast

import "github.com/WolffM/vibecheck/pkg/ast"

// Arm is one arm of a match expression.
type Arm struct {
	Node    *ast.Node
	Pattern *ast.Node
	Guard   bool
	Value   *ast.Node
}

// MatchArms returns the scrutinee and arms of a match_expression.
func MatchArms(n *ast.Node) (scrutinee *ast.Node, arms []Arm, ok bool) {
	if n == nil || n.Kind != ast.KindMatch {
		return nil, nil, false
	}
	scrutinee = n.ChildByField("value")
	body := n.ChildByField("body")
	if body == nil {
		body = n.FirstChildOfKind(ast.KindMatchBlock)
	}
	if scrutinee == nil || body == nil {
		return nil, nil, false
	}
	for _, c := range body.Children {
		if c.Kind != ast.KindMatchArm && c.Kind != "last_match_arm" {
			continue
		}
		arm := Arm{Node: c, Pattern: c.ChildByField("pattern"), Value: c.ChildByField("value")}
		if arm.Pattern != nil {
			arm.Guard = arm.Pattern.ChildByField("condition") != nil
		}
		arms = append(arms, arm)
	}
	return scrutinee, arms, true
}

// ClosureParamList returns the closure parameters in order, including
// anonymous `_` patterns that NamedChildren would skip.
func ClosureParamList(n *ast.Node) []*ast.Node {
	n = ast.Unparen(n)
	if n == nil || n.Kind != ast.KindClosure {
		return nil
	}
	params := n.ChildByField("parameters")
	if params == nil {
		params = n.FirstChildOfKind(ast.KindClosureParams)
	}
	if params == nil {
		return nil
	}
	var out []*ast.Node
	for _, c := range params.Children {
		if c.Named || c.Kind == "_" {
			out = append(out, c)
		}
	}
	return out
}

// ParamName returns the identifier bound by a closure or function
// parameter, or "" for patterns.
func ParamName(param *ast.Node) string {
	if param == nil {
		return ""
	}
	if param.Kind == ast.KindParameter {
		param = param.ChildByField("pattern")
	}
	if param == nil || param.Kind != ast.KindIdentifier {
		return ""
	}
	return param.Text
}

// CountIdent counts occurrences of identifier name under n.
func CountIdent(n *ast.Node, name string) int {
	count := 0
	ast.Walk(n, func(c *ast.Node) bool {
		if c.Kind == ast.KindIdentifier && c.Text == name {
			count++
		}
		return true
	})
	return count
}

// ContainsIdent reports whether identifier name occurs under n.
func ContainsIdent(n *ast.Node, name string) bool {
	return CountIdent(n, name) > 0
}

// ForLoop decomposes `for pattern in value body`.
func ForLoop(n *ast.Node) (pattern, value, body *ast.Node, ok bool) {
	if n == nil || n.Kind != ast.KindFor {
		return nil, nil, nil, false
	}
	pattern, value, body = n.ChildByField("pattern"), n.ChildByField("value"), n.ChildByField("body")
	return pattern, value, body, pattern != nil && value != nil && body != nil
}

// MemcpyShape reports whether a for loop over a range copies one slice into
// another element by element: `for i in a..b { dst[i] = src[i]; }`.
func MemcpyShape(n *ast.Node) (dst, src *ast.Node, ok bool) {
	pattern, value, body, ok := ForLoop(n)
	if !ok || pattern.Kind != ast.KindIdentifier {
		return nil, nil, false
	}
	if _, _, _, isRange := RangeBounds(value); !isRange {
		return nil, nil, false
	}
	stmts := BodyStatements(body)
	if len(stmts) != 1 || stmts[0] == nil || stmts[0].Kind != ast.KindAssignment {
		return nil, nil, false
	}
	left, right := stmts[0].ChildByField("left"), stmts[0].ChildByField("right")
	dst, okDst := IsIndexBy(left, pattern.Text)
	src, okSrc := IsIndexBy(right, pattern.Text)
	if !okDst || !okSrc || ast.Equal(dst, src) {
		return nil, nil, false
	}
	return dst, src, true
}
