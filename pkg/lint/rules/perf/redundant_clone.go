package perf

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(RedundantClone)
}

// RedundantClone flags `x.clone()` where the local x is never used again,
// so it could have been moved.
var RedundantClone = lint.RuleDef{
	Name:        "redundant_clone",
	Group:       "perf",
	Description: "Cloning a local value that is not used afterwards.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindCall},
	Check:       checkRedundantClone,
	Rationale:   "The original is dropped right after the copy is made; moving it avoids the allocation.",
	BadExample:  "let s = String::from(\"hello\");\nlet t = s.clone();",
	GoodExample: "let s = String::from(\"hello\");\nlet t = s;",
}

// loopKinds re-execute their body, so a later iteration may use the value.
var loopKinds = []string{ast.KindFor, ast.KindWhile, ast.KindWhileLet, ast.KindLoop, ast.KindClosure}

func checkRedundantClone(p *lint.Pass) *lint.Match {
	recv, method, args, ok := ast.MethodCall(p.Node)
	if !ok || method != "clone" || len(args) != 0 {
		return nil
	}
	recv = ast.Unparen(recv)
	if recv == nil || recv.Kind != ast.KindIdentifier || rustast.IsCopyValue(p, recv) {
		return nil
	}
	b, found := p.Lookup(recv.Text)
	if !found {
		return nil
	}
	// Cloning through a borrow yields an owned value; there is nothing to move.
	if borrowed(p, b) {
		return nil
	}
	if loop := p.Enclosing(loopKinds...); loop != nil && loop.Span.Start.Offset > b.Span.Start.Offset {
		return nil
	}
	if p.Scope.UsedAfter(recv.Text, p.Node.Span.End.Offset) {
		return nil
	}
	return lint.MatchNode(p.Node, "redundant clone: `%s` is not used after this point; move it instead", recv.Text)
}

// borrowingMethods return a reference into their receiver.
var borrowingMethods = map[string]bool{
	"get": true, "get_mut": true, "first": true, "last": true,
	"as_ref": true, "as_deref": true, "as_str": true, "as_slice": true, "peek": true,
}

// borrowingIterators yield references to the elements of their receiver.
var borrowingIterators = map[string]bool{
	"iter": true, "iter_mut": true, "keys": true, "values": true, "values_mut": true,
	"windows": true, "chunks": true,
}

// iterAdapters preserve the item type of the iterator they wrap.
var iterAdapters = map[string]bool{
	"rev": true, "skip": true, "take": true, "filter": true, "enumerate": true,
	"zip": true, "step_by": true, "chain": true, "peekable": true, "skip_while": true,
	"take_while": true, "inspect": true,
}

// borrowed reports whether the binding holds a reference rather than an
// owned value.
func borrowed(p *lint.Pass, b lint.Binding) bool {
	if b.Type != nil {
		return b.Type.Kind == ast.KindReferenceType
	}
	if b.Param {
		return true
	}
	if b.Loop {
		return borrowedItems(p, b.Init)
	}
	return borrowsValue(b.Init)
}

// borrowsValue reports whether init evaluates to a reference.
func borrowsValue(init *ast.Node) bool {
	for n := ast.Unparen(init); n != nil; {
		if n.Kind == ast.KindReference {
			return true
		}
		recv, method, _, ok := ast.MethodCall(n)
		if !ok {
			return false
		}
		switch {
		case method == "unwrap" || method == "expect":
			n = ast.Unparen(recv)
		case method == "next":
			return borrowsItems(recv)
		default:
			return borrowingMethods[method]
		}
	}
	return false
}

// borrowsItems reports whether the iterator expression yields references.
func borrowsItems(n *ast.Node) bool {
	for n = ast.Unparen(n); n != nil; {
		recv, method, _, ok := ast.MethodCall(n)
		if !ok {
			return false
		}
		if !iterAdapters[method] {
			return borrowingIterators[method]
		}
		n = ast.Unparen(recv)
	}
	return false
}

// borrowedItems reports whether a for loop over value binds references.
func borrowedItems(p *lint.Pass, value *ast.Node) bool {
	value = ast.Unparen(value)
	if value == nil {
		return false
	}
	if value.Kind == ast.KindReference || borrowsItems(value) {
		return true
	}
	if value.Kind != ast.KindIdentifier {
		return false
	}
	src, ok := p.Lookup(value.Text)
	if !ok || src.Loop {
		return false
	}
	if src.Type != nil {
		return src.Type.Kind == ast.KindReferenceType
	}
	return src.Param || borrowsValue(src.Init)
}
