package lint

import (
	"context"
	"fmt"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/token"
)

// cancelCheckInterval is the number of nodes visited between context checks.
const cancelCheckInterval = 64

// Scan walks the file once in pre-order and evaluates, at every node, the
// rules of set whose kind filter contains the node kind. Each rule yields at
// most one finding per node. Findings are returned in visit order with the
// rules' default severities; Aggregate and Resolve finish the job.
//
// When ctx is done, Scan stops and returns the findings so far together with
// an error wrapping ErrIncomplete and the context error.
func Scan(ctx context.Context, file *ast.File, set *RuleSet, cfg *Config) ([]Finding, error) {
	if file == nil || file.Root == nil || set.Len() == 0 {
		return nil, nil
	}
	m := &matcher{
		ctx:          ctx,
		file:         file,
		set:          set,
		cfg:          cfg,
		bounds:       file.Bounds(),
		maxAncestors: cfg.maxAncestors(),
		depth:        cfg.depth(),
	}
	if err := ctx.Err(); err != nil {
		return nil, incomplete(err)
	}
	m.visit(file.Root)
	if m.err != nil {
		return m.findings, incomplete(m.err)
	}
	return m.findings, nil
}

type matcher struct {
	ctx          context.Context
	file         *ast.File
	set          *RuleSet
	cfg          *Config
	bounds       token.Span
	maxAncestors int
	depth        AnalysisDepth

	stack    []*ast.Node // ancestors of the current node, root first
	scope    *Scope
	bodies   []*ast.Node // enclosing function bodies, innermost last
	visited  int
	findings []Finding
	err      error
}

func (m *matcher) visit(n *ast.Node) {
	m.visited++
	if m.visited%cancelCheckInterval == 0 {
		if err := m.ctx.Err(); err != nil {
			m.err = err
			return
		}
	}

	pushed := m.enter(n)
	m.evaluate(n)

	m.stack = append(m.stack, n)
	for _, c := range n.Children {
		m.visit(c)
		if m.err != nil {
			break
		}
	}
	m.stack = m.stack[:len(m.stack)-1]

	m.leave(n, pushed)
}

// enter opens a scope for blocks, functions, closures and for loops.
func (m *matcher) enter(n *ast.Node) bool {
	limit := DefaultMaxBindings
	switch n.Kind {
	case ast.KindFunctionItem:
		body := n.ChildByField("body")
		m.scope = newScope(m.scope, n, body, limit)
		for _, b := range bindingsFromParams(n.ChildByField("parameters")) {
			m.scope.declare(b)
		}
		m.bodies = append(m.bodies, body)
		return true
	case ast.KindClosure:
		params, body, _ := ast.ClosureParams(n)
		m.scope = newScope(m.scope, n, body, limit)
		for _, b := range bindingsFromParams(&ast.Node{Children: params}) {
			m.scope.declare(b)
		}
		return true
	case ast.KindFor:
		body := n.ChildByField("body")
		m.scope = newScope(m.scope, n, m.region(body), limit)
		value := n.ChildByField("value")
		for _, pn := range patternNames(n.ChildByField("pattern")) {
			m.scope.declare(Binding{Name: pn.name, Init: value, Mutable: pn.mutable, Loop: true, Span: n.Span})
		}
		return true
	case ast.KindBlock:
		m.scope = newScope(m.scope, n, m.region(n), limit)
		return true
	}
	return false
}

// region picks the UsedAfter region for a scope opened at block.
func (m *matcher) region(block *ast.Node) *ast.Node {
	if m.depth == DepthFunction && len(m.bodies) > 0 {
		return m.bodies[len(m.bodies)-1]
	}
	return block
}

func (m *matcher) leave(n *ast.Node, pushed bool) {
	if pushed {
		if n.Kind == ast.KindFunctionItem {
			m.bodies = m.bodies[:len(m.bodies)-1]
		}
		m.scope = m.scope.parent
		return
	}
	if n.Kind == ast.KindLetDeclaration {
		for _, b := range bindingsFromLet(n) {
			m.scope.declare(b)
		}
	}
}

func (m *matcher) evaluate(n *ast.Node) {
	idx := m.set.forKind(n.Kind)
	if len(idx) == 0 {
		return
	}
	view := m.stack
	if len(view) > m.maxAncestors {
		view = view[len(view)-m.maxAncestors:]
	}
	for _, i := range idx {
		m.run(&m.set.rules[i], n, view)
	}
}

func (m *matcher) run(rule *RuleDef, n *ast.Node, view []*ast.Node) {
	defer func() {
		if r := recover(); r != nil {
			m.findings = append(m.findings, m.internal(n.Span,
				fmt.Sprintf("rule %s panicked on %s: %v", rule.Name, n.Kind, r)))
		}
	}()

	pass := &Pass{
		Node:      n,
		File:      m.file,
		Scope:     m.scope,
		Options:   m.cfg.GetRuleOptions(rule.Name),
		Rule:      rule.Name,
		ancestors: view,
	}
	match := rule.Check(pass)
	if match == nil {
		return
	}
	if !m.inBounds(match.Span) {
		m.findings = append(m.findings, m.internal(n.Span,
			fmt.Sprintf("rule %s reported span %s outside the file", rule.Name, match.Span)))
		return
	}
	m.findings = append(m.findings, Finding{
		RuleName: rule.Name,
		Severity: rule.Severity,
		Span:     match.Span,
		Message:  match.Message,
		Kind:     FindingLint,
	})
}

func (m *matcher) inBounds(s token.Span) bool {
	return s.IsValid() && m.bounds.Covers(s)
}

// internal builds an internal-error finding, falling back to the start of the
// file when span itself is unusable.
func (m *matcher) internal(span token.Span, msg string) Finding {
	if !m.inBounds(span) {
		start := token.Position{Line: 1, Column: 1}
		span = token.Span{Start: start, End: start}
	}
	return Finding{
		RuleName: RuleInternalError,
		Severity: core.SeverityError,
		Span:     span,
		Message:  "Internal Error: " + msg,
		Kind:     FindingInternal,
	}
}
