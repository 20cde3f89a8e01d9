package lint

import (
	"regexp"
	"strings"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/token"
)

// DirectivePrefix starts every suppression comment.
const DirectivePrefix = "vibecheck:"

var (
	// vibecheck:ignore[eq_op, len_zero] or vibecheck:disable or vibecheck:enable
	commentDirectiveRe = regexp.MustCompile(`^vibecheck:(ignore|disable|enable)(?:\[([^\]]*)\])?(?:\s|$)`)

	// #[allow(clippy::eq_op)] and #![allow(...)]
	allowAttributeRe = regexp.MustCompile(`(?s)^#!?\[\s*(?:allow|expect)\s*\((.*)\)\s*\]$`)
)

// statementContainers hold the nodes an ignore comment can apply to.
var statementContainers = map[string]bool{
	ast.KindSourceFile: true,
	ast.KindBlock:      true,
	"declaration_list": true,
}

// Directives collects the suppressions written in the source: ignore and
// disable/enable comments and allow attributes. Group names in attributes
// (clippy::style) are expanded using rules.
func Directives(file *ast.File, rules *RuleSet) []Suppression {
	if file == nil || file.Root == nil {
		return nil
	}
	c := &collector{file: file, rules: rules}
	c.indexStatements(file.Root, nil)
	c.comments()
	c.attributes(file.Root, nil)
	return c.out
}

type collector struct {
	file       *ast.File
	rules      *RuleSet
	statements []*ast.Node // statement-level nodes in pre-order
	out        []Suppression
}

func (c *collector) indexStatements(n, parent *ast.Node) {
	if parent != nil && statementContainers[parent.Kind] && n.Named {
		c.statements = append(c.statements, n)
	}
	for _, child := range n.Children {
		c.indexStatements(child, n)
	}
}

func (c *collector) comments() {
	var open *Suppression
	for _, cm := range c.file.Comments {
		body := cm.Body()
		if !strings.HasPrefix(body, DirectivePrefix) {
			continue
		}
		m := commentDirectiveRe.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		rules := splitRules(m[2])
		switch m[1] {
		case "ignore":
			span, ok := c.ignoreTarget(cm)
			if !ok {
				continue
			}
			c.out = append(c.out, Suppression{Span: span, Rules: rules, Origin: OriginComment, Source: cm.Span})
		case "disable":
			if open != nil {
				continue
			}
			open = &Suppression{
				Span:   token.Span{Start: cm.Span.Start},
				Rules:  rules,
				Origin: OriginComment,
				Source: cm.Span,
			}
		case "enable":
			if open == nil {
				continue
			}
			open.Span.End = cm.Span.End
			c.out = append(c.out, *open)
			open = nil
		}
	}
	if open != nil {
		open.Span.End = c.file.Bounds().End
		c.out = append(c.out, *open)
	}
}

// ignoreTarget finds the statement an ignore comment applies to: the one it
// trails on the same line, or else the next one. A trailing comment belongs
// to the statement ending closest to it, and of statements ending at the
// same offset to the outermost.
func (c *collector) ignoreTarget(cm token.Comment) (token.Span, bool) {
	if c.trailsCode(cm) {
		var target *ast.Node
		for _, st := range c.statements {
			if st.Span.End.Line != cm.Span.Start.Line || st.Span.End.Offset > cm.Span.Start.Offset {
				continue
			}
			if target == nil || st.Span.End.Offset > target.Span.End.Offset ||
				(st.Span.End.Offset == target.Span.End.Offset && st.Span.Start.Offset < target.Span.Start.Offset) {
				target = st
			}
		}
		if target != nil {
			return target.Span, true
		}
	}

	for i, st := range c.statements {
		if st.Span.Start.Offset < cm.Span.End.Offset {
			continue
		}
		span := st.Span
		// attributes belong to the item after them
		for j := i; j < len(c.statements) && c.statements[j].Is(ast.KindAttributeItem); j++ {
			if j+1 < len(c.statements) {
				span.End = c.statements[j+1].Span.End
			}
		}
		return span, true
	}
	return token.Span{}, false
}

// trailsCode reports whether non-blank text precedes the comment on its line.
func (c *collector) trailsCode(cm token.Comment) bool {
	src := c.file.Source
	for i := cm.Span.Start.Offset - 1; i >= 0 && i < len(src); i-- {
		switch src[i] {
		case '\n':
			return false
		case ' ', '\t', '\r':
			continue
		default:
			return true
		}
	}
	return false
}

func (c *collector) attributes(n, parent *ast.Node) {
	switch n.Kind {
	case ast.KindAttributeItem:
		if rules, ok := c.allowList(n); ok {
			if item := attributedItem(n, parent); item != nil {
				c.out = append(c.out, Suppression{
					Span:   token.Span{Start: n.Span.Start, End: item.Span.End},
					Rules:  rules,
					Origin: OriginAttribute,
					Source: n.Span,
				})
			}
		}
		return
	case ast.KindInnerAttribute:
		if rules, ok := c.allowList(n); ok && parent != nil {
			span := parent.Span
			if parent.Kind == ast.KindSourceFile {
				span = c.file.Bounds()
			}
			c.out = append(c.out, Suppression{Span: span, Rules: rules, Origin: OriginAttribute, Source: n.Span})
		}
		return
	}
	for _, child := range n.Children {
		c.attributes(child, n)
	}
}

// attributedItem returns the first non-attribute named sibling after attr.
func attributedItem(attr, parent *ast.Node) *ast.Node {
	if parent == nil {
		return nil
	}
	after := false
	for _, sib := range parent.Children {
		if sib == attr {
			after = true
			continue
		}
		if after && sib.Named && !sib.Is(ast.KindAttributeItem) {
			return sib
		}
	}
	return nil
}

// allowList extracts the rules silenced by an allow attribute. Lint names
// may carry a clippy:: prefix; clippy::all silences every rule.
func (c *collector) allowList(attr *ast.Node) ([]string, bool) {
	m := allowAttributeRe.FindStringSubmatch(strings.TrimSpace(c.file.Text(attr)))
	if m == nil {
		return nil, false
	}
	var rules []string
	for _, raw := range strings.Split(m[1], ",") {
		name := strings.TrimSpace(raw)
		clippy := strings.HasPrefix(name, "clippy::")
		name = strings.TrimPrefix(name, "clippy::")
		switch {
		case name == "":
		case clippy && name == "all":
			return nil, true
		case c.rules.HasGroup(name):
			for _, rule := range c.rules.ByGroup(name) {
				rules = append(rules, rule.Name)
			}
		default:
			if _, ok := c.rules.Lookup(name); ok || clippy {
				rules = append(rules, name)
			}
		}
	}
	return rules, len(rules) > 0
}

func splitRules(list string) []string {
	var rules []string
	for _, r := range strings.Split(list, ",") {
		if r = strings.TrimSpace(r); r != "" {
			rules = append(rules, strings.TrimPrefix(r, "clippy::"))
		}
	}
	return rules
}
