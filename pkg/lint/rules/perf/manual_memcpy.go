package perf

import (
	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	"github.com/WolffM/vibecheck/pkg/lint/internal/rustast"
)

func init() {
	lint.MustRegister(ManualMemcpy)
}

// ManualMemcpy flags `for i in a..b { dst[i] = src[i]; }`.
var ManualMemcpy = lint.RuleDef{
	Name:        "manual_memcpy",
	Group:       "perf",
	Description: "Loop copying a slice element by element.",
	Severity:    core.SeverityWarning,
	Kinds:       []string{ast.KindFor},
	Check:       checkManualMemcpy,
	Rationale:   "copy_from_slice compiles to a single memcpy and checks lengths once.",
	BadExample:  "for i in 0..src.len() {\n    dst[i] = src[i];\n}",
	GoodExample: "dst[..src.len()].copy_from_slice(&src[..]);",
}

func checkManualMemcpy(p *lint.Pass) *lint.Match {
	dst, src, ok := rustast.MemcpyShape(p.Node)
	if !ok {
		return nil
	}
	_, value, _, _ := rustast.ForLoop(p.Node)
	start, end, inclusive, _ := rustast.RangeBounds(value)
	rng := p.Text(value)
	if start != nil && end != nil && !inclusive && ast.IsIntLiteral(start, "0") {
		rng = ".." + p.Text(end)
	}
	return lint.MatchNode(p.Node, "it looks like you're manually copying between slices; try `%s[%s].copy_from_slice(&%s[%s])`",
		p.Text(dst), rng, p.Text(src), rng)
}
