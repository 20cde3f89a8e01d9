package correctness_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules" // register rules
)

// Helper to run analysis and filter by rule name
func runRule(t *testing.T, src string, rule string, cfg *lint.Config) []lint.Finding {
	t.Helper()
	analyzer, err := lint.NewAnalyzer(lint.DefaultRules(), cfg, nil)
	require.NoError(t, err)
	res := analyzer.AnalyzeFile(context.Background(), lint.Source{Path: "src/lib.rs", Content: []byte(src)})

	var filtered []lint.Finding
	for _, f := range res.Findings {
		if f.RuleName == rule {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

type ruleCase struct {
	name     string
	src      string
	wantDiag bool
}

func runCases(t *testing.T, rule string, tests []ruleCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.src, rule, nil)
			if tt.wantDiag {
				assert.NotEmpty(t, findings, "expected %s finding", rule)
			} else {
				assert.Empty(t, findings, "unexpected %s finding", rule)
			}
		})
	}
}

func TestApproxConstant(t *testing.T) {
	runCases(t, "approx_constant", []ruleCase{
		{name: "truncated pi", src: "fn f() -> f64 { 3.14159 }", wantDiag: true},
		{name: "short pi", src: "fn f() -> f64 { 3.14 }", wantDiag: true},
		{name: "truncated e", src: "fn f() -> f64 { 2.71828 }", wantDiag: true},
		{name: "rounded ln 2", src: "fn f() -> f64 { 0.69315 }", wantDiag: true},
		{name: "f32 suffix", src: "fn f() -> f32 { 3.14159f32 }", wantDiag: true},
		{name: "too few digits for e", src: "fn f() -> f64 { 2.72 }", wantDiag: false},
		{name: "unrelated value", src: "fn f() -> f64 { 3.5 }", wantDiag: false},
		{name: "exponent", src: "fn f() -> f64 { 3.14159e0 }", wantDiag: false},
		{name: "the constant", src: "fn f() -> f64 { std::f64::consts::PI }", wantDiag: false},
	})
}

func TestApproxConstantMessageAndSeverity(t *testing.T) {
	findings := runRule(t, "fn f() -> f32 { 3.14159f32 }", "approx_constant", nil)
	require.Len(t, findings, 1)
	assert.Equal(t, core.SeverityError, findings[0].Severity)
	assert.Equal(t, "approximate value of `f32::consts::PI` found", findings[0].Message)
}

func TestApproxConstantMinDigits(t *testing.T) {
	cfg := lint.NewConfig().SetRuleOptions("approx_constant", map[string]any{"min_digits": 7})
	assert.Empty(t, runRule(t, "fn f() -> f64 { 3.14159 }", "approx_constant", cfg))
	assert.NotEmpty(t, runRule(t, "fn f() -> f64 { 3.141592 }", "approx_constant", cfg))
}

func TestBadBitMask(t *testing.T) {
	runCases(t, "bad_bit_mask", []ruleCase{
		{name: "mask with zero", src: "fn f(x: u32) -> bool { x & 0 == 0 }", wantDiag: true},
		{name: "incompatible and", src: "fn f(x: u32) -> bool { x & 1 == 2 }", wantDiag: true},
		{name: "incompatible and not equal", src: "fn f(x: u32) -> bool { x & 0b100 != 0b011 }", wantDiag: true},
		{name: "incompatible or", src: "fn f(x: u32) -> bool { x | 4 == 3 }", wantDiag: true},
		{name: "literal on the left", src: "fn f(x: u32) -> bool { 2 == x & 1 }", wantDiag: true},
		{name: "compatible and", src: "fn f(x: u32) -> bool { x & 3 == 2 }", wantDiag: false},
		{name: "compatible or", src: "fn f(x: u32) -> bool { x | 1 == 3 }", wantDiag: false},
		{name: "hex mask", src: "fn f(x: u32) -> bool { x & 0xff == 0x0f }", wantDiag: false},
		{name: "not a comparison", src: "fn f(x: u32) -> u32 { x & 1 }", wantDiag: false},
	})
}

func TestEqOp(t *testing.T) {
	runCases(t, "eq_op", []ruleCase{
		{name: "equal identifiers", src: "fn f(x: i32) -> bool { x == x }", wantDiag: true},
		{name: "equal fields", src: "fn f(p: P) -> bool { p.a != p.a }", wantDiag: true},
		{name: "subtraction", src: "fn f(x: i32) -> i32 { x - x }", wantDiag: true},
		{name: "logical and", src: "fn f(a: bool) -> bool { a && a }", wantDiag: true},
		{name: "parenthesized", src: "fn f(x: i32) -> bool { (x + 1) < (x + 1) }", wantDiag: true},
		{name: "different operands", src: "fn f(x: i32, y: i32) -> bool { x == y }", wantDiag: false},
		{name: "addition is fine", src: "fn f(x: i32) -> i32 { x + x }", wantDiag: false},
		{name: "calls may differ", src: "fn f() -> bool { next() == next() }", wantDiag: false},
	})
}

func TestEqOpSpan(t *testing.T) {
	src := "fn f(x: i32) -> bool {\n    let a = 1;\n    let b = a == a;\n    b\n}\n"
	findings := runRule(t, src, "eq_op", nil)
	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Span.Start.Line)
	assert.Equal(t, 13, findings[0].Span.Start.Column)
	assert.Equal(t, 19, findings[0].Span.End.Column)
	assert.Equal(t, "equal expressions as operands to `==`", findings[0].Message)
}

func TestErasingOp(t *testing.T) {
	runCases(t, "erasing_op", []ruleCase{
		{name: "times zero", src: "fn f(x: i32) -> i32 { x * 0 }", wantDiag: true},
		{name: "zero times", src: "fn f(x: i32) -> i32 { 0 * x }", wantDiag: true},
		{name: "and zero", src: "fn f(x: u8) -> u8 { x & 0 }", wantDiag: true},
		{name: "zero divided", src: "fn f(x: i32) -> i32 { 0 / x }", wantDiag: true},
		{name: "divide by zero is another lint", src: "fn f(x: i32) -> i32 { x / 0 }", wantDiag: false},
		{name: "times one", src: "fn f(x: i32) -> i32 { x * 1 }", wantDiag: false},
		{name: "plus zero", src: "fn f(x: i32) -> i32 { x + 0 }", wantDiag: false},
	})
}
