package correctness

import (
	"strconv"
	"strings"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/lint"
)

func init() {
	lint.MustRegister(ApproxConstant)
}

// ApproxConstant flags float literals that approximate a constant from
// std::f64::consts.
var ApproxConstant = lint.RuleDef{
	Name:        "approx_constant",
	Group:       "correctness",
	Description: "Float literal approximates a known mathematical constant.",
	Severity:    core.SeverityError,
	Kinds:       []string{ast.KindFloatLiteral},
	Check:       checkApproxConstant,
	ConfigKeys:  []string{"min_digits"},
	Rationale:   "Hand-typed constants are less precise than the ones in std::f64::consts and easy to mistype.",
	BadExample:  "let area = 3.14159 * r * r;",
	GoodExample: "let area = std::f64::consts::PI * r * r;",
	Fix:         "Use the constant from std::f64::consts (or std::f32::consts).",
}

type knownConst struct {
	value     float64
	name      string
	minDigits int
}

var knownConsts = []knownConst{
	{2.718281828459045, "E", 4},
	{0.3183098861837907, "FRAC_1_PI", 4},
	{0.7071067811865476, "FRAC_1_SQRT_2", 5},
	{0.6366197723675814, "FRAC_2_PI", 5},
	{1.1283791670955126, "FRAC_2_SQRT_PI", 5},
	{1.5707963267948966, "FRAC_PI_2", 5},
	{1.0471975511965979, "FRAC_PI_3", 5},
	{0.7853981633974483, "FRAC_PI_4", 5},
	{0.5235987755982989, "FRAC_PI_6", 5},
	{0.39269908169872414, "FRAC_PI_8", 5},
	{0.6931471805599453, "LN_2", 5},
	{2.302585092994046, "LN_10", 5},
	{3.321928094887362, "LOG2_10", 5},
	{1.4426950408889634, "LOG2_E", 5},
	{0.3010299956639812, "LOG10_2", 5},
	{0.4342944819032518, "LOG10_E", 5},
	{3.141592653589793, "PI", 3},
	{1.4142135623730951, "SQRT_2", 5},
	{6.283185307179586, "TAU", 3},
}

func checkApproxConstant(p *lint.Pass) *lint.Match {
	value, module, ok := floatDigits(ast.LeafText(p.Node))
	if !ok {
		return nil
	}
	minDigits := p.IntOption("min_digits", 0)
	for _, c := range knownConsts {
		digits := c.minDigits
		if minDigits > 0 {
			digits = minDigits
		}
		if isApproxConst(c.value, value, digits) {
			return lint.MatchNode(p.Node, "approximate value of `%s::consts::%s` found", module, c.name)
		}
	}
	return nil
}

// floatDigits strips separators and the type suffix from a float literal.
// Literals with an exponent are not considered.
func floatDigits(text string) (value, module string, ok bool) {
	module = "f64"
	switch {
	case strings.HasSuffix(text, "f32"):
		module, text = "f32", strings.TrimSuffix(text, "f32")
	case strings.HasSuffix(text, "f64"):
		text = strings.TrimSuffix(text, "f64")
	}
	text = strings.TrimSuffix(strings.ReplaceAll(text, "_", ""), ".")
	if strings.ContainsAny(text, "eE") || !strings.Contains(text, ".") {
		return "", "", false
	}
	return text, module, true
}

// isApproxConst reports whether value has at least minDigits digits and is
// the constant truncated or rounded to that precision.
func isApproxConst(constant float64, value string, minDigits int) bool {
	if len(value)-1 < minDigits {
		return false
	}
	if strings.HasPrefix(strconv.FormatFloat(constant, 'f', -1, 64), value) {
		return true
	}
	decimals := len(value) - strings.Index(value, ".") - 1
	return value == strconv.FormatFloat(constant, 'f', decimals, 64)
}
