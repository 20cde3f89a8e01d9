package complexity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/pkg/lint"
	_ "github.com/WolffM/vibecheck/pkg/lint/rules" // register rules
)

// Helper to run analysis and filter by rule name
func runRule(t *testing.T, src string, rule string) []lint.Finding {
	t.Helper()
	analyzer, err := lint.NewAnalyzer(lint.DefaultRules(), lint.NewConfig(), nil)
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
			findings := runRule(t, tt.src, rule)
			if tt.wantDiag {
				assert.NotEmpty(t, findings, "expected %s finding", rule)
			} else {
				assert.Empty(t, findings, "unexpected %s finding", rule)
			}
		})
	}
}

func TestCloneOnCopy(t *testing.T) {
	runCases(t, "clone_on_copy", []ruleCase{
		{name: "typed binding", src: "fn f() -> i32 {\n    let x: i32 = 42;\n    x.clone()\n}", wantDiag: true},
		{name: "inferred literal", src: "fn f() -> f64 {\n    let x = 1.5;\n    x.clone()\n}", wantDiag: true},
		{name: "parameter", src: "fn f(b: bool) -> bool { b.clone() }", wantDiag: true},
		{name: "literal", src: "fn f() -> char { 'a'.clone() }", wantDiag: true},
		{name: "string", src: "fn f(s: String) -> String { s.clone() }", wantDiag: false},
		{name: "unknown", src: "fn f() -> T { x.clone() }", wantDiag: false},
	})
}

func TestExplicitCounterLoop(t *testing.T) {
	runCases(t, "explicit_counter_loop", []ruleCase{
		{
			name:     "counter from zero",
			src:      "fn f(v: &[i32]) {\n    let mut i = 0;\n    for item in v {\n        println!(\"{}: {}\", i, item);\n        i += 1;\n    }\n}",
			wantDiag: true,
		},
		{
			name:     "counter from five",
			src:      "fn f(v: &[i32]) {\n    let mut i = 5;\n    for item in v {\n        g(i, item);\n        i += 1;\n    }\n}",
			wantDiag: true,
		},
		{
			name:     "counter reset in body",
			src:      "fn f(v: &[i32]) {\n    let mut i = 0;\n    for item in v {\n        i += 1;\n        if *item == 0 {\n            i = 0;\n        }\n    }\n}",
			wantDiag: false,
		},
		{
			name:     "step of two",
			src:      "fn f(v: &[i32]) {\n    let mut i = 0;\n    for item in v {\n        g(i, item);\n        i += 2;\n    }\n}",
			wantDiag: false,
		},
		{
			name:     "enumerate",
			src:      "fn f(v: &[i32]) {\n    for (i, item) in v.iter().enumerate() {\n        g(i, item);\n    }\n}",
			wantDiag: false,
		},
	})
}

func TestFilterMapIdentity(t *testing.T) {
	runCases(t, "filter_map_identity", []ruleCase{
		{name: "closure", src: "fn f(v: Vec<Option<i32>>) -> Vec<i32> { v.into_iter().filter_map(|x| x).collect() }", wantDiag: true},
		{name: "identity fn", src: "fn f(v: Vec<Option<i32>>) -> Vec<i32> { v.into_iter().filter_map(std::convert::identity).collect() }", wantDiag: true},
		{name: "real mapping", src: "fn f(v: Vec<String>) -> Vec<i32> { v.into_iter().filter_map(|x| x.parse().ok()).collect() }", wantDiag: false},
		{name: "flatten", src: "fn f(v: Vec<Option<i32>>) -> Vec<i32> { v.into_iter().flatten().collect() }", wantDiag: false},
	})
}

func TestManualFilterMap(t *testing.T) {
	runCases(t, "manual_filter_map", []ruleCase{
		{
			name:     "is_some unwrap",
			src:      "fn f(v: Vec<Option<i32>>) -> Vec<i32> {\n    v.into_iter()\n        .filter(|x| x.is_some())\n        .map(|x| x.unwrap())\n        .collect()\n}",
			wantDiag: true,
		},
		{
			name:     "is_ok unwrap",
			src:      "fn f(v: Vec<Result<i32, ()>>) -> Vec<i32> { v.into_iter().filter(|x| x.is_ok()).map(|x| x.unwrap()).collect() }",
			wantDiag: true,
		},
		{
			name:     "filter on value",
			src:      "fn f(v: Vec<i32>) -> Vec<i32> { v.into_iter().filter(|x| *x > 0).map(|x| x * 2).collect() }",
			wantDiag: false,
		},
	})
}

func TestNeedlessBool(t *testing.T) {
	runCases(t, "needless_bool", []ruleCase{
		{name: "if else literals", src: "fn f(x: bool) -> bool {\n    if x {\n        true\n    } else {\n        false\n    }\n}", wantDiag: true},
		{name: "negated", src: "fn f(x: bool) -> bool { if x { false } else { true } }", wantDiag: true},
		{name: "returns in both branches", src: "fn f(x: bool) -> bool {\n    if x { return true; } else { return false; }\n}", wantDiag: true},
		{name: "early return", src: "fn f(x: bool) -> bool {\n    if x {\n        return true;\n    }\n    return false;\n}", wantDiag: true},
		{name: "non literal branch", src: "fn f(x: bool, y: bool) -> bool { if x { y } else { false } }", wantDiag: false},
		{name: "early return then work", src: "fn f(x: bool) -> bool {\n    if x {\n        return true;\n    }\n    g()\n}", wantDiag: false},
		{name: "if let", src: "fn f(x: Option<i32>) -> bool { if let Some(_) = x { true } else { false } }", wantDiag: false},
	})
}

func TestNeedlessBoolMessage(t *testing.T) {
	findings := runRule(t, "fn f(x: bool) -> bool { if x { false } else { true } }", "needless_bool")
	require.Len(t, findings, 1)
	assert.Equal(t, "this if-then-else expression returns a bool literal; you can reduce it to `!(x)`", findings[0].Message)
}

func TestOptionAsRefDeref(t *testing.T) {
	runCases(t, "option_as_ref_deref", []ruleCase{
		{name: "as_str closure", src: "fn f(s: &Option<String>) -> Option<&str> { s.as_ref().map(|x| x.as_str()) }", wantDiag: true},
		{name: "path", src: "fn f(s: &Option<String>) -> Option<&str> { s.as_ref().map(String::as_str) }", wantDiag: true},
		{name: "as_slice", src: "fn f(v: &Option<Vec<u8>>) -> Option<&[u8]> { v.as_ref().map(|x| x.as_slice()) }", wantDiag: true},
		{name: "as_deref", src: "fn f(s: &Option<String>) -> Option<&str> { s.as_deref() }", wantDiag: false},
		{name: "other map", src: "fn f(s: &Option<String>) -> Option<usize> { s.as_ref().map(|x| x.len()) }", wantDiag: false},
	})
}

func TestRedundantSlicing(t *testing.T) {
	runCases(t, "redundant_slicing", []ruleCase{
		{name: "slice param", src: "fn f(v: &[i32]) -> &[i32] { &v[..] }", wantDiag: true},
		{name: "str param", src: "fn f(s: &str) -> &str { &s[..] }", wantDiag: true},
		{name: "vec param", src: "fn f(v: &Vec<i32>) -> &[i32] { &v[..] }", wantDiag: false},
		{name: "partial range", src: "fn f(v: &[i32]) -> &[i32] { &v[1..] }", wantDiag: false},
		{name: "array param", src: "fn f(v: &[i32; 4]) -> &[i32] { &v[..] }", wantDiag: false},
	})
}

func TestSearchIsSome(t *testing.T) {
	runCases(t, "search_is_some", []ruleCase{
		{name: "find is_some", src: "fn f(v: &[i32], t: i32) -> bool { v.iter().find(|&&x| x == t).is_some() }", wantDiag: true},
		{name: "position is_some", src: "fn f(v: &[i32]) -> bool { v.iter().position(|&x| x == 0).is_some() }", wantDiag: true},
		{name: "find is_none", src: "fn f(v: &[i32]) -> bool { v.iter().find(|&&x| x == 0).is_none() }", wantDiag: true},
		{name: "any", src: "fn f(v: &[i32]) -> bool { v.iter().any(|&x| x == 0) }", wantDiag: false},
		{name: "get is_some", src: "fn f(v: &[i32]) -> bool { v.get(3).is_some() }", wantDiag: false},
	})
}

func TestTypeComplexity(t *testing.T) {
	runCases(t, "type_complexity", []ruleCase{
		{
			name:     "deep nesting",
			src:      "fn f() -> Option<Result<HashMap<String, Vec<Option<Rc<RefCell<i32>>>>>, String>> {\n    None\n}",
			wantDiag: true,
		},
		{name: "depth four", src: "fn f(v: Vec<Vec<Vec<Vec<u8>>>>) {}", wantDiag: false},
		{name: "depth five", src: "fn f(v: Vec<Vec<Vec<Vec<Vec<u8>>>>>) {}", wantDiag: true},
		{name: "simple", src: "fn f(v: HashMap<String, Vec<u8>>) {}", wantDiag: false},
	})
}

func TestTypeComplexityReportsOuterTypeOnce(t *testing.T) {
	findings := runRule(t, "fn f(v: Vec<Vec<Vec<Vec<Vec<u8>>>>>) {}", "type_complexity")
	require.Len(t, findings, 1)
	assert.Equal(t, 9, findings[0].Span.Start.Column)
}

func TestTypeComplexityOptions(t *testing.T) {
	analyzer, err := lint.NewAnalyzer(lint.DefaultRules(),
		lint.NewConfig().SetRuleOptions("type_complexity", map[string]any{"max_depth": 2, "max_args": 1}), nil)
	require.NoError(t, err)

	res := analyzer.AnalyzeFile(context.Background(), lint.Source{
		Path:    "src/lib.rs",
		Content: []byte("fn f(a: Vec<Vec<Vec<u8>>>, b: HashMap<u8, u8>) {}"),
	})
	var messages []string
	for _, f := range res.Findings {
		if f.RuleName == "type_complexity" {
			messages = append(messages, f.Message)
		}
	}
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "nesting depth 3 exceeds 2")
	assert.Contains(t, messages[1], "2 type arguments exceed 1")
}

func TestUnitArg(t *testing.T) {
	runCases(t, "unit_arg", []ruleCase{
		{name: "println argument", src: "fn f() {\n    takes_option(Some(println!(\"side effect\")));\n}", wantDiag: true},
		{name: "unit literal", src: "fn f() { g(()); }", wantDiag: true},
		{name: "assert argument", src: "fn f(x: i32) { g(assert!(x > 0)); }", wantDiag: true},
		{name: "format argument", src: "fn f(x: i32) { g(format!(\"{}\", x)); }", wantDiag: false},
		{name: "plain call", src: "fn f() { g(1, h()); }", wantDiag: false},
	})
}
