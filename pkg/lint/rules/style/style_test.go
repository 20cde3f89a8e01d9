package style_test

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

func TestBytesNth(t *testing.T) {
	runCases(t, "bytes_nth", []ruleCase{
		{name: "bytes nth", src: "fn f(s: &str) -> Option<u8> { s.bytes().nth(3) }", wantDiag: true},
		{name: "as_bytes get", src: "fn f(s: &str) -> Option<&u8> { s.as_bytes().get(3) }", wantDiag: false},
		{name: "chars nth", src: "fn f(s: &str) -> Option<char> { s.chars().nth(3) }", wantDiag: false},
	})
}

func TestCharsNextCmp(t *testing.T) {
	runCases(t, "chars_next_cmp", []ruleCase{
		{name: "equal", src: "fn f(s: &str) -> bool { s.chars().next() == Some('a') }", wantDiag: true},
		{name: "not equal", src: "fn f(s: &str) -> bool { s.chars().next() != Some('a') }", wantDiag: true},
		{name: "reversed", src: "fn f(s: &str) -> bool { Some('a') == s.chars().next() }", wantDiag: true},
		{name: "starts_with", src: "fn f(s: &str) -> bool { s.starts_with('a') }", wantDiag: false},
		{name: "last char", src: "fn f(s: &str) -> bool { s.chars().last() == Some('a') }", wantDiag: false},
	})
}

func TestCharsNextCmpMessage(t *testing.T) {
	findings := runRule(t, "fn f(s: &str) -> bool { s.chars().next() != Some('a') }", "chars_next_cmp")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "`!s.starts_with('a')`")
}

func TestCollapsibleIf(t *testing.T) {
	runCases(t, "collapsible_if", []ruleCase{
		{
			name:     "nested without else",
			src:      "fn f(a: bool, b: bool) -> i32 {\n    if a {\n        if b {\n            return 1;\n        }\n    }\n    0\n}",
			wantDiag: true,
		},
		{
			name:     "outer else",
			src:      "fn f(a: bool, b: bool) {\n    if a {\n        if b { g(); }\n    } else {\n        h();\n    }\n}",
			wantDiag: false,
		},
		{
			name:     "inner else",
			src:      "fn f(a: bool, b: bool) {\n    if a {\n        if b { g(); } else { h(); }\n    }\n}",
			wantDiag: false,
		},
		{
			name:     "other statements",
			src:      "fn f(a: bool, b: bool) {\n    if a {\n        g();\n        if b { h(); }\n    }\n}",
			wantDiag: false,
		},
		{
			name:     "if let",
			src:      "fn f(a: Option<i32>, b: bool) {\n    if let Some(x) = a {\n        if b { g(x); }\n    }\n}",
			wantDiag: false,
		},
	})
}

func TestIterNthZero(t *testing.T) {
	runCases(t, "iter_nth_zero", []ruleCase{
		{name: "nth zero", src: "fn f(v: &[i32]) -> Option<&i32> { v.iter().nth(0) }", wantDiag: true},
		{name: "nth one", src: "fn f(v: &[i32]) -> Option<&i32> { v.iter().nth(1) }", wantDiag: false},
		{name: "next", src: "fn f(v: &[i32]) -> Option<&i32> { v.iter().next() }", wantDiag: false},
	})
}

func TestLenZero(t *testing.T) {
	runCases(t, "len_zero", []ruleCase{
		{name: "equal zero", src: "fn f(v: &[i32]) -> bool { v.len() == 0 }", wantDiag: true},
		{name: "not equal zero", src: "fn f(v: &[i32]) -> bool { v.len() != 0 }", wantDiag: true},
		{name: "greater than zero", src: "fn f(v: &[i32]) -> bool { v.len() > 0 }", wantDiag: true},
		{name: "zero on the left", src: "fn f(v: &[i32]) -> bool { 0 == v.len() }", wantDiag: true},
		{name: "zero less than", src: "fn f(v: &[i32]) -> bool { 0 < v.len() }", wantDiag: true},
		{name: "less than one", src: "fn f(v: &[i32]) -> bool { v.len() < 1 }", wantDiag: true},
		{name: "at least one", src: "fn f(v: &[i32]) -> bool { v.len() >= 1 }", wantDiag: true},
		{name: "is_empty", src: "fn f(v: &[i32]) -> bool { v.is_empty() }", wantDiag: false},
		{name: "compare to two", src: "fn f(v: &[i32]) -> bool { v.len() == 2 }", wantDiag: false},
		{name: "at least zero", src: "fn f(v: &[i32]) -> bool { v.len() >= 0 }", wantDiag: false},
	})
}

func TestLenZeroMessage(t *testing.T) {
	findings := runRule(t, "fn f(v: &[i32]) -> bool { v.len() > 0 }", "len_zero")
	require.Len(t, findings, 1)
	assert.Equal(t, "length comparison to zero: use `!v.is_empty()`", findings[0].Message)
}

func TestMapClone(t *testing.T) {
	runCases(t, "map_clone", []ruleCase{
		{name: "clone closure", src: "fn f(v: &[String]) -> Vec<String> { v.iter().map(|x| x.clone()).collect() }", wantDiag: true},
		{name: "deref closure", src: "fn f(v: &[i32]) -> Vec<i32> { v.iter().map(|x| *x).collect() }", wantDiag: true},
		{name: "clone path", src: "fn f(v: &[String]) -> Vec<String> { v.iter().map(Clone::clone).collect() }", wantDiag: true},
		{name: "cloned", src: "fn f(v: &[String]) -> Vec<String> { v.iter().cloned().collect() }", wantDiag: false},
		{name: "clone of other", src: "fn f(v: &[String], y: String) -> Vec<String> { v.iter().map(|_x| y.clone()).collect() }", wantDiag: false},
		{name: "transforming map", src: "fn f(v: &[String]) -> Vec<usize> { v.iter().map(|x| x.len()).collect() }", wantDiag: false},
	})
}

func TestNeedlessRangeLoop(t *testing.T) {
	runCases(t, "needless_range_loop", []ruleCase{
		{
			name:     "only indexes",
			src:      "fn f(v: &[i32]) -> i32 {\n    let mut sum = 0;\n    for i in 0..v.len() {\n        sum += v[i];\n    }\n    sum\n}",
			wantDiag: true,
		},
		{
			name:     "index used elsewhere",
			src:      "fn f(v: &[i32]) {\n    for i in 0..v.len() {\n        g(i, v[i]);\n    }\n}",
			wantDiag: true,
		},
		{
			name:     "memcpy shape",
			src:      "fn f(src: &[u8], dst: &mut [u8]) {\n    for i in 0..src.len() {\n        dst[i] = src[i];\n    }\n}",
			wantDiag: false,
		},
		{
			name:     "iterates directly",
			src:      "fn f(v: &[i32]) -> i32 {\n    let mut sum = 0;\n    for x in v {\n        sum += x;\n    }\n    sum\n}",
			wantDiag: false,
		},
		{
			name:     "indexes another collection",
			src:      "fn f(v: &[i32], w: &[i32]) -> i32 {\n    let mut sum = 0;\n    for i in 0..v.len() {\n        sum += w[i];\n    }\n    sum\n}",
			wantDiag: false,
		},
		{
			name:     "indexes inside macro",
			src:      "fn f(v: &[i32]) {\n    for i in 0..v.len() {\n        println!(\"{}\", v[i]);\n    }\n}",
			wantDiag: true,
		},
		{
			name:     "macro indexes another collection",
			src:      "fn f(v: &[i32], w: &[i32]) {\n    for i in 0..v.len() {\n        println!(\"{}\", w[i]);\n    }\n}",
			wantDiag: false,
		},
	})
}

func TestPtrArg(t *testing.T) {
	runCases(t, "ptr_arg", []ruleCase{
		{name: "vec", src: "fn f(v: &Vec<i32>) -> i32 { v.iter().sum() }", wantDiag: true},
		{name: "string", src: "fn f(s: &String) -> usize { s.len() }", wantDiag: true},
		{name: "pathbuf", src: "fn f(p: &PathBuf) -> bool { p.exists() }", wantDiag: true},
		{name: "slice", src: "fn f(v: &[i32]) -> i32 { v.iter().sum() }", wantDiag: false},
		{name: "mutable vec", src: "fn f(v: &mut Vec<i32>) { v.push(1); }", wantDiag: false},
		{name: "owned vec", src: "fn f(v: Vec<i32>) -> usize { v.len() }", wantDiag: false},
		{name: "trait impl", src: "impl Show for S {\n    fn show(&self, s: &String) {}\n}", wantDiag: false},
		{name: "inherent impl", src: "impl S {\n    fn show(&self, s: &String) {}\n}", wantDiag: true},
	})
}

func TestPtrArgMessage(t *testing.T) {
	findings := runRule(t, "fn f(v: &Vec<i32>) -> i32 { v.iter().sum() }", "ptr_arg")
	require.Len(t, findings, 1)
	assert.Equal(t, "writing `&Vec` instead of `&[i32]` involves a new object where a slice will do", findings[0].Message)
	assert.Equal(t, 9, findings[0].Span.Start.Column)
}

func TestRedundantPatternMatching(t *testing.T) {
	runCases(t, "redundant_pattern_matching", []ruleCase{
		{name: "some none", src: "fn f(x: Option<i32>) -> bool {\n    match x {\n        Some(_) => true,\n        None => false,\n    }\n}", wantDiag: true},
		{name: "ok err", src: "fn f(x: Result<i32, ()>) -> bool {\n    match x {\n        Ok(_) => false,\n        Err(_) => true,\n    }\n}", wantDiag: true},
		{name: "wildcard fallback", src: "fn f(x: Option<i32>) -> bool {\n    match x {\n        None => true,\n        _ => false,\n    }\n}", wantDiag: true},
		{name: "if let", src: "fn f(x: Option<i32>) {\n    if let Some(_) = x {\n        g();\n    }\n}", wantDiag: true},
		{name: "binds value", src: "fn f(x: Option<i32>) -> bool {\n    match x {\n        Some(v) => v > 0,\n        None => false,\n    }\n}", wantDiag: false},
		{name: "if let binding", src: "fn f(x: Option<i32>) {\n    if let Some(v) = x {\n        g(v);\n    }\n}", wantDiag: false},
		{name: "same results", src: "fn f(x: Option<i32>) -> bool {\n    match x {\n        Some(_) => true,\n        None => true,\n    }\n}", wantDiag: false},
	})
}

func TestRedundantPatternMatchingMessage(t *testing.T) {
	src := "fn f(x: Result<i32, ()>) -> bool {\n    match x {\n        Ok(_) => false,\n        Err(_) => true,\n    }\n}"
	findings := runRule(t, src, "redundant_pattern_matching")
	require.Len(t, findings, 1)
	assert.Equal(t, "redundant pattern matching, consider using `x.is_err()`", findings[0].Message)
}

func TestSingleMatch(t *testing.T) {
	runCases(t, "single_match", []ruleCase{
		{name: "empty block fallback", src: "fn f(x: Option<i32>) -> i32 {\n    match x {\n        Some(v) => return v,\n        _ => {}\n    }\n    0\n}", wantDiag: true},
		{name: "unit fallback", src: "fn f(x: Option<i32>) {\n    match x {\n        Some(v) => g(v),\n        _ => (),\n    }\n}", wantDiag: true},
		{name: "fallback does work", src: "fn f(x: Option<i32>) {\n    match x {\n        Some(v) => g(v),\n        _ => h(),\n    }\n}", wantDiag: false},
		{name: "three arms", src: "fn f(x: i32) {\n    match x {\n        1 => g(1),\n        2 => g(2),\n        _ => {}\n    }\n}", wantDiag: false},
	})
}

func TestUnnecessaryFold(t *testing.T) {
	runCases(t, "unnecessary_fold", []ruleCase{
		{name: "any", src: "fn f(v: &[i32]) -> bool { v.iter().fold(false, |acc, _| acc || true) }", wantDiag: true},
		{name: "all", src: "fn f(v: &[i32]) -> bool { v.iter().fold(true, |acc, x| acc && *x > 0) }", wantDiag: true},
		{name: "sum", src: "fn f(v: &[i32]) -> i32 { v.iter().fold(0, |acc, x| acc + x) }", wantDiag: true},
		{name: "product", src: "fn f(v: &[i32]) -> i32 { v.iter().fold(1, |acc, x| x * acc) }", wantDiag: true},
		{name: "sum with offset", src: "fn f(v: &[i32]) -> i32 { v.iter().fold(10, |acc, x| acc + x) }", wantDiag: false},
		{name: "mismatched op", src: "fn f(v: &[i32]) -> bool { v.iter().fold(true, |acc, x| acc || *x > 0) }", wantDiag: false},
		{name: "acc used twice", src: "fn f(v: &[i32]) -> i32 { v.iter().fold(0, |acc, x| acc + acc * x) }", wantDiag: false},
	})
}

func TestWhileLetOnIterator(t *testing.T) {
	runCases(t, "while_let_on_iterator", []ruleCase{
		{
			name:     "next loop",
			src:      "fn f() {\n    let v = vec![1, 2, 3];\n    let mut iter = v.iter();\n    while let Some(x) = iter.next() {\n        println!(\"{}\", x);\n    }\n}",
			wantDiag: true,
		},
		{
			name:     "pop loop",
			src:      "fn f(mut v: Vec<i32>) {\n    while let Some(x) = v.pop() {\n        g(x);\n    }\n}",
			wantDiag: false,
		},
		{
			name:     "for loop",
			src:      "fn f(v: &[i32]) {\n    for x in v.iter() {\n        g(x);\n    }\n}",
			wantDiag: false,
		},
	})
}

func TestWhileLetOnIteratorUsedAfter(t *testing.T) {
	src := "fn f(v: &[i32]) -> Option<&i32> {\n    let mut iter = v.iter();\n    while let Some(x) = iter.next() {\n        if *x == 0 { break; }\n    }\n    iter.next()\n}"
	findings := runRule(t, src, "while_let_on_iterator")
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "for x in &mut iter")
	assert.Equal(t, 3, findings[0].Span.Start.Line)
	assert.Equal(t, 3, findings[0].Span.End.Line)
}
