package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/token"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := NewRustParser().Parse(context.Background(), "test.rs", []byte(src))
	require.NoError(t, err)
	return f
}

func TestParseBinaryExpression(t *testing.T) {
	f := parse(t, "fn main() {\n    let x = 1;\n    let b = x == x;\n}\n")

	assert.Equal(t, ast.KindSourceFile, f.Root.Kind)
	bins := ast.Collect(f.Root, ast.KindBinary)
	require.Len(t, bins, 1)

	op, left, right, ok := ast.BinaryOperands(bins[0])
	require.True(t, ok)
	assert.Equal(t, "==", op)
	assert.True(t, ast.Equal(left, right))
	assert.Equal(t, "x == x", f.Text(bins[0]))
	assert.Equal(t, token.Position{Line: 3, Column: 13, Offset: 39}, bins[0].Span.Start)
	assert.Equal(t, 3, bins[0].Span.End.Line)
	assert.Equal(t, 19, bins[0].Span.End.Column)
}

func TestParseKeepsFieldNames(t *testing.T) {
	f := parse(t, "fn f(v: &Vec<i32>) -> bool { v.len() == 0 }\n")

	fn := ast.Collect(f.Root, ast.KindFunctionItem)
	require.Len(t, fn, 1)
	assert.Equal(t, "f", fn[0].ChildByField("name").Text)
	require.NotNil(t, fn[0].ChildByField("parameters"))
	require.NotNil(t, fn[0].ChildByField("body"))

	calls := ast.Collect(f.Root, ast.KindCall)
	require.Len(t, calls, 1)
	recv, method, args, ok := ast.MethodCall(calls[0])
	require.True(t, ok)
	assert.Equal(t, "v", recv.Text)
	assert.Equal(t, "len", method)
	assert.Empty(t, args)
}

func TestParseExtractsComments(t *testing.T) {
	f := parse(t, "// leading\nfn f() {\n    /* block */\n    let a = 1; // trailing\n}\n")

	require.Len(t, f.Comments, 3)
	assert.True(t, f.Comments[0].IsLineComment())
	assert.Equal(t, "leading", f.Comments[0].Body())
	assert.True(t, f.Comments[1].IsBlockComment())
	assert.Equal(t, "block", f.Comments[1].Body())
	assert.Equal(t, 4, f.Comments[2].Span.Start.Line)
	assert.False(t, ast.Contains(f.Root, ast.KindLineComment, ast.KindBlockComment))
}

func TestParseSyntaxError(t *testing.T) {
	_, err := NewRustParser().Parse(context.Background(), "bad.rs", []byte("fn main( {\n"))
	require.Error(t, err)

	var pf *ParseFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, "bad.rs", pf.File)
	assert.NotEmpty(t, pf.Reason)
	assert.True(t, pf.Pos.IsValid())
	assert.Contains(t, err.Error(), "bad.rs")
}

func TestParseRejectsLargeFile(t *testing.T) {
	p := NewRustParser(WithMaxFileSize(16))
	_, err := p.Parse(context.Background(), "big.rs", []byte(strings.Repeat("a", 32)))

	var pf *ParseFailure
	require.True(t, errors.As(err, &pf))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestParseRejectsInvalidUTF8(t *testing.T) {
	_, err := NewRustParser().Parse(context.Background(), "bin.rs", []byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestParseCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRustParser().Parse(ctx, "a.rs", []byte("fn main() {}"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	var pf *ParseFailure
	assert.False(t, errors.As(err, &pf))
}
