// Package parser turns Rust source into the read-only syntax trees of pkg/ast.
//
// Parsing is delegated to tree-sitter and its Rust grammar. The tree-sitter
// tree is copied into ast.Node values so the lint engine never touches cgo
// memory after Parse returns. Comments are lifted out of the tree into
// File.Comments.
//
// # Usage
//
//	p := parser.NewRustParser()
//	file, err := p.Parse(ctx, "src/lib.rs", src)
//	var pf *parser.ParseFailure
//	if errors.As(err, &pf) {
//	    // report pf.Reason at pf.Pos
//	}
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/token"
)

// File size limits.
const (
	// DefaultMaxFileSize is the largest file Parse accepts (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the size above which a warning is logged (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

// Parser produces syntax trees. Implementations must be safe for concurrent use.
type Parser interface {
	Parse(ctx context.Context, path string, src []byte) (*ast.File, error)
}

// Option configures a RustParser.
type Option func(*RustParser)

// WithMaxFileSize sets the maximum accepted file size in bytes.
func WithMaxFileSize(bytes int) Option {
	return func(p *RustParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// WithLogger sets the logger used for large-file warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *RustParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// RustParser parses Rust using tree-sitter. Each Parse call creates its own
// tree-sitter parser, so a RustParser may be shared between goroutines.
type RustParser struct {
	maxFileSize int
	logger      *slog.Logger
}

// NewRustParser creates a parser with default limits.
func NewRustParser(opts ...Option) *RustParser {
	p := &RustParser{
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src. Syntax errors, oversized input and invalid UTF-8 are
// reported as *ParseFailure; context errors are returned as is.
func (p *RustParser) Parse(ctx context.Context, path string, src []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if len(src) > p.maxFileSize {
		return nil, &ParseFailure{
			File:   path,
			Reason: fmt.Sprintf("size %d exceeds limit %d", len(src), p.maxFileSize),
			Err:    ErrFileTooLarge,
		}
	}
	if len(src) > WarnFileSize {
		p.logger.Warn("parsing large file",
			slog.String("file", path),
			slog.Int("size_bytes", len(src)))
	}
	if !utf8.Valid(src) {
		return nil, &ParseFailure{File: path, Reason: "content is not valid UTF-8", Err: ErrInvalidContent}
	}

	ts := sitter.NewParser()
	defer ts.Close()
	ts.SetLanguage(rust.GetLanguage())

	tree, err := ts.ParseCtx(ctx, nil, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("parse canceled: %w", ctx.Err())
		}
		return nil, &ParseFailure{File: path, Reason: err.Error(), Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstSyntaxError(root); bad != nil {
			return nil, &ParseFailure{
				File:   path,
				Reason: describeSyntaxError(bad, src),
				Pos:    position(bad.StartPoint(), bad.StartByte()),
			}
		}
		return nil, &ParseFailure{File: path, Reason: "syntax error"}
	}

	c := converter{src: src}
	file := &ast.File{
		Path:   path,
		Source: src,
		Root:   c.convert(root, ""),
	}
	file.Comments = c.comments
	return file, nil
}

// converter copies a tree-sitter tree into ast nodes.
type converter struct {
	src      []byte
	comments []token.Comment
}

func (c *converter) convert(n *sitter.Node, fieldName string) *ast.Node {
	out := &ast.Node{
		Kind:  n.Type(),
		Field: fieldName,
		Named: n.IsNamed(),
		Span: token.Span{
			Start: position(n.StartPoint(), n.StartByte()),
			End:   position(n.EndPoint(), n.EndByte()),
		},
	}

	count := int(n.ChildCount())
	if count == 0 {
		out.Text = n.Content(c.src)
		return out
	}

	out.Children = make([]*ast.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case ast.KindLineComment, ast.KindBlockComment:
			c.addComment(child)
			continue
		}
		out.Children = append(out.Children, c.convert(child, n.FieldNameForChild(i)))
	}
	return out
}

func (c *converter) addComment(n *sitter.Node) {
	kind := token.LineComment
	if n.Type() == ast.KindBlockComment {
		kind = token.BlockComment
	}
	c.comments = append(c.comments, token.Comment{
		Kind: kind,
		Text: n.Content(c.src),
		Span: token.Span{
			Start: position(n.StartPoint(), n.StartByte()),
			End:   position(n.EndPoint(), n.EndByte()),
		},
	})
}

// position converts a tree-sitter point (0-based row and byte column) into a
// 1-based token position.
func position(p sitter.Point, offset uint32) token.Position {
	return token.Position{
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
		Offset: int(offset),
	}
}

// firstSyntaxError returns the first ERROR or MISSING node in pre-order.
func firstSyntaxError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstSyntaxError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

func describeSyntaxError(n *sitter.Node, src []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf("missing %s", n.Type())
	}
	text := []rune(n.Content(src))
	if len(text) > 40 {
		text = append(text[:40], []rune("...")...)
	}
	if len(text) == 0 {
		return "unexpected end of input"
	}
	return fmt.Sprintf("unexpected %q", string(text))
}
