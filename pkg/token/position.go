// Package token defines source positions and spans shared by the parser,
// the AST and the lint engine.
package token

import "fmt"

// Position represents a location in the source code.
type Position struct {
	Line   int `json:"line" yaml:"line"`     // 1-based line number
	Column int `json:"column" yaml:"column"` // 1-based column number
	Offset int `json:"offset" yaml:"offset"` // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p sorts strictly before q by line, then column.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Compare orders positions by line, then column.
func (p Position) Compare(q Position) int {
	switch {
	case p.Before(q):
		return -1
	case q.Before(p):
		return 1
	default:
		return 0
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// LineSpan returns a span covering whole lines [startLine, endLine].
func LineSpan(startLine, endLine int) Span {
	return Span{
		Start: Position{Line: startLine, Column: 1},
		End:   Position{Line: endLine, Column: EndOfLine},
	}
}

// EndOfLine is the column used by LineSpan for the end of a line.
const EndOfLine = 1<<31 - 1

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Covers reports whether other lies fully within s.
// Comparison is by line and column, so spans built from line numbers alone
// can cover spans produced by the parser.
func (s Span) Covers(other Span) bool {
	return !other.Start.Before(s.Start) && !s.End.Before(other.End)
}

// IsValid returns true if both start and end positions are valid
// and the end does not precede the start.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

// IsZero reports whether the span was never set.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
