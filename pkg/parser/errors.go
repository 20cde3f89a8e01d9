package parser

import (
	"errors"
	"fmt"

	"github.com/WolffM/vibecheck/pkg/token"
)

// ErrFileTooLarge is returned when input content exceeds the maximum file size.
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// ErrInvalidContent is returned when input content is not valid UTF-8.
var ErrInvalidContent = errors.New("invalid content")

// ParseFailure reports that a file could not be turned into a syntax tree.
// Pos is the first syntax error when one is known.
type ParseFailure struct {
	File   string
	Reason string
	Pos    token.Position
	Err    error
}

func (e *ParseFailure) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.File, e.Pos.Line, e.Pos.Column, e.Reason)
	}
	return fmt.Sprintf("parse error in %s: %s", e.File, e.Reason)
}

func (e *ParseFailure) Unwrap() error {
	return e.Err
}
