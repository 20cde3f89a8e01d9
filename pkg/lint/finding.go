package lint

import (
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/token"
)

// FindingKind tells rule findings apart from the engine's structural ones.
type FindingKind int

// Finding kinds.
const (
	FindingLint FindingKind = iota
	FindingParse
	FindingInternal
)

func (k FindingKind) String() string {
	switch k {
	case FindingLint:
		return "lint"
	case FindingParse:
		return "parse"
	case FindingInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k FindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Finding is one diagnostic produced for a file.
type Finding struct {
	RuleName string        `json:"rule" yaml:"rule"`
	Severity core.Severity `json:"severity" yaml:"severity"`
	Span     token.Span    `json:"span" yaml:"span"`
	Message  string        `json:"message" yaml:"message"`
	Kind     FindingKind   `json:"kind" yaml:"kind"`
}

// Structural reports whether the finding came from the engine rather than a rule.
// Structural findings are never suppressed.
func (f Finding) Structural() bool {
	return f.Kind != FindingLint
}
