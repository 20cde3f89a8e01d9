// Package output renders command results for terminals, pipes and machines.
//
// The renderer picks a mode once per command. In auto mode a terminal gets
// styled text and anything else gets markdown, so piping into a file or an
// agent never carries escape codes.
package output

import (
	"fmt"
	"strings"
)

// Mode selects how results are written.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
	ModeSARIF    Mode = "sarif"
)

// Modes lists every accepted mode, for flag completion and help text.
var Modes = []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML, ModeSARIF}

// ParseMode converts a user supplied mode name. Empty means auto; "md" and
// "yml" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "text":
		return ModeText, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "json":
		return ModeJSON, nil
	case "yaml", "yml":
		return ModeYAML, nil
	case "sarif":
		return ModeSARIF, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected one of %s)", s, modeList())
	}
}

// IsStructured reports whether m is a machine-readable format.
func (m Mode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML || m == ModeSARIF
}

func modeList() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
