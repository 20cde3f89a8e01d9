package lint

import (
	"path"
	"strings"

	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/token"
)

// Origin records where a suppression directive came from.
type Origin int

// Directive origins.
const (
	OriginConfig Origin = iota
	OriginComment
	OriginAttribute
	OriginWaiver
)

func (o Origin) String() string {
	switch o {
	case OriginConfig:
		return "config"
	case OriginComment:
		return "comment"
	case OriginAttribute:
		return "attribute"
	case OriginWaiver:
		return "waiver"
	default:
		return "unknown"
	}
}

// Suppression silences findings whose span lies within Span.
type Suppression struct {
	Span   token.Span // region silenced
	Rules  []string   // silenced rules; empty silences all
	Origin Origin
	Path   string     // file pattern for config and waiver directives; empty matches all
	Source token.Span // location of the directive itself in the source
}

// Matches reports whether s silences f: the finding span must lie entirely
// within the directive span and the directive must name the rule or none.
// Structural findings are never matched.
func (s Suppression) Matches(f Finding) bool {
	if f.Structural() || !s.Span.Covers(f.Span) {
		return false
	}
	if len(s.Rules) == 0 {
		return true
	}
	for _, r := range s.Rules {
		if r == f.RuleName {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the directive's path pattern selects file.
// Patterns are slash-separated; a pattern matches the path itself, any path
// it is a suffix of, a glob match, or a directory prefix.
func (s Suppression) AppliesTo(file string) bool {
	if s.Path == "" {
		return true
	}
	file = toSlash(file)
	pattern := strings.TrimPrefix(toSlash(s.Path), "./")
	if file == pattern || strings.HasSuffix(file, "/"+pattern) {
		return true
	}
	if ok, _ := path.Match(pattern, file); ok {
		return true
	}
	dir := strings.TrimSuffix(pattern, "/") + "/"
	return strings.HasPrefix(file, dir) || strings.Contains(file, "/"+dir)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Resolve drops findings matched by a suppression and applies the severity
// overrides to the rest. Order is preserved. Resolving twice yields the same
// result.
func Resolve(findings []Finding, suppressions []Suppression, overrides map[string]core.Severity) []Finding {
	out, _ := resolve(findings, suppressions, overrides)
	return out
}

// resolve also reports which suppressions silenced at least one finding.
func resolve(findings []Finding, suppressions []Suppression, overrides map[string]core.Severity) ([]Finding, []bool) {
	used := make([]bool, len(suppressions))
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		suppressed := false
		for i, s := range suppressions {
			if s.Matches(f) {
				used[i] = true
				suppressed = true
			}
		}
		if suppressed {
			continue
		}
		if sev, ok := overrides[f.RuleName]; ok {
			f.Severity = sev
		}
		out = append(out, f)
	}
	return out, used
}

// unusedFindings reports source directives that silenced nothing.
func unusedFindings(suppressions []Suppression, used []bool) []Finding {
	var out []Finding
	for i, s := range suppressions {
		if used[i] || (s.Origin != OriginComment && s.Origin != OriginAttribute) {
			continue
		}
		what := "all rules"
		if len(s.Rules) > 0 {
			what = strings.Join(s.Rules, ", ")
		}
		span := s.Source
		if span.IsZero() {
			span = s.Span
		}
		out = append(out, Finding{
			RuleName: RuleUnusedSuppression,
			Severity: core.SeverityInfo,
			Span:     span,
			Message:  "suppression " + s.Origin.String() + " for " + what + " matched no finding",
			Kind:     FindingLint,
		})
	}
	return out
}
