package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/core"
	"github.com/WolffM/vibecheck/pkg/parser"
	"github.com/WolffM/vibecheck/pkg/token"
)

// Source is one file handed to the analyzer. The lint core never reads files
// itself.
type Source struct {
	Path    string
	Content []byte
}

// FileResult holds the final diagnostics of one file.
type FileResult struct {
	Path       string    `json:"path" yaml:"path"`
	Findings   []Finding `json:"findings" yaml:"findings"`
	Suppressed int       `json:"suppressed" yaml:"suppressed"`
	Incomplete bool      `json:"incomplete,omitempty" yaml:"incomplete,omitempty"`
	Err        error     `json:"-" yaml:"-"`
}

// Option configures an Analyzer or a Runner.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	concurrency int
	timeout     time.Duration
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency bounds the number of files analysed at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithTimeout bounds the whole run. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Analyzer runs the per-file pipeline: parse, match, aggregate, resolve.
type Analyzer struct {
	all    *RuleSet
	rules  *RuleSet
	config *Config
	parser parser.Parser
	logger *slog.Logger
}

// NewAnalyzer validates config against rules and prepares the enabled rule
// set. Configuration problems are reported as *ConfigError before any file
// is touched.
func NewAnalyzer(rules *RuleSet, config *Config, p parser.Parser, opts ...Option) (*Analyzer, error) {
	if config == nil {
		config = NewConfig()
	}
	if p == nil {
		p = parser.NewRustParser()
	}
	if err := config.Validate(rules); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Analyzer{
		all:    rules,
		rules:  rules.Enabled(config),
		config: config,
		parser: p,
		logger: o.logger,
	}, nil
}

// Rules returns the enabled rules.
func (a *Analyzer) Rules() *RuleSet {
	return a.rules
}

// AnalyzeFile parses src and returns its resolved findings. A parse failure
// yields a single parse_error finding; cancellation marks the result
// incomplete.
func (a *Analyzer) AnalyzeFile(ctx context.Context, src Source) (res FileResult) {
	res.Path = src.Path
	defer func() {
		if r := recover(); r != nil {
			res.Findings = append(res.Findings, Finding{
				RuleName: RuleInternalError,
				Severity: core.SeverityError,
				Span:     pointSpan(token.Position{Line: 1, Column: 1}),
				Message:  fmt.Sprintf("Internal Error: analysis of %s panicked: %v", src.Path, r),
				Kind:     FindingInternal,
			})
		}
	}()

	file, err := a.parser.Parse(ctx, src.Path, src.Content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			res.Incomplete = true
			res.Err = incomplete(ctxErr)
			return res
		}
		res.Findings = []Finding{parseFinding(err)}
		a.logger.Debug("parse failed", slog.String("file", src.Path), slog.String("error", err.Error()))
		return res
	}
	return a.AnalyzeTree(ctx, file)
}

// AnalyzeTree runs match, aggregate and resolve on an already parsed file.
func (a *Analyzer) AnalyzeTree(ctx context.Context, file *ast.File) FileResult {
	res := FileResult{Path: file.Path}

	start := time.Now()
	raw, err := Scan(ctx, file, a.rules, a.config)
	if err != nil {
		res.Incomplete = true
		res.Err = err
	}
	findings := Aggregate(raw)

	suppressions := Directives(file, a.all)
	for _, s := range a.config.Suppressions {
		if s.AppliesTo(file.Path) {
			suppressions = append(suppressions, s)
		}
	}

	kept, used := resolve(findings, suppressions, a.config.SeverityOverrides)
	res.Suppressed = len(findings) - len(kept)
	if a.config.ReportUnusedSuppressions && !res.Incomplete {
		kept = append(kept, unusedFindings(a.relevant(suppressions), a.relevantUsed(suppressions, used))...)
		kept = Aggregate(kept)
	}
	res.Findings = kept

	a.logger.Debug("analyzed file",
		slog.String("file", file.Path),
		slog.Int("findings", len(res.Findings)),
		slog.Int("suppressed", res.Suppressed),
		slog.Duration("elapsed", time.Since(start)))
	return res
}

// relevant drops directives that only name rules which are not enabled;
// they could never have matched.
func (a *Analyzer) relevant(sups []Suppression) []Suppression {
	out := make([]Suppression, 0, len(sups))
	for _, s := range sups {
		if a.mayMatch(s) {
			out = append(out, s)
		}
	}
	return out
}

func (a *Analyzer) relevantUsed(sups []Suppression, used []bool) []bool {
	out := make([]bool, 0, len(sups))
	for i, s := range sups {
		if a.mayMatch(s) {
			out = append(out, used[i])
		}
	}
	return out
}

func (a *Analyzer) mayMatch(s Suppression) bool {
	if len(s.Rules) == 0 {
		return true
	}
	for _, name := range s.Rules {
		if _, ok := a.rules.Lookup(name); ok {
			return true
		}
	}
	return false
}

func parseFinding(err error) Finding {
	f := Finding{
		RuleName: RuleParseError,
		Severity: core.SeverityError,
		Span:     pointSpan(token.Position{Line: 1, Column: 1}),
		Message:  err.Error(),
		Kind:     FindingParse,
	}
	var pf *parser.ParseFailure
	if errors.As(err, &pf) {
		f.Message = pf.Reason
		if pf.Pos.IsValid() {
			f.Span = pointSpan(pf.Pos)
		}
	}
	return f
}

func pointSpan(p token.Position) token.Span {
	return token.Span{Start: p, End: p}
}
