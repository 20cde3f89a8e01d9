package lint

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/WolffM/vibecheck/pkg/core"
)

// Runner analyses many files in parallel and merges the results in path
// order, independent of completion order.
type Runner struct {
	analyzer    *Analyzer
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger
}

// Report is the merged outcome of a run.
type Report struct {
	Files      []FileResult  `json:"files" yaml:"files"`
	Incomplete bool          `json:"incomplete" yaml:"incomplete"`
	Duration   time.Duration `json:"-" yaml:"-"`
}

// NewRunner creates a runner around a configured analyzer.
// Concurrency defaults to GOMAXPROCS.
func NewRunner(analyzer *Analyzer, opts ...Option) *Runner {
	o := buildOptions(opts)
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	return &Runner{
		analyzer:    analyzer,
		concurrency: o.concurrency,
		timeout:     o.timeout,
		logger:      o.logger,
	}
}

// Run analyses sources. Workers stop cooperatively when ctx is canceled or the
// timeout expires; the affected files, and any never started, are marked
// incomplete and so is the report. Run itself only fails on a nil analyzer.
func (r *Runner) Run(ctx context.Context, sources []Source) (*Report, error) {
	if r.analyzer == nil {
		return nil, errors.New("runner has no analyzer")
	}
	start := time.Now()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	sorted := slices.Clone(sources)
	slices.SortStableFunc(sorted, func(a, b Source) int {
		return strings.Compare(a.Path, b.Path)
	})

	results := make([]FileResult, len(sorted))
	started := make([]bool, len(sorted))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, src := range sorted {
		if ctx.Err() != nil {
			break
		}
		started[i] = true
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FileResult{Path: src.Path, Incomplete: true, Err: incomplete(err)}
				return nil
			}
			results[i] = r.analyzer.AnalyzeFile(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Files: results}
	for i := range results {
		if !started[i] {
			results[i] = FileResult{Path: sorted[i].Path, Incomplete: true, Err: incomplete(context.Cause(ctx))}
		}
		if results[i].Incomplete {
			report.Incomplete = true
		}
	}
	report.Duration = time.Since(start)

	r.logger.Info("lint run finished",
		slog.Int("files", len(results)),
		slog.Bool("incomplete", report.Incomplete),
		slog.Duration("elapsed", report.Duration))
	return report, nil
}

// Findings returns all findings in report order.
func (r *Report) Findings() []Finding {
	var out []Finding
	for _, f := range r.Files {
		out = append(out, f.Findings...)
	}
	return out
}

// IncompleteFiles lists the paths that were not fully analysed.
func (r *Report) IncompleteFiles() []string {
	var out []string
	for _, f := range r.Files {
		if f.Incomplete {
			out = append(out, f.Path)
		}
	}
	return out
}

// Stats summarises the report.
func (r *Report) Stats() core.RunStats {
	stats := core.RunStats{Files: len(r.Files)}
	for _, f := range r.Files {
		stats.Suppressed += f.Suppressed
		for _, d := range f.Findings {
			stats.Findings++
			switch d.Severity {
			case core.SeverityError:
				stats.Errors++
			case core.SeverityWarning:
				stats.Warnings++
			default:
				stats.Infos++
			}
		}
	}
	return stats
}
