package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/WolffM/vibecheck/pkg/core"
)

// watchDebounce collapses editor save bursts into one re-lint.
const watchDebounce = 200 * time.Millisecond

// watchLint lints once, then again after every burst of .rs changes until
// interrupted. Findings never end watch mode.
func watchLint(ctx context.Context, c *CommandContext, opts *LintOptions, threshold core.Severity) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs, err := watchDirs(opts.Paths, c.Cfg.Exclude)
	if err != nil {
		return fmt.Errorf("failed to collect watch directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	r := c.Renderer
	relint := func() {
		out, err := lintOnce(ctx, c, opts, threshold)
		if err != nil {
			r.Warn(err.Error())
			return
		}
		if err := r.RenderLint(out); err != nil {
			r.Warn(err.Error())
		}
	}

	relint()
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("Watching %d directories for changes (Ctrl+C to stop)", len(dirs))))

	return watchLoop(ctx, watcher, watchDebounce, c.Logger, func() {
		r.Println(r.Styles().Muted.Render("Change detected, re-linting at " + time.Now().Format(time.TimeOnly)))
		relint()
	})
}

// watchLoop calls onChange once per debounced burst of .rs file events and
// returns nil when ctx is done. New directories are added to the watcher.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, logger *slog.Logger, onChange func()) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if name := filepath.Base(event.Name); skipDirs[name] || (len(name) > 1 && name[0] == '.') {
						continue
					}
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if !isRustEvent(event) {
				continue
			}
			logger.Debug("change detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func isRustEvent(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".rs" {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
