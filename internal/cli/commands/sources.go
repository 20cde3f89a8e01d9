package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/WolffM/vibecheck/pkg/lint"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"target":       true,
	"node_modules": true,
}

// ErrNoSources is returned when the given paths hold no Rust files.
var ErrNoSources = errors.New("no .rs files found")

// CollectSources walks paths for .rs files and reads them. Directories named
// target, hidden directories and names listed in exclude are skipped. The
// result is sorted by path.
func CollectSources(paths, exclude []string) ([]lint.Source, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[strings.TrimSuffix(filepath.ToSlash(name), "/")] = true
	}

	seen := make(map[string]bool)
	var sources []lint.Source
	add := func(path string) error {
		path = filepath.Clean(path)
		if seen[path] {
			return nil
		}
		seen[path] = true
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		sources = append(sources, lint.Source{Path: filepath.ToSlash(path), Content: content})
		return nil
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot lint %s: %w", root, err)
		}
		if !info.IsDir() {
			if err := add(root); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name(), path, excluded) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".rs" || excluded[d.Name()] || excluded[filepath.ToSlash(path)] {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, strings.Join(paths, ", "))
	}
	slices.SortFunc(sources, func(a, b lint.Source) int {
		return strings.Compare(a.Path, b.Path)
	})
	return sources, nil
}

func skipDir(name, path string, excluded map[string]bool) bool {
	if skipDirs[name] || excluded[name] || excluded[filepath.ToSlash(path)] {
		return true
	}
	return len(name) > 1 && name[0] == '.'
}

// watchDirs returns every directory under paths that CollectSources would
// descend into.
func watchDirs(paths, exclude []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[strings.TrimSuffix(filepath.ToSlash(name), "/")] = true
	}

	var dirs []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			dirs = append(dirs, filepath.Dir(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDir(d.Name(), path, excluded) {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}
