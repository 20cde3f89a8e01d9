package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/internal/cli/testutil"
)

func sourcePaths(t *testing.T, paths, exclude []string) []string {
	t.Helper()
	sources, err := CollectSources(paths, exclude)
	require.NoError(t, err)
	var out []string
	for _, s := range sources {
		out = append(out, s.Path)
	}
	return out
}

func TestCollectSources(t *testing.T) {
	dir := testutil.WriteCrate(t, map[string]string{
		"src/main.rs":            cleanSource,
		"src/util/mod.rs":        cleanSource,
		"src/README.md":          "# notes",
		"target/debug/build.rs":  cleanSource,
		"node_modules/x/y.rs":    cleanSource,
		".git/hooks/pre.rs":      cleanSource,
		"examples/demo.rs":       cleanSource,
		"examples/vendor/big.rs": cleanSource,
	})
	t.Chdir(dir)

	t.Run("default walks the working directory", func(t *testing.T) {
		assert.Equal(t, []string{
			"examples/demo.rs",
			"examples/vendor/big.rs",
			"src/main.rs",
			"src/util/mod.rs",
		}, sourcePaths(t, nil, nil))
	})

	t.Run("exclude by name and path", func(t *testing.T) {
		assert.Equal(t, []string{"src/main.rs", "src/util/mod.rs"},
			sourcePaths(t, nil, []string{"examples"}))
		assert.Equal(t, []string{"examples/demo.rs", "src/main.rs", "src/util/mod.rs"},
			sourcePaths(t, nil, []string{"examples/vendor/"}))
	})

	t.Run("files and directories are deduplicated", func(t *testing.T) {
		assert.Equal(t, []string{"src/main.rs", "src/util/mod.rs"},
			sourcePaths(t, []string{"src", "./src/main.rs"}, nil))
	})

	t.Run("explicit file is read even without .rs", func(t *testing.T) {
		assert.Equal(t, []string{"src/README.md"}, sourcePaths(t, []string{"src/README.md"}, nil))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := CollectSources([]string{"nope"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot lint nope")
	})

	t.Run("no rust files", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0750))
		_, err := CollectSources([]string{"docs"}, nil)
		assert.ErrorIs(t, err, ErrNoSources)
	})
}

func TestWatchDirs(t *testing.T) {
	dir := testutil.WriteCrate(t, map[string]string{
		"src/lib.rs":        cleanSource,
		"src/nested/a.rs":   cleanSource,
		"target/debug/b.rs": cleanSource,
		".cache/c.rs":       cleanSource,
	})
	t.Chdir(dir)

	dirs, err := watchDirs(nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".", "src", filepath.Join("src", "nested")}, dirs)

	dirs, err = watchDirs([]string{filepath.Join("src", "lib.rs")}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, dirs)
}
