package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/WolffM/vibecheck/pkg/ast"
	"github.com/WolffM/vibecheck/pkg/parser"
)

// ParseRust parses src as file "test.rs" and fails the test on error.
func ParseRust(t testing.TB, src string) *ast.File {
	t.Helper()
	return ParseRustFile(t, "test.rs", src)
}

// ParseRustFile parses src under the given path and fails the test on error.
func ParseRustFile(t testing.TB, path, src string) *ast.File {
	t.Helper()
	f, err := parser.NewRustParser().Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)
	return f
}

// WriteFiles creates files under dir from a path → content map and returns dir.
func WriteFiles(t testing.TB, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}
