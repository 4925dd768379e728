package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content, making parent directories.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "create %s", path)
	return path
}

// CreateDir creates a directory and its parents
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755), "create directory %s", path)
	return path
}

// CreateSymlink creates a symbolic link pointing to target
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(target, link), "symlink %s -> %s", link, target)
}

// SymlinkExists checks if a path is a symbolic link
func SymlinkExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// ReadFile reads a file and fails the test if it cannot
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	return string(content)
}

// AssertSymlink checks that link is a symlink pointing to expectedTarget
func AssertSymlink(t *testing.T, link, expectedTarget string) {
	t.Helper()

	require.True(t, SymlinkExists(t, link), "symlink %s does not exist", link)
	target, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, expectedTarget, target, "target of %s", link)
}

// AssertFileContent checks that a file exists and has the expected content
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()
	assert.Equal(t, expected, ReadFile(t, path), "content of %s", path)
}

// SkipOnWindows skips tests that depend on POSIX symlinks or scripts
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if os.PathSeparator == '\\' {
		t.Skip("Test not supported on Windows")
	}
}
