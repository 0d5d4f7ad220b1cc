package link

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBinary(t *testing.T, dir string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "sop")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	return path
}

func TestRepointCreatesAndReplaces(t *testing.T) {
	root := t.TempDir()
	first := writeBinary(t, filepath.Join(root, "sop", "0.4.0"), "v4")
	second := writeBinary(t, filepath.Join(root, "sop", "0.5.0"), "v5")
	linkPath := filepath.Join(root, "bin", "sop")

	method, err := Repoint(first, linkPath)
	require.NoError(t, err)
	assert.Equal(t, Symlink, method)
	assert.Equal(t, first, Target(linkPath))

	_, err = Repoint(second, linkPath)
	require.NoError(t, err)
	data, err := os.ReadFile(linkPath)
	require.NoError(t, err)
	assert.Equal(t, "v5", string(data))

	entries, err := os.ReadDir(filepath.Dir(linkPath))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sop", entries[0].Name())
}

func TestRepointMissingTargetKeepsExistingLink(t *testing.T) {
	root := t.TempDir()
	first := writeBinary(t, filepath.Join(root, "v1"), "v1")
	linkPath := filepath.Join(root, "bin", "sop")
	_, err := Repoint(first, linkPath)
	require.NoError(t, err)

	_, err = Repoint(filepath.Join(root, "missing", "sop"), linkPath)
	require.Error(t, err)
	assert.Equal(t, first, Target(linkPath))
}

func TestRepointFallsBackToCopyOnWindows(t *testing.T) {
	origSymlink, origOS := osSymlink, hostOS
	osSymlink = func(string, string) error { return errors.New("privilege not held") }
	hostOS = "windows"
	t.Cleanup(func() {
		osSymlink = origSymlink
		hostOS = origOS
	})

	root := t.TempDir()
	target := writeBinary(t, filepath.Join(root, "v1"), "copied")
	linkPath := filepath.Join(root, "bin", "sop")

	method, err := Repoint(target, linkPath)
	require.NoError(t, err)
	assert.Equal(t, Copy, method)
	assert.Empty(t, Target(linkPath))
	data, err := os.ReadFile(linkPath)
	require.NoError(t, err)
	assert.Equal(t, "copied", string(data))
}

func TestRepointSymlinkFailureOnUnix(t *testing.T) {
	origSymlink, origOS := osSymlink, hostOS
	osSymlink = func(string, string) error { return errors.New("read-only") }
	hostOS = "linux"
	t.Cleanup(func() {
		osSymlink = origSymlink
		hostOS = origOS
	})

	root := t.TempDir()
	target := writeBinary(t, filepath.Join(root, "v1"), "x")
	_, err := Repoint(target, filepath.Join(root, "bin", "sop"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(root, "bin", "sop"))
}
