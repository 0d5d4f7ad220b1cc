package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteExecutable writes content to path with executable permissions, creating parent directories.
// t is the active test; path is the destination file.
func WriteExecutable(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write executable: %v", err)
	}
}

// WriteProjectFile writes a sop.mod with content into dir and returns its path.
// t is the active test; dir must exist.
func WriteProjectFile(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, "sop.mod")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write project file: %v", err)
	}
	return path
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}

// BoolPtr returns a pointer to v.
// v is the boolean value to take the address of.
func BoolPtr(v bool) *bool {
	return &v
}
