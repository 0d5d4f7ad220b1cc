package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteExecutableCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sop", "0.6.0", "sop")
	WriteExecutable(t, path, "#!/bin/sh\n")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat executable: %v", err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Fatalf("expected executable bit, got %v", info.Mode())
	}
}

func TestWriteProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteProjectFile(t, dir, "sop = \"0.5\"\n")
	if path != filepath.Join(dir, "sop.mod") {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read project file: %v", err)
	}
	if string(data) != "sop = \"0.5\"\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestPointers(t *testing.T) {
	if s := StringPtr("0.4.1"); s == nil || *s != "0.4.1" {
		t.Fatalf("expected pointer to 0.4.1, got %v", s)
	}
	if b := BoolPtr(true); b == nil || !*b {
		t.Fatalf("expected pointer to true, got %v", b)
	}
}
