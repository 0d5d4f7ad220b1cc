package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteractive(t *testing.T) {
	// Depends on the environment; only verify it runs.
	_ = IsInteractive()
}

func TestNonTerminalWriters(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminalWriter(&buf))
	assert.Equal(t, 80, Width(&buf, 80))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, IsTerminalWriter(f))
	assert.Equal(t, 60, Width(f, 60))
}
