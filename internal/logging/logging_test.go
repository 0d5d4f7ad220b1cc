package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, zerolog.WarnLevel, New(&buf, false, nil).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, New(&buf, true, nil).GetLevel())
	assert.Equal(t, zerolog.TraceLevel, New(&buf, false, env(map[string]string{EnvLogLevel: "TRACE"})).GetLevel())
	assert.Equal(t, zerolog.Disabled, New(&buf, true, env(map[string]string{EnvLogLevel: "off"})).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, New(&buf, true, env(map[string]string{EnvLogLevel: "bogus"})).GetLevel())
}

func TestNewWritesConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, nil)
	log.Debug().Str("kind", "go").Msg("resolved version")
	assert.Contains(t, buf.String(), "resolved version")
	assert.Contains(t, buf.String(), "kind=")
}
