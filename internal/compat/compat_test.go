package compat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
)

func TestRequiredRuntimeRangeDefaultRules(t *testing.T) {
	for _, app := range []string{"0.1.0", "0.4.1", "v0.5.0", "1.0.0", "0.1"} {
		got, ok := RequiredRuntimeRange(app)
		require.True(t, ok, app)
		assert.Equal(t, Range{Min: "1.21"}, got, app)
		assert.False(t, got.Bounded())
	}
}

func TestRequiredRuntimeRangeBeforeFirstRuleIsUnknown(t *testing.T) {
	_, ok := RequiredRuntimeRange("0.0.9")
	assert.False(t, ok)

	_, ok = RequiredRuntimeRange("not-a-version")
	assert.False(t, ok)
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		runtime string
		app     string
		want    bool
	}{
		{runtime: "1.20.0", app: "0.4.1", want: false},
		{runtime: "1.21.0", app: "0.4.1", want: true},
		{runtime: "1.22", app: "0.4.1", want: true},
		{runtime: "1.21", app: "0.4.1", want: true},
		{runtime: "2.0.0", app: "0.4.1", want: true},
		{runtime: "garbage", app: "0.4.1", want: false},
		{runtime: "1.10.0", app: "0.0.1", want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCompatible(tt.runtime, tt.app), "IsCompatible(%q, %q)", tt.runtime, tt.app)
	}
}

func TestLatestQualifyingRuleWins(t *testing.T) {
	m := New([]Rule{
		{AppliesFrom: "0.1.0", RuntimeMin: "1.21"},
		{AppliesFrom: "0.6", RuntimeMin: "1.23", RuntimeMax: "1.25"},
		{AppliesFrom: "1.0.0", RuntimeMin: "1.25"},
	})

	got, ok := m.RequiredRuntimeRange("0.5.9")
	require.True(t, ok)
	assert.Equal(t, "1.21", got.Min)

	got, ok = m.RequiredRuntimeRange("0.6.0")
	require.True(t, ok)
	assert.Equal(t, Range{Min: "1.23", Max: "1.25"}, got)

	got, ok = m.RequiredRuntimeRange("1.2.0")
	require.True(t, ok)
	assert.Equal(t, "1.25", got.Min)

	assert.True(t, m.IsCompatible("1.25.0", "0.6.1"))
	assert.False(t, m.IsCompatible("1.25.3", "0.6.1"), "upper bound is zero-filled")
	assert.False(t, m.IsCompatible("1.26.0", "0.6.1"))
	assert.True(t, m.IsCompatible("1.23.0", "0.6.1"))
	assert.False(t, m.IsCompatible("1.22.9", "0.6.1"))
}

func TestCheckWrapsIncompatible(t *testing.T) {
	err := Default().Check("1.19.0", "0.5.0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, artifact.ErrIncompatible))
	assert.Contains(t, err.Error(), "requires go 1.21 or later")

	assert.NoError(t, Default().Check("1.21.5", "0.5.0"))
}

func TestMessage(t *testing.T) {
	m := New([]Rule{{AppliesFrom: "0.1.0", RuntimeMin: "1.21", RuntimeMax: "1.22"}})
	assert.Equal(t, "sop 0.5.0 requires go 1.21 to 1.22", m.Message("0.5.0"))
	assert.Equal(t, "sop 0.0.1 has unknown go requirements", m.Message("0.0.1"))
	assert.Equal(t, "sop 0.5.0 requires go 1.21 or later", Default().Message("0.5.0"))
}
