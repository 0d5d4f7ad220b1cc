// Package compat declares which Go toolchain versions each sop release runs against.
package compat

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

// Rule applies from AppliesFrom (inclusive) until the next rule's threshold.
type Rule struct {
	AppliesFrom string
	RuntimeMin  string
	// RuntimeMax is inclusive; empty means unbounded.
	RuntimeMax string
}

// Range is the runtime requirement of one application version.
type Range struct {
	Min string
	// Max is inclusive; empty means unbounded.
	Max string
}

// Bounded reports whether the range has an upper limit.
func (r Range) Bounded() bool {
	return r.Max != ""
}

// rules must stay sorted by ascending AppliesFrom. Append new requirements at the end.
var rules = []Rule{
	{AppliesFrom: "0.1.0", RuntimeMin: "1.21"},
}

// Matrix evaluates an ordered rule list.
type Matrix struct {
	rules []Rule
}

// Default returns the matrix built from the declared rules.
func Default() Matrix {
	return Matrix{rules: rules}
}

// New builds a matrix from rules sorted by ascending AppliesFrom.
func New(rules []Rule) Matrix {
	return Matrix{rules: append([]Rule(nil), rules...)}
}

// RequiredRuntimeRange returns the runtime range for applicationVersion. The
// effective rule is the last one whose threshold is <= the queried version; a
// version older than every rule, or one that does not parse, has no known
// requirement.
func (m Matrix) RequiredRuntimeRange(applicationVersion string) (Range, bool) {
	queried, err := version.Parse(applicationVersion)
	if err != nil {
		return Range{}, false
	}
	var (
		effective Rule
		found     bool
	)
	for _, rule := range m.rules {
		threshold, err := version.Parse(rule.AppliesFrom)
		if err != nil {
			continue
		}
		if threshold.GreaterThan(queried) {
			break
		}
		effective = rule
		found = true
	}
	if !found {
		return Range{}, false
	}
	return Range{Min: effective.RuntimeMin, Max: effective.RuntimeMax}, true
}

// IsCompatible reports whether runtimeVersion lies inside the range required by
// applicationVersion. An unknown requirement is compatible with anything.
func (m Matrix) IsCompatible(runtimeVersion string, applicationVersion string) bool {
	required, ok := m.RequiredRuntimeRange(applicationVersion)
	if !ok {
		return true
	}
	runtimeV, err := version.Parse(runtimeVersion)
	if err != nil {
		return false
	}
	constraint, err := required.constraint()
	if err != nil {
		return false
	}
	return constraint.Check(runtimeV)
}

// Check returns an error wrapping artifact.ErrIncompatible when the pair is incompatible.
func (m Matrix) Check(runtimeVersion string, applicationVersion string) error {
	if m.IsCompatible(runtimeVersion, applicationVersion) {
		return nil
	}
	return fmt.Errorf(messages.CompatCheckFmt, artifact.ErrIncompatible, m.Message(applicationVersion))
}

// Message describes the runtime requirement of applicationVersion for display.
func (m Matrix) Message(applicationVersion string) string {
	required, ok := m.RequiredRuntimeRange(applicationVersion)
	if !ok {
		return fmt.Sprintf(messages.CompatUnknownFmt, applicationVersion)
	}
	if required.Bounded() {
		return fmt.Sprintf(messages.CompatBoundedFmt, applicationVersion, required.Min, required.Max)
	}
	return fmt.Sprintf(messages.CompatUnboundedFmt, applicationVersion, required.Min)
}

// constraint builds a semver constraint with zero-filled bounds. Pre-release
// runtimes are admitted so "1.22rc1" is judged by its numeric components.
func (r Range) constraint() (*semver.Constraints, error) {
	minV, err := version.Normalize(r.Min)
	if err != nil {
		return nil, err
	}
	expr := ">= " + minV + "-0"
	if r.Bounded() {
		maxV, err := version.Normalize(r.Max)
		if err != nil {
			return nil, err
		}
		expr += ", <= " + maxV
	}
	return semver.NewConstraint(expr)
}

// Default-matrix conveniences used by callers that do not inject rules.

// RequiredRuntimeRange evaluates the default matrix.
func RequiredRuntimeRange(applicationVersion string) (Range, bool) {
	return Default().RequiredRuntimeRange(applicationVersion)
}

// IsCompatible evaluates the default matrix.
func IsCompatible(runtimeVersion string, applicationVersion string) bool {
	return Default().IsCompatible(runtimeVersion, applicationVersion)
}
