// Package version normalizes and compares toolchain version strings.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

var numericPrefix = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Trim strips the decorations release feeds put in front of version numbers
// ("go1.22.1", "v0.5.0") and surrounding whitespace.
func Trim(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "go")
	trimmed = strings.TrimPrefix(trimmed, "v")
	return trimmed
}

// Parse converts raw into a semantic version with missing components zero-filled.
// Pre-release suffixes are preserved so "1.22rc1" orders before "1.22.0".
func Parse(raw string) (*semver.Version, error) {
	trimmed := Trim(raw)
	if trimmed == "" {
		return nil, fmt.Errorf(messages.VersionEmpty)
	}
	match := numericPrefix.FindStringSubmatch(trimmed)
	if match == nil {
		return nil, fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	rest := trimmed[len(match[0]):]
	parts := []string{match[1], zeroIfEmpty(match[2]), zeroIfEmpty(match[3])}
	canonical := strings.Join(parts, ".")
	if rest != "" {
		if !strings.HasPrefix(rest, "-") && !strings.HasPrefix(rest, "+") {
			rest = "-" + rest
		}
		canonical += rest
	}
	v, err := semver.StrictNewVersion(canonical)
	if err != nil {
		return nil, fmt.Errorf(messages.VersionInvalidDetailFmt, raw, err)
	}
	return v, nil
}

// Normalize returns raw in canonical X.Y.Z form.
func Normalize(raw string) (string, error) {
	v, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Compare orders a and b by numeric components. Unparseable versions sort
// before every parseable one and compare lexically among themselves.
func Compare(a string, b string) int {
	av, aErr := Parse(a)
	bv, bErr := Parse(b)
	switch {
	case aErr != nil && bErr != nil:
		return strings.Compare(a, b)
	case aErr != nil:
		return -1
	case bErr != nil:
		return 1
	}
	return av.Compare(bv)
}

// Max returns the highest version in candidates, or "" when empty.
func Max(candidates []string) string {
	best := ""
	for _, candidate := range candidates {
		if best == "" || Compare(candidate, best) > 0 {
			best = candidate
		}
	}
	return best
}

// IsPrerelease reports whether raw parses with a pre-release suffix ("1.22rc1").
func IsPrerelease(raw string) bool {
	v, err := Parse(raw)
	return err == nil && v.Prerelease() != ""
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
