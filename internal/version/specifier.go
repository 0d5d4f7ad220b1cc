package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// SpecKind classifies a version specifier.
type SpecKind int

const (
	// SpecExact names a concrete version.
	SpecExact SpecKind = iota
	// SpecPartial names a major.minor line.
	SpecPartial
	// SpecLatest asks for the newest stable release.
	SpecLatest
)

// Latest is the symbolic specifier for the newest stable release.
const Latest = "latest"

var partialPattern = regexp.MustCompile(`^v?\d+\.\d+$`)

// Specifier is a user-supplied version request, consumed once by resolution.
type Specifier struct {
	Kind SpecKind
	// Raw is the specifier as typed, trimmed.
	Raw string
}

// ParseSpecifier classifies raw as latest, partial (major.minor), or exact.
func ParseSpecifier(raw string) (Specifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Specifier{}, fmt.Errorf(messages.VersionSpecifierRequired)
	}
	if strings.EqualFold(trimmed, Latest) {
		return Specifier{Kind: SpecLatest, Raw: Latest}, nil
	}
	if partialPattern.MatchString(trimmed) {
		return Specifier{Kind: SpecPartial, Raw: trimmed}, nil
	}
	return Specifier{Kind: SpecExact, Raw: trimmed}, nil
}

// Exact builds an exact specifier without classification.
func Exact(v string) Specifier {
	return Specifier{Kind: SpecExact, Raw: v}
}

// Prefix returns the major.minor prefix of a partial specifier without decorations.
func (s Specifier) Prefix() string {
	return strings.TrimPrefix(s.Raw, "v")
}

// MatchesPrefix reports whether candidate belongs to the partial line: the
// candidate must equal the prefix or continue it with a non-digit ("1.22" does
// not match "1.220.0").
func (s Specifier) MatchesPrefix(candidate string) bool {
	prefix := s.Prefix()
	trimmed := Trim(candidate)
	if !strings.HasPrefix(trimmed, prefix) {
		return false
	}
	rest := trimmed[len(prefix):]
	return rest == "" || rest[0] < '0' || rest[0] > '9'
}

func (s Specifier) String() string {
	return s.Raw
}
