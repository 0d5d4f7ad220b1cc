// Package artifact defines the two managed artifact kinds, the host platform,
// and the typed failures shared by resolution, fetching, and installation.
package artifact

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// Kind identifies a managed artifact category.
type Kind string

const (
	// Runtime is the Go toolchain distribution.
	Runtime Kind = "go"
	// Application is the sop compiler, which runs against a compatible runtime.
	Application Kind = "sop"
)

// Kinds lists every managed kind in display order.
var Kinds = []Kind{Runtime, Application}

// ParseKind maps a user-supplied tool name to a Kind.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(Runtime):
		return Runtime, nil
	case string(Application):
		return Application, nil
	default:
		return "", fmt.Errorf(messages.ArtifactUnknownKindFmt, raw)
	}
}

// String returns the tool name.
func (k Kind) String() string {
	return string(k)
}

// Binary describes one executable shipped with a kind.
type Binary struct {
	Name     string
	Optional bool
}

// Binaries returns the executables an installation of k may contain.
// The first entry is the primary binary used for verification and linking.
func (k Kind) Binaries() []Binary {
	switch k {
	case Application:
		return []Binary{{Name: "sop"}, {Name: "sopls", Optional: true}}
	default:
		return []Binary{{Name: "go"}}
	}
}

// PrimaryBinary returns the executable name of the kind's main binary on goos.
func (k Kind) PrimaryBinary(goos string) string {
	return ExecutableName(k.Binaries()[0].Name, goos)
}

// ExecutableName appends the platform executable suffix to base.
func ExecutableName(base string, goos string) string {
	if goos == "windows" {
		return base + ".exe"
	}
	return base
}

// HostOS returns the operating system this binary was built for.
func HostOS() string {
	return runtime.GOOS
}
