// Package paths computes the on-disk layout under the sopmod root directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// EnvHome overrides the root directory.
const EnvHome = "SOPMOD_HOME"

const (
	rootDirName    = ".sopmod"
	binDirName     = "bin"
	configFileName = "config.toml"
	// StagingPrefix marks in-progress extraction directories under a kind root.
	StagingPrefix = ".staging-"
)

// Layout resolves every managed path relative to Root for one target OS.
type Layout struct {
	Root string
	GOOS string
}

// New returns a layout rooted at root for the host OS.
func New(root string) Layout {
	return Layout{Root: root, GOOS: artifact.HostOS()}
}

// DefaultRoot returns $SOPMOD_HOME (with ~ expanded) or ~/.sopmod.
func DefaultRoot() (string, error) {
	return rootFromEnv(os.Getenv)
}

func rootFromEnv(getenv func(string) string) (string, error) {
	if override := strings.TrimSpace(getenv(EnvHome)); override != "" {
		expanded, err := homedir.Expand(override)
		if err != nil {
			return "", fmt.Errorf(messages.PathsExpandHomeFmt, EnvHome, err)
		}
		return filepath.Abs(expanded)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.PathsHomeDirFmt, err)
	}
	return filepath.Join(home, rootDirName), nil
}

// KindRoot is the directory holding every installed version of kind.
func (l Layout) KindRoot(kind artifact.Kind) string {
	return filepath.Join(l.Root, kind.String())
}

// VersionDir is the installation directory of one version.
func (l Layout) VersionDir(kind artifact.Kind, version string) string {
	return filepath.Join(l.KindRoot(kind), version)
}

// Binary is the primary executable of an installed version. The Go
// distribution unpacks into a top-level go/ directory, so its binary sits
// under go/bin.
func (l Layout) Binary(kind artifact.Kind, version string) string {
	return l.BinaryNamed(kind, version, kind.Binaries()[0].Name)
}

// BinaryNamed is the path of a named executable inside an installed version.
func (l Layout) BinaryNamed(kind artifact.Kind, version string, name string) string {
	exe := artifact.ExecutableName(name, l.GOOS)
	dir := l.VersionDir(kind, version)
	if kind == artifact.Runtime {
		return filepath.Join(dir, "go", "bin", exe)
	}
	return filepath.Join(dir, exe)
}

// RelativeBinary is the primary binary path relative to the version directory.
func (l Layout) RelativeBinary(kind artifact.Kind) string {
	exe := kind.PrimaryBinary(l.GOOS)
	if kind == artifact.Runtime {
		return filepath.Join("go", "bin", exe)
	}
	return exe
}

// BinDir holds the active link; users add it to PATH.
func (l Layout) BinDir() string {
	return filepath.Join(l.Root, binDirName)
}

// ActiveLink is the path external shells invoke to reach the default sop binary.
func (l Layout) ActiveLink() string {
	return filepath.Join(l.BinDir(), artifact.Application.PrimaryBinary(l.GOOS))
}

// ConfigPath is the global configuration file.
func (l Layout) ConfigPath() string {
	return filepath.Join(l.Root, configFileName)
}

// LockPath is the advisory lock file guarding installs of kind.
func (l Layout) LockPath(kind artifact.Kind) string {
	return filepath.Join(l.Root, "."+kind.String()+".lock")
}

// EnsureDirs creates the root, every kind root, and the bin directory.
func (l Layout) EnsureDirs() error {
	dirs := []string{l.BinDir()}
	for _, kind := range artifact.Kinds {
		dirs = append(dirs, l.KindRoot(kind))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf(messages.PathsCreateDirFmt, dir, err)
		}
	}
	return nil
}

// OnPath reports whether the bin directory appears in pathEnv.
func (l Layout) OnPath(pathEnv string) bool {
	bin := filepath.Clean(l.BinDir())
	for _, entry := range filepath.SplitList(pathEnv) {
		if entry != "" && filepath.Clean(entry) == bin {
			return true
		}
	}
	return false
}
