// Package store tracks installed versions on disk.
//
// A version directory under a kind root is only ever created by renaming a
// verified staging directory into place, so its presence means the install is
// complete. Staging directories are hidden (dot-prefixed) and never listed.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/paths"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

// State is the lifecycle of one version on disk.
type State int

const (
	// Absent means neither a final nor a staging directory exists.
	Absent State = iota
	// Extracting means a staging directory exists without a committed version.
	Extracting
	// Complete means the version directory exists and is non-empty.
	Complete
)

func (s State) String() string {
	switch s {
	case Extracting:
		return "extracting"
	case Complete:
		return "complete"
	default:
		return "absent"
	}
}

var (
	osRename     = os.Rename
	osRemoveAll  = os.RemoveAll
	readDirNames = func(f *os.File, n int) ([]string, error) { return f.Readdirnames(n) }
)

// Store reads and mutates installations under a layout.
type Store struct {
	layout paths.Layout
}

// New returns a store for layout.
func New(layout paths.Layout) *Store {
	return &Store{layout: layout}
}

// Layout returns the store's layout.
func (s *Store) Layout() paths.Layout {
	return s.layout
}

// List returns installed versions of kind in ascending version order.
// A missing kind root yields an empty list.
func (s *Store) List(kind artifact.Kind) ([]string, error) {
	root := s.layout.KindRoot(kind)
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.StoreReadRootFmt, root, err)
	}
	var versions []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ok, err := nonEmptyDir(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}
		if ok {
			versions = append(versions, name)
		}
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return version.Compare(versions[i], versions[j]) < 0
	})
	return versions, nil
}

// IsInstalled reports whether v of kind is installed.
func (s *Store) IsInstalled(kind artifact.Kind, v string) (bool, error) {
	return nonEmptyDir(s.layout.VersionDir(kind, v))
}

// State reports the lifecycle state of v of kind.
func (s *Store) State(kind artifact.Kind, v string) (State, error) {
	installed, err := s.IsInstalled(kind, v)
	if err != nil {
		return Absent, err
	}
	if installed {
		return Complete, nil
	}
	staging, err := s.stagingDirs(kind, v)
	if err != nil {
		return Absent, err
	}
	if len(staging) > 0 {
		return Extracting, nil
	}
	return Absent, nil
}

// Remove deletes v of kind. It fails with artifact.ErrVersionNotFound when
// the version is not installed.
func (s *Store) Remove(kind artifact.Kind, v string) error {
	dir := s.layout.VersionDir(kind, v)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return artifact.NotFound(kind, v)
		}
		return fmt.Errorf(messages.StoreStatFmt, dir, err)
	}
	if err := osRemoveAll(dir); err != nil {
		return fmt.Errorf(messages.StoreRemoveFmt, dir, err)
	}
	return nil
}

// Stage creates a fresh staging directory for v of kind.
func (s *Store) Stage(kind artifact.Kind, v string) (string, error) {
	root := s.layout.KindRoot(kind)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf(messages.PathsCreateDirFmt, root, err)
	}
	dir, err := os.MkdirTemp(root, stagingPattern(v))
	if err != nil {
		return "", fmt.Errorf(messages.StoreStageFmt, v, err)
	}
	return dir, nil
}

// Commit publishes a verified staging directory as the version directory.
func (s *Store) Commit(kind artifact.Kind, v string, staging string) error {
	dest := s.layout.VersionDir(kind, v)
	// An empty leftover directory would make the rename fail on some platforms.
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.StoreCommitFmt, dest, err)
	}
	if err := osRename(staging, dest); err != nil {
		return fmt.Errorf(messages.StoreCommitFmt, dest, err)
	}
	return nil
}

// Sweep removes abandoned staging directories for v of kind. Callers hold
// the kind's install lock.
func (s *Store) Sweep(kind artifact.Kind, v string) error {
	dirs, err := s.stagingDirs(kind, v)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := osRemoveAll(dir); err != nil {
			return fmt.Errorf(messages.StoreRemoveFmt, dir, err)
		}
	}
	return nil
}

func (s *Store) stagingDirs(kind artifact.Kind, v string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.layout.KindRoot(kind), stagingPattern(v)))
	if err != nil {
		return nil, fmt.Errorf(messages.StoreReadRootFmt, s.layout.KindRoot(kind), err)
	}
	return matches, nil
}

func stagingPattern(v string) string {
	return paths.StagingPrefix + v + "-*"
}

func nonEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(messages.StoreStatFmt, dir, err)
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf(messages.StoreStatFmt, dir, err)
	}
	if !info.IsDir() {
		return false, nil
	}
	names, err := readDirNames(f, 1)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf(messages.StoreStatFmt, dir, err)
	}
	return len(names) > 0, nil
}
