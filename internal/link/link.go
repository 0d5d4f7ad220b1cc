// Package link maintains the active link to the default application binary.
package link

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// Method is how the active link was materialized.
type Method int

const (
	// Symlink means the link is a symbolic link to the target.
	Symlink Method = iota
	// Copy means the target was copied because symlinks are unavailable.
	Copy
)

var (
	osSymlink    = os.Symlink
	osRename     = os.Rename
	osCreateTemp = os.CreateTemp
	hostOS       = runtime.GOOS
)

// Repoint makes linkPath refer to target. The new link is built beside
// linkPath and renamed over it, so linkPath never disappears.
func Repoint(target string, linkPath string) (Method, error) {
	dir := filepath.Dir(linkPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Symlink, fmt.Errorf(messages.PathsCreateDirFmt, dir, err)
	}
	if _, err := os.Stat(target); err != nil {
		return Symlink, fmt.Errorf(messages.LinkTargetFmt, target, err)
	}

	tmpName, err := reserveName(dir, "."+filepath.Base(linkPath)+".tmp-*")
	if err != nil {
		return Symlink, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	method := Symlink
	if err := osSymlink(target, tmpName); err != nil {
		if hostOS != "windows" {
			return Symlink, fmt.Errorf(messages.LinkCreateFmt, linkPath, err)
		}
		// Unprivileged Windows accounts cannot create symlinks.
		if err := copyExecutable(target, tmpName); err != nil {
			return Copy, err
		}
		method = Copy
	}

	if err := osRename(tmpName, linkPath); err != nil {
		return method, fmt.Errorf(messages.LinkCreateFmt, linkPath, err)
	}
	committed = true
	return method, nil
}

// Target returns the path linkPath points to, or "" when it is a copy or
// does not exist.
func Target(linkPath string) string {
	target, err := os.Readlink(linkPath)
	if err != nil {
		return ""
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}
	return target
}

// reserveName returns an unused path in dir matching pattern.
func reserveName(dir string, pattern string) (string, error) {
	f, err := osCreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf(messages.LinkCreateFmt, dir, err)
	}
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		return "", fmt.Errorf(messages.LinkCreateFmt, name, err)
	}
	return name, nil
}

func copyExecutable(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf(messages.LinkCopyFmt, src, err)
	}
	defer func() {
		_ = in.Close()
	}()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf(messages.LinkCopyFmt, src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.LinkCopyFmt, src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.LinkCopyFmt, src, err)
	}
	return nil
}
