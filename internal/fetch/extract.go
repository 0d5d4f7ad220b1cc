package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
	execPerm = 0o755
)

// unpack extracts archive into dest according to the asset name. Assets that
// are not archives are the binary itself and are copied to dest/binaryName.
func unpack(archive string, assetName string, dest string, binaryName string) error {
	lower := strings.ToLower(assetName)
	var err error
	switch {
	case strings.HasSuffix(lower, ".zip"):
		err = extractZip(archive, dest)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		err = extractTarGz(archive, dest)
	default:
		err = installRaw(archive, filepath.Join(dest, binaryName))
	}
	if err != nil {
		return fmt.Errorf(messages.FetchExtractFmt, artifact.ErrExtract, assetName, err)
	}
	return nil
}

func extractZip(archive string, dest string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf(messages.FetchOpenArchiveFmt, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		target, err := safeJoin(dest, file.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return fmt.Errorf(messages.PathsCreateDirFmt, target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
			return fmt.Errorf(messages.PathsCreateDirFmt, filepath.Dir(target), err)
		}
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf(messages.FetchOpenEntryFmt, file.Name, err)
		}
		err = writeFile(target, rc, modeOrDefault(file.Mode().Perm()))
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTarGz(archive string, dest string) error {
	file, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf(messages.FetchOpenArchiveFmt, err)
	}
	defer func() {
		_ = file.Close()
	}()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf(messages.FetchGzipFmt, err)
	}
	defer func() {
		_ = gz.Close()
	}()
	return untar(gz, dest)
}

func untar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.FetchTarHeaderFmt, err)
		}
		target, err := safeJoin(dest, header.Name)
		if err != nil {
			return err
		}
		if target == "" {
			continue
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return fmt.Errorf(messages.PathsCreateDirFmt, target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
				return fmt.Errorf(messages.PathsCreateDirFmt, filepath.Dir(target), err)
			}
			if err := writeFile(target, tr, modeOrDefault(fs.FileMode(header.Mode).Perm())); err != nil {
				return err
			}
		case tar.TypeSymlink:
			resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(header.Linkname))
			if filepath.IsAbs(header.Linkname) || !isPathWithinDir(resolved, dest) {
				return fmt.Errorf(messages.FetchUnsafePathFmt, header.Name)
			}
			if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
				return fmt.Errorf(messages.PathsCreateDirFmt, filepath.Dir(target), err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf(messages.FetchWriteFmt, target, err)
			}
		default:
			// Hard links, devices, and fifos do not occur in release archives.
		}
	}
}

func installRaw(src string, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf(messages.FetchOpenArchiveFmt, err)
	}
	defer func() {
		_ = in.Close()
	}()
	if err := writeFile(dest, in, execPerm); err != nil {
		return err
	}
	// OpenFile applies the umask; force the executable bits.
	if err := os.Chmod(dest, execPerm); err != nil {
		return fmt.Errorf(messages.FetchWriteFmt, dest, err)
	}
	return nil
}

func writeFile(target string, r io.Reader, mode fs.FileMode) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf(messages.FetchWriteFmt, target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.FetchWriteFmt, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.FetchWriteFmt, target, err)
	}
	return nil
}

// promote moves a binary found anywhere under dir to dir/name when the
// archive nested it in a subdirectory.
func promote(dir string, name string) error {
	want := filepath.Join(dir, name)
	if _, err := os.Stat(want); err == nil {
		return nil
	}
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf(messages.FetchSearchBinaryFmt, name, err)
	}
	if found == "" {
		return fmt.Errorf(messages.FetchBinaryMissingFmt, artifact.ErrExtract, name, filepath.Base(dir))
	}
	if err := os.Rename(found, want); err != nil {
		return fmt.Errorf(messages.FetchWriteFmt, want, err)
	}
	return nil
}

// safeJoin resolves an archive entry name under dest. It returns "" for
// entries that name dest itself and an error for entries escaping it.
func safeJoin(dest string, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." {
		return "", nil
	}
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf(messages.FetchUnsafePathFmt, name)
	}
	target := filepath.Join(dest, clean)
	if !isPathWithinDir(target, dest) {
		return "", fmt.Errorf(messages.FetchUnsafePathFmt, name)
	}
	return target, nil
}

func isPathWithinDir(path string, dir string) bool {
	pathClean := filepath.Clean(path)
	dirClean := filepath.Clean(dir)
	if pathClean == dirClean {
		return true
	}
	return strings.HasPrefix(pathClean, dirClean+string(os.PathSeparator))
}

func modeOrDefault(mode fs.FileMode) fs.FileMode {
	if mode == 0 {
		return filePerm
	}
	return mode
}
