package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// ProjectFileName is the project-local version requirements file.
const ProjectFileName = "sop.mod"

// Project holds the version requests of a sop.mod file. Other keys in the
// file belong to the compiler and are ignored.
type Project struct {
	Go  string `toml:"go"`
	Sop string `toml:"sop"`
	// Path is the sop.mod file the values came from.
	Path string `toml:"-"`
}

// LoadProject reads dir/sop.mod. It returns nil when the file does not exist.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	var project Project
	if err := toml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, path, err)
	}
	project.Go = strings.TrimSpace(project.Go)
	project.Sop = strings.TrimSpace(project.Sop)
	project.Path = path
	return &project, nil
}

// FindProject walks from start toward the filesystem root and returns the
// first sop.mod found, or nil.
func FindProject(start string) (*Project, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigResolveDirFmt, start, err)
	}
	for {
		project, err := LoadProject(dir)
		if err != nil || project != nil {
			return project, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}
