// Package config reads and writes the global sopmod configuration and the
// project-local sop.mod file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/halcyonnouveau/sopmod/internal/lock"
	"github.com/halcyonnouveau/sopmod/internal/messages"
)

// Config is the persisted default selection. Absent fields stay absent
// across a save and load.
type Config struct {
	// DefaultApplication is the sop version the active link points at.
	DefaultApplication *string `toml:"default_sop,omitempty"`
	// DefaultRuntime is derived from the application default; informational.
	DefaultRuntime *string `toml:"default_go,omitempty"`
	// ApplicationPinned records whether the user chose DefaultApplication
	// explicitly. A nil value predates the flag.
	ApplicationPinned *bool `toml:"sop_pinned,omitempty"`
}

var (
	osRename     = os.Rename
	osCreateTemp = os.CreateTemp
	withLock     = lock.With
)

// Application returns the default application version, if any.
func (c Config) Application() (string, bool) {
	if c.DefaultApplication == nil || *c.DefaultApplication == "" {
		return "", false
	}
	return *c.DefaultApplication, true
}

// Runtime returns the default runtime version, if any.
func (c Config) Runtime() (string, bool) {
	if c.DefaultRuntime == nil || *c.DefaultRuntime == "" {
		return "", false
	}
	return *c.DefaultRuntime, true
}

// WithApplication returns a copy selecting version with the given pin state.
func (c Config) WithApplication(version string, pinned bool) Config {
	c.DefaultApplication = &version
	c.ApplicationPinned = &pinned
	return c
}

// WithRuntime returns a copy selecting version as the runtime default.
func (c Config) WithRuntime(version string) Config {
	c.DefaultRuntime = &version
	return c
}

// WithoutApplication returns a copy with no application default.
func (c Config) WithoutApplication() Config {
	c.DefaultApplication = nil
	c.ApplicationPinned = nil
	return c
}

// Load reads the config at path. A missing file yields an empty Config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf(messages.ConfigReadFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes config TOML; source is used in error messages.
func Parse(data []byte, source string) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	return cfg, nil
}

// Save writes cfg to path through a synced temp file and rename, so readers
// see either the old or the new file.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf(messages.ConfigEncodeFmt, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.PathsCreateDirFmt, dir, err)
	}
	tmp, err := osCreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	if err := osRename(tmpName, path); err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	committed = true
	return nil
}

// Update runs one transaction on the config at path: under the config lock
// it loads the current value, computes the next one with fn, and saves it.
// fn must not mutate shared state; when it returns an error nothing is written.
func Update(path string, fn func(Config) (Config, error)) (Config, error) {
	var next Config
	err := withLock(path+".lock", func() error {
		current, err := Load(path)
		if err != nil {
			return err
		}
		next, err = fn(current)
		if err != nil {
			return err
		}
		return Save(path, next)
	})
	if err != nil {
		return Config{}, err
	}
	return next, nil
}
