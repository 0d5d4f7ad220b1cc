package manager

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/config"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

// Source says where a which answer came from.
type Source int

const (
	// SourceDefault is the persisted default.
	SourceDefault Source = iota
	// SourceProject is a sop.mod request matched against installed versions.
	SourceProject
	// SourceNewest is the newest installed runtime, used when no runtime default exists.
	SourceNewest
)

// WhichResult locates the binary that would run for a kind.
type WhichResult struct {
	Kind    artifact.Kind
	Version string
	Path    string
	Source  Source
	// ProjectFile is the sop.mod consulted, if any.
	ProjectFile string
	// Unsatisfied is a sop.mod request no installed version matches.
	Unsatisfied string
	// Installed lists every installed version when Source is SourceNewest.
	Installed []string
}

// Which reports the binary for kind as seen from dir. A sop.mod in dir or an
// ancestor takes precedence when its request matches an installed version.
func (m *Manager) Which(kind artifact.Kind, dir string) (WhichResult, error) {
	installed, err := m.store.List(kind)
	if err != nil {
		return WhichResult{}, err
	}
	result := WhichResult{Kind: kind}

	if dir != "" {
		project, err := config.FindProject(dir)
		if err != nil {
			return WhichResult{}, err
		}
		if project != nil {
			requested := project.Sop
			if kind == artifact.Runtime {
				requested = project.Go
			}
			result.ProjectFile = project.Path
			if requested != "" {
				if v := matchInstalled(installed, requested); v != "" {
					result.Version = v
					result.Path = m.layout.Binary(kind, v)
					result.Source = SourceProject
					return result, nil
				}
				result.Unsatisfied = requested
			}
		}
	}

	cfg, err := config.Load(m.layout.ConfigPath())
	if err != nil {
		return WhichResult{}, err
	}
	current, ok := cfg.Application()
	if kind == artifact.Runtime {
		current, ok = cfg.Runtime()
	}
	if ok {
		path := m.layout.Binary(kind, current)
		if _, err := os.Stat(path); err != nil {
			return WhichResult{}, fmt.Errorf(messages.ManagerDefaultMissingFmt, kind, current, path)
		}
		result.Version = current
		result.Path = path
		result.Source = SourceDefault
		return result, nil
	}

	if len(installed) == 0 {
		return WhichResult{}, fmt.Errorf(messages.ManagerNoneInstalledFmt, kind, kind)
	}
	if kind == artifact.Application {
		return WhichResult{}, fmt.Errorf(messages.ManagerNoDefaultFmt, kind, kind, installed[len(installed)-1])
	}
	newest := installed[len(installed)-1]
	result.Version = newest
	result.Path = m.layout.Binary(kind, newest)
	result.Source = SourceNewest
	result.Installed = installed
	return result, nil
}

// matchInstalled returns the installed version satisfying requested: an exact
// match, or the highest version of a major.minor line.
func matchInstalled(installed []string, requested string) string {
	spec, err := version.ParseSpecifier(requested)
	if err != nil {
		return ""
	}
	switch spec.Kind {
	case version.SpecLatest:
		return version.Max(installed)
	case version.SpecPartial:
		var matches []string
		for _, v := range installed {
			if spec.MatchesPrefix(v) {
				matches = append(matches, v)
			}
		}
		return version.Max(matches)
	default:
		want := version.Trim(spec.Raw)
		for _, v := range installed {
			if v == want {
				return v
			}
		}
		return ""
	}
}

// RemoveResult describes a removal.
type RemoveResult struct {
	Version string
	// ClearedDefault is true when the removed version was the kind's default.
	ClearedDefault bool
}

// Remove deletes an installed version. Specifiers resolve against installed
// versions, never the network. Removing a default clears it; removing the
// application default also removes the active link.
func (m *Manager) Remove(_ context.Context, kind artifact.Kind, spec version.Specifier) (RemoveResult, error) {
	installed, err := m.store.List(kind)
	if err != nil {
		return RemoveResult{}, err
	}
	v := matchInstalled(installed, spec.Raw)
	if v == "" {
		return RemoveResult{}, artifact.NotFound(kind, spec.String())
	}
	if err := m.store.Remove(kind, v); err != nil {
		return RemoveResult{}, err
	}
	result := RemoveResult{Version: v}

	cfg, err := config.Load(m.layout.ConfigPath())
	if err != nil {
		return RemoveResult{}, err
	}
	if !namesDefault(cfg, kind, v) {
		return result, nil
	}
	_, err = config.Update(m.layout.ConfigPath(), func(cfg config.Config) (config.Config, error) {
		if !namesDefault(cfg, kind, v) {
			return cfg, nil
		}
		if kind == artifact.Application {
			return cfg.WithoutApplication(), nil
		}
		cfg.DefaultRuntime = nil
		return cfg, nil
	})
	if err != nil {
		return RemoveResult{}, err
	}
	result.ClearedDefault = true

	if kind == artifact.Application {
		if err := os.Remove(m.layout.ActiveLink()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return RemoveResult{}, fmt.Errorf(messages.ManagerRemoveLinkFmt, m.layout.ActiveLink(), err)
		}
	}
	return result, nil
}

func namesDefault(cfg config.Config, kind artifact.Kind, v string) bool {
	current, ok := cfg.Application()
	if kind == artifact.Runtime {
		current, ok = cfg.Runtime()
	}
	return ok && current == v
}
