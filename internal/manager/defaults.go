package manager

import (
	"context"
	"fmt"
	"os"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/config"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

// DefaultResult describes a setDefault call.
type DefaultResult struct {
	Version string
	// Declined is true when the user refused to install the version; no
	// state changed.
	Declined bool
	// Installed is true when the version was installed as part of the call.
	Installed  bool
	Activation *Activation
}

// SetDefault makes the version named by spec the application default,
// installing it after confirmation when missing. Exact and partial
// specifiers pin the default; latest leaves it tracking updates.
func (m *Manager) SetDefault(ctx context.Context, kind artifact.Kind, spec version.Specifier) (DefaultResult, error) {
	if err := m.requireApplication(kind); err != nil {
		return DefaultResult{}, err
	}
	v, err := m.resolver.Resolve(ctx, kind, spec)
	if err != nil {
		return DefaultResult{}, err
	}
	result := DefaultResult{Version: v}

	installed, err := m.store.IsInstalled(kind, v)
	if err != nil {
		return DefaultResult{}, err
	}
	if !installed {
		ok, err := m.confirmInstall(kind, v)
		if err != nil {
			return DefaultResult{}, err
		}
		if !ok {
			result.Declined = true
			return result, nil
		}
		if _, err := m.fetcher.Fetch(ctx, kind, v); err != nil {
			return DefaultResult{}, err
		}
		result.Installed = true
	}

	activation, err := m.activate(ctx, v, spec.Kind != version.SpecLatest)
	if err != nil {
		return DefaultResult{}, err
	}
	result.Activation = &activation
	return result, nil
}

func (m *Manager) confirmInstall(kind artifact.Kind, v string) (bool, error) {
	if m.confirm == nil {
		return false, fmt.Errorf(messages.ManagerNotInstalledNoPromptFmt, kind, v)
	}
	return m.confirm.Confirm(fmt.Sprintf(messages.ManagerInstallPromptFmt, kind, v))
}

// activate switches the application default to v: it pairs a runtime,
// commits the config transaction, then repoints the active link.
func (m *Manager) activate(ctx context.Context, v string, pinned bool) (Activation, error) {
	target := m.layout.Binary(artifact.Application, v)
	if _, err := os.Stat(target); err != nil {
		return Activation{}, fmt.Errorf(messages.ManagerBinaryMissingFmt, artifact.Application, v, target)
	}

	pairing, err := m.pairRuntime(ctx, v)
	if err != nil {
		return Activation{}, err
	}

	_, err = config.Update(m.layout.ConfigPath(), func(cfg config.Config) (config.Config, error) {
		next := cfg.WithApplication(v, pinned)
		if pairing != nil {
			next = next.WithRuntime(pairing.Version)
		}
		return next, nil
	})
	if err != nil {
		return Activation{}, err
	}

	method, err := repointLink(target, m.layout.ActiveLink())
	if err != nil {
		return Activation{}, err
	}
	m.log.Debug().Str("version", v).Bool("pinned", pinned).Msg("default switched")
	return Activation{Version: v, Pinned: pinned, Link: method, Runtime: pairing}, nil
}

// pairRuntime picks the newest installed runtime compatible with
// applicationVersion, installing the declared minimum when none is.
func (m *Manager) pairRuntime(ctx context.Context, applicationVersion string) (*Pairing, error) {
	required, ok := m.matrix.RequiredRuntimeRange(applicationVersion)
	if !ok {
		return nil, nil
	}
	runtimes, err := m.store.List(artifact.Runtime)
	if err != nil {
		return nil, err
	}
	// Pre-releases are never auto-paired, even when the range admits them.
	var compatible []string
	for _, rt := range runtimes {
		if version.IsPrerelease(rt) {
			continue
		}
		if m.matrix.IsCompatible(rt, applicationVersion) {
			compatible = append(compatible, rt)
		}
	}
	if best := version.Max(compatible); best != "" {
		return &Pairing{Version: best}, nil
	}

	spec, err := version.ParseSpecifier(required.Min)
	if err != nil {
		return nil, err
	}
	rt, err := m.resolver.Resolve(ctx, artifact.Runtime, spec)
	if err != nil {
		return nil, err
	}
	m.log.Debug().Str("runtime", rt).Str("application", applicationVersion).Msg("installing minimum compatible runtime")
	if _, err := m.fetcher.Fetch(ctx, artifact.Runtime, rt); err != nil {
		return nil, err
	}
	return &Pairing{Version: rt, Installed: true}, nil
}

// UpdateResult describes an update of one kind.
type UpdateResult struct {
	Kind    artifact.Kind
	Version string
	// AlreadyLatest is true when the latest version was already installed.
	AlreadyLatest bool
	// Advanced is set when the application default moved to Version.
	Advanced *Activation
}

// Update installs the latest version of each kind. The application default
// follows the new version unless the user pinned it.
func (m *Manager) Update(ctx context.Context, kinds ...artifact.Kind) ([]UpdateResult, error) {
	if len(kinds) == 0 {
		kinds = artifact.Kinds
	}
	results := make([]UpdateResult, 0, len(kinds))
	for _, kind := range kinds {
		result, err := m.updateKind(ctx, kind)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (m *Manager) updateKind(ctx context.Context, kind artifact.Kind) (UpdateResult, error) {
	latest, err := m.resolver.Resolve(ctx, kind, version.Specifier{Kind: version.SpecLatest, Raw: version.Latest})
	if err != nil {
		return UpdateResult{}, err
	}
	installedBefore, err := m.store.List(kind)
	if err != nil {
		return UpdateResult{}, err
	}
	fetched, err := m.fetcher.Fetch(ctx, kind, latest)
	if err != nil {
		return UpdateResult{}, err
	}
	result := UpdateResult{Kind: kind, Version: latest, AlreadyLatest: !fetched.Fetched}
	if kind != artifact.Application {
		return result, nil
	}

	cfg, err := config.Load(m.layout.ConfigPath())
	if err != nil {
		return UpdateResult{}, err
	}
	current, hasDefault := cfg.Application()
	if hasDefault && current == latest {
		return result, nil
	}
	if !shouldAdvance(cfg, installedBefore) {
		m.log.Debug().Str("default", current).Msg("default is pinned; not advancing")
		return result, nil
	}
	activation, err := m.activate(ctx, latest, false)
	if err != nil {
		return UpdateResult{}, err
	}
	result.Advanced = &activation
	return result, nil
}

// shouldAdvance decides whether update moves the application default.
// Without a default it always does. With the pin flag recorded, only
// unpinned defaults move. Configs written before the flag existed fall back
// to treating a default that names an installed version as tracking latest.
func shouldAdvance(cfg config.Config, installed []string) bool {
	current, ok := cfg.Application()
	if !ok {
		return true
	}
	if cfg.ApplicationPinned != nil {
		return !*cfg.ApplicationPinned
	}
	for _, v := range installed {
		if v == current {
			return true
		}
	}
	return false
}
