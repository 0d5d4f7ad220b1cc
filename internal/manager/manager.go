// Package manager orchestrates resolution, fetching, default selection, and
// removal of runtime and application versions.
package manager

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/compat"
	"github.com/halcyonnouveau/sopmod/internal/config"
	"github.com/halcyonnouveau/sopmod/internal/fetch"
	"github.com/halcyonnouveau/sopmod/internal/link"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/paths"
	"github.com/halcyonnouveau/sopmod/internal/store"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

// Resolver turns specifiers into concrete versions.
type Resolver interface {
	Resolve(ctx context.Context, kind artifact.Kind, spec version.Specifier) (string, error)
}

// Fetcher installs a concrete version.
type Fetcher interface {
	Fetch(ctx context.Context, kind artifact.Kind, version string) (fetch.Result, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

var repointLink = link.Repoint

// Options configures a Manager.
type Options struct {
	Store    *store.Store
	Resolver Resolver
	Fetcher  Fetcher
	Matrix   compat.Matrix
	Confirm  Confirmer
	Logger   zerolog.Logger
}

// Manager implements the user-facing operations.
type Manager struct {
	store    *store.Store
	layout   paths.Layout
	resolver Resolver
	fetcher  Fetcher
	matrix   compat.Matrix
	confirm  Confirmer
	log      zerolog.Logger
}

// New returns a Manager.
func New(opts Options) *Manager {
	return &Manager{
		store:    opts.Store,
		layout:   opts.Store.Layout(),
		resolver: opts.Resolver,
		fetcher:  opts.Fetcher,
		matrix:   opts.Matrix,
		confirm:  opts.Confirm,
		log:      opts.Logger,
	}
}

// Pairing is the runtime chosen to accompany an application version.
type Pairing struct {
	Version string
	// Installed is true when no compatible runtime was present and the
	// minimum was installed.
	Installed bool
}

// Activation describes a default switch.
type Activation struct {
	Version string
	Pinned  bool
	Link    link.Method
	// Runtime is nil when the application version has no known requirement.
	Runtime *Pairing
}

// InstallResult describes an install.
type InstallResult struct {
	Kind    artifact.Kind
	Version string
	// AlreadyInstalled is true when nothing was downloaded.
	AlreadyInstalled bool
	// Default is set when the install became the first application default.
	Default *Activation
	// Warning names a compatibility problem with the installed runtimes.
	Warning *CompatWarning
}

// CompatWarning reports that no installed runtime satisfies an application version.
type CompatWarning struct {
	Message    string
	RuntimeMin string
}

// Install resolves spec and installs the version. Installing the first
// application version also makes it the default.
func (m *Manager) Install(ctx context.Context, kind artifact.Kind, spec version.Specifier) (InstallResult, error) {
	v, err := m.resolver.Resolve(ctx, kind, spec)
	if err != nil {
		return InstallResult{}, err
	}
	fetched, err := m.fetcher.Fetch(ctx, kind, v)
	if err != nil {
		return InstallResult{}, err
	}
	result := InstallResult{Kind: kind, Version: v, AlreadyInstalled: !fetched.Fetched}
	if kind != artifact.Application {
		return result, nil
	}

	warning, err := m.compatWarning(v)
	if err != nil {
		return InstallResult{}, err
	}
	result.Warning = warning

	cfg, err := config.Load(m.layout.ConfigPath())
	if err != nil {
		return InstallResult{}, err
	}
	if _, ok := cfg.Application(); !ok {
		activation, err := m.activate(ctx, v, false)
		if err != nil {
			return InstallResult{}, err
		}
		result.Default = &activation
		// Pairing installs a compatible runtime, so the warning no longer applies.
		result.Warning = nil
	}
	return result, nil
}

func (m *Manager) compatWarning(applicationVersion string) (*CompatWarning, error) {
	required, ok := m.matrix.RequiredRuntimeRange(applicationVersion)
	if !ok {
		return nil, nil
	}
	runtimes, err := m.store.List(artifact.Runtime)
	if err != nil {
		return nil, err
	}
	if len(runtimes) == 0 {
		return nil, nil
	}
	for _, rt := range runtimes {
		if m.matrix.IsCompatible(rt, applicationVersion) {
			return nil, nil
		}
	}
	return &CompatWarning{Message: m.matrix.Message(applicationVersion), RuntimeMin: required.Min}, nil
}

// Listing is the installed versions of one kind.
type Listing struct {
	Kind     artifact.Kind
	Versions []string
	// Default is the persisted default of the kind, or "".
	Default string
}

// List returns installed versions for each of kinds.
func (m *Manager) List(kinds ...artifact.Kind) ([]Listing, error) {
	if len(kinds) == 0 {
		kinds = artifact.Kinds
	}
	cfg, err := config.Load(m.layout.ConfigPath())
	if err != nil {
		return nil, err
	}
	listings := make([]Listing, 0, len(kinds))
	for _, kind := range kinds {
		versions, err := m.store.List(kind)
		if err != nil {
			return nil, err
		}
		listing := Listing{Kind: kind, Versions: versions}
		if kind == artifact.Application {
			listing.Default, _ = cfg.Application()
		} else {
			listing.Default, _ = cfg.Runtime()
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (m *Manager) requireApplication(kind artifact.Kind) error {
	if kind != artifact.Application {
		return fmt.Errorf(messages.ManagerRuntimeDefaultDerivedFmt, kind)
	}
	return nil
}
