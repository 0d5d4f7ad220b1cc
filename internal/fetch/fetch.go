// Package fetch downloads, extracts, verifies, and publishes artifact versions.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/lock"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/paths"
	"github.com/halcyonnouveau/sopmod/internal/remote"
	"github.com/halcyonnouveau/sopmod/internal/store"
)

// Source locates and opens release assets.
type Source interface {
	ReleaseByTag(ctx context.Context, tag string) (remote.TaggedRelease, error)
	RuntimeArchiveURL(version string, platform artifact.Platform) string
	Open(ctx context.Context, rawURL string) (*http.Response, error)
}

// Progress receives download progress. Implementations must tolerate a
// total of -1 when the server does not declare a content length.
type Progress interface {
	Start(label string, total int64)
	Update(transferred int64)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(string, int64) {}
func (nopProgress) Update(int64)        {}
func (nopProgress) Finish()             {}

var withLock = lock.With

// Options configures a Fetcher.
type Options struct {
	Store    *store.Store
	Source   Source
	Platform artifact.Platform
	Progress Progress
	Logger   zerolog.Logger
}

// Fetcher installs artifact versions into a store.
type Fetcher struct {
	store    *store.Store
	layout   paths.Layout
	source   Source
	platform artifact.Platform
	progress Progress
	log      zerolog.Logger
}

// Result describes a fetch outcome.
type Result struct {
	Kind    artifact.Kind
	Version string
	Dir     string
	// Fetched is false when the version was already installed.
	Fetched bool
}

// New returns a Fetcher.
func New(opts Options) *Fetcher {
	progress := opts.Progress
	if progress == nil {
		progress = nopProgress{}
	}
	return &Fetcher{
		store:    opts.Store,
		layout:   opts.Store.Layout(),
		source:   opts.Source,
		platform: opts.Platform,
		progress: progress,
		log:      opts.Logger,
	}
}

// Fetch installs version of kind. An already installed version returns
// immediately without network access.
func (f *Fetcher) Fetch(ctx context.Context, kind artifact.Kind, version string) (Result, error) {
	result := Result{Kind: kind, Version: version, Dir: f.layout.VersionDir(kind, version)}
	installed, err := f.store.IsInstalled(kind, version)
	if err != nil {
		return Result{}, err
	}
	if installed {
		f.log.Debug().Str("kind", kind.String()).Str("version", version).Msg("already installed")
		return result, nil
	}

	err = withLock(f.layout.LockPath(kind), func() error {
		installed, err := f.store.IsInstalled(kind, version)
		if err != nil {
			return err
		}
		if installed {
			return nil
		}
		if err := f.store.Sweep(kind, version); err != nil {
			return err
		}
		if err := f.install(ctx, kind, version); err != nil {
			return err
		}
		result.Fetched = true
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

type download struct {
	name     string
	url      string
	optional bool
}

func (f *Fetcher) install(ctx context.Context, kind artifact.Kind, version string) error {
	downloads, err := f.locate(ctx, kind, version)
	if err != nil {
		return err
	}

	staging, err := f.store.Stage(kind, version)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()
	f.log.Debug().Str("kind", kind.String()).Str("version", version).Str("staging", staging).Msg("extracting")

	for _, d := range downloads {
		label := fmt.Sprintf(messages.FetchProgressLabelFmt, d.name, version)
		archive, err := f.download(ctx, kind, version, d.url, label)
		if err != nil {
			return err
		}
		err = unpack(archive, assetName(d.url), staging, artifact.ExecutableName(d.name, f.layout.GOOS))
		_ = os.Remove(archive)
		if err != nil {
			return err
		}
		if kind == artifact.Application {
			if err := promote(staging, artifact.ExecutableName(d.name, f.layout.GOOS)); err != nil && !d.optional {
				return err
			}
		}
	}

	binary := filepath.Join(staging, f.layout.RelativeBinary(kind))
	if _, err := os.Stat(binary); err != nil {
		return fmt.Errorf(messages.FetchBinaryMissingFmt, artifact.ErrExtract, f.layout.RelativeBinary(kind), version)
	}

	if err := f.store.Commit(kind, version, staging); err != nil {
		return err
	}
	committed = true
	f.log.Debug().Str("kind", kind.String()).Str("version", version).Msg("installed")
	return nil
}

// locate returns the downloads that make up an installation, primary first.
func (f *Fetcher) locate(ctx context.Context, kind artifact.Kind, version string) ([]download, error) {
	if kind == artifact.Runtime {
		return []download{{
			name: kind.Binaries()[0].Name,
			url:  f.source.RuntimeArchiveURL(version, f.platform),
		}}, nil
	}

	triple, err := f.platform.Triple()
	if err != nil {
		return nil, err
	}
	release, err := f.source.ReleaseByTag(ctx, "v"+version)
	if err != nil {
		var statusErr *artifact.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, artifact.NotFound(kind, version)
		}
		return nil, err
	}

	var downloads []download
	for _, bin := range kind.Binaries() {
		asset, ok := release.FindAsset(bin.Name + "-" + triple)
		if !ok {
			if bin.Optional {
				f.log.Debug().Str("binary", bin.Name).Str("triple", triple).Msg("optional asset not published")
				continue
			}
			return nil, fmt.Errorf(messages.FetchAssetMissingFmt, artifact.ErrVersionNotFound, kind, version, triple)
		}
		downloads = append(downloads, download{name: bin.Name, url: asset.URL, optional: bin.Optional})
	}
	return downloads, nil
}

func assetName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(parsed.Path)
}
