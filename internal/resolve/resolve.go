// Package resolve turns version specifiers into concrete versions.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/remote"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

// Index supplies the release list for a kind.
type Index interface {
	Releases(ctx context.Context, kind artifact.Kind) ([]remote.Release, error)
}

// EnvRanking selects how latest and partial specifiers pick among matches.
const EnvRanking = "SOPMOD_RESOLVE"

// Ranking decides which matching release wins.
type Ranking int

const (
	// FeedOrder takes the first matching stable release as published.
	FeedOrder Ranking = iota
	// Highest takes the numerically highest matching stable release.
	Highest
)

// RankingFromEnv reads EnvRanking. Only "highest" opts out of feed order.
func RankingFromEnv(getenv func(string) string) Ranking {
	if strings.EqualFold(strings.TrimSpace(getenv(EnvRanking)), "highest") {
		return Highest
	}
	return FeedOrder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRanking sets the ranking used for latest and partial specifiers.
func WithRanking(ranking Ranking) Option {
	return func(r *Resolver) {
		r.ranking = ranking
	}
}

// Resolver resolves specifiers against a release index.
type Resolver struct {
	index   Index
	log     zerolog.Logger
	ranking Ranking
}

// New returns a resolver backed by index. It ranks by feed order unless an
// option says otherwise.
func New(index Index, log zerolog.Logger, opts ...Option) *Resolver {
	r := &Resolver{index: index, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the concrete version named by spec. Exact specifiers are
// returned without touching the network. Latest and partial specifiers take
// the first stable matching release in feed order, or the numerically
// highest one under Highest ranking.
func (r *Resolver) Resolve(ctx context.Context, kind artifact.Kind, spec version.Specifier) (string, error) {
	if spec.Kind == version.SpecExact {
		return version.Trim(spec.Raw), nil
	}
	if r.index == nil {
		return "", errors.New(messages.ResolveIndexRequired)
	}

	releases, err := r.index.Releases(ctx, kind)
	if err != nil {
		return "", fmt.Errorf(messages.ResolveFetchIndexFmt, artifact.ErrVersionNotFound, kind, spec, err)
	}

	var candidates []string
	for _, release := range releases {
		if !release.Stable {
			continue
		}
		if spec.Kind == version.SpecPartial && !spec.MatchesPrefix(release.Version) {
			continue
		}
		if _, err := version.Parse(release.Version); err != nil {
			r.log.Debug().Str("kind", kind.String()).Str("version", release.Version).Msg("skipping unparseable release")
			continue
		}
		candidates = append(candidates, release.Version)
		if r.ranking == FeedOrder {
			break
		}
	}
	if len(candidates) == 0 {
		return "", artifact.NotFound(kind, spec.String())
	}
	best := candidates[0]
	if r.ranking == Highest {
		best = version.Max(candidates)
	}
	r.log.Debug().
		Str("kind", kind.String()).
		Str("specifier", spec.String()).
		Int("ranking", int(r.ranking)).
		Str("resolved", best).
		Msg("resolved version")
	return best, nil
}
