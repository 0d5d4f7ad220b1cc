// Package remote talks to the release feeds and download hosts for both
// artifact kinds.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/messages"
	"github.com/halcyonnouveau/sopmod/internal/version"
)

// Endpoint override variables, used for mirrors and tests.
const (
	EnvGoIndexURL     = "SOPMOD_GO_INDEX_URL"
	EnvGoDownloadURL  = "SOPMOD_GO_DOWNLOAD_URL"
	EnvSopReleasesURL = "SOPMOD_SOP_RELEASES_URL"
)

const (
	// DefaultGoIndexURL lists every published Go release, newest first.
	DefaultGoIndexURL     = "https://go.dev/dl/?mode=json&include=all"
	DefaultGoDownloadURL  = "https://go.dev/dl/"
	DefaultSopReleasesURL = "https://api.github.com/repos/halcyonnouveau/soppo/releases"
)

const userAgent = "sopmod"

var apiClient = &http.Client{Timeout: 30 * time.Second}

// Downloads are bounded only by the transport defaults.
var downloadClient = &http.Client{}

// Endpoints holds the base URLs of every remote service.
type Endpoints struct {
	GoIndex     string
	GoDownload  string
	SopReleases string
}

// DefaultEndpoints returns the public endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		GoIndex:     DefaultGoIndexURL,
		GoDownload:  DefaultGoDownloadURL,
		SopReleases: DefaultSopReleasesURL,
	}
}

// EndpointsFromEnv applies any non-empty override variables to the defaults.
func EndpointsFromEnv(getenv func(string) string) Endpoints {
	e := DefaultEndpoints()
	if v := strings.TrimSpace(getenv(EnvGoIndexURL)); v != "" {
		e.GoIndex = v
	}
	if v := strings.TrimSpace(getenv(EnvGoDownloadURL)); v != "" {
		e.GoDownload = v
	}
	if v := strings.TrimSpace(getenv(EnvSopReleasesURL)); v != "" {
		e.SopReleases = v
	}
	return e
}

// RateLimitError indicates GitHub's API rate limit was hit.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remainingText := "unknown"
	if e.Remaining != nil {
		remainingText = strconv.Itoa(*e.Remaining)
	}
	return fmt.Sprintf(messages.RemoteRateLimitFmt, e.Status, remainingText)
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Release is one entry of a release index.
type Release struct {
	Version string
	Stable  bool
}

// Asset is a downloadable file attached to a tagged release.
type Asset struct {
	Name string
	URL  string
}

// TaggedRelease is a single release looked up by tag.
type TaggedRelease struct {
	Tag    string
	Assets []Asset
}

// FindAsset returns the first asset whose name starts with prefix.
func (r TaggedRelease) FindAsset(prefix string) (Asset, bool) {
	for _, asset := range r.Assets {
		if strings.HasPrefix(asset.Name, prefix) {
			return asset, true
		}
	}
	return Asset{}, false
}

// Client queries release feeds and opens downloads.
type Client struct {
	endpoints Endpoints
}

// NewClient returns a client for endpoints.
func NewClient(endpoints Endpoints) *Client {
	return &Client{endpoints: endpoints}
}

// Endpoints returns the configured endpoints.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

type goIndexEntry struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

type githubRelease struct {
	TagName    string        `json:"tag_name"`
	Prerelease bool          `json:"prerelease"`
	Draft      bool          `json:"draft"`
	Assets     []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Releases returns the release index for kind in feed order with
// decorations ("go", "v") stripped from version strings.
func (c *Client) Releases(ctx context.Context, kind artifact.Kind) ([]Release, error) {
	switch kind {
	case artifact.Runtime:
		var entries []goIndexEntry
		if err := c.getJSON(ctx, c.endpoints.GoIndex, &entries); err != nil {
			return nil, err
		}
		out := make([]Release, 0, len(entries))
		for _, entry := range entries {
			out = append(out, Release{Version: version.Trim(entry.Version), Stable: entry.Stable})
		}
		return out, nil
	case artifact.Application:
		var entries []githubRelease
		if err := c.getJSON(ctx, withQuery(c.endpoints.SopReleases, "per_page", "100"), &entries); err != nil {
			return nil, err
		}
		out := make([]Release, 0, len(entries))
		for _, entry := range entries {
			out = append(out, Release{
				Version: version.Trim(entry.TagName),
				Stable:  !entry.Prerelease && !entry.Draft,
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf(messages.ArtifactUnknownKindFmt, kind)
	}
}

// ReleaseByTag looks up one application release by its tag.
func (c *Client) ReleaseByTag(ctx context.Context, tag string) (TaggedRelease, error) {
	endpoint := strings.TrimRight(c.endpoints.SopReleases, "/") + "/tags/" + url.PathEscape(tag)
	var payload githubRelease
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return TaggedRelease{}, err
	}
	release := TaggedRelease{Tag: payload.TagName}
	for _, asset := range payload.Assets {
		release.Assets = append(release.Assets, Asset{Name: asset.Name, URL: asset.BrowserDownloadURL})
	}
	return release, nil
}

// RuntimeArchiveURL returns the download URL of the Go distribution archive.
func (c *Client) RuntimeArchiveURL(v string, platform artifact.Platform) string {
	name := fmt.Sprintf("go%s.%s-%s.%s", v, platform.OS, platform.Arch, platform.ArchiveExt())
	return strings.TrimRight(c.endpoints.GoDownload, "/") + "/" + name
}

// Open issues a GET for rawURL and returns the response when it succeeded.
// The caller closes the body.
func (c *Client) Open(ctx context.Context, rawURL string) (*http.Response, error) {
	return do(ctx, downloadClient, rawURL, "")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	resp, err := do(ctx, apiClient, rawURL, "application/vnd.github+json")
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(messages.RemoteDecodeFmt, rawURL, err)
	}
	return nil
}

func do(ctx context.Context, client *http.Client, rawURL string, accept string) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf(messages.RemoteCreateRequestFmt, rawURL, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &artifact.TransportError{URL: rawURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rateLimitErr := rateLimitErrorFromResponse(resp)
		_ = resp.Body.Close()
		if rateLimitErr != nil {
			return nil, rateLimitErr
		}
		return nil, &artifact.HTTPStatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	// GitHub returns 403 Forbidden for unauthenticated exhaustion; confirm with rate-limit headers.
	if resp.StatusCode == http.StatusForbidden {
		remainingStr := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
		if remainingStr == "" {
			return nil
		}
		remaining, err := strconv.Atoi(remainingStr)
		if err != nil {
			return nil //nolint:nilerr // Malformed header means we cannot confirm rate limiting.
		}
		if remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
		}
	}
	return nil
}

func withQuery(rawURL string, key string, value string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := parsed.Query()
	if q.Get(key) == "" {
		q.Set(key, value)
	}
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
