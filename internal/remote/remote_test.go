package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Endpoints{
		GoIndex:     server.URL + "/dl/?mode=json",
		GoDownload:  server.URL + "/dl/",
		SopReleases: server.URL + "/repos/halcyonnouveau/soppo/releases",
	}), server
}

func TestReleasesRuntimeTrimsPrefix(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dl/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"version":"go1.23.0","stable":true},{"version":"go1.24rc1","stable":false}]`))
	})

	releases, err := client.Releases(context.Background(), artifact.Runtime)
	if err != nil {
		t.Fatalf("Releases error: %v", err)
	}
	if len(releases) != 2 {
		t.Fatalf("expected 2 releases, got %d", len(releases))
	}
	if releases[0] != (Release{Version: "1.23.0", Stable: true}) {
		t.Fatalf("unexpected first release %+v", releases[0])
	}
	if releases[1].Stable {
		t.Fatalf("expected rc to be unstable")
	}
}

func TestReleasesApplicationStability(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("expected per_page=100, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "sopmod" {
			t.Errorf("expected user agent sopmod, got %q", got)
		}
		_, _ = w.Write([]byte(`[
			{"tag_name":"v0.6.0-beta","prerelease":true},
			{"tag_name":"v0.5.1","draft":true},
			{"tag_name":"v0.5.0"}
		]`))
	})

	releases, err := client.Releases(context.Background(), artifact.Application)
	if err != nil {
		t.Fatalf("Releases error: %v", err)
	}
	want := []Release{
		{Version: "0.6.0-beta", Stable: false},
		{Version: "0.5.1", Stable: false},
		{Version: "0.5.0", Stable: true},
	}
	for i := range want {
		if releases[i] != want[i] {
			t.Fatalf("release %d: expected %+v, got %+v", i, want[i], releases[i])
		}
	}
}

func TestReleaseByTag(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/releases/tags/v0.5.0") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"v0.5.0","assets":[
			{"name":"sop-x86_64-unknown-linux-gnu.tar.gz","browser_download_url":"http://example.test/sop.tgz"},
			{"name":"sopls-x86_64-unknown-linux-gnu.tar.gz","browser_download_url":"http://example.test/sopls.tgz"}
		]}`))
	})

	release, err := client.ReleaseByTag(context.Background(), "v0.5.0")
	if err != nil {
		t.Fatalf("ReleaseByTag error: %v", err)
	}
	asset, ok := release.FindAsset("sop-x86_64-unknown-linux-gnu")
	if !ok || asset.URL != "http://example.test/sop.tgz" {
		t.Fatalf("unexpected asset %+v (found=%v)", asset, ok)
	}
	if _, ok := release.FindAsset("sop-aarch64-apple-darwin"); ok {
		t.Fatalf("expected no darwin asset")
	}

	_, err = client.ReleaseByTag(context.Background(), "v9.9.9")
	var statusErr *artifact.HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPStatusError, got %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	client, _ := newServerClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Releases(context.Background(), artifact.Application)
	if !IsRateLimitError(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestTransportError(t *testing.T) {
	client := NewClient(Endpoints{GoIndex: "http://127.0.0.1:0/"})
	_, err := client.Releases(context.Background(), artifact.Runtime)
	var transportErr *artifact.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestRuntimeArchiveURL(t *testing.T) {
	client := NewClient(DefaultEndpoints())
	got := client.RuntimeArchiveURL("1.22.1", artifact.Platform{OS: "windows", Arch: "amd64"})
	if got != "https://go.dev/dl/go1.22.1.windows-amd64.zip" {
		t.Fatalf("unexpected url %s", got)
	}
	got = client.RuntimeArchiveURL("1.22.1", artifact.Platform{OS: "linux", Arch: "arm64"})
	if got != "https://go.dev/dl/go1.22.1.linux-arm64.tar.gz" {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestEndpointsFromEnv(t *testing.T) {
	env := map[string]string{EnvGoIndexURL: " http://mirror/index "}
	e := EndpointsFromEnv(func(k string) string { return env[k] })
	if e.GoIndex != "http://mirror/index" {
		t.Fatalf("expected override, got %s", e.GoIndex)
	}
	if e.SopReleases != DefaultSopReleasesURL {
		t.Fatalf("expected default sop releases url, got %s", e.SopReleases)
	}
}
