package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonnouveau/sopmod/internal/artifact"
	"github.com/halcyonnouveau/sopmod/internal/config"
	"github.com/halcyonnouveau/sopmod/internal/paths"
	"github.com/halcyonnouveau/sopmod/internal/remote"
	"github.com/halcyonnouveau/sopmod/internal/testutil"
)

type cliEnv struct {
	layout paths.Layout
	env    map[string]string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	root := t.TempDir()
	e := &cliEnv{layout: paths.New(root), env: map[string]string{}}

	cwd := t.TempDir()
	origRoot, origGetenv, origGetwd := defaultRoot, getenv, getwd
	origStdin, origInteractive := stdin, isInteractive
	defaultRoot = func() (string, error) { return root, nil }
	getwd = func() (string, error) { return cwd, nil }
	getenv = func(key string) string { return e.env[key] }
	stdin = strings.NewReader("")
	isInteractive = func() bool { return false }
	t.Cleanup(func() {
		defaultRoot, getenv, getwd = origRoot, origGetenv, origGetwd
		stdin, isInteractive = origStdin, origInteractive
	})
	return e
}

func (e *cliEnv) installFake(t *testing.T, kind artifact.Kind, v string) string {
	t.Helper()
	bin := e.layout.Binary(kind, v)
	testutil.WriteExecutable(t, bin, "#!/bin/sh\n")
	return bin
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"sopmod"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

// releaseServer serves one sop release with a raw binary asset for the host platform.
func releaseServer(t *testing.T, e *cliEnv, tag string) *httptest.Server {
	t.Helper()
	platform, err := artifact.DetectPlatform()
	if err != nil {
		t.Skipf("host platform unsupported: %v", err)
	}
	triple, err := platform.Triple()
	require.NoError(t, err)

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	release := map[string]any{
		"tag_name": tag,
		"assets": []map[string]string{{
			"name":                 "sop-" + triple,
			"browser_download_url": server.URL + "/download/sop-" + triple,
		}},
	}
	mux.HandleFunc("/releases", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{release})
	})
	mux.HandleFunc("/releases/tags/"+tag, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(release)
	})
	mux.HandleFunc("/download/sop-"+triple, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("sop binary"))
	})
	e.env[remote.EnvSopReleasesURL] = server.URL + "/releases"
	return server
}

func TestListEmptyPrintsHints(t *testing.T) {
	newCLIEnv(t)

	stdout, _, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "go:\n  none installed; run `sopmod install go latest`")
	assert.Contains(t, stdout, "sop:\n  none installed; run `sopmod install sop latest`")
}

func TestListRejectsUnknownTool(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "list", "rust")
	require.Error(t, err)
}

func TestDefaultPairsInstalledRuntimeAndMarksList(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.23.2")
	e.installFake(t, artifact.Application, "0.5.0")
	e.installFake(t, artifact.Application, "0.6.0")

	stdout, _, err := runCLI(t, "default", "sop", "0.6.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ sop 0.6.0 is now the default")
	assert.Contains(t, stdout, "→ paired with go 1.23.2")
	assert.Contains(t, stdout, "export PATH=\""+e.layout.BinDir())

	cfg, err := config.Load(e.layout.ConfigPath())
	require.NoError(t, err)
	v, ok := cfg.Application()
	require.True(t, ok)
	assert.Equal(t, "0.6.0", v)
	require.NotNil(t, cfg.ApplicationPinned)
	assert.True(t, *cfg.ApplicationPinned)

	stdout, _, err = runCLI(t, "list", "sop")
	require.NoError(t, err)
	assert.Equal(t, "sop:\n  0.5.0\n  0.6.0 (default)\n", stdout)
}

func TestDefaultOmitsPathHintWhenBinDirOnPath(t *testing.T) {
	e := newCLIEnv(t)
	e.env["PATH"] = strings.Join([]string{"/usr/bin", e.layout.BinDir()}, string(os.PathListSeparator))
	e.installFake(t, artifact.Runtime, "1.23.2")
	e.installFake(t, artifact.Application, "0.6.0")

	stdout, _, err := runCLI(t, "default", "sop", "0.6.0")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "export PATH")
}

func TestDefaultDeclinedLeavesStateUnchanged(t *testing.T) {
	e := newCLIEnv(t)
	stdin = strings.NewReader("n\n")

	stdout, stderr, err := runCLI(t, "default", "sop", "0.7.0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "sop 0.7.0 is not installed. Install it? [Y/n]: ")
	assert.Contains(t, stdout, "sop 0.7.0 was not installed; default unchanged")

	_, err = os.Stat(e.layout.ConfigPath())
	assert.True(t, os.IsNotExist(err), "config must not be written")
	_, err = os.Lstat(e.layout.ActiveLink())
	assert.True(t, os.IsNotExist(err), "link must not be created")
}

func TestDefaultRejectsRuntime(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "default", "go", "1.23.2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "managed automatically")
}

func TestWhichReportsDefaultPath(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.23.2")
	bin := e.installFake(t, artifact.Application, "0.6.0")
	_, _, err := runCLI(t, "default", "sop", "0.6.0")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "which", "sop")
	require.NoError(t, err)
	assert.Equal(t, bin+"\n", stdout)
}

func TestWhichRuntimeWithoutDefaultUsesNewest(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.22.0")
	newest := e.installFake(t, artifact.Runtime, "1.23.2")

	stdout, stderr, err := runCLI(t, "which", "go")
	require.NoError(t, err)
	assert.Equal(t, newest+"\n", stdout)
	assert.Contains(t, stderr, "no default go version set; using the newest installed (1.23.2)")
	assert.Contains(t, stderr, "installed go versions: 1.22.0, 1.23.2")
}

func TestWhichApplicationWithoutDefaultFails(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Application, "0.6.0")

	_, _, err := runCLI(t, "which", "sop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sopmod default sop 0.6.0")
}

func TestWhichHonorsProjectFile(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.23.2")
	want := e.installFake(t, artifact.Application, "0.5.1")
	e.installFake(t, artifact.Application, "0.6.0")
	_, _, err := runCLI(t, "default", "sop", "0.6.0")
	require.NoError(t, err)

	project := t.TempDir()
	testutil.WriteProjectFile(t, project, "sop = \"0.5\"\n")
	nested := filepath.Join(project, "cmd", "tool")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	origGetwd := getwd
	getwd = func() (string, error) { return nested, nil }
	t.Cleanup(func() { getwd = origGetwd })

	stdout, stderr, err := runCLI(t, "which", "sop")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", stdout)
	assert.Contains(t, stderr, "sop 0.5.1 requested by")
}

func TestRemoveDefaultClearsIt(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.23.2")
	e.installFake(t, artifact.Application, "0.6.0")
	_, _, err := runCLI(t, "default", "sop", "0.6.0")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "remove", "sop", "0.6.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ sop 0.6.0 removed")
	assert.Contains(t, stdout, "was the default")

	_, err = os.Stat(e.layout.VersionDir(artifact.Application, "0.6.0"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingVersionFails(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "remove", "go", "1.19.0")
	require.Error(t, err)
}

func TestInstallFirstApplicationBecomesDefault(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.23.2")
	releaseServer(t, e, "v0.6.0")

	stdout, stderr, err := runCLI(t, "install", "sop", "0.6.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ sop 0.6.0 installed")
	assert.Contains(t, stdout, "first installed version and is now the default")
	assert.Contains(t, stdout, "→ paired with go 1.23.2")
	assert.Contains(t, stderr, "Downloading sop 0.6.0")

	data, err := os.ReadFile(e.layout.Binary(artifact.Application, "0.6.0"))
	require.NoError(t, err)
	assert.Equal(t, "sop binary", string(data))

	stdout, _, err = runCLI(t, "install", "sop", "0.6.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sop 0.6.0 is already installed")
}

func TestInstallWarnsWhenNoCompatibleRuntime(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.23.2")
	e.installFake(t, artifact.Application, "0.5.0")
	_, _, err := runCLI(t, "default", "sop", "0.5.0")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(e.layout.VersionDir(artifact.Runtime, "1.23.2")))
	e.installFake(t, artifact.Runtime, "1.20.0")
	releaseServer(t, e, "v0.6.0")

	stdout, stderr, err := runCLI(t, "install", "sop", "0.6.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ sop 0.6.0 installed")
	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, stderr, "sopmod install go 1.21")
}

func TestUpdateReportsAlreadyLatest(t *testing.T) {
	e := newCLIEnv(t)
	e.installFake(t, artifact.Runtime, "1.23.2")
	e.installFake(t, artifact.Application, "0.6.0")
	releaseServer(t, e, "v0.6.0")
	_, _, err := runCLI(t, "default", "sop", "latest")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "update", "sop")
	require.NoError(t, err)
	assert.Equal(t, "✓ sop 0.6.0 is already the latest\n", stdout)
}

func TestInstallRejectsBadSpecifier(t *testing.T) {
	newCLIEnv(t)

	_, _, err := runCLI(t, "install", "go", "one.two")
	require.Error(t, err)
}
