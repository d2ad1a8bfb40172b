package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkward/checkward/internal/adapters/logging"
	"github.com/checkward/checkward/internal/domain/project"
)

func writeJar(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0o644))
	return path
}

func seedCache(t *testing.T, cacheDir, group, name, version string) string {
	t.Helper()
	return writeJar(t, cachePath(cacheDir, group, name, version))
}

func projectWithDependency(t *testing.T, dep project.Artifact) *project.Context {
	t.Helper()
	descriptor := fmt.Sprintf(
		"dependencies:\n  - {group: %s, name: %s, version: %q, file: %q}\n",
		dep.Group, dep.Name, dep.Version, dep.File)
	ctx, err := project.Parse([]byte(descriptor), t.TempDir())
	require.NoError(t, err)
	return ctx
}

func emptyProject(t *testing.T) *project.Context {
	t.Helper()
	ctx, err := project.Parse([]byte("name: bare\n"), t.TempDir())
	require.NoError(t, err)
	return ctx
}

// failingTransport fails the test on any HTTP request.
type failingTransport struct {
	t *testing.T
}

func (f *failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.t.Errorf("remote tier must not be contacted, got request for %s", req.URL)
	return nil, fmt.Errorf("forbidden")
}

func TestResolver_DeclaredDependencyShortCircuitsLaterTiers(t *testing.T) {
	t.Parallel()

	jar := writeJar(t, filepath.Join(t.TempDir(), "checker-3.49.0.jar"))
	p := projectWithDependency(t, project.Artifact{
		Group: GroupCheckerFramework, Name: ArtifactChecker, Version: "3.49.0", File: jar,
	})

	remote := NewRemoteRepository("http://example.invalid")
	remote.client = &http.Client{Transport: &failingTransport{t: t}}

	r := NewResolver(p, logging.NewNopLogger(),
		WithCacheDir(filepath.Join(t.TempDir(), "no-such-cache")),
		WithRemote(remote))

	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")

	require.True(t, got.Found())
	assert.Equal(t, jar, got.File)
	// The project-pinned version wins over the requested one.
	assert.Equal(t, "3.49.0", got.Version)
}

func TestResolver_DependencyWithoutFileFallsThrough(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	cached := seedCache(t, cacheDir, GroupCheckerFramework, ArtifactChecker, "3.53.0")

	p := projectWithDependency(t, project.Artifact{
		Group: GroupCheckerFramework, Name: ArtifactChecker, Version: "3.53.0",
	})

	r := NewResolver(p, logging.NewNopLogger(), WithCacheDir(cacheDir))
	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")

	require.True(t, got.Found())
	assert.Equal(t, cached, got.File)
}

func TestResolver_CacheExactVersion(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	cached := seedCache(t, cacheDir, GroupCheckerFramework, ArtifactCheckerQual, "3.53.0")

	r := NewResolver(emptyProject(t), logging.NewNopLogger(), WithCacheDir(cacheDir))
	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactCheckerQual, "3.53.0")

	require.True(t, got.Found())
	assert.Equal(t, cached, got.File)
	assert.Equal(t, "3.53.0", got.Version)
}

func TestResolver_CacheBestAvailableWhenExactMissing(t *testing.T) {
	t.Parallel()

	cacheDir := t.TempDir()
	seedCache(t, cacheDir, GroupCheckerFramework, ArtifactCheckerQual, "3.40.0")
	newest := seedCache(t, cacheDir, GroupCheckerFramework, ArtifactCheckerQual, "3.42.0")

	r := NewResolver(emptyProject(t), logging.NewNopLogger(), WithCacheDir(cacheDir))
	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactCheckerQual, "3.53.0")

	require.True(t, got.Found())
	assert.Equal(t, newest, got.File)
	assert.Equal(t, "3.42.0", got.Version)
}

func TestResolver_RemoteTier(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/org/checkerframework/checker/3.53.0/checker-3.53.0.jar", req.URL.Path)
		_, _ = w.Write([]byte("PK"))
	}))
	defer server.Close()

	cacheDir := t.TempDir()
	r := NewResolver(emptyProject(t), logging.NewNopLogger(),
		WithCacheDir(cacheDir),
		WithRemote(NewRemoteRepository(server.URL)))

	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")

	require.True(t, got.Found())
	assert.Equal(t, cachePath(cacheDir, GroupCheckerFramework, ArtifactChecker, "3.53.0"), got.File)
	data, err := os.ReadFile(got.File)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data))
}

func TestResolver_RemoteFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r := NewResolver(emptyProject(t), logging.NewNopLogger(),
		WithCacheDir(t.TempDir()),
		WithRemote(NewRemoteRepository(server.URL)))

	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")
	assert.False(t, got.Found())
}

type staticLocator struct {
	locations []string
}

func (s *staticLocator) Locations() []string { return s.locations }

func TestResolver_MarkerTierOnlyForDesignatedArtifact(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()
	checkerJar := writeJar(t, filepath.Join(dist, "checker-3.53.0.jar"))
	qualJar := writeJar(t, filepath.Join(dist, "checker-qual-3.53.0.jar"))
	locator := &staticLocator{locations: []string{qualJar, checkerJar}}

	r := NewResolver(emptyProject(t), logging.NewNopLogger(),
		WithCacheDir(filepath.Join(t.TempDir(), "no-such-cache")),
		WithMarkerLocator(locator))

	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")
	require.True(t, got.Found())
	assert.Equal(t, checkerJar, got.File)

	// checker-qual is not the designated artifact, so the marker tier
	// must not serve it even though the jar is right there.
	got = r.Resolve(context.Background(), GroupCheckerFramework, ArtifactCheckerQual, "3.53.0")
	assert.False(t, got.Found())
}

func TestResolver_MarkerDecodesFileURLs(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()
	jar := writeJar(t, filepath.Join(dist, "checker-3.53.0.jar"))
	locator := &staticLocator{locations: []string{"file:" + jar}}

	r := NewResolver(emptyProject(t), logging.NewNopLogger(),
		WithCacheDir(filepath.Join(t.TempDir(), "no-such-cache")),
		WithMarkerLocator(locator))

	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")
	require.True(t, got.Found())
	assert.Equal(t, jar, got.File)
}

func TestResolver_ExhaustionYieldsAbsent(t *testing.T) {
	t.Parallel()

	r := NewResolver(emptyProject(t), logging.NewNopLogger(),
		WithCacheDir(filepath.Join(t.TempDir(), "no-such-cache")))

	got := r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")
	assert.False(t, got.Found())
	assert.Equal(t, "3.53.0", got.Version)
}

func TestResolver_MemoizesPerRun(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r := NewResolver(emptyProject(t), logging.NewNopLogger(),
		WithCacheDir(t.TempDir()),
		WithRemote(NewRemoteRepository(server.URL)))

	_ = r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")
	_ = r.Resolve(context.Background(), GroupCheckerFramework, ArtifactChecker, "3.53.0")

	assert.Equal(t, 1, calls, "each tier runs at most once per artifact per run")
}

func TestCheckerVersionFromDependencies(t *testing.T) {
	t.Parallel()

	p := projectWithDependency(t, project.Artifact{
		Group: GroupCheckerFramework, Name: ArtifactCheckerQual, Version: "3.42.0",
	})
	v, ok := CheckerVersionFromDependencies(p)
	require.True(t, ok)
	assert.Equal(t, "3.42.0", v)

	_, ok = CheckerVersionFromDependencies(emptyProject(t))
	assert.False(t, ok)
}

func TestDecodeLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/plain/path/checker.jar", "/plain/path/checker.jar"},
		{"file:/opt/tool/lib/checker.jar", "/opt/tool/lib/checker.jar"},
		{"file:///opt/tool/lib/checker.jar", "/opt/tool/lib/checker.jar"},
		{"file:/opt/my%20tool/checker.jar", "/opt/my tool/checker.jar"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeLocation(tt.in))
		})
	}
}
