// Package resolve locates support artifacts through an ordered fallback
// chain: declared project dependencies, the local artifact cache, remote
// retrieval, and (for the checker artifact only) the tool's own
// distribution. Every tier failure is non-fatal; only exhausting the chain
// yields an absent artifact.
package resolve

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/checkward/checkward/internal/domain/project"
	"github.com/checkward/checkward/internal/ports"
)

// Checker Framework coordinates.
const (
	GroupCheckerFramework = "org.checkerframework"
	ArtifactChecker       = "checker"
	ArtifactCheckerQual   = "checker-qual"
	ArtifactCompiler      = "compiler"
	ArtifactAnnotatedJDK  = "jdk8"

	// DefaultCheckerVersion is used when neither the options nor the
	// declared dependencies pin a version.
	DefaultCheckerVersion = "3.53.0"
)

// ResolvedArtifact is the immutable result of one resolution.
type ResolvedArtifact struct {
	Group   string
	Name    string
	Version string
	File    string
}

// Found returns true if a usable file location was resolved.
func (r ResolvedArtifact) Found() bool {
	return r.File != ""
}

// Resolver resolves artifacts for a single run. Results are memoized per
// (group, name) so each tier runs at most once per artifact per run; the
// Resolver itself is run-scoped and never shared between builds.
type Resolver struct {
	project  *project.Context
	log      ports.Logger
	cacheDir string
	remote   *RemoteRepository
	marker   MarkerLocator
	memo     *lru.Cache[string, ResolvedArtifact]
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCacheDir sets the local artifact cache root (default: ~/.m2/repository).
func WithCacheDir(dir string) Option {
	return func(r *Resolver) {
		r.cacheDir = dir
	}
}

// WithRemote enables the remote resolution tier.
func WithRemote(remote *RemoteRepository) Option {
	return func(r *Resolver) {
		r.remote = remote
	}
}

// WithMarkerLocator sets the distribution locator used as the final tier
// for the checker artifact.
func WithMarkerLocator(m MarkerLocator) Option {
	return func(r *Resolver) {
		r.marker = m
	}
}

// NewResolver creates a run-scoped Resolver.
func NewResolver(p *project.Context, log ports.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		project:  p,
		log:      log,
		cacheDir: DefaultCacheDir(),
	}
	for _, opt := range opts {
		opt(r)
	}
	// Never fails for a positive size.
	r.memo, _ = lru.New[string, ResolvedArtifact](32)
	return r
}

// Resolve locates one artifact, trying each tier in order and stopping at
// the first hit. A project-pinned version always wins over the requested
// one. Returns an artifact with an empty File when every tier failed.
func (r *Resolver) Resolve(ctx context.Context, group, name, requested string) ResolvedArtifact {
	key := group + ":" + name
	if cached, ok := r.memo.Get(key); ok {
		return cached
	}

	resolved := r.resolve(ctx, group, name, requested)
	r.memo.Add(key, resolved)
	return resolved
}

func (r *Resolver) resolve(ctx context.Context, group, name, requested string) ResolvedArtifact {
	if a, ok := r.fromDependencies(ctx, group, name); ok {
		return a
	}
	if a, ok := r.fromCache(ctx, group, name, requested); ok {
		return a
	}
	if a, ok := r.fromRemote(ctx, group, name, requested); ok {
		return a
	}
	if a, ok := r.fromMarker(ctx, group, name, requested); ok {
		return a
	}

	r.log.Warn(ctx, "artifact not found in any tier",
		ports.F("artifact", fmt.Sprintf("%s:%s:%s", group, name, requested)))
	return ResolvedArtifact{Group: group, Name: name, Version: requested}
}

// fromDependencies scans the project's declared dependency set for an exact
// group/name match with a materialized file.
func (r *Resolver) fromDependencies(ctx context.Context, group, name string) (ResolvedArtifact, bool) {
	dep, ok := r.project.FindArtifact(group, name)
	if !ok || !dep.Materialized() {
		return ResolvedArtifact{}, false
	}

	r.log.Debug(ctx, "artifact resolved from declared dependencies",
		ports.F("artifact", dep.Coordinate()))
	return ResolvedArtifact{Group: group, Name: name, Version: dep.Version, File: dep.File}, true
}

// fromRemote asks the remote repository to materialize the artifact into
// the local cache. Any failure is logged and skipped, never propagated.
func (r *Resolver) fromRemote(ctx context.Context, group, name, requested string) (ResolvedArtifact, bool) {
	if r.remote == nil || requested == "" {
		return ResolvedArtifact{}, false
	}

	dest := cachePath(r.cacheDir, group, name, requested)
	if err := r.remote.Fetch(ctx, group, name, requested, dest); err != nil {
		r.log.Warn(ctx, "remote resolution failed",
			ports.F("artifact", fmt.Sprintf("%s:%s:%s", group, name, requested)),
			ports.F("error", err.Error()))
		return ResolvedArtifact{}, false
	}

	r.log.Debug(ctx, "artifact resolved from remote repository", ports.F("file", dest))
	return ResolvedArtifact{Group: group, Name: name, Version: requested, File: dest}, true
}

// fromMarker consults the tool's own distribution, but only for the one
// designated artifact that is known to ship with it.
func (r *Resolver) fromMarker(ctx context.Context, group, name, requested string) (ResolvedArtifact, bool) {
	if r.marker == nil || group != GroupCheckerFramework || name != ArtifactChecker {
		return ResolvedArtifact{}, false
	}

	file, ok := locateInDistribution(r.marker, name)
	if !ok {
		return ResolvedArtifact{}, false
	}

	r.log.Debug(ctx, "artifact resolved from tool distribution", ports.F("file", file))
	return ResolvedArtifact{Group: group, Name: name, Version: requested, File: file}, true
}

// CheckerVersionFromDependencies infers the checker version from a declared
// checker-qual dependency. Returns false when the project does not declare one.
func CheckerVersionFromDependencies(p *project.Context) (string, bool) {
	if dep, ok := p.FindArtifact(GroupCheckerFramework, ArtifactCheckerQual); ok && dep.Version != "" {
		return dep.Version, true
	}
	return "", false
}
