package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/checkward/checkward/internal/ports"
)

// DefaultCacheDir returns the conventional local artifact cache root.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".m2", "repository")
}

// cachePath computes the conventional cache location of an artifact jar.
func cachePath(cacheDir, group, name, version string) string {
	groupPath := filepath.Join(strings.Split(group, ".")...)
	return filepath.Join(cacheDir, groupPath, name, version, name+"-"+version+".jar")
}

// fromCache checks the local cache for the requested version, without any
// network access. When the exact version is absent, sibling version
// directories are scanned and the highest is accepted as a degraded match.
func (r *Resolver) fromCache(ctx context.Context, group, name, requested string) (ResolvedArtifact, bool) {
	if r.cacheDir == "" || requested == "" {
		return ResolvedArtifact{}, false
	}

	exact := cachePath(r.cacheDir, group, name, requested)
	if fileExists(exact) {
		r.log.Debug(ctx, "artifact resolved from local cache", ports.F("file", exact))
		return ResolvedArtifact{Group: group, Name: name, Version: requested, File: exact}, true
	}

	best, bestVersion := bestCachedVersion(r.cacheDir, group, name)
	if best == "" {
		return ResolvedArtifact{}, false
	}

	r.log.Warn(ctx, "requested version not cached, using best available",
		ports.F("artifact", group+":"+name),
		ports.F("requested", requested),
		ports.F("using", bestVersion))
	return ResolvedArtifact{Group: group, Name: name, Version: bestVersion, File: best}, true
}

// bestCachedVersion scans the artifact's cache directory for version
// subdirectories containing the jar and returns the semver-highest one.
func bestCachedVersion(cacheDir, group, name string) (file, version string) {
	groupPath := filepath.Join(strings.Split(group, ".")...)
	artifactDir := filepath.Join(cacheDir, groupPath, name)

	entries, err := os.ReadDir(artifactDir)
	if err != nil {
		return "", ""
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := entry.Name()
		jar := filepath.Join(artifactDir, candidate, name+"-"+candidate+".jar")
		if !fileExists(jar) {
			continue
		}
		if version == "" || semver.Compare("v"+candidate, "v"+version) > 0 {
			file, version = jar, candidate
		}
	}
	return file, version
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
