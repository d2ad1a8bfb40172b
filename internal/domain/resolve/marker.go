package resolve

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MarkerLocator reports on-disk locations that may back the tool's own
// checker distribution. Locations may be file: URLs with percent-encoding
// and are decoded before use.
type MarkerLocator interface {
	Locations() []string
}

// DistLocator locates jars shipped alongside the tool itself: a lib/
// directory under CHECKWARD_HOME, or next to the running executable.
type DistLocator struct{}

// NewDistLocator creates a DistLocator.
func NewDistLocator() *DistLocator {
	return &DistLocator{}
}

// Locations returns candidate jar paths from the tool's distribution.
func (d *DistLocator) Locations() []string {
	var dirs []string
	if home := os.Getenv("CHECKWARD_HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, "lib"))
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), "lib"))
	}

	var out []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".jar") {
				out = append(out, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return out
}

var _ MarkerLocator = (*DistLocator)(nil)

// DecodeLocation normalizes a location that may be a file: URL: the scheme
// prefix is stripped and percent-encoding decoded before treating it as a
// filesystem path.
func DecodeLocation(loc string) string {
	loc = strings.TrimPrefix(loc, "file://")
	loc = strings.TrimPrefix(loc, "file:")
	if decoded, err := url.PathUnescape(loc); err == nil {
		loc = decoded
	}
	return loc
}

// locateInDistribution picks the first existing distribution jar whose base
// name belongs to the artifact: either "<name>.jar" or "<name>-<version>.jar".
// The version must start with a digit so "checker" never matches
// "checker-qual-*.jar".
func locateInDistribution(marker MarkerLocator, name string) (string, bool) {
	for _, loc := range marker.Locations() {
		path := DecodeLocation(loc)
		if !distJarMatches(filepath.Base(path), name) {
			continue
		}
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

func distJarMatches(base, name string) bool {
	if base == name+".jar" {
		return true
	}
	rest, ok := strings.CutPrefix(base, name+"-")
	if !ok || rest == "" {
		return false
	}
	return rest[0] >= '0' && rest[0] <= '9'
}
