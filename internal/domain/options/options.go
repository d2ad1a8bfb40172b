// Package options holds the user-facing knobs of a check run, merged from
// an optional TOML file, environment overrides, and command-line flags
// (flags win, applied by the CLI layer).
package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Options configures one check run.
type Options struct {
	Processors             []string `toml:"processors"`
	CheckerVersion         string   `toml:"checker_version"`
	ExtraArgs              []string `toml:"extra_args"`
	Skip                   bool     `toml:"skip"`
	ProcOnly               bool     `toml:"proc_only"`
	FailOnError            bool     `toml:"fail_on_error"`
	ExcludeTestSources     bool     `toml:"exclude_test_sources"`
	SuppressLombokWarnings bool     `toml:"suppress_lombok_warnings"`
	Executable             string   `toml:"executable"`
	RepositoryURL          string   `toml:"repository_url"`
	CacheDir               string   `toml:"cache_dir"`
}

// Default returns the baseline options: process-only compilation against
// javac, failing the build on checker errors.
func Default() Options {
	return Options{
		ProcOnly:               true,
		FailOnError:            true,
		SuppressLombokWarnings: true,
		Executable:             "javac",
	}
}

// LoadFile overlays a TOML options file on top of opts. A missing file is
// not an error; the input is returned unchanged.
func LoadFile(opts Options, path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read options file: %w", err)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}
	return opts, nil
}

// envPrefix scopes environment overrides.
const envPrefix = "CHECKWARD_"

// ApplyEnv overlays CHECKWARD_* environment variables on top of opts.
func ApplyEnv(opts Options) Options {
	if v, ok := lookup("PROCESSORS"); ok {
		opts.Processors = splitList(v)
	}
	if v, ok := lookup("CHECKER_VERSION"); ok {
		opts.CheckerVersion = v
	}
	if v, ok := lookup("EXECUTABLE"); ok {
		opts.Executable = v
	}
	if v, ok := lookup("REPOSITORY_URL"); ok {
		opts.RepositoryURL = v
	}
	if v, ok := lookup("CACHE_DIR"); ok {
		opts.CacheDir = v
	}
	if v, ok := lookupBool("SKIP"); ok {
		opts.Skip = v
	}
	if v, ok := lookupBool("PROC_ONLY"); ok {
		opts.ProcOnly = v
	}
	if v, ok := lookupBool("FAIL_ON_ERROR"); ok {
		opts.FailOnError = v
	}
	return opts
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	return v, ok && v != ""
}

func lookupBool(key string) (value, ok bool) {
	raw, present := lookup(key)
	if !present {
		return false, false
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return parsed, true
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
