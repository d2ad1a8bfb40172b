package invoke

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Reference files keep long classpaths and source lists off the command
// line, where OS argument-length limits would truncate them. They are
// created per run and must be removed on every exit path by the caller;
// runs can be long-lived, so process-exit cleanup is not a substitute.

// WriteClasspathFile writes the classpath to a temporary file in compiler
// argument-file syntax (`-cp <classpath>`) and returns its path.
func WriteClasspathFile(prefix, classpath string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*.classpath")
	if err != nil {
		return "", fmt.Errorf("failed to create classpath file: %w", err)
	}

	if _, err := fmt.Fprintf(f, "-cp %s\n", wrapArg(classpath)); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write classpath file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// WriteSourceListFile writes one absolute source path per line and returns
// the file's path.
func WriteSourceListFile(prefix string, sources []string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*.src_files")
	if err != nil {
		return "", fmt.Errorf("failed to create source list file: %w", err)
	}

	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			abs = src
		}
		if _, err := fmt.Fprintln(f, abs); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("failed to write source list file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// Ref converts a reference-file path into the argument-file token the
// compiler expects.
func Ref(path string) string {
	return "@" + path
}

// wrapArg quotes an argument containing spaces, escaping embedded quotes.
func wrapArg(arg string) string {
	if !strings.Contains(arg, " ") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}
