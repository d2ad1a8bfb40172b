package project

import (
	"os"
	"path/filepath"
	"runtime"
)

// Toolchain is an optionally configured JDK. Absence of a capability is a
// first-class answer: both accessors report whether the value is available.
type Toolchain interface {
	// Version returns the declared toolchain version, if one was configured.
	Version() (string, bool)

	// FindTool returns the path of a tool inside the toolchain, if it exists.
	FindTool(name string) (string, bool)
}

// jdkToolchain is a Toolchain backed by the descriptor's jdk section.
type jdkToolchain struct {
	version string
	home    string
}

func (t *jdkToolchain) Version() (string, bool) {
	if t.version == "" {
		return "", false
	}
	return t.version, true
}

func (t *jdkToolchain) FindTool(name string) (string, bool) {
	if t.home == "" {
		return "", false
	}
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(t.home, "bin", name)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}

var _ Toolchain = (*jdkToolchain)(nil)
