package project

import (
	"fmt"
	"os"
)

// Artifact is a declared dependency with an optional materialized file.
type Artifact struct {
	Group   string `yaml:"group"`
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	File    string `yaml:"file,omitempty"`
}

// Coordinate returns the group:name:version form of the artifact.
func (a Artifact) Coordinate() string {
	return fmt.Sprintf("%s:%s:%s", a.Group, a.Name, a.Version)
}

// Materialized returns true if the artifact has a file that exists on disk.
func (a Artifact) Materialized() bool {
	if a.File == "" {
		return false
	}
	info, err := os.Stat(a.File)
	return err == nil && !info.IsDir()
}
