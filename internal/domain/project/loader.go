package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// descriptor mirrors the on-disk YAML project file.
type descriptor struct {
	Name            string            `yaml:"name"`
	Packaging       string            `yaml:"packaging"`
	BaseDir         string            `yaml:"basedir"`
	BuildDir        string            `yaml:"build_dir"`
	SourceRoots     []string          `yaml:"source_roots"`
	TestSourceRoots []string          `yaml:"test_source_roots"`
	Classpath       []string          `yaml:"classpath"`
	Properties      map[string]string `yaml:"properties"`
	Dependencies    []Artifact        `yaml:"dependencies"`
	Plugins         []Plugin          `yaml:"plugins"`
	Toolchain       *struct {
		JDK *struct {
			Version string `yaml:"version"`
			Home    string `yaml:"home"`
		} `yaml:"jdk"`
	} `yaml:"toolchain"`
}

// Load reads a project descriptor and returns an immutable Context.
// Relative directories resolve against the descriptor's own directory.
func Load(path string) (*Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project descriptor: %w", err)
	}

	var d descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse project descriptor %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	return build(&d, filepath.Dir(abs))
}

// Parse builds a Context from in-memory descriptor bytes, resolving
// relative paths against baseDir. Used by tests and embedding callers.
func Parse(data []byte, baseDir string) (*Context, error) {
	var d descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse project descriptor: %w", err)
	}
	return build(&d, baseDir)
}

func build(d *descriptor, defaultBase string) (*Context, error) {
	baseDir := d.BaseDir
	if baseDir == "" {
		baseDir = defaultBase
	}
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(defaultBase, baseDir)
	}

	buildDir := d.BuildDir
	if buildDir == "" {
		buildDir = "target"
	}
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(baseDir, buildDir)
	}

	packaging := d.Packaging
	if packaging == "" {
		packaging = "jar"
	}

	c := &Context{
		name:            d.Name,
		packaging:       packaging,
		baseDir:         baseDir,
		buildDir:        buildDir,
		sourceRoots:     resolveAll(baseDir, d.SourceRoots),
		testSourceRoots: resolveAll(baseDir, d.TestSourceRoots),
		classpath:       resolveAll(baseDir, d.Classpath),
		properties:      d.Properties,
		dependencies:    d.Dependencies,
		plugins:         d.Plugins,
	}
	if c.properties == nil {
		c.properties = map[string]string{}
	}

	if d.Toolchain != nil && d.Toolchain.JDK != nil {
		c.toolchain = &jdkToolchain{
			version: d.Toolchain.JDK.Version,
			home:    d.Toolchain.JDK.Home,
		}
	}

	return c, nil
}

func resolveAll(baseDir string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		out = append(out, p)
	}
	return out
}
