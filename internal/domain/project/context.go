// Package project provides a read-only view of the build being checked:
// source roots, declared dependencies, build plugins, properties and an
// optional JDK toolchain, loaded once from a YAML descriptor.
package project

// Context is the read-only build context. It is constructed by Load and
// never mutated afterwards; a fresh Context is loaded per run so concurrent
// builds of different projects share no state.
type Context struct {
	name            string
	packaging       string
	baseDir         string
	buildDir        string
	sourceRoots     []string
	testSourceRoots []string
	classpath       []string
	properties      map[string]string
	dependencies    []Artifact
	plugins         []Plugin
	toolchain       Toolchain
}

// Name returns the project name.
func (c *Context) Name() string {
	return c.name
}

// Packaging returns the declared packaging type ("jar", "pom", ...).
func (c *Context) Packaging() string {
	return c.packaging
}

// BaseDir returns the absolute project root directory.
func (c *Context) BaseDir() string {
	return c.baseDir
}

// BuildDir returns the absolute build output directory.
func (c *Context) BuildDir() string {
	return c.buildDir
}

// SourceRoots returns the ordered main source root directories.
func (c *Context) SourceRoots() []string {
	return c.sourceRoots
}

// TestSourceRoots returns the ordered test source root directories.
func (c *Context) TestSourceRoots() []string {
	return c.testSourceRoots
}

// Classpath returns the compile classpath elements.
func (c *Context) Classpath() []string {
	return c.classpath
}

// Property returns the named build property.
func (c *Context) Property(key string) (string, bool) {
	v, ok := c.properties[key]
	return v, ok
}

// Dependencies returns the declared dependency artifacts.
func (c *Context) Dependencies() []Artifact {
	return c.dependencies
}

// FindArtifact returns the first declared dependency matching group and name.
func (c *Context) FindArtifact(group, name string) (Artifact, bool) {
	for _, a := range c.dependencies {
		if a.Group == group && a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// Plugins returns the declared build plugins.
func (c *Context) Plugins() []Plugin {
	return c.plugins
}

// FindPlugin returns the first declared plugin matching group and name.
func (c *Context) FindPlugin(group, name string) (Plugin, bool) {
	for _, p := range c.plugins {
		if p.Group == group && p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// Toolchain returns the configured JDK toolchain, or nil when none is declared.
func (c *Context) Toolchain() Toolchain {
	return c.toolchain
}
