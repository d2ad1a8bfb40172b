// Package lombok detects the Lombok preprocessor in a project, locates the
// delombok output that analysis should target instead of original sources,
// and injects the diagnostic suppression its generated code needs.
package lombok

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/checkward/checkward/internal/domain/project"
	"github.com/checkward/checkward/internal/ports"
)

const (
	groupLombok    = "org.projectlombok"
	artifactLombok = "lombok"
	pluginLombok   = "lombok-maven-plugin"

	goalDelombok     = "delombok"
	goalTestDelombok = "test-delombok"

	configOutputDirectory = "outputDirectory"

	// Build-variable placeholders accepted in configured output paths.
	placeholderBuildDir = "${project.build.directory}"
	placeholderBaseDir  = "${project.basedir}"

	// testDelombokConvention is the conventional test output directory,
	// relative to the build directory, used when no test-delombok
	// execution is configured.
	testDelombokConvention = "delombok-test"

	suppressFlag = "-AsuppressWarnings"

	// SuppressionKey silences the diagnostic that Lombok-generated code
	// trips by placing type annotations after modifiers.
	SuppressionKey = "type.anno.before.modifier"
)

// State is the per-run Lombok detection result. It is computed once and
// reused downstream; detection samples mutable project state and must not
// be repeated mid-run.
type State struct {
	Used          bool
	OutputDir     string
	TestOutputDir string
}

// Detect computes the Lombok state for one run.
func Detect(ctx context.Context, p *project.Context, log ports.Logger) State {
	if !isUsed(p) {
		return State{}
	}

	log.Info(ctx, "Lombok detected, checking for delombok output directory")

	state := State{Used: true}

	if dir, ok := findOutputDir(p); ok {
		if dirExists(dir) {
			log.Info(ctx, "found delombok output directory", ports.F("dir", dir))
			state.OutputDir = dir
		} else {
			log.Warn(ctx, "delombok output directory does not exist; checking original sources, which may contain Lombok annotations",
				ports.F("dir", dir))
		}
	} else {
		log.Warn(ctx, "Lombok is used but no delombok output directory is configured; checking original sources")
	}

	if dir, ok := findTestOutputDir(p); ok && dirExists(dir) {
		state.TestOutputDir = dir
	}

	return state
}

// EffectiveSourceRoots substitutes the delombok output directories for the
// original roots when they exist, per the cached state.
func (s State) EffectiveSourceRoots(main, test []string) (effectiveMain, effectiveTest []string) {
	effectiveMain, effectiveTest = main, test
	if s.OutputDir != "" {
		effectiveMain = []string{s.OutputDir}
	}
	if s.TestOutputDir != "" {
		effectiveTest = []string{s.TestOutputDir}
	}
	return effectiveMain, effectiveTest
}

// isUsed reports whether the project declares the Lombok dependency or its
// companion build plugin.
func isUsed(p *project.Context) bool {
	if _, ok := p.FindArtifact(groupLombok, artifactLombok); ok {
		return true
	}
	_, ok := p.FindPlugin(groupLombok, pluginLombok)
	return ok
}

// findOutputDir reads the configured delombok output directory: the
// delombok goal execution wins, then the plugin-level configuration.
func findOutputDir(p *project.Context) (string, bool) {
	plugin, ok := p.FindPlugin(groupLombok, pluginLombok)
	if !ok {
		return "", false
	}

	for _, exec := range plugin.Executions {
		if !exec.HasGoal(goalDelombok) {
			continue
		}
		if raw := exec.Config(configOutputDirectory); raw != "" {
			return resolvePath(raw, p.BaseDir(), p.BuildDir()), true
		}
	}

	if raw := plugin.Config(configOutputDirectory); raw != "" {
		return resolvePath(raw, p.BaseDir(), p.BuildDir()), true
	}

	return "", false
}

// findTestOutputDir locates the test delombok output: a test-delombok goal
// execution wins; otherwise the conventional directory under the build
// directory is used.
func findTestOutputDir(p *project.Context) (string, bool) {
	if plugin, ok := p.FindPlugin(groupLombok, pluginLombok); ok {
		for _, exec := range plugin.Executions {
			if !exec.HasGoal(goalTestDelombok) {
				continue
			}
			if raw := exec.Config(configOutputDirectory); raw != "" {
				return resolvePath(raw, p.BaseDir(), p.BuildDir()), true
			}
		}
	}
	return filepath.Join(p.BuildDir(), testDelombokConvention), true
}

// resolvePath substitutes build-variable placeholders and resolves
// non-absolute results against the project root.
func resolvePath(raw, baseDir, buildDir string) string {
	path := strings.ReplaceAll(raw, placeholderBuildDir, buildDir)
	path = strings.ReplaceAll(path, placeholderBaseDir, baseDir)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return path
}

// MergeSuppression ensures the generated-code suppression key is present in
// the extra-argument list exactly once: an existing suppression argument is
// extended in place, an argument that already carries the key is left
// untouched, and one is appended when none exists.
func MergeSuppression(args []string) []string {
	for i, arg := range args {
		if !strings.HasPrefix(arg, suppressFlag) {
			continue
		}
		if strings.Contains(arg, SuppressionKey) {
			return args
		}
		out := make([]string, len(args))
		copy(out, args)
		out[i] = arg + "," + SuppressionKey
		return out
	}
	return append(append([]string{}, args...), suppressFlag+"="+SuppressionKey)
}

// builderCheckers are processors whose diagnostics depend on Lombok
// emitting @Generated annotations.
var builderCheckers = []string{"ObjectConstructionChecker", "CalledMethodsChecker"}

// HasBuilderChecker reports whether any configured processor inspects
// Lombok builder usage.
func HasBuilderChecker(processors []string) bool {
	for _, p := range processors {
		for _, c := range builderCheckers {
			if strings.Contains(p, c) {
				return true
			}
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
