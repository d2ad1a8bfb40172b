package invoke

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/checkward/checkward/internal/domain/compat"
	"github.com/checkward/checkward/internal/domain/lombok"
	"github.com/checkward/checkward/internal/domain/options"
	"github.com/checkward/checkward/internal/domain/project"
	"github.com/checkward/checkward/internal/domain/resolve"
	"github.com/checkward/checkward/internal/domain/version"
	"github.com/checkward/checkward/internal/ports"
)

// refFilePrefix names the temporary reference files of a run.
const refFilePrefix = "checkward"

// Result is the outcome of one invocation.
type Result struct {
	// Skipped is true when no compiler was launched; Reason says why.
	Skipped bool
	Reason  string
	// ExitCode is the compiler's exit code when one ran.
	ExitCode int
}

// Planner assembles and executes one checker compiler invocation against a
// loaded project. A Planner is run-scoped: construct one per check, execute
// it once, discard it.
type Planner struct {
	project  *project.Context
	opts     options.Options
	runner   ports.ProcessRunner
	resolver *resolve.Resolver
	detector *version.Detector
	log      ports.Logger
	runID    string
}

// NewPlanner creates a run-scoped Planner. All log output of the run carries
// a short random run identifier so interleaved builds stay distinguishable.
func NewPlanner(p *project.Context, opts options.Options, runner ports.ProcessRunner, resolver *resolve.Resolver, log ports.Logger) *Planner {
	runID := uuid.NewString()[:8]
	log = log.With(ports.F("run", runID))
	return &Planner{
		project:  p,
		opts:     opts,
		runner:   runner,
		resolver: resolver,
		detector: version.NewDetector(runner, log),
		log:      log,
		runID:    runID,
	}
}

// Execute plans and runs the checker compiler. It returns a skip Result
// without error when the project is not checkable, and a RunError when
// configuration is unusable, the compiler cannot be launched, or the checker
// reports errors while fail-on-error is active.
func (pl *Planner) Execute(ctx context.Context) (Result, error) {
	if skip, reason := pl.shouldSkip(); skip {
		pl.log.Info(ctx, "skipping checker run", ports.F("reason", reason))
		return Result{Skipped: true, Reason: reason}, nil
	}

	executable := pl.executablePath()

	pair, err := pl.detector.Resolve(ctx, pl.project, executable)
	if err != nil {
		return Result{}, configErr(
			"set maven.compiler.source (or a toolchain) to Java 8 or newer",
			"unusable version configuration: %v", err)
	}

	checkerVersion := pl.checkerVersion(ctx)
	checker, checkerOK := version.ParseChecker(checkerVersion)
	if !checkerOK {
		pl.log.Warn(ctx, "checker version is not of the form major.minor; compatibility rules use their fallbacks",
			ports.F("version", checkerVersion))
	}
	decision := compat.Decide(pair, checker, checkerOK)

	lombokState := lombok.Detect(ctx, pl.project, pl.log)
	sources, err := pl.collectSources(lombokState)
	if err != nil {
		return Result{}, executionErr("failed to scan source roots", err)
	}
	if len(sources) == 0 {
		pl.log.Info(ctx, "skipping checker run", ports.F("reason", "no Java sources found"))
		return Result{Skipped: true, Reason: "no Java sources found"}, nil
	}

	sup := pl.resolveSupport(ctx, decision, checkerVersion)

	plan, cleanup, err := pl.assemble(ctx, executable, decision, sup, lombokState, sources)
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	pl.log.Info(ctx, "running checker compiler",
		ports.F("processors", strings.Join(pl.opts.Processors, ",")),
		ports.F("checker_version", checkerVersion),
		ports.F("sources", len(sources)))
	pl.log.Debug(ctx, "invocation:\n"+plan.String())

	res, err := pl.runner.Run(ctx, plan.Args(), func(line string) {
		if strings.Contains(line, "error:") {
			pl.log.Error(ctx, line)
		} else {
			pl.log.Info(ctx, line)
		}
	})
	if err != nil {
		return Result{}, executionErr("failed to run checker compiler", err)
	}

	out := Result{ExitCode: res.ExitCode}
	if !res.Success() {
		if pl.opts.FailOnError {
			return out, &RunError{
				Code:    ErrCodeCheckerFailed,
				Message: fmt.Sprintf("checker reported errors (exit code %d)", res.ExitCode),
			}
		}
		pl.log.Warn(ctx, "checker reported errors; continuing because fail-on-error is disabled",
			ports.F("exit_code", res.ExitCode))
	}
	return out, nil
}

// shouldSkip evaluates the cheap preconditions that make a run pointless.
func (pl *Planner) shouldSkip() (bool, string) {
	switch {
	case pl.opts.Skip:
		return true, "skip is set"
	case pl.project.Packaging() == "pom":
		return true, "aggregator project has no sources"
	case len(pl.opts.Processors) == 0:
		return true, "no processors configured"
	}
	return false, ""
}

// checkerVersion resolves the checker version by precedence: explicit option,
// declared checker-qual dependency, built-in default.
func (pl *Planner) checkerVersion(ctx context.Context) string {
	if pl.opts.CheckerVersion != "" {
		return pl.opts.CheckerVersion
	}
	if v, ok := resolve.CheckerVersionFromDependencies(pl.project); ok {
		pl.log.Debug(ctx, "checker version inferred from declared dependencies", ports.F("version", v))
		return v
	}
	return resolve.DefaultCheckerVersion
}

// executablePath resolves the configured executable: an existing file is
// used as-is (absolutized), otherwise the toolchain is asked for the tool by
// name, otherwise the bare name is left to PATH lookup at spawn time.
func (pl *Planner) executablePath() string {
	name := pl.opts.Executable
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		if abs, err := filepath.Abs(name); err == nil {
			return abs
		}
		return name
	}
	if tc := pl.project.Toolchain(); tc != nil {
		if path, ok := tc.FindTool(name); ok {
			return path
		}
	}
	return name
}

// collectSources walks the effective source roots and gathers every Java
// file. Missing roots are tolerated; generated-source roots routinely do not
// exist until another build step runs.
func (pl *Planner) collectSources(state lombok.State) ([]string, error) {
	testRoots := pl.project.TestSourceRoots()
	if pl.opts.ExcludeTestSources {
		testRoots = nil
	}
	main, test := state.EffectiveSourceRoots(pl.project.SourceRoots(), testRoots)

	var sources []string
	for _, root := range append(append([]string{}, main...), test...) {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".java") {
				sources = append(sources, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk source root %s: %w", root, err)
		}
	}
	return sources, nil
}

// support holds the resolved support artifacts of one run.
type support struct {
	checkerJar    string
	processorPath string
	frontendJar   string
	stdlibJar     string
}

// resolveSupport locates the jars the compatibility decision calls for.
// Absent artifacts degrade the invocation rather than abort it; the compiler
// produces a far more specific diagnostic than this tool could.
func (pl *Planner) resolveSupport(ctx context.Context, decision compat.Decision, checkerVersion string) support {
	var sup support

	checker := pl.resolver.Resolve(ctx, resolve.GroupCheckerFramework, resolve.ArtifactChecker, checkerVersion)
	qual := pl.resolver.Resolve(ctx, resolve.GroupCheckerFramework, resolve.ArtifactCheckerQual, checkerVersion)
	sup.checkerJar = checker.File
	switch {
	case checker.Found() && qual.Found():
		sup.processorPath = checker.File + string(os.PathListSeparator) + qual.File
	case checker.Found():
		pl.log.Warn(ctx, "checker-qual jar not found; annotations on the processor path may be incomplete")
		sup.processorPath = checker.File
	default:
		pl.log.Warn(ctx, "checker jar not found in any tier; relying on the project classpath to supply the processors")
	}

	if decision.NeedsAlternateFrontend {
		if compiler := pl.resolver.Resolve(ctx, resolve.GroupCheckerFramework, resolve.ArtifactCompiler, checkerVersion); compiler.Found() {
			sup.frontendJar = compiler.File
		} else {
			pl.log.Warn(ctx, "alternate compiler frontend is required but its jar was not found; the system compiler will be used")
		}
	}

	if decision.NeedsAnnotatedStdlib {
		if jdk := pl.resolver.Resolve(ctx, resolve.GroupCheckerFramework, resolve.ArtifactAnnotatedJDK, checkerVersion); jdk.Found() {
			sup.stdlibJar = jdk.File
		} else {
			pl.log.Warn(ctx, "annotated standard library is required but its jar was not found; stdlib calls will be checked unannotated")
		}
	}

	return sup
}

// assemble builds the invocation plan and the reference files it points at.
// The returned cleanup removes the reference files and must run after the
// compiler exits, on every path.
func (pl *Planner) assemble(ctx context.Context, executable string, decision compat.Decision, sup support, state lombok.State, sources []string) (*Plan, func(), error) {
	var tempFiles []string
	cleanup := func() {
		for _, f := range tempFiles {
			_ = os.Remove(f)
		}
	}

	plan := NewPlan()
	plan.Add(SectionExecutable, executable)

	if decision.NeedsModuleVisibility {
		plan.Add(SectionModuleVisibility, compat.ModuleVisibilityArgs()...)
	}
	if sup.frontendJar != "" {
		plan.Add(SectionFrontendOverride, "-J-Xbootclasspath/p:"+sup.frontendJar)
	}

	prefix := refFilePrefix + "-" + pl.runID
	if cp := pl.project.Classpath(); len(cp) > 0 {
		cpFile, err := WriteClasspathFile(prefix, strings.Join(cp, string(os.PathListSeparator)))
		if err != nil {
			cleanup()
			return nil, nil, executionErr("failed to write classpath reference file", err)
		}
		tempFiles = append(tempFiles, cpFile)
		plan.Add(SectionClasspath, Ref(cpFile))
	}

	// A bare JVM executable has no implied main class; the checker jar
	// supplies one.
	if base := strings.TrimSuffix(filepath.Base(executable), ".exe"); base == "java" && sup.checkerJar != "" {
		plan.Add(SectionMainSelector, "-jar", sup.checkerJar)
	}

	if sup.processorPath != "" {
		plan.Add(SectionProcessorPath, "-processorpath", sup.processorPath)
	}
	plan.Add(SectionProcessorSelector, "-processor", strings.Join(pl.opts.Processors, ","))
	if pl.opts.ProcOnly {
		plan.Add(SectionProcMode, "-proc:only")
	}
	if sup.stdlibJar != "" {
		plan.Add(SectionAnnotatedStdlib, "-Xbootclasspath/p:"+sup.stdlibJar)
	}

	plan.Add(SectionExtraArgs, pl.extraArgs(ctx, state)...)

	srcFile, err := WriteSourceListFile(prefix, sources)
	if err != nil {
		cleanup()
		return nil, nil, executionErr("failed to write source list reference file", err)
	}
	tempFiles = append(tempFiles, srcFile)
	plan.Add(SectionSources, Ref(srcFile))

	return plan, cleanup, nil
}

// extraArgs finalizes the user argument list, injecting the Lombok
// suppression when the project needs it and warning when builder-aware
// checkers run without the Lombok configuration they depend on.
func (pl *Planner) extraArgs(ctx context.Context, state lombok.State) []string {
	args := append([]string{}, pl.opts.ExtraArgs...)
	if !state.Used {
		return args
	}

	if pl.opts.SuppressLombokWarnings {
		args = lombok.MergeSuppression(args)
	}
	if lombok.HasBuilderChecker(pl.opts.Processors) {
		if enabled, found := lombok.GeneratedAnnotationEnabled(pl.project.BaseDir()); !found || !enabled {
			pl.log.Warn(ctx, "builder-aware checkers need lombok.addLombokGeneratedAnnotation = true in lombok.config")
		}
	}
	return args
}
