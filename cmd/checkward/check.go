package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/checkward/checkward/internal/adapters/command"
	"github.com/checkward/checkward/internal/domain/invoke"
	"github.com/checkward/checkward/internal/domain/options"
	"github.com/checkward/checkward/internal/domain/project"
	"github.com/checkward/checkward/internal/domain/resolve"
	"github.com/checkward/checkward/internal/ports"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the configured checkers over the project",
	Long: `Check plans and executes one checker compiler pass: options are merged
from the options file, CHECKWARD_* environment variables and flags (flags
win), the project descriptor is loaded, and the resulting invocation runs
in process-only mode unless configured otherwise.

Examples:
  checkward check                                   # options from checkward.toml
  checkward check --processor org.checkerframework.checker.nullness.NullnessChecker
  checkward check --checker-version 3.42.0          # pin the checker version
  checkward check --no-fail-on-error                # report but do not fail
  checkward check --exclude-tests -v                # main sources only, verbose`,
	RunE: runCheck,
}

var (
	checkProcessors     []string
	checkCheckerVersion string
	checkExtraArgs      []string
	checkSkip           bool
	checkProcOnly       bool
	checkNoFailOnError  bool
	checkExcludeTests   bool
	checkNoLombokSupp   bool
	checkExecutable     string
	checkRepositoryURL  string
	checkCacheDir       string
	checkOffline        bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVar(&checkProcessors, "processor", nil, "Processor class to run (repeatable)")
	checkCmd.Flags().StringVar(&checkCheckerVersion, "checker-version", "", "Checker Framework version to resolve")
	checkCmd.Flags().StringArrayVar(&checkExtraArgs, "extra-arg", nil, "Extra compiler argument (repeatable)")
	checkCmd.Flags().BoolVar(&checkSkip, "skip", false, "Skip the checker run entirely")
	checkCmd.Flags().BoolVar(&checkProcOnly, "proc-only", true, "Run annotation processing only, no class output")
	checkCmd.Flags().BoolVar(&checkNoFailOnError, "no-fail-on-error", false, "Report checker errors without failing")
	checkCmd.Flags().BoolVar(&checkExcludeTests, "exclude-tests", false, "Check main sources only")
	checkCmd.Flags().BoolVar(&checkNoLombokSupp, "no-lombok-suppression", false, "Do not suppress Lombok-generated diagnostics")
	checkCmd.Flags().StringVar(&checkExecutable, "executable", "", "Compiler executable (default: javac)")
	checkCmd.Flags().StringVar(&checkRepositoryURL, "repository", "", "Remote artifact repository URL")
	checkCmd.Flags().StringVar(&checkCacheDir, "cache-dir", "", "Local artifact cache directory")
	checkCmd.Flags().BoolVar(&checkOffline, "offline", false, "Never fetch artifacts from the remote repository")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	opts, err := options.LoadFile(options.Default(), cfgFile)
	if err != nil {
		return err
	}
	opts = options.ApplyEnv(opts)
	applyCheckFlags(cmd, &opts)

	p, err := project.Load(projectFile)
	if err != nil {
		return err
	}

	log := newLogger()
	runner := command.NewStreamRunner()
	resolver := buildResolver(p, opts, log)

	result, err := invoke.NewPlanner(p, opts, runner, resolver, log).Execute(ctx)
	if err != nil {
		return err
	}
	if !result.Skipped {
		fmt.Println("Checker run completed without errors.")
	}
	return nil
}

// applyCheckFlags overlays explicitly set flags on the merged options; an
// untouched flag never clobbers a file or environment value.
func applyCheckFlags(cmd *cobra.Command, opts *options.Options) {
	flags := cmd.Flags()

	if flags.Changed("processor") {
		opts.Processors = checkProcessors
	}
	if flags.Changed("checker-version") {
		opts.CheckerVersion = checkCheckerVersion
	}
	if flags.Changed("extra-arg") {
		opts.ExtraArgs = append(opts.ExtraArgs, checkExtraArgs...)
	}
	if flags.Changed("skip") {
		opts.Skip = checkSkip
	}
	if flags.Changed("proc-only") {
		opts.ProcOnly = checkProcOnly
	}
	if flags.Changed("no-fail-on-error") {
		opts.FailOnError = !checkNoFailOnError
	}
	if flags.Changed("exclude-tests") {
		opts.ExcludeTestSources = checkExcludeTests
	}
	if flags.Changed("no-lombok-suppression") {
		opts.SuppressLombokWarnings = !checkNoLombokSupp
	}
	if flags.Changed("executable") {
		opts.Executable = checkExecutable
	}
	if flags.Changed("repository") {
		opts.RepositoryURL = checkRepositoryURL
	}
	if flags.Changed("cache-dir") {
		opts.CacheDir = checkCacheDir
	}
}

// buildResolver assembles the run's artifact resolver with every tier the
// options allow.
func buildResolver(p *project.Context, opts options.Options, log ports.Logger) *resolve.Resolver {
	resolverOpts := []resolve.Option{
		resolve.WithMarkerLocator(resolve.NewDistLocator()),
	}
	if opts.CacheDir != "" {
		resolverOpts = append(resolverOpts, resolve.WithCacheDir(opts.CacheDir))
	}
	if !checkOffline {
		resolverOpts = append(resolverOpts, resolve.WithRemote(resolve.NewRemoteRepository(opts.RepositoryURL)))
	}
	return resolve.NewResolver(p, log, resolverOpts...)
}
