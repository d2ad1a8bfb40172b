package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/checkward/checkward/internal/adapters/logging"
	"github.com/checkward/checkward/internal/domain/invoke"
	"github.com/checkward/checkward/internal/ports"
)

var (
	// Global flags
	cfgFile     string
	projectFile string
	verbose     bool
	jsonLogs    bool
)

var rootCmd = &cobra.Command{
	Use:   "checkward",
	Short: "Plans and runs pluggable type-checking compiler passes",
	Long: `Checkward configures and launches Checker Framework analysis over a Java
project: it detects the source and runtime versions, resolves the checker
jars through declared dependencies, the local cache, a remote repository and
the tool's own distribution, adapts the invocation to the runtime in use,
and interprets the compiler's verdict.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env may carry CHECKWARD_* overrides; absence is fine.
	_ = godotenv.Load()

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "checkward.toml", "options file")
	rootCmd.PersistentFlags().StringVarP(&projectFile, "project", "p", "project.yaml", "project descriptor file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the run logger from the global flags.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonLogs),
	)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var runErr *invoke.RunError
	if errors.As(err, &runErr) {
		msg := runErr.Message
		if runErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", runErr.Suggestion)
		}
		if verbose && runErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", runErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("project", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
