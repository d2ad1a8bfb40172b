// Package ports defines interfaces for external dependencies.
package ports

import "context"

// LineSink receives one line of merged subprocess output at a time.
type LineSink func(line string)

// ProcessResult represents the outcome of a finished child process.
type ProcessResult struct {
	ExitCode int
}

// Success returns true if the process exited with code 0.
func (r ProcessResult) Success() bool {
	return r.ExitCode == 0
}

// ProcessRunner spawns a child process with merged stdout/stderr, streams
// each output line to the sink, and reports the exit code. Implementations
// must fully drain the output before waiting for the exit status, so that
// a child blocked on a full pipe buffer cannot deadlock against the parent.
type ProcessRunner interface {
	Run(ctx context.Context, argv []string, sink LineSink) (ProcessResult, error)
}
