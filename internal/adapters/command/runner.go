// Package command provides the subprocess execution adapter.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/checkward/checkward/internal/ports"
)

// maxLineSize bounds a single output line; javac can emit very long
// diagnostic lines for deeply generic types.
const maxLineSize = 1024 * 1024

// StreamRunner executes a child process and streams its merged
// stdout/stderr line by line to a sink.
type StreamRunner struct{}

// NewStreamRunner creates a new StreamRunner.
func NewStreamRunner() *StreamRunner {
	return &StreamRunner{}
}

// Run starts argv[0] with the remaining arguments, merges stdout and stderr
// into a single pipe, drains it fully on the calling goroutine, and only then
// waits for the exit status.
func (r *StreamRunner) Run(ctx context.Context, argv []string, sink ports.LineSink) (ports.ProcessResult, error) {
	if len(argv) == 0 {
		return ports.ProcessResult{}, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	pr, pw, err := os.Pipe()
	if err != nil {
		return ports.ProcessResult{}, fmt.Errorf("failed to create output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return ports.ProcessResult{}, fmt.Errorf("failed to start %q: %w", argv[0], err)
	}

	// The child holds its own duplicate of the write end; close ours so the
	// reader sees EOF once the child exits.
	_ = pw.Close()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		if sink != nil {
			sink(scanner.Text())
		}
	}
	scanErr := scanner.Err()
	_ = pr.Close()

	err = cmd.Wait()

	result := ports.ProcessResult{ExitCode: 0}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	if scanErr != nil {
		return result, fmt.Errorf("failed to read process output: %w", scanErr)
	}

	return result, nil
}

// Ensure StreamRunner implements ports.ProcessRunner.
var _ ports.ProcessRunner = (*StreamRunner)(nil)
