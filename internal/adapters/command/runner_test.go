package command

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}
}

func TestStreamRunner_MergesStdoutAndStderr(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	runner := NewStreamRunner()

	var lines []string
	result, err := runner.Run(context.Background(),
		[]string{"sh", "-c", "echo out; echo err 1>&2"},
		func(line string) { lines = append(lines, line) })

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.Success())
	assert.Contains(t, lines, "out")
	assert.Contains(t, lines, "err")
}

func TestStreamRunner_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	runner := NewStreamRunner()

	result, err := runner.Run(context.Background(), []string{"sh", "-c", "exit 3"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.False(t, result.Success())
}

func TestStreamRunner_MissingExecutable(t *testing.T) {
	t.Parallel()

	runner := NewStreamRunner()

	_, err := runner.Run(context.Background(), []string{"definitely-not-a-real-binary-name"}, nil)
	assert.Error(t, err)
}

func TestStreamRunner_EmptyCommand(t *testing.T) {
	t.Parallel()

	runner := NewStreamRunner()

	_, err := runner.Run(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestStreamRunner_DrainsLargeOutputBeforeWait(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	runner := NewStreamRunner()

	// Emit well past the OS pipe buffer size; a runner that waits before
	// draining would deadlock here.
	count := 0
	result, err := runner.Run(context.Background(),
		[]string{"sh", "-c", "i=0; while [ $i -lt 20000 ]; do echo line-$i; i=$((i+1)); done"},
		func(string) { count++ })

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, 20000, count)
}
