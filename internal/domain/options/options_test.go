package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	opts := Default()
	assert.True(t, opts.ProcOnly)
	assert.True(t, opts.FailOnError)
	assert.True(t, opts.SuppressLombokWarnings)
	assert.Equal(t, "javac", opts.Executable)
	assert.False(t, opts.Skip)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checkward.toml")
	content := `
processors = ["org.checkerframework.checker.nullness.NullnessChecker"]
checker_version = "3.42.0"
extra_args = ["-AskipDefs=Generated"]
fail_on_error = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := LoadFile(Default(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"org.checkerframework.checker.nullness.NullnessChecker"}, opts.Processors)
	assert.Equal(t, "3.42.0", opts.CheckerVersion)
	assert.Equal(t, []string{"-AskipDefs=Generated"}, opts.ExtraArgs)
	assert.False(t, opts.FailOnError)
	// Untouched keys keep their defaults.
	assert.True(t, opts.ProcOnly)
	assert.Equal(t, "javac", opts.Executable)
}

func TestLoadFile_MissingIsNotAnError(t *testing.T) {
	t.Parallel()

	opts, err := LoadFile(Default(), filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checkward.toml")
	require.NoError(t, os.WriteFile(path, []byte("processors = not-a-list"), 0o644))

	_, err := LoadFile(Default(), path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CHECKWARD_PROCESSORS", "a.B, c.D")
	t.Setenv("CHECKWARD_SKIP", "true")
	t.Setenv("CHECKWARD_EXECUTABLE", "/opt/jdk/bin/javac")
	t.Setenv("CHECKWARD_FAIL_ON_ERROR", "not-a-bool")

	opts := ApplyEnv(Default())

	assert.Equal(t, []string{"a.B", "c.D"}, opts.Processors)
	assert.True(t, opts.Skip)
	assert.Equal(t, "/opt/jdk/bin/javac", opts.Executable)
	// Unparseable boolean leaves the default.
	assert.True(t, opts.FailOnError)
}
