package invoke

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteClasspathFile(t *testing.T) {
	t.Parallel()

	path, err := WriteClasspathFile("argfiletest", "a.jar:b.jar")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	assert.True(t, strings.HasSuffix(path, ".classpath"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-cp a.jar:b.jar\n", string(data))
}

func TestWriteClasspathFile_QuotesSpaces(t *testing.T) {
	t.Parallel()

	path, err := WriteClasspathFile("argfiletest", "/opt/my libs/a.jar")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-cp \"/opt/my libs/a.jar\"\n", string(data))
}

func TestWriteSourceListFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := filepath.Join(dir, "App.java")

	path, err := WriteSourceListFile("argfiletest", []string{abs, "relative/Other.java"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	assert.True(t, strings.HasSuffix(path, ".src_files"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, abs, lines[0])
	assert.True(t, filepath.IsAbs(lines[1]), "relative inputs are absolutized")
	assert.True(t, strings.HasSuffix(lines[1], filepath.Join("relative", "Other.java")))
}

func TestRef(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "@/tmp/x.src_files", Ref("/tmp/x.src_files"))
}
