package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRunBuildsDirectoryLayout(t *testing.T) {
	base := t.TempDir()
	m := New(base)

	runID, err := m.CreateRun("")
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	for _, sub := range []string{"code", "tests", "logs"} {
		info, err := os.Stat(filepath.Join(m.RunPath(runID), sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestWriteCodeAndTest(t *testing.T) {
	base := t.TempDir()
	m := New(base)
	runID, err := m.CreateRun("fixed-id")
	require.NoError(t, err)

	codePath, err := m.WriteCode(runID, "main.py", "print('hi')\n")
	require.NoError(t, err)
	contents, err := os.ReadFile(codePath)
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(contents))

	testPath, err := m.WriteTest(runID, "test_main.py", "def test_ok(): pass\n")
	require.NoError(t, err)
	assert.FileExists(t, testPath)
}

func TestCleanupRunRemovesDirectory(t *testing.T) {
	base := t.TempDir()
	m := New(base)
	runID, err := m.CreateRun("")
	require.NoError(t, err)

	require.NoError(t, m.CleanupRun(runID))
	_, statErr := os.Stat(m.RunPath(runID))
	assert.True(t, os.IsNotExist(statErr))
}
