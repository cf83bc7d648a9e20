package verifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyFileCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))

	v := New()
	result := v.Verify("file_create", nil, map[string]any{"file_path": path})
	assert.True(t, result.Verified)
	assert.Equal(t, int64(2), result.Details["size"])
}

func TestVerifyFileCreateMissingFails(t *testing.T) {
	v := New()
	result := v.Verify("file_create", nil, map[string]any{"file_path": filepath.Join(t.TempDir(), "missing.txt")})
	assert.False(t, result.Verified)
}

func TestVerifyFileDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")

	v := New()
	result := v.Verify("file_delete", nil, map[string]any{"file_path": path})
	assert.True(t, result.Verified)
}

func TestVerifyFileMove(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "dest.txt")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))
	source := filepath.Join(dir, "source-gone.txt")

	v := New()
	result := v.Verify("file_move", nil, map[string]any{"source": source, "destination": dest})
	assert.True(t, result.Verified)
}

func TestVerifyFileCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("x"), 0o644))

	v := New()
	result := v.Verify("file_copy", nil, map[string]any{"source": src, "destination": dst})
	assert.True(t, result.Verified)
}

func TestVerifyUnknownActionPasses(t *testing.T) {
	v := New()
	result := v.Verify("subprocess_ping", nil, nil)
	assert.True(t, result.Verified)
}

func TestVerifyGUIActionsAdvisory(t *testing.T) {
	v := New()
	result := v.Verify("gui_move_mouse", nil, nil)
	assert.True(t, result.Verified)
}

func TestVerifyRegistryWriteSkippedOnNonWindows(t *testing.T) {
	v := New()
	result := v.Verify("registry_write_value", nil, map[string]any{"hive": "HKEY_CURRENT_USER", "path": "Software\\Test", "value_name": "x"})
	assert.True(t, result.Verified)
}
