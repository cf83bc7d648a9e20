package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCreateReadDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	adapter := NewFileAdapter(PathGuard{Allowed: []string{dir}}, false)
	target := filepath.Join(dir, "note.txt")

	res, err := adapter.Execute(context.Background(), "file_create", map[string]any{
		"file_path": target,
		"content":   "hello",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	contents, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(contents))

	res, err = adapter.Execute(context.Background(), "file_get_info", map[string]any{"file_path": target})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(5), res.Data["size"])

	res, err = adapter.Execute(context.Background(), "file_delete", map[string]any{"file_path": target})
	require.NoError(t, err)
	assert.True(t, res.Success)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileCreateDeniedOutsideAllowedDirectory(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	adapter := NewFileAdapter(PathGuard{Allowed: []string{dir}}, false)

	res, err := adapter.Execute(context.Background(), "file_create", map[string]any{
		"file_path": filepath.Join(outside, "note.txt"),
		"content":   "nope",
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "access denied")
}

func TestFileCreateDryRunDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	adapter := NewFileAdapter(PathGuard{Allowed: []string{dir}}, true)
	target := filepath.Join(dir, "note.txt")

	res, err := adapter.Execute(context.Background(), "file_create", map[string]any{
		"file_path": target,
		"content":   "hello",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.Data["dry_run"].(bool))
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileListRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o644))

	adapter := NewFileAdapter(PathGuard{Allowed: []string{dir}}, false)
	res, err := adapter.Execute(context.Background(), "file_list", map[string]any{
		"directory": dir,
		"recursive": true,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	names := res.Data["files"].([]string)
	assert.Contains(t, names, "a.txt")
	assert.Contains(t, names, filepath.Join("sub", "b.txt"))
}

func TestFileMoveAndCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	adapter := NewFileAdapter(PathGuard{Allowed: []string{dir}}, false)

	copyDst := filepath.Join(dir, "copy.txt")
	res, err := adapter.Execute(context.Background(), "file_copy", map[string]any{
		"source": src, "destination": copyDst,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	copied, err := os.ReadFile(copyDst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(copied))

	moveDst := filepath.Join(dir, "moved.txt")
	res, err = adapter.Execute(context.Background(), "file_move", map[string]any{
		"source": src, "destination": moveDst,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	_, statErr := os.Stat(src)
	assert.True(t, os.IsNotExist(statErr))
}
