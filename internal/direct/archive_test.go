package direct

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveAttemptWritesCodeMetadataAndManifest(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(dir)
	at := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)

	codePath, err := a.ArchiveAttempt("req-1", "count files", "print(1)", 1, false, "syntax_error", "boom", at)
	require.NoError(t, err)
	assert.FileExists(t, codePath)

	reqDir := a.requestDir("req-1", at)
	assert.FileExists(t, filepath.Join(reqDir, "attempt_1", "metadata.json"))

	manifestData, err := os.ReadFile(filepath.Join(reqDir, "MANIFEST.json"))
	require.NoError(t, err)
	var manifest Manifest
	require.NoError(t, json.Unmarshal(manifestData, &manifest))
	assert.Equal(t, "req-1", manifest.RequestID)
	require.Len(t, manifest.Attempts, 1)
	assert.Equal(t, "syntax_error", manifest.Attempts[0].Status)
	assert.False(t, manifest.Attempts[0].Success)
}

func TestArchiveFinalRecordsFinalPathOnManifest(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(dir)
	at := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)

	_, err := a.ArchiveAttempt("req-2", "count files", "print(1)", 1, true, "success", "", at)
	require.NoError(t, err)

	finalPath, err := a.ArchiveFinal("req-2", "count files", "print(1)", at)
	require.NoError(t, err)
	assert.FileExists(t, finalPath)

	reqDir := a.requestDir("req-2", at)
	manifestData, err := os.ReadFile(filepath.Join(reqDir, "MANIFEST.json"))
	require.NoError(t, err)
	var manifest Manifest
	require.NoError(t, json.Unmarshal(manifestData, &manifest))
	assert.Equal(t, finalPath, manifest.FinalPath)
}

func TestArchiveAttemptAppendsMultipleAttemptsInOrder(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(dir)
	at := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)

	_, err := a.ArchiveAttempt("req-3", "count files", "print(1)", 2, false, "test_failure", "", at)
	require.NoError(t, err)
	_, err = a.ArchiveAttempt("req-3", "count files", "print(2)", 1, false, "syntax_error", "", at)
	require.NoError(t, err)

	reqDir := a.requestDir("req-3", at)
	manifestData, err := os.ReadFile(filepath.Join(reqDir, "MANIFEST.json"))
	require.NoError(t, err)
	var manifest Manifest
	require.NoError(t, json.Unmarshal(manifestData, &manifest))
	require.Len(t, manifest.Attempts, 2)
	assert.Equal(t, 1, manifest.Attempts[0].Attempt)
	assert.Equal(t, 2, manifest.Attempts[1].Attempt)
}
