package memory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/storage"
)

func newTestModule(t *testing.T) *Module {
	t.Helper()
	backend, err := storage.NewJSONBackend(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return New(backend)
}

func TestCreateGetUpdateDeleteMemory(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	id, err := m.CreateMemory(ctx, "preferences", "theme", map[string]any{"value": "dark"}, "user", CreateOpts{Tags: []string{"ui"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entry, err := m.GetMemory(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "dark", entry.Value["value"])

	err = m.UpdateMemory(ctx, id, map[string]any{"value": "light"}, []string{"ui", "updated"})
	require.NoError(t, err)

	entry, err = m.GetMemory(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "light", entry.Value["value"])
	require.Contains(t, entry.Tags, "updated")

	err = m.DeleteMemory(ctx, id)
	require.NoError(t, err)

	entry, err = m.GetMemory(ctx, id)
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestGetMemoryByKeyAndCategory(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	_, err := m.CreateMemory(ctx, "preferences", "theme", map[string]any{"value": "dark"}, "user", CreateOpts{})
	require.NoError(t, err)
	_, err = m.CreateMemory(ctx, "preferences", "locale", map[string]any{"value": "en-US"}, "user", CreateOpts{})
	require.NoError(t, err)

	byKey, err := m.GetMemoryByKey(ctx, "locale")
	require.NoError(t, err)
	require.NotNil(t, byKey)
	require.Equal(t, "en-US", byKey.Value["value"])

	byCategory, err := m.GetMemoriesByCategory(ctx, "preferences")
	require.NoError(t, err)
	require.Len(t, byCategory, 2)

	missing, err := m.GetMemoryByKey(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestUpdateMissingEntryErrors(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	err := m.UpdateMemory(ctx, "does-not-exist", map[string]any{}, nil)
	require.Error(t, err)
}
