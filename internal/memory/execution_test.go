package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

func TestSaveExecutionAndSearchByDescription(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	_, err := m.SaveExecution(ctx, types.ExecutionMemory{
		UserRequest:   "write a python script that renames screenshots",
		Description:   "rename screenshots script",
		FileLocations: []string{"C:/Users/me/Desktop/rename_screenshots.py"},
		Success:       true,
		Timestamp:     time.Now().Add(-2 * time.Minute),
	})
	require.NoError(t, err)

	_, err = m.SaveExecution(ctx, types.ExecutionMemory{
		UserRequest:   "open notepad",
		Description:   "launch notepad",
		FileLocations: nil,
		Success:       true,
		Timestamp:     time.Now().Add(-1 * time.Minute),
	})
	require.NoError(t, err)

	matches, err := m.SearchByDescription(ctx, "screenshots rename", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "rename screenshots script", matches[0].Description)
}

func TestGetFileLocationsDeduplicatesAndFilters(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	_, err := m.SaveExecution(ctx, types.ExecutionMemory{
		UserRequest:   "write a cleanup script for downloads",
		Description:   "downloads cleanup script",
		FileLocations: []string{"C:/Users/me/Desktop/cleanup.py", "C:/Users/me/Desktop/cleanup.py"},
		Success:       true,
		Timestamp:     time.Now().Add(-3 * time.Minute),
	})
	require.NoError(t, err)

	_, err = m.SaveExecution(ctx, types.ExecutionMemory{
		UserRequest:   "take a screenshot",
		Description:   "screenshot capture",
		FileLocations: []string{"C:/Users/me/Desktop/shot.png"},
		Success:       true,
		Timestamp:     time.Now().Add(-1 * time.Minute),
	})
	require.NoError(t, err)

	locations, err := m.GetFileLocations(ctx, "cleanup downloads")
	require.NoError(t, err)
	require.Equal(t, []string{"C:/Users/me/Desktop/cleanup.py"}, locations)

	all, err := m.GetFileLocations(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestGetExecutionsByTag(t *testing.T) {
	ctx := context.Background()
	m := newTestModule(t)

	_, err := m.SaveExecution(ctx, types.ExecutionMemory{
		Description: "tagged one",
		Tags:        []string{"code_generation"},
		Timestamp:   time.Now(),
	})
	require.NoError(t, err)

	tagged, err := m.GetExecutionsByTag(ctx, "code_generation")
	require.NoError(t, err)
	require.Len(t, tagged, 1)

	untagged, err := m.GetExecutionsByTag(ctx, "gui_action")
	require.NoError(t, err)
	require.Empty(t, untagged)
}
