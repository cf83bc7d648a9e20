package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAdapterDryRunSucceeds(t *testing.T) {
	adapter := NewRegistryAdapter(true)
	res, err := adapter.Execute(context.Background(), "registry_read_value", map[string]any{
		"hive": "HKEY_CURRENT_USER", "path": "Software\\Test", "value_name": "Enabled",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.Data["dry_run"].(bool))
}

func TestRegistryAdapterUnknownActionDenied(t *testing.T) {
	adapter := NewRegistryAdapter(true)
	res, err := adapter.Execute(context.Background(), "registry_format_hive", map[string]any{})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestRegistryAdapterListSubkeysDelegatesToPlatformImpl(t *testing.T) {
	adapter := NewRegistryAdapter(false)
	res, err := adapter.Execute(context.Background(), "registry_list_subkeys", map[string]any{
		"hive": "HKEY_LOCAL_MACHINE", "path": "Software",
	})
	require.NoError(t, err)
	// On a non-Windows test host this fails with a platform-mismatch
	// error from the stub impl; on Windows it depends on the live key.
	if !res.Success {
		assert.NotEmpty(t, res.Error)
	}
}
