package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildRegistersAllActionFamilies(t *testing.T) {
	r := Build(BuildOptions{DryRun: true, ActionTimeout: 5 * time.Second})

	for _, prefix := range []string{"file_", "gui_", "typing_", "registry_", "ocr_", "powershell_", "subprocess_"} {
		found := false
		for _, actionType := range r.ActionTypes() {
			if len(actionType) >= len(prefix) && actionType[:len(prefix)] == prefix {
				found = true
				break
			}
		}
		assert.True(t, found, "expected at least one registered action with prefix %s", prefix)
	}
}

func TestBuildSchemaReflectsFileParams(t *testing.T) {
	r := Build(BuildOptions{DryRun: true})
	schema, err := r.Schema("file_create")
	assert.NoError(t, err)
	assert.Equal(t, "object", schema.Type)
}
