package adapters

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathGuardDisallowedWinsOverAllowed(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "secrets")
	guard := PathGuard{Allowed: []string{root}, Disallowed: []string{sub}}

	assert.True(t, guard.Check(filepath.Join(root, "notes.txt")))
	assert.False(t, guard.Check(filepath.Join(sub, "key.pem")))
}

func TestPathGuardEmptyAllowlistAllowsEverythingExceptDisallowed(t *testing.T) {
	disallowed := t.TempDir()
	guard := PathGuard{Disallowed: []string{disallowed}}

	assert.True(t, guard.Check(filepath.Join(t.TempDir(), "a.txt")))
	assert.False(t, guard.Check(filepath.Join(disallowed, "a.txt")))
}

func TestPathGuardNonEmptyAllowlistRejectsOutsidePaths(t *testing.T) {
	allowed := t.TempDir()
	outside := t.TempDir()
	guard := PathGuard{Allowed: []string{allowed}}

	assert.True(t, guard.Check(filepath.Join(allowed, "x.txt")))
	assert.False(t, guard.Check(filepath.Join(outside, "x.txt")))
}
