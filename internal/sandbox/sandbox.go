// Package sandbox implements the Sandbox Run Manager (spec.md §4.8):
// isolated per-attempt directories for generated code, plus the
// syntax/test/smoke verification gates the Direct Executor runs before
// exporting anything.
package sandbox

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Manager creates and manages sandbox run directories under BaseDir,
// grounded on sandbox_manager.py's SandboxRunManager.
type Manager struct {
	BaseDir string
}

// New builds a Manager rooted at baseDir (spec.md §6:
// ~/.spectral/sandbox_runs).
func New(baseDir string) *Manager {
	return &Manager{BaseDir: baseDir}
}

// CreateRun makes a fresh run directory (code/, tests/, logs/) and
// returns its run id, generating one via uuid if runID is empty.
func (m *Manager) CreateRun(runID string) (string, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	runPath := m.RunPath(runID)
	for _, sub := range []string{"code", "tests", "logs"} {
		if err := os.MkdirAll(filepath.Join(runPath, sub), 0o755); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// RunPath returns the full path to a run's directory.
func (m *Manager) RunPath(runID string) string {
	return filepath.Join(m.BaseDir, runID)
}

// WriteCode writes filename under a run's code/ subdirectory.
func (m *Manager) WriteCode(runID, filename, code string) (string, error) {
	path := filepath.Join(m.RunPath(runID), "code", filename)
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteTest writes filename under a run's tests/ subdirectory.
func (m *Manager) WriteTest(runID, filename, testCode string) (string, error) {
	path := filepath.Join(m.RunPath(runID), "tests", filename)
	if err := os.WriteFile(path, []byte(testCode), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// CleanupRun removes a run directory entirely; called on terminal
// gate failure, matching "failed runs are cleaned up" in spec.md §4.8.
func (m *Manager) CleanupRun(runID string) error {
	return os.RemoveAll(m.RunPath(runID))
}
