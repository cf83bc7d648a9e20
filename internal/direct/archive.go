package direct

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// AttemptRecord is one logged attempt (successful or not) under a
// request's archive directory, aggregated into MANIFEST.json.
type AttemptRecord struct {
	Attempt      int       `json:"attempt"`
	Success      bool      `json:"success"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Path         string    `json:"path"`
}

// Manifest is the archive root's MANIFEST.json, per spec.md §9's
// persistent layout: "A MANIFEST.json at the archive root records
// every attempt (successful and not)."
type Manifest struct {
	RequestID string          `json:"request_id"`
	Request   string          `json:"user_request"`
	Attempts  []AttemptRecord `json:"attempts"`
	FinalPath string          `json:"final_path,omitempty"`
}

// Archiver lays out generated code on disk under
// <desktopDir>/<date>/<request-id>/attempt_<k>/ with generated.py and
// metadata.json, and under .../FINAL/ once an attempt succeeds.
type Archiver struct {
	DesktopDir string
}

// NewArchiver builds an Archiver rooted at desktopDir (config's
// DesktopArchiveDir()).
func NewArchiver(desktopDir string) *Archiver {
	return &Archiver{DesktopDir: desktopDir}
}

func (a *Archiver) requestDir(requestID string, at time.Time) string {
	return filepath.Join(a.DesktopDir, at.Format("2006-01-02"), requestID)
}

// ArchiveAttempt writes one attempt's generated code and metadata,
// appending an AttemptRecord to that request's MANIFEST.json.
func (a *Archiver) ArchiveAttempt(requestID, userRequest, code string, attempt int, success bool, status, errorMessage string, at time.Time) (string, error) {
	reqDir := a.requestDir(requestID, at)
	attemptDir := filepath.Join(reqDir, fmt.Sprintf("attempt_%d", attempt))
	if err := os.MkdirAll(attemptDir, 0o755); err != nil {
		return "", fmt.Errorf("archive attempt dir: %w", err)
	}

	codePath := filepath.Join(attemptDir, "generated.py")
	if err := os.WriteFile(codePath, []byte(code), 0o644); err != nil {
		return "", fmt.Errorf("write generated code: %w", err)
	}

	metadata := map[string]any{
		"attempt":       attempt,
		"success":       success,
		"status":        status,
		"error_message": errorMessage,
		"timestamp":     at.Format(time.RFC3339),
	}
	metadataBytes, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal attempt metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(attemptDir, "metadata.json"), metadataBytes, 0o644); err != nil {
		return "", fmt.Errorf("write attempt metadata: %w", err)
	}

	if err := a.appendManifest(reqDir, requestID, userRequest, AttemptRecord{
		Attempt:      attempt,
		Success:      success,
		Status:       status,
		ErrorMessage: errorMessage,
		Timestamp:    at,
		Path:         attemptDir,
	}); err != nil {
		return "", err
	}

	return codePath, nil
}

// ArchiveFinal copies the successful attempt's code into <reqDir>/FINAL/
// and records the final path on the request's manifest.
func (a *Archiver) ArchiveFinal(requestID, userRequest, code string, at time.Time) (string, error) {
	reqDir := a.requestDir(requestID, at)
	finalDir := filepath.Join(reqDir, "FINAL")
	if err := os.MkdirAll(finalDir, 0o755); err != nil {
		return "", fmt.Errorf("archive final dir: %w", err)
	}
	finalPath := filepath.Join(finalDir, "generated.py")
	if err := os.WriteFile(finalPath, []byte(code), 0o644); err != nil {
		return "", fmt.Errorf("write final code: %w", err)
	}

	manifest, err := a.readManifest(reqDir, requestID, userRequest)
	if err != nil {
		return "", err
	}
	manifest.FinalPath = finalPath
	if err := a.writeManifest(reqDir, manifest); err != nil {
		return "", err
	}
	return finalPath, nil
}

// RequestDir exposes the archive directory for requestID at date, for
// callers that need to browse a request's attempts (e.g. httpapi).
func (a *Archiver) RequestDir(requestID string, at time.Time) string {
	return a.requestDir(requestID, at)
}

// ReadManifest loads a request's MANIFEST.json for browsing endpoints.
func (a *Archiver) ReadManifest(requestID string, at time.Time) (Manifest, error) {
	return a.readManifest(a.requestDir(requestID, at), requestID, "")
}

func (a *Archiver) manifestPath(reqDir string) string {
	return filepath.Join(reqDir, "MANIFEST.json")
}

func (a *Archiver) readManifest(reqDir, requestID, userRequest string) (Manifest, error) {
	path := a.manifestPath(reqDir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Manifest{RequestID: requestID, Request: userRequest}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return manifest, nil
}

func (a *Archiver) writeManifest(reqDir string, manifest Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(a.manifestPath(reqDir), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func (a *Archiver) appendManifest(reqDir, requestID, userRequest string, record AttemptRecord) error {
	if err := os.MkdirAll(reqDir, 0o755); err != nil {
		return fmt.Errorf("manifest dir: %w", err)
	}
	manifest, err := a.readManifest(reqDir, requestID, userRequest)
	if err != nil {
		return err
	}
	manifest.Attempts = append(manifest.Attempts, record)
	sort.SliceStable(manifest.Attempts, func(i, j int) bool {
		return manifest.Attempts[i].Attempt < manifest.Attempts[j].Attempt
	})
	return a.writeManifest(reqDir, manifest)
}
