package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// FileParams is the reflected parameter schema for every file_* action;
// fields unused by a given action type are simply left zero.
type FileParams struct {
	Directory   string `json:"directory,omitempty" jsonschema:"description=Directory to list"`
	Recursive   bool   `json:"recursive,omitempty" jsonschema:"description=Recurse into subdirectories"`
	FilePath    string `json:"file_path,omitempty" jsonschema:"description=Target file path"`
	Content     string `json:"content,omitempty" jsonschema:"description=Content to write when creating a file"`
	Source      string `json:"source,omitempty" jsonschema:"description=Source path for move/copy"`
	Destination string `json:"destination,omitempty" jsonschema:"description=Destination path for move/copy"`
}

// FileAdapter implements file_list, file_create, file_delete,
// file_delete_directory, file_move, file_copy, file_get_info, grounded
// on system_actions/files.py delegating to ActionExecutor.
type FileAdapter struct {
	Guard  PathGuard
	DryRun bool
}

// NewFileAdapter builds a FileAdapter under the given path guard.
func NewFileAdapter(guard PathGuard, dryRun bool) *FileAdapter {
	return &FileAdapter{Guard: guard, DryRun: dryRun}
}

func (a *FileAdapter) Execute(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	start := time.Now()
	switch actionType {
	case "file_list":
		return a.listFiles(start, str(params, "directory"), boolean(params, "recursive"))
	case "file_create":
		return a.createFile(start, str(params, "file_path"), str(params, "content"))
	case "file_delete":
		return a.deleteFile(start, str(params, "file_path"))
	case "file_delete_directory":
		return a.deleteDirectory(start, str(params, "directory"))
	case "file_move":
		return a.moveFile(start, str(params, "source"), str(params, "destination"))
	case "file_copy":
		return a.copyFile(start, str(params, "source"), str(params, "destination"))
	case "file_get_info":
		return a.getFileInfo(start, str(params, "file_path"))
	default:
		return deniedResult(actionType, start, fmt.Sprintf("unknown file action: %s", actionType)), nil
	}
}

func (a *FileAdapter) listFiles(start time.Time, directory string, recursive bool) (types.ActionResult, error) {
	if !a.Guard.Check(directory) {
		return deniedResult("file_list", start, AccessDeniedMessage(directory)), nil
	}

	var names []string
	walker := filepath.WalkDir
	if !recursive {
		entries, err := os.ReadDir(directory)
		if err != nil {
			return errResult("file_list", start, fmt.Sprintf("failed to list %s", directory), err), nil
		}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return okResult("file_list", start, fmt.Sprintf("listed %d entries in %s", len(names), directory), map[string]any{"files": names}), nil
	}

	err := walker(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != directory {
			rel, relErr := filepath.Rel(directory, path)
			if relErr == nil {
				names = append(names, rel)
			}
		}
		return nil
	})
	if err != nil {
		return errResult("file_list", start, fmt.Sprintf("failed to list %s", directory), err), nil
	}
	return okResult("file_list", start, fmt.Sprintf("listed %d entries in %s", len(names), directory), map[string]any{"files": names}), nil
}

func (a *FileAdapter) createFile(start time.Time, path, content string) (types.ActionResult, error) {
	if !a.Guard.Check(path) {
		return deniedResult("file_create", start, AccessDeniedMessage(path)), nil
	}
	if a.DryRun {
		return okResult("file_create", start, fmt.Sprintf("[dry run] would create %s", path), map[string]any{"path": path, "dry_run": true}), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errResult("file_create", start, fmt.Sprintf("failed to create directory for %s", path), err), nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errResult("file_create", start, fmt.Sprintf("failed to create %s", path), err), nil
	}
	return okResult("file_create", start, fmt.Sprintf("created %s", path), map[string]any{"path": path}), nil
}

func (a *FileAdapter) deleteFile(start time.Time, path string) (types.ActionResult, error) {
	if !a.Guard.Check(path) {
		return deniedResult("file_delete", start, AccessDeniedMessage(path)), nil
	}
	if a.DryRun {
		return okResult("file_delete", start, fmt.Sprintf("[dry run] would delete %s", path), map[string]any{"path": path, "dry_run": true}), nil
	}
	if _, err := os.Stat(path); err != nil {
		return errResult("file_delete", start, fmt.Sprintf("file %s does not exist", path), err), nil
	}
	if err := os.Remove(path); err != nil {
		return errResult("file_delete", start, fmt.Sprintf("failed to delete %s", path), err), nil
	}
	return okResult("file_delete", start, fmt.Sprintf("deleted %s", path), map[string]any{"path": path}), nil
}

func (a *FileAdapter) deleteDirectory(start time.Time, directory string) (types.ActionResult, error) {
	if !a.Guard.Check(directory) {
		return deniedResult("file_delete_directory", start, AccessDeniedMessage(directory)), nil
	}
	if a.DryRun {
		return okResult("file_delete_directory", start, fmt.Sprintf("[dry run] would delete directory %s", directory), map[string]any{"directory": directory, "dry_run": true}), nil
	}
	if err := os.RemoveAll(directory); err != nil {
		return errResult("file_delete_directory", start, fmt.Sprintf("failed to delete directory %s", directory), err), nil
	}
	return okResult("file_delete_directory", start, fmt.Sprintf("deleted directory %s", directory), map[string]any{"directory": directory}), nil
}

func (a *FileAdapter) moveFile(start time.Time, source, destination string) (types.ActionResult, error) {
	if !a.Guard.Check(source) {
		return deniedResult("file_move", start, AccessDeniedMessage(source)), nil
	}
	if !a.Guard.Check(destination) {
		return deniedResult("file_move", start, AccessDeniedMessage(destination)), nil
	}
	if a.DryRun {
		return okResult("file_move", start, fmt.Sprintf("[dry run] would move %s to %s", source, destination), map[string]any{"source": source, "destination": destination, "dry_run": true}), nil
	}
	if dir := filepath.Dir(destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errResult("file_move", start, fmt.Sprintf("failed to prepare destination %s", destination), err), nil
		}
	}
	if err := os.Rename(source, destination); err != nil {
		return errResult("file_move", start, fmt.Sprintf("failed to move %s to %s", source, destination), err), nil
	}
	return okResult("file_move", start, fmt.Sprintf("moved %s to %s", source, destination), map[string]any{"source": source, "destination": destination}), nil
}

func (a *FileAdapter) copyFile(start time.Time, source, destination string) (types.ActionResult, error) {
	if !a.Guard.Check(source) {
		return deniedResult("file_copy", start, AccessDeniedMessage(source)), nil
	}
	if !a.Guard.Check(destination) {
		return deniedResult("file_copy", start, AccessDeniedMessage(destination)), nil
	}
	if a.DryRun {
		return okResult("file_copy", start, fmt.Sprintf("[dry run] would copy %s to %s", source, destination), map[string]any{"source": source, "destination": destination, "dry_run": true}), nil
	}

	in, err := os.Open(source)
	if err != nil {
		return errResult("file_copy", start, fmt.Sprintf("failed to open %s", source), err), nil
	}
	defer in.Close()

	if dir := filepath.Dir(destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errResult("file_copy", start, fmt.Sprintf("failed to prepare destination %s", destination), err), nil
		}
	}
	out, err := os.Create(destination)
	if err != nil {
		return errResult("file_copy", start, fmt.Sprintf("failed to create %s", destination), err), nil
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errResult("file_copy", start, fmt.Sprintf("failed to copy %s to %s", source, destination), err), nil
	}
	return okResult("file_copy", start, fmt.Sprintf("copied %s to %s", source, destination), map[string]any{"source": source, "destination": destination}), nil
}

func (a *FileAdapter) getFileInfo(start time.Time, path string) (types.ActionResult, error) {
	if !a.Guard.Check(path) {
		return deniedResult("file_get_info", start, AccessDeniedMessage(path)), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return errResult("file_get_info", start, fmt.Sprintf("file %s does not exist", path), err), nil
	}
	data := map[string]any{
		"path":         path,
		"name":         info.Name(),
		"size":         info.Size(),
		"modified":     info.ModTime().Format(time.RFC3339),
		"is_file":      !info.IsDir(),
		"is_directory": info.IsDir(),
		"extension":    filepath.Ext(path),
	}
	return okResult("file_get_info", start, fmt.Sprintf("retrieved info for %s", path), data), nil
}
