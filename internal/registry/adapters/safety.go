// Package adapters implements one thin Adapter per action family —
// file, gui, typing, registry, ocr, shell, subprocess — each mapping
// directly onto a module of the original jarvis.system_actions
// package. Every adapter honors dry_run and, where it touches the
// filesystem, the same allow/deny directory checks.
package adapters

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// PathGuard enforces the allow/deny directory rules spec.md §4.4
// requires of every filesystem-touching adapter, grounded on
// action_executor.py's _check_path_allowed: a disallowed match wins
// outright; an allowlist, if non-empty, is otherwise the only way in.
type PathGuard struct {
	Allowed   []string
	Disallowed []string
}

// Check reports whether path is permitted under the guard's rules.
func (g PathGuard) Check(path string) bool {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	resolved = filepath.Clean(resolved)

	for _, d := range g.Disallowed {
		if isWithin(resolved, d) {
			return false
		}
	}

	if len(g.Allowed) == 0 {
		return true
	}
	for _, a := range g.Allowed {
		if isWithin(resolved, a) {
			return true
		}
	}
	return false
}

func isWithin(path, dir string) bool {
	dirResolved, err := filepath.Abs(dir)
	if err != nil {
		dirResolved = dir
	}
	dirResolved = filepath.Clean(dirResolved)

	rel, err := filepath.Rel(dirResolved, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// ElapsedMs returns the milliseconds since start, the execution_time_ms
// every ActionResult carries.
func ElapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// AccessDeniedMessage is the standard message used across adapters
// when PathGuard rejects a path, matching action_executor.py's wording
// closely enough to trip the same "access denied"/"permission denied"
// permanent-error classifiers.
func AccessDeniedMessage(path string) string {
	return fmt.Sprintf("access denied: path %s is not in allowed directories", path)
}
