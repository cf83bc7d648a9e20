package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// SaveExecution persists one ExecutionMemory record under
// CategoryExecutions, grounded on persistent_memory.py's
// _save_execution_record. The record is searchable later by description
// keyword overlap (SearchByDescription) or by tag (GetExecutionsByTag).
func (m *Module) SaveExecution(ctx context.Context, exec types.ExecutionMemory) (string, error) {
	if exec.ExecutionID == "" {
		exec.ExecutionID = uuid.NewString()
	}
	if exec.Timestamp.IsZero() {
		exec.Timestamp = time.Now().UTC()
	}

	value := map[string]any{
		"execution_id":      exec.ExecutionID,
		"user_request":      exec.UserRequest,
		"description":       exec.Description,
		"code_generated":    exec.CodeGenerated,
		"file_locations":    exec.FileLocations,
		"output":            exec.Output,
		"success":           exec.Success,
		"tags":              exec.Tags,
		"execution_time_ms": exec.ExecutionTimeMs,
		"error_message":     exec.ErrorMessage,
		"sandbox_run_id":    exec.SandboxRunID,
	}

	tags := append([]string{"executions"}, exec.Tags...)
	return m.CreateMemory(ctx, types.CategoryExecutions, exec.ExecutionID, value, "execution", CreateOpts{Tags: tags})
}

// GetExecutionsByTag returns every execution record carrying tag, newest
// first.
func (m *Module) GetExecutionsByTag(ctx context.Context, tag string) ([]types.ExecutionMemory, error) {
	entries, err := m.GetMemoriesByTags(ctx, []string{tag})
	if err != nil {
		return nil, err
	}
	execs := executionsFromEntries(filterCategory(entries, types.CategoryExecutions))
	sort.Slice(execs, func(i, j int) bool { return execs[i].Timestamp.After(execs[j].Timestamp) })
	return execs, nil
}

// SearchByDescription ranks execution records by keyword overlap against
// description and returns the top limit matches, best first. This is a
// coarse pre-filter — deeper recall goes through the RAG service's BM25
// index — used by the reference resolver for "what did I just do".
func (m *Module) SearchByDescription(ctx context.Context, description string, limit int) ([]types.ExecutionMemory, error) {
	entries, err := m.GetMemoriesByCategory(ctx, types.CategoryExecutions)
	if err != nil {
		return nil, err
	}
	execs := executionsFromEntries(entries)

	queryTerms := tokenize(description)
	type scored struct {
		exec  types.ExecutionMemory
		score int
	}
	candidates := make([]scored, 0, len(execs))
	for _, e := range execs {
		haystack := tokenize(e.Description + " " + e.UserRequest)
		score := overlapCount(queryTerms, haystack)
		if score > 0 {
			candidates = append(candidates, scored{e, score})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].exec.Timestamp.After(candidates[j].exec.Timestamp)
	})

	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}
	out := make([]types.ExecutionMemory, 0, limit)
	for _, c := range candidates[:limit] {
		out = append(out, c.exec)
	}
	return out, nil
}

// GetFileLocations returns the file paths touched by executions matching
// description, most recent execution first, de-duplicated. Grounded on
// persistent_memory.py's get_file_locations: it first tries the
// "executions" tag, falling back to the executions category directly
// when no tagged entries exist (covers records written before tagging
// was introduced).
func (m *Module) GetFileLocations(ctx context.Context, description string) ([]string, error) {
	execs, err := m.GetExecutionsByTag(ctx, "executions")
	if err != nil {
		return nil, err
	}
	if len(execs) == 0 {
		entries, err := m.GetMemoriesByCategory(ctx, types.CategoryExecutions)
		if err != nil {
			return nil, err
		}
		execs = executionsFromEntries(entries)
	}

	queryTerms := tokenize(description)
	sort.Slice(execs, func(i, j int) bool { return execs[i].Timestamp.After(execs[j].Timestamp) })

	seen := map[string]bool{}
	var locations []string
	for _, e := range execs {
		if description != "" {
			haystack := tokenize(e.Description + " " + e.UserRequest)
			if overlapCount(queryTerms, haystack) == 0 {
				continue
			}
		}
		for _, path := range e.FileLocations {
			if !seen[path] {
				seen[path] = true
				locations = append(locations, path)
			}
		}
	}
	return locations, nil
}

func filterCategory(entries []types.MemoryEntry, category string) []types.MemoryEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func executionsFromEntries(entries []types.MemoryEntry) []types.ExecutionMemory {
	out := make([]types.ExecutionMemory, 0, len(entries))
	for _, e := range entries {
		out = append(out, executionMemoryFromMap(e.Value))
	}
	for i := range out {
		if out[i].ExecutionID == "" {
			out[i].ExecutionID = entries[i].Key
		}
		if out[i].Timestamp.IsZero() {
			out[i].Timestamp = entries[i].Timestamp
		}
	}
	return out
}

func executionMemoryFromMap(v map[string]any) types.ExecutionMemory {
	exec := types.ExecutionMemory{}
	if s, ok := v["execution_id"].(string); ok {
		exec.ExecutionID = s
	}
	if s, ok := v["user_request"].(string); ok {
		exec.UserRequest = s
	}
	if s, ok := v["description"].(string); ok {
		exec.Description = s
	}
	if s, ok := v["code_generated"].(string); ok {
		exec.CodeGenerated = s
	}
	if s, ok := v["output"].(string); ok {
		exec.Output = s
	}
	if b, ok := v["success"].(bool); ok {
		exec.Success = b
	}
	if s, ok := v["error_message"].(string); ok {
		exec.ErrorMessage = s
	}
	if s, ok := v["sandbox_run_id"].(string); ok {
		exec.SandboxRunID = s
	}
	if f, ok := v["execution_time_ms"].(float64); ok {
		exec.ExecutionTimeMs = f
	}
	if raw, ok := v["file_locations"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				exec.FileLocations = append(exec.FileLocations, s)
			}
		}
	}
	if raw, ok := v["tags"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				exec.Tags = append(exec.Tags, s)
			}
		}
	}
	return exec
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	seen := map[string]bool{}
	out := fields[:0]
	for _, f := range fields {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func overlapCount(a, b []string) int {
	set := map[string]bool{}
	for _, t := range b {
		set[t] = true
	}
	count := 0
	for _, t := range a {
		if set[t] {
			count++
		}
	}
	return count
}
