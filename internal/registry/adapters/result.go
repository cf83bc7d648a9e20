package adapters

import (
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

func str(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func boolean(params map[string]any, key string) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return false
}

func integer(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func stringSlice(params map[string]any, key string) []string {
	raw, ok := params[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func okResult(actionType string, start time.Time, message string, data map[string]any) types.ActionResult {
	return types.ActionResult{
		Success:         true,
		ActionType:      actionType,
		Message:         message,
		Data:            data,
		ExecutionTimeMs: ElapsedMs(start),
	}
}

func errResult(actionType string, start time.Time, message string, err error) types.ActionResult {
	return types.ActionResult{
		Success:         false,
		ActionType:      actionType,
		Message:         message,
		Error:           err.Error(),
		ExecutionTimeMs: ElapsedMs(start),
	}
}

func deniedResult(actionType string, start time.Time, message string) types.ActionResult {
	return types.ActionResult{
		Success:         false,
		ActionType:      actionType,
		Message:         message,
		Error:           "access denied by safety rules",
		ExecutionTimeMs: ElapsedMs(start),
	}
}
