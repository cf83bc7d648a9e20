package planner

import "strings"

// keywordRule maps keywords to an inferred tool: a rule matches when one
// of any1 and, if any2 is non-empty, one of any2 appear (in any order,
// across description+request). Rules are tried in order. Grounded on
// spec.md §4.5 step 5's "list|show + file|folder -> file_list" example
// rules.
type keywordRule struct {
	any1   []string
	any2   []string
	action string
}

var keywordRules = []keywordRule{
	{any1: []string{"list", "show"}, any2: []string{"file", "folder", "directory"}, action: "file_list"},
	{any1: []string{"delete", "remove"}, any2: []string{"directory", "folder"}, action: "file_delete_directory"},
	{any1: []string{"delete", "remove"}, any2: []string{"file"}, action: "file_delete"},
	{any1: []string{"create", "make", "write", "new"}, any2: []string{"file"}, action: "file_create"},
	{any1: []string{"move", "rename"}, any2: []string{"file"}, action: "file_move"},
	{any1: []string{"copy", "duplicate"}, any2: []string{"file"}, action: "file_copy"},
	{any1: []string{"open", "launch", "start", "run"}, any2: []string{"application", "app", "program"}, action: "subprocess_open_application"},
	{any1: []string{"ping"}, any2: []string{"host", "server", "network"}, action: "subprocess_ping"},
	{any1: []string{"kill", "terminate", "stop"}, any2: []string{"process"}, action: "subprocess_kill_process"},
	{any1: []string{"system info", "computer info", "os info"}, any2: nil, action: "powershell_get_system_info"},
	{any1: []string{"processes", "running programs"}, any2: nil, action: "subprocess_list_processes"},
	{any1: []string{"services"}, any2: nil, action: "powershell_get_services"},
	{any1: []string{"screenshot", "capture screen", "screen capture"}, any2: nil, action: "gui_capture_screen"},
	{any1: []string{"type"}, any2: []string{"text"}, action: "typing_type_text"},
	{any1: []string{"clipboard"}, any2: nil, action: "typing_get_clipboard_content"},
	{any1: []string{"registry"}, any2: []string{"read", "get"}, action: "registry_read_value"},
	{any1: []string{"extract text", "ocr", "read text from image"}, any2: nil, action: "ocr_extract_from_image"},
	{any1: []string{"open", "launch"}, any2: nil, action: "subprocess_open_application"},
}

// fallbackAction is the safe, purely informational default used when
// no keyword rule matches, matching spec.md §4.5's "fall back to a
// safe informational default".
const fallbackAction = "subprocess_get_environment"

// InferTool applies keyword heuristics over description and
// userRequest to choose a single tool, per spec.md §4.5 step 5/6.
func InferTool(description, userRequest string) string {
	haystack := strings.ToLower(description + " " + userRequest)
	for _, rule := range keywordRules {
		if !containsAny(haystack, rule.any1) {
			continue
		}
		if len(rule.any2) > 0 && !containsAny(haystack, rule.any2) {
			continue
		}
		return rule.action
	}
	return fallbackAction
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// RewriteDescriptionForTool prepends "Use <tool> to ..." when the tool
// name doesn't already appear in description, per spec.md §4.5 step 5.
func RewriteDescriptionForTool(description, tool string) string {
	if strings.Contains(strings.ToLower(description), strings.ToLower(tool)) {
		return description
	}
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "Use " + tool + " to complete this step"
	}
	lower := strings.ToLower(trimmed[:1])
	rest := trimmed
	if lower != trimmed[:1] {
		rest = lower + trimmed[1:]
	}
	return "Use " + tool + " to " + rest
}
