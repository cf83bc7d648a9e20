package executor

import (
	"fmt"
	"regexp"
)

// quotedPathPattern pulls the first single- or double-quoted span out
// of a step description, the cheapest available signal for a literal
// path/text argument the planner embedded in prose.
var quotedPathPattern = regexp.MustCompile(`["']([^"']+)["']`)

// stepReferencePattern matches a dependency reference the planner
// embedded in prose, e.g. "the result of step 1", resolved against
// the Dispatcher's accumulated context.
var stepReferencePattern = regexp.MustCompile(`step (\d+)`)

// paramKeysByFamily names, per action type, which param key a bare
// quoted string from the description should land in.
var paramKeysByFamily = map[string]string{
	"file_list":              "directory",
	"file_create":            "file_path",
	"file_delete":            "file_path",
	"file_delete_directory":  "directory",
	"file_get_info":          "file_path",
	"typing_type_text":       "text",
	"ocr_extract_from_image": "image_path",
	"subprocess_ping":        "host",
}

// synthesizeParams builds the argument map for one step's registry
// call, per spec.md §4.7: resolve a prior step's exported data when
// the description references it, fall back to the description's
// best-effort quoted-literal extraction, then let Dispatcher-provided
// overrides win over both.
func synthesizeParams(actionType, description string, context map[string]any, overrides map[string]any) map[string]any {
	params := map[string]any{}

	if key, ok := paramKeysByFamily[actionType]; ok {
		if m := stepReferencePattern.FindStringSubmatch(description); m != nil {
			if data, ok := context[fmt.Sprintf("step_%s_result", m[1])]; ok {
				if asMap, ok := data.(map[string]any); ok {
					if v, ok := asMap[key]; ok {
						params[key] = v
					}
				}
			}
		}
		if _, resolved := params[key]; !resolved {
			if m := quotedPathPattern.FindStringSubmatch(description); m != nil {
				params[key] = m[1]
			}
		}
	}

	for k, v := range overrides {
		params[k] = v
	}

	return params
}
