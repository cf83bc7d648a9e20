package direct

import (
	"regexp"
	"strings"
)

var codeFencePattern = regexp.MustCompile("(?s)```(?:python)?\\s*\\n?(.*?)```")

// cleanCode strips a surrounding markdown code fence and any leading
// prose from the LLM's raw generation response, grounded on
// original_source's utils.clean_code.
func cleanCode(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := codeFencePattern.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}
