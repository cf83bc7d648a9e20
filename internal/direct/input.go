package direct

import "regexp"

// inputCallPattern matches a Python input() call, optionally capturing
// its prompt string, grounded on original_source's
// utils.detect_input_calls/has_input_calls.
var inputCallPattern = regexp.MustCompile(`input\(\s*(?:["']([^"']*)["'])?\s*\)`)

// detectInputCalls scans code for input() calls and returns their
// count along with the prompt text of each (empty string when the
// call passed no literal prompt).
func detectInputCalls(code string) (int, []string) {
	matches := inputCallPattern.FindAllStringSubmatch(code, -1)
	prompts := make([]string, 0, len(matches))
	for _, m := range matches {
		prompts = append(prompts, m[1])
	}
	return len(matches), prompts
}

// hasInputCalls reports whether code contains any input() call.
func hasInputCalls(code string) bool {
	return inputCallPattern.MatchString(code)
}

// generateTestInputs synthesizes a plausible stdin value per detected
// prompt so the smoke gate can run an interactive program
// non-interactively, grounded on utils.generate_test_inputs.
func generateTestInputs(prompts []string) []string {
	inputs := make([]string, len(prompts))
	for i := range prompts {
		inputs[i] = "1"
	}
	return inputs
}
