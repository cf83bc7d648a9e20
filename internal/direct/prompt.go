package direct

import (
	"fmt"
	"strings"
)

// buildGenerationPrompt composes the initial code-generation prompt,
// optionally seeded with learned-mistake patterns, grounded on
// original_source's DirectExecutor._build_code_generation_prompt.
func buildGenerationPrompt(userRequest string, learnedPatterns []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a python script that does the following:\n\n%s\n\n", userRequest)
	b.WriteString(`Requirements:
- Write complete, executable code
- Include proper error handling
- Add comments explaining the code
- Make it production-ready
- No extra text or explanations, just code
- IMPORTANT: for interactive programs, use input() and print(), not GUI dialogs
- IMPORTANT (GUI programs): if you use tkinter/pygame/PyQt/kivy, structure:
  - Do NOT create or show any GUI windows at import time
  - Put main loop / window launch code under if __name__ == "__main__":
  - Encapsulate state + event handlers in a class
  - Keep UI separate from core logic so tests can verify state changes
- No markdown formatting, no explanations.`)

	if len(learnedPatterns) > 0 {
		b.WriteString("\n\nBased on previous mistakes, also include:\n")
		for i, pattern := range learnedPatterns {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, pattern)
		}
		b.WriteString("\nApply these patterns to avoid repeating the same errors.\n")
	}

	b.WriteString("\nReturn only code, no markdown formatting, no explanations.")
	return b.String()
}

// buildFixPrompt composes the retry prompt after a failed gate,
// feeding the previous code and captured error output back to the
// LLM, grounded on DirectExecutor._build_fix_prompt.
func buildFixPrompt(userRequest, previousCode, errorOutput string, attempt int) string {
	return fmt.Sprintf(`Fix the following python code based on the error output.

ORIGINAL REQUEST:
%s

PREVIOUS CODE:
%s

ERROR OUTPUT (attempt %d):
%s

INSTRUCTIONS:
1. Fix the specific error(s) mentioned in the error output
2. Keep the same functionality and approach
3. Ensure the code is complete and runnable
4. Add proper error handling if needed
5. Make minimal changes to fix the issue
6. Return only the fixed code, no explanations

FIXED CODE:`, userRequest, previousCode, attempt, errorOutput)
}
