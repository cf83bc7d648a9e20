package direct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGenerationPromptIncludesRequestAndRules(t *testing.T) {
	prompt := buildGenerationPrompt("count the files in a directory", nil)
	assert.Contains(t, prompt, "count the files in a directory")
	assert.Contains(t, prompt, "if __name__ == \"__main__\":")
}

func TestBuildGenerationPromptCapsLearnedPatternsAtFive(t *testing.T) {
	patterns := []string{"a", "b", "c", "d", "e", "f", "g"}
	prompt := buildGenerationPrompt("do a thing", patterns)
	assert.Contains(t, prompt, "5. e")
	assert.NotContains(t, prompt, "6. f")
}

func TestBuildFixPromptIncludesErrorAndAttempt(t *testing.T) {
	prompt := buildFixPrompt("do a thing", "print('x'", "SyntaxError: unexpected EOF", 2)
	assert.Contains(t, prompt, "attempt 2")
	assert.Contains(t, prompt, "SyntaxError: unexpected EOF")
	assert.Contains(t, prompt, "print('x'")
}
