package direct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectInputCallsCountsAndCapturesPrompts(t *testing.T) {
	code := "name = input('Name: ')\nage = input()\n"
	count, prompts := detectInputCalls(code)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"Name: ", ""}, prompts)
}

func TestHasInputCallsFalseWhenAbsent(t *testing.T) {
	assert.False(t, hasInputCalls("print('hi')\n"))
}

func TestGenerateTestInputsOneValuePerPrompt(t *testing.T) {
	inputs := generateTestInputs([]string{"Name: ", "Age: "})
	assert.Equal(t, []string{"1", "1"}, inputs)
}
