package direct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCodeStripsPythonFence(t *testing.T) {
	raw := "Here you go:\n```python\nprint('hi')\n```\n"
	assert.Equal(t, "print('hi')", cleanCode(raw))
}

func TestCleanCodeStripsBareFence(t *testing.T) {
	raw := "```\nprint('hi')\n```"
	assert.Equal(t, "print('hi')", cleanCode(raw))
}

func TestCleanCodePassesThroughUnfenced(t *testing.T) {
	raw := "  print('hi')  \n"
	assert.Equal(t, "print('hi')", cleanCode(raw))
}
