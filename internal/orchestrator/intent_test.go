package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDetectsCasualGreeting(t *testing.T) {
	c := NewIntentClassifier()
	assert.Equal(t, IntentCasual, c.Classify("hey there"))
	assert.Equal(t, IntentCasual, c.Classify("thanks"))
}

func TestClassifyDetectsCodeRequest(t *testing.T) {
	c := NewIntentClassifier()
	assert.Equal(t, IntentCode, c.Classify("write a python script that sorts a list"))
}

func TestClassifyDefaultsToTask(t *testing.T) {
	c := NewIntentClassifier()
	assert.Equal(t, IntentTask, c.Classify("list everything in my downloads folder and copy the pdfs to desktop"))
}

func TestCasualReplyVariesByCategory(t *testing.T) {
	c := NewIntentClassifier()
	assert.Equal(t, "You're welcome.", c.CasualReply("thanks a lot"))
	assert.Equal(t, "Goodbye.", c.CasualReply("bye"))
}
