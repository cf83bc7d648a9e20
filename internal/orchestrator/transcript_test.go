package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/direct"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/dispatcher"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

func TestFormatStepLineIncludesErrorOnFailure(t *testing.T) {
	line := formatStepLine(types.StepOutcome{StepNumber: 1, StepDescription: "list files", Success: false, Error: "boom"})
	assert.Contains(t, line, "FAILED")
	assert.Contains(t, line, "boom")
}

func TestFormatExecutionResultReportsAbort(t *testing.T) {
	summary := dispatcher.Summary{TotalSteps: 2, CompletedSteps: 1, Aborted: true, AbortReason: "step 2: fatal"}
	line := formatExecutionResult(summary)
	assert.Contains(t, line, "aborted")
	assert.Contains(t, line, "step 2: fatal")
}

func TestFormatCodeTranscriptReportsFailure(t *testing.T) {
	line := formatCodeTranscript(direct.Outcome{Success: false, Attempts: 3, Error: "syntax error"})
	assert.Contains(t, line, "failed after 3 attempt")
	assert.Contains(t, line, "syntax error")
}
