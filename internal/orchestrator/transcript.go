package orchestrator

import (
	"fmt"
	"strings"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/direct"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/dispatcher"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// formatTaskTranscript assembles ProcessCommand's non-streaming
// transcript: the plan's steps followed by their outcomes and a
// summary line, per spec.md §6's "formatted transcript of plan +
// outcomes".
func formatTaskTranscript(plan *types.Plan, summary dispatcher.Summary, outcomes []types.StepOutcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan: %s\n", plan.Description)
	for _, step := range plan.Steps {
		fmt.Fprintf(&b, "  Step %d: %s\n", step.StepNumber, step.Description)
	}
	b.WriteString("\n[Executing...]\n")
	for _, outcome := range outcomes {
		b.WriteString(formatStepLine(outcome))
		b.WriteString("\n")
	}
	b.WriteString(formatExecutionResult(summary))
	return b.String()
}

// formatStepLine renders one StepOutcome as a single transcript line.
func formatStepLine(outcome types.StepOutcome) string {
	status := "OK"
	if !outcome.Success {
		status = "FAILED"
	}
	line := fmt.Sprintf("  Step %d [%s]: %s", outcome.StepNumber, status, outcome.StepDescription)
	if outcome.Message != "" {
		line += " — " + outcome.Message
	}
	if !outcome.Success && outcome.Error != "" {
		line += " — " + outcome.Error
	}
	return line
}

// formatExecutionResult renders the dispatch Summary as spec.md §6's
// "Execution Result:" line.
func formatExecutionResult(summary dispatcher.Summary) string {
	if summary.Aborted {
		return fmt.Sprintf("Execution Result: aborted (%d/%d completed) — %s", summary.CompletedSteps, summary.TotalSteps, summary.AbortReason)
	}
	return fmt.Sprintf("Execution Result: %d/%d steps completed, %d failed", summary.CompletedSteps, summary.TotalSteps, summary.FailedSteps)
}

// formatCodeTranscript renders a direct.Outcome as the non-streaming
// transcript for a code-generation request.
func formatCodeTranscript(outcome direct.Outcome) string {
	if outcome.Success {
		return fmt.Sprintf("Execution Result: generated and verified after %d attempt(s). Saved to %s", outcome.Attempts, outcome.ExportedPath)
	}
	return fmt.Sprintf("Execution Result: failed after %d attempt(s) — %s", outcome.Attempts, outcome.Error)
}
