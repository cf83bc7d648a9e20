package planner

import (
	"fmt"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// Validate runs the four structural/safety checks from spec.md §4.5
// step 7 over a candidate plan and stamps VerifiedAt.
func Validate(plan *types.Plan, safetyValidationEnabled bool) {
	result := types.PlanValidationResult{
		Issues:         []string{},
		Warnings:       []string{},
		SafetyConcerns: []string{},
	}

	stepNumbers := make(map[int]bool, len(plan.Steps))
	for _, step := range plan.Steps {
		stepNumbers[step.StepNumber] = true
	}

	for i, step := range plan.Steps {
		expected := i + 1
		if step.StepNumber != expected {
			result.Issues = append(result.Issues, fmt.Sprintf("step at position %d has step_number %d, expected %d", i+1, step.StepNumber, expected))
		}

		for _, dep := range step.Dependencies {
			if dep >= step.StepNumber {
				result.Issues = append(result.Issues, fmt.Sprintf("step %d depends on step %d, which is not strictly earlier", step.StepNumber, dep))
				continue
			}
			if !stepNumbers[dep] {
				result.Issues = append(result.Issues, fmt.Sprintf("step %d depends on nonexistent step %d", step.StepNumber, dep))
			}
		}

		if step.Description == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("step %d has an empty description", step.StepNumber))
		}

		if step.StepNumber == 1 && len(step.Dependencies) > 0 {
			result.Warnings = append(result.Warnings, "step 1 declares dependencies, but no earlier step exists")
		}

		for _, flag := range step.SafetyFlags {
			switch flag {
			case types.SafetyDestructive, types.SafetySystemCommand, types.SafetyFileModification:
				result.SafetyConcerns = append(result.SafetyConcerns, fmt.Sprintf("step %d is flagged %s: %s", step.StepNumber, flag, step.Description))
			}
		}
	}

	result.IsValid = len(result.Issues) == 0

	plan.ValidationResult = result
	plan.IsSafe = safetyValidationEnabled && len(result.SafetyConcerns) == 0
	plan.VerifiedAt = now()
}

// now is overridden in tests to keep VerifiedAt deterministic.
var now = func() time.Time { return time.Now().UTC() }
