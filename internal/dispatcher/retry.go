package dispatcher

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/executor"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// RetryPolicy controls the Dispatcher's per-step retry behavior,
// including action-type substitution on retry.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	// Alternatives maps an action type to the tool substituted in on
	// retry after that action type first fails, per spec.md §4.6 step 5.
	Alternatives map[string]string
}

// StepExecutor is the subset of *executor.Server the Dispatcher needs.
type StepExecutor interface {
	Execute(ctx context.Context, step types.PlanStep, stepContext map[string]any, overrides map[string]any) executor.Result
}

// runStepWithRetry drives one step through its retry budget, per
// spec.md §4.6 steps 2-6. It returns the StepOutcome and whether the
// step's final error should abort the remaining plan.
func runStepWithRetry(ctx context.Context, exec StepExecutor, step types.PlanStep, stepContext map[string]any, policy RetryPolicy) (types.StepOutcome, bool) {
	attempts := make([]types.AttemptResult, 0, policy.MaxRetries+1)
	baseActionType := ""
	if len(step.RequiredTools) > 0 {
		baseActionType = step.RequiredTools[0]
	}

	var (
		lastResult      executor.Result
		usedAlternative bool
		fatal           bool
	)

	operation := func() error {
		currentAction := baseActionType
		if usedAlternative {
			if alt, ok := policy.Alternatives[baseActionType]; ok {
				currentAction = alt
			}
		}

		attemptStep := step
		attemptStep.RequiredTools = []string{currentAction}

		start := time.Now()
		lastResult = exec.Execute(ctx, attemptStep, stepContext, nil)
		elapsedMs := float64(time.Since(start).Milliseconds())

		attempt := types.AttemptResult{
			AttemptNumber:   len(attempts) + 1,
			Success:         lastResult.Success,
			Verified:        lastResult.Verified,
			ActionType:      currentAction,
			UsedAlternative: usedAlternative,
			Error:           lastResult.Error,
			ExecutionTimeMs: elapsedMs,
		}
		if usedAlternative {
			attempt.AlternativeAction = currentAction
		}
		attempts = append(attempts, attempt)

		if lastResult.Success {
			return nil
		}

		if classifyFatal(lastResult) {
			fatal = true
			return backoff.Permanent(errors.New(lastResult.Error))
		}
		if classifyPermanent(lastResult) {
			return backoff.Permanent(errors.New(lastResult.Error))
		}

		if _, ok := policy.Alternatives[baseActionType]; ok {
			usedAlternative = true
		}
		return errors.New(lastResult.Error)
	}

	expo := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(policy.BaseDelay),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxElapsedTime(0),
	)
	bo := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(policy.MaxRetries)), ctx)

	_ = backoff.Retry(operation, bo)

	outcome := types.StepOutcome{
		StepNumber:      step.StepNumber,
		StepDescription: step.Description,
		Success:         lastResult.Success,
		Message:         lastResult.Message,
		Data:            lastResult.Data,
		Error:           lastResult.Error,
		ExecutionTimeMs: lastResult.ExecutionTimeMs,
		Verified:        lastResult.Verified,
		VerificationMessage: lastResult.VerificationMessage,
		Attempts:        attempts,
	}
	return outcome, fatal
}
