package dispatcher

import (
	"context"
	"fmt"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// ProgressFunc receives one human-readable progress line at a time.
type ProgressFunc func(line string)

// DispatchStream runs the same walk as Dispatch but also emits textual
// progress per retry/gate, per spec.md §4.6's streaming variant. It
// returns the same (Summary, outcomes) pair Dispatch would.
func (d *Dispatcher) DispatchStream(ctx context.Context, plan *types.Plan, onProgress ProgressFunc) (Summary, []types.StepOutcome) {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	progressSub := func(outcome types.StepOutcome) {
		for _, attempt := range outcome.Attempts {
			status := "failed"
			if attempt.Success {
				status = "succeeded"
			}
			line := fmt.Sprintf("Step %d attempt %d (%s): %s", outcome.StepNumber, attempt.AttemptNumber, attempt.ActionType, status)
			if attempt.UsedAlternative {
				line += " [alternative]"
			}
			onProgress(line)
		}
		if outcome.Success {
			onProgress(fmt.Sprintf("Step %d complete: %s", outcome.StepNumber, outcome.Message))
		} else if outcome.Message != "" {
			onProgress(fmt.Sprintf("Step %d skipped or failed: %s", outcome.StepNumber, outcome.Message))
		}
	}
	d.Subscribe(progressSub)
	defer d.unsubscribeLast()

	return d.Dispatch(ctx, plan)
}

// unsubscribeLast drops the most recently added subscriber, used to
// scope DispatchStream's progress subscriber to a single call.
func (d *Dispatcher) unsubscribeLast() {
	if len(d.Subscribers) == 0 {
		return
	}
	d.Subscribers = d.Subscribers[:len(d.Subscribers)-1]
}
