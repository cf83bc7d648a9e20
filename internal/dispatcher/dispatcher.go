// Package dispatcher implements the Dispatcher (spec.md §4.6): it
// walks a validated Plan in order, drives each step through its retry
// budget, accumulates step results into a shared execution context,
// and notifies subscribers as steps complete.
package dispatcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// Subscriber observes each StepOutcome as it completes. A subscriber
// callback that panics or errors never interrupts dispatch — callers
// are expected to handle their own errors internally; Subscriber's
// signature has no error return specifically to make that contract
// explicit.
type Subscriber func(outcome types.StepOutcome)

// Summary aggregates a completed (or aborted) dispatch run.
type Summary struct {
	PlanID         string `json:"plan_id"`
	TotalSteps     int    `json:"total_steps"`
	CompletedSteps int    `json:"completed_steps"`
	FailedSteps    int    `json:"failed_steps"`
	Aborted        bool   `json:"aborted"`
	AbortReason    string `json:"abort_reason,omitempty"`
}

// Dispatcher walks Plans against a StepExecutor under a RetryPolicy.
type Dispatcher struct {
	Executor    StepExecutor
	RetryPolicy RetryPolicy
	Subscribers []Subscriber
}

// New builds a Dispatcher.
func New(exec StepExecutor, policy RetryPolicy) *Dispatcher {
	return &Dispatcher{Executor: exec, RetryPolicy: policy}
}

// Subscribe registers a callback invoked after every StepOutcome.
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.Subscribers = append(d.Subscribers, s)
}

// Dispatch walks plan's steps in order and returns the aggregate
// Summary plus every StepOutcome produced, per spec.md §4.6.
func (d *Dispatcher) Dispatch(ctx context.Context, plan *types.Plan) (Summary, []types.StepOutcome) {
	summary := Summary{PlanID: plan.PlanID, TotalSteps: len(plan.Steps)}
	outcomes := make([]types.StepOutcome, 0, len(plan.Steps))

	stepContext := map[string]any{}

	for i := range plan.Steps {
		step := plan.Steps[i]
		step.Status = types.StepInProgress

		policy := d.RetryPolicy
		if step.RetryOverride != nil {
			policy.MaxRetries = *step.RetryOverride
		}

		outcome, fatal := runStepWithRetry(ctx, d.Executor, step, stepContext, policy)

		if outcome.Success {
			step.Status = types.StepCompleted
			summary.CompletedSteps++
			stepContext[fmt.Sprintf("step_%d_result", step.StepNumber)] = outcome.Data
		} else {
			step.Status = types.StepFailed
			summary.FailedSteps++
		}

		outcomes = append(outcomes, outcome)
		d.notify(outcome)

		if fatal || strings.Contains(strings.ToLower(outcome.Error), "fatal") {
			summary.Aborted = true
			summary.AbortReason = fmt.Sprintf("step %d: %s", step.StepNumber, outcome.Error)
			d.skipRemaining(plan, i+1, &outcomes, &summary)
			break
		}
	}

	return summary, outcomes
}

// skipRemaining marks every step after idx as skipped, per spec.md
// §4.10's "Skipped only on plan-level abort".
func (d *Dispatcher) skipRemaining(plan *types.Plan, idx int, outcomes *[]types.StepOutcome, summary *Summary) {
	for i := idx; i < len(plan.Steps); i++ {
		step := plan.Steps[i]
		step.Status = types.StepSkipped
		outcome := types.StepOutcome{
			StepNumber:      step.StepNumber,
			StepDescription: step.Description,
			Message:         "skipped: plan aborted by an earlier fatal step",
		}
		*outcomes = append(*outcomes, outcome)
		d.notify(outcome)
	}
}

// notify invokes every subscriber, isolating each callback so one
// subscriber's misbehavior never drops the rest.
func (d *Dispatcher) notify(outcome types.StepOutcome) {
	for _, sub := range d.Subscribers {
		func() {
			defer func() { _ = recover() }()
			sub(outcome)
		}()
	}
}
