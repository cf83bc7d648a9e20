package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/executor"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

type scriptedExecutor struct {
	results []executor.Result
	call    int
	seen    []string
}

func (s *scriptedExecutor) Execute(ctx context.Context, step types.PlanStep, stepContext map[string]any, overrides map[string]any) executor.Result {
	s.seen = append(s.seen, step.RequiredTools[0])
	idx := s.call
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.call++
	return s.results[idx]
}

func plan(steps ...types.PlanStep) *types.Plan {
	return &types.Plan{PlanID: "p1", Steps: steps}
}

func TestDispatchSingleSuccessfulStep(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{{Success: true, Message: "done"}}}
	d := New(exec, RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond})

	summary, outcomes := d.Dispatch(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}}))

	assert.Equal(t, 1, summary.CompletedSteps)
	assert.False(t, summary.Aborted)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Success)
}

func TestDispatchRetriesTransientFailureThenSucceeds(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{
		{Success: false, Error: "transient glitch"},
		{Success: true, Message: "done"},
	}}
	d := New(exec, RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond})

	summary, outcomes := d.Dispatch(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}}))

	assert.Equal(t, 1, summary.CompletedSteps)
	require.Len(t, outcomes, 1)
	assert.Len(t, outcomes[0].Attempts, 2)
}

func TestDispatchStopsRetryingOnPermanentError(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{
		{Success: false, Error: "file not found"},
		{Success: true, Message: "should never run"},
	}}
	d := New(exec, RetryPolicy{MaxRetries: 5, BaseDelay: time.Millisecond})

	summary, outcomes := d.Dispatch(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}}))

	assert.Equal(t, 1, summary.FailedSteps)
	require.Len(t, outcomes, 1)
	assert.Len(t, outcomes[0].Attempts, 1)
}

func TestDispatchAbortsPlanOnFatalError(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{
		{Success: false, Error: "fatal: disk unmounted"},
	}}
	d := New(exec, RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond})

	summary, outcomes := d.Dispatch(context.Background(), plan(
		types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}},
		types.PlanStep{StepNumber: 2, RequiredTools: []string{"file_create"}},
	))

	assert.True(t, summary.Aborted)
	require.Len(t, outcomes, 2)
	assert.Contains(t, outcomes[1].Message, "skipped")
}

func TestDispatchSubstitutesAlternativeActionOnRetry(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{
		{Success: false, Error: "transient"},
		{Success: true, Message: "done via alternative"},
	}}
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, Alternatives: map[string]string{"gui_click_mouse": "typing_hotkey"}}
	d := New(exec, policy)

	_, outcomes := d.Dispatch(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"gui_click_mouse"}}))

	require.Len(t, outcomes, 1)
	require.Len(t, outcomes[0].Attempts, 2)
	assert.True(t, outcomes[0].Attempts[1].UsedAlternative)
	assert.Equal(t, "typing_hotkey", outcomes[0].Attempts[1].ActionType)
}

func TestDispatchExportsStepDataIntoContext(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{{Success: true, Data: map[string]any{"file_path": "a.txt"}}}}
	d := New(exec, RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond})

	var captured map[string]any
	d.Subscribe(func(outcome types.StepOutcome) {
		captured = outcome.Data
	})

	d.Dispatch(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_create"}}))
	assert.Equal(t, "a.txt", captured["file_path"])
}

func TestDispatchHonorsPerStepRetryOverride(t *testing.T) {
	override := 1
	exec := &scriptedExecutor{results: []executor.Result{
		{Success: false, Error: "transient glitch"},
		{Success: false, Error: "transient glitch"},
		{Success: true, Message: "should never run"},
	}}
	// Policy default allows 5 retries, but the step's RetryOverride of 1
	// should win, so the step exhausts after its one allotted retry
	// (2 attempts total) instead of running a 3rd time to success.
	d := New(exec, RetryPolicy{MaxRetries: 5, BaseDelay: time.Millisecond})

	summary, outcomes := d.Dispatch(context.Background(), plan(types.PlanStep{
		StepNumber:    1,
		RequiredTools: []string{"file_list"},
		RetryOverride: &override,
	}))

	assert.Equal(t, 1, summary.FailedSteps)
	require.Len(t, outcomes, 1)
	assert.Len(t, outcomes[0].Attempts, 2)
}

func TestDispatchSubscriberPanicDoesNotInterruptDispatch(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{{Success: true}}}
	d := New(exec, RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond})
	d.Subscribe(func(types.StepOutcome) { panic("boom") })

	summary, outcomes := d.Dispatch(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}}))
	assert.Equal(t, 1, summary.CompletedSteps)
	assert.Len(t, outcomes, 1)
}
