package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/executor"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

func TestDispatchStreamEmitsProgressLines(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{{Success: true, Message: "done"}}}
	d := New(exec, RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond})

	var lines []string
	summary, _ := d.DispatchStream(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}}), func(line string) {
		lines = append(lines, line)
	})

	assert.Equal(t, 1, summary.CompletedSteps)
	assert.NotEmpty(t, lines)
}

func TestDispatchStreamSubscriberIsScopedToOneCall(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{{Success: true}}}
	d := New(exec, RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond})

	d.DispatchStream(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}}), nil)
	assert.Empty(t, d.Subscribers)
}

func TestDispatchStreamToleratesNilProgressCallback(t *testing.T) {
	exec := &scriptedExecutor{results: []executor.Result{{Success: true}}}
	d := New(exec, RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond})

	summary, outcomes := d.DispatchStream(context.Background(), plan(types.PlanStep{StepNumber: 1, RequiredTools: []string{"file_list"}}), nil)
	assert.Equal(t, 1, summary.CompletedSteps)
	assert.Len(t, outcomes, 1)
}
