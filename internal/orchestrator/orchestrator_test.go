package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/direct"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/dispatcher"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/executor"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/planner"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/rag"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

type fakePlanner struct {
	plan *types.Plan
	err  error
}

func (f *fakePlanner) Plan(ctx context.Context, userRequest, ragContext string) (*types.Plan, error) {
	return f.plan, f.err
}

func (f *fakePlanner) PlanStream(ctx context.Context, userRequest, ragContext string, onProgress planner.ProgressFunc) (*types.Plan, error) {
	if onProgress != nil {
		onProgress("Planning…")
		for _, step := range f.plan.Steps {
			onProgress(step.Description)
		}
	}
	return f.plan, f.err
}

type fakeStepExecutor struct {
	result executor.Result
}

func (f *fakeStepExecutor) Execute(ctx context.Context, step types.PlanStep, stepContext map[string]any, overrides map[string]any) executor.Result {
	return f.result
}

type fakeCodeExecutor struct {
	outcome direct.Outcome
}

func (f *fakeCodeExecutor) ExecuteRequest(ctx context.Context, requestID, userRequest string, onProgress direct.ProgressFunc) direct.Outcome {
	if onProgress != nil {
		onProgress("Generating code... (attempt 1)")
	}
	return f.outcome
}

type fakeRAG struct {
	results []rag.RetrievalResult
}

func (f *fakeRAG) Retrieve(ctx context.Context, query string, memoryTypes []string, tags []string, topK int) ([]rag.RetrievalResult, error) {
	return f.results, nil
}

func simplePlan() *types.Plan {
	return &types.Plan{
		PlanID:      "p1",
		Description: "list the downloads folder",
		Steps: []types.PlanStep{
			{StepNumber: 1, Description: "list files", RequiredTools: []string{"file_list"}},
		},
	}
}

func TestProcessCommandShortCircuitsCasualChat(t *testing.T) {
	o := New(&fakePlanner{}, &fakeStepExecutor{}, &fakeCodeExecutor{}, nil, Config{RetryPolicy: dispatcher.RetryPolicy{MaxRetries: 1}})

	result, err := o.ProcessCommand(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, IntentCasual, result.Intent)
	assert.Nil(t, result.Plan)
	assert.NotEmpty(t, result.ConversationalReply)
}

func TestProcessCommandRoutesCodeRequestsToDirectExecutor(t *testing.T) {
	o := New(&fakePlanner{}, &fakeStepExecutor{}, &fakeCodeExecutor{outcome: direct.Outcome{Success: true, Attempts: 1, ExportedPath: "/tmp/out.py"}}, nil, Config{})

	result, err := o.ProcessCommand(context.Background(), "write a python script that prints hello")
	require.NoError(t, err)
	assert.Equal(t, IntentCode, result.Intent)
	require.NotNil(t, result.CodeOutcome)
	assert.True(t, result.CodeOutcome.Success)
	assert.Contains(t, result.Transcript, "/tmp/out.py")
}

func TestProcessCommandRunsPlanAndDispatchForTaskRequests(t *testing.T) {
	o := New(
		&fakePlanner{plan: simplePlan()},
		&fakeStepExecutor{result: executor.Result{Success: true, Message: "done"}},
		&fakeCodeExecutor{},
		&fakeRAG{results: []rag.RetrievalResult{{Snippet: "past run used file_list"}}},
		Config{RetryPolicy: dispatcher.RetryPolicy{MaxRetries: 1}},
	)

	result, err := o.ProcessCommand(context.Background(), "list my downloads folder")
	require.NoError(t, err)
	assert.Equal(t, IntentTask, result.Intent)
	require.NotNil(t, result.Plan)
	assert.Equal(t, 1, result.Summary.CompletedSteps)
	assert.Contains(t, result.Transcript, "Execution Result:")
}

func TestProcessCommandStreamEmitsSectionsInOrder(t *testing.T) {
	o := New(
		&fakePlanner{plan: simplePlan()},
		&fakeStepExecutor{result: executor.Result{Success: true, Message: "done"}},
		&fakeCodeExecutor{},
		nil,
		Config{RetryPolicy: dispatcher.RetryPolicy{MaxRetries: 1}},
	)

	var chunks []string
	result, err := o.ProcessCommandStream(context.Background(), "list my downloads folder", func(c string) {
		chunks = append(chunks, c)
	})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	full := result.Transcript
	planIdx := indexOf(full, "Planning…")
	execIdx := indexOf(full, "[Executing...]")
	resultIdx := indexOf(full, "Execution Result:")
	require.True(t, planIdx >= 0 && execIdx > planIdx && resultIdx > execIdx)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
