package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/llmclient"
)

type fakeCatalog struct{}

func (fakeCatalog) ListActions() map[string]string {
	return map[string]string{
		"file_list":    "List files in a directory",
		"file_create":  "Create a file",
		"shell_ping":   "Ping a host",
	}
}

type fakeClient struct {
	content string
	err     error
}

func (f *fakeClient) Generate(ctx context.Context, req llmclient.Request) (*llmclient.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llmclient.Response{Content: f.content}, nil
}

func (f *fakeClient) GenerateStream(ctx context.Context, req llmclient.Request, onChunk llmclient.StreamFunc) (*llmclient.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	if onChunk != nil {
		onChunk(f.content)
	}
	return &llmclient.Response{Content: f.content}, nil
}

func TestPlannerPlanDecodesWellFormedJSON(t *testing.T) {
	client := &fakeClient{content: `{"description":"list downloads","steps":[{"step_number":1,"description":"list files","required_tools":["file_list"],"dependencies":[],"safety_flags":[]}]}`}
	p := New(client, fakeCatalog{}, true, 0.2)

	plan, err := p.Plan(context.Background(), "list my downloads folder", "")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "file_list", plan.Steps[0].RequiredTools[0])
	assert.True(t, plan.ValidationResult.IsValid)
	assert.NotEmpty(t, plan.PlanID)
}

func TestPlannerPlanInjectsMissingTool(t *testing.T) {
	client := &fakeClient{content: `{"description":"list downloads","steps":[{"step_number":1,"description":"list the files in downloads","dependencies":[],"safety_flags":[]}]}`}
	p := New(client, fakeCatalog{}, true, 0.2)

	plan, err := p.Plan(context.Background(), "list my downloads folder", "")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "file_list", plan.Steps[0].RequiredTools[0])
}

func TestPlannerPlanFallsBackOnUnparsableOutput(t *testing.T) {
	client := &fakeClient{content: "not json at all, sorry"}
	p := New(client, fakeCatalog{}, true, 0.2)

	plan, err := p.Plan(context.Background(), "open notepad", "")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "subprocess_open_application", plan.Steps[0].RequiredTools[0])
}

func TestPlannerPlanCoercesBareStepArray(t *testing.T) {
	client := &fakeClient{content: `[{"step_number":5,"description":"ping it","required_tools":["shell_ping"],"dependencies":[],"safety_flags":[]}]`}
	p := New(client, fakeCatalog{}, true, 0.2)

	plan, err := p.Plan(context.Background(), "ping example.com", "")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, 1, plan.Steps[0].StepNumber)
}

func TestPlannerPlanCarriesExplicitRetryOverrideOntoEveryStep(t *testing.T) {
	client := &fakeClient{content: `{"description":"copy files","steps":[
		{"step_number":1,"description":"list files","required_tools":["file_list"],"dependencies":[],"safety_flags":[]},
		{"step_number":2,"description":"copy the file","required_tools":["file_copy"],"dependencies":[1],"safety_flags":[]}
	]}`}
	p := New(client, fakeCatalog{}, true, 0.2)

	plan, err := p.Plan(context.Background(), "copy the files, try up to 4 times if it fails", "")
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)
	require.NotNil(t, plan.Steps[0].RetryOverride)
	require.NotNil(t, plan.Steps[1].RetryOverride)
	assert.Equal(t, 4, *plan.Steps[0].RetryOverride)
	assert.Equal(t, 4, *plan.Steps[1].RetryOverride)
}

func TestPlannerPlanLeavesRetryOverrideNilWhenUnspecified(t *testing.T) {
	client := &fakeClient{content: `{"description":"list downloads","steps":[{"step_number":1,"description":"list files","required_tools":["file_list"],"dependencies":[],"safety_flags":[]}]}`}
	p := New(client, fakeCatalog{}, true, 0.2)

	plan, err := p.Plan(context.Background(), "list my downloads folder", "")
	require.NoError(t, err)
	assert.Nil(t, plan.Steps[0].RetryOverride)
}

func TestPlannerPlanPropagatesGenerateError(t *testing.T) {
	client := &fakeClient{err: assert.AnError}
	p := New(client, fakeCatalog{}, true, 0.2)

	_, err := p.Plan(context.Background(), "do something", "")
	assert.Error(t, err)
}
