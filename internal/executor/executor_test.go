package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

type fakeRouter struct {
	result types.ActionResult
	err    error
	gotParams map[string]any
}

func (f *fakeRouter) Route(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	f.gotParams = params
	return f.result, f.err
}

type fakeVerifier struct {
	result types.VerificationResult
}

func (f *fakeVerifier) Verify(actionType string, resultData, actionParams map[string]any) types.VerificationResult {
	return f.result
}

func TestExecuteSuccessWithoutVerification(t *testing.T) {
	router := &fakeRouter{result: types.ActionResult{Success: true, ActionType: "file_list", Message: "ok"}}
	server := New(router, nil, false)

	step := types.PlanStep{RequiredTools: []string{"file_list"}, Description: "list 'C:/tmp'"}
	result := server.Execute(context.Background(), step, nil, nil)

	assert.True(t, result.Success)
	assert.Equal(t, "C:/tmp", router.gotParams["directory"])
}

func TestExecuteFailsWhenNoToolAssigned(t *testing.T) {
	server := New(&fakeRouter{}, nil, false)
	result := server.Execute(context.Background(), types.PlanStep{}, nil, nil)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestExecutePropagatesRouteError(t *testing.T) {
	router := &fakeRouter{err: assert.AnError}
	server := New(router, nil, false)
	step := types.PlanStep{RequiredTools: []string{"file_list"}}
	result := server.Execute(context.Background(), step, nil, nil)
	assert.False(t, result.Success)
	assert.Equal(t, assert.AnError.Error(), result.Error)
}

func TestExecuteVerificationCanFlipSuccessToFalse(t *testing.T) {
	router := &fakeRouter{result: types.ActionResult{Success: true, ActionType: "file_create"}}
	v := &fakeVerifier{result: types.VerificationResult{Verified: false, Error: "path missing"}}
	server := New(router, v, true)

	step := types.PlanStep{RequiredTools: []string{"file_create"}}
	result := server.Execute(context.Background(), step, nil, nil)

	assert.False(t, result.Success)
	assert.False(t, result.Verified)
}

func TestExecuteSkipsVerificationOnAdapterFailure(t *testing.T) {
	router := &fakeRouter{result: types.ActionResult{Success: false, ActionType: "file_create", Error: "denied"}}
	v := &fakeVerifier{result: types.VerificationResult{Verified: true}}
	server := New(router, v, true)

	step := types.PlanStep{RequiredTools: []string{"file_create"}}
	result := server.Execute(context.Background(), step, nil, nil)

	assert.False(t, result.Success)
	assert.False(t, result.Verified)
}

func TestExecuteResolvesParamFromPriorStepContext(t *testing.T) {
	router := &fakeRouter{result: types.ActionResult{Success: true}}
	server := New(router, nil, false)

	step := types.PlanStep{RequiredTools: []string{"file_create"}, Description: "use the result of step 1"}
	ctx := map[string]any{"step_1_result": map[string]any{"file_path": "C:/out.txt"}}
	require.NotPanics(t, func() {
		server.Execute(context.Background(), step, ctx, nil)
	})
	assert.Equal(t, "C:/out.txt", router.gotParams["file_path"])
}

func TestExecuteOverridesWinOverEverything(t *testing.T) {
	router := &fakeRouter{result: types.ActionResult{Success: true}}
	server := New(router, nil, false)

	step := types.PlanStep{RequiredTools: []string{"file_create"}, Description: "create 'a.txt'"}
	result := server.Execute(context.Background(), step, nil, map[string]any{"file_path": "b.txt"})

	assert.True(t, result.Success)
	assert.Equal(t, "b.txt", router.gotParams["file_path"])
}
