package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/llmclient"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// ProgressFunc receives one human-readable progress line at a time.
type ProgressFunc func(line string)

// PlanStream runs the same planning pass as Plan but emits progress
// markers as it goes, per spec.md §4.5's streaming variant. It must
// not invoke planning twice — the underlying LLM call is made exactly
// once, through GenerateStream, and the streamed chunks are also what
// get parsed into the final plan.
func (p *Planner) PlanStream(ctx context.Context, userRequest, ragContext string, onProgress ProgressFunc) (*types.Plan, error) {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	system, user := ComposePrompt(userRequest, p.Tools.ListActions(), ragContext)
	onProgress("Planning…")

	var accumulated string
	resp, err := p.Client.GenerateStream(ctx, llmclient.Request{
		System:      system,
		Messages:    []llmclient.Message{{Role: "user", Content: user}},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		JSONMode:    true,
	}, func(chunk string) {
		accumulated += chunk
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation: %w", err)
	}

	content := resp.Content
	if content == "" {
		content = accumulated
	}

	steps := p.parseSteps(content, userRequest)

	plan := &types.Plan{
		PlanID:      uuid.NewString(),
		UserInput:   userRequest,
		Description: steps.description,
		Steps:       steps.steps,
		GeneratedAt: now(),
	}

	p.injectTools(plan, userRequest)
	applyRetryOverride(plan, userRequest)

	for _, step := range plan.Steps {
		onProgress(fmt.Sprintf("Step %d: %s", step.StepNumber, step.Description))
	}

	Validate(plan, p.SafetyValidationEnabled)

	if plan.IsSafe {
		onProgress("Safe: ✓")
	} else {
		onProgress("Safe: ✗")
	}

	return plan, nil
}
