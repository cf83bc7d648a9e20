package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/direct"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/llmclient"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// ToolCatalog is the subset of *registry.Registry the Planner needs:
// the action-type-to-description map used to render the prompt.
type ToolCatalog interface {
	ListActions() map[string]string
}

// Planner turns a user request into a validated types.Plan by calling
// an LLM for a JSON plan, repairing and decoding its output, injecting
// missing tools via keyword heuristics, and validating the result —
// grounded on spec.md §4.5 steps 1-7.
type Planner struct {
	Client                  llmclient.Client
	Tools                   ToolCatalog
	SafetyValidationEnabled bool
	Temperature             float64
	MaxTokens               int
}

// New builds a Planner.
func New(client llmclient.Client, tools ToolCatalog, safetyValidationEnabled bool, temperature float64) *Planner {
	return &Planner{
		Client:                  client,
		Tools:                   tools,
		SafetyValidationEnabled: safetyValidationEnabled,
		Temperature:             temperature,
		MaxTokens:               4096,
	}
}

// rawPlan is the shape the LLM is asked to emit. description and steps
// are optional, and the decoded step_number is not trusted: steps are
// renumbered by position when coerced into a Plan.
type rawPlan struct {
	Description string    `json:"description"`
	Steps       []rawStep `json:"steps"`
}

type rawStep struct {
	StepNumber    int      `json:"step_number"`
	Description   string   `json:"description"`
	RequiredTools []string `json:"required_tools"`
	Dependencies  []int    `json:"dependencies"`
	SafetyFlags   []string `json:"safety_flags"`
}

// Plan generates and validates a plan for userRequest. ragContext, if
// non-empty, is folded into the system prompt as memory-derived
// guidance per spec.md §4.5 step 1.
func (p *Planner) Plan(ctx context.Context, userRequest, ragContext string) (*types.Plan, error) {
	system, user := ComposePrompt(userRequest, p.Tools.ListActions(), ragContext)

	resp, err := p.Client.Generate(ctx, llmclient.Request{
		System:      system,
		Messages:    []llmclient.Message{{Role: "user", Content: user}},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation: %w", err)
	}

	steps := p.parseSteps(resp.Content, userRequest)

	plan := &types.Plan{
		PlanID:      uuid.NewString(),
		UserInput:   userRequest,
		Description: steps.description,
		Steps:       steps.steps,
		GeneratedAt: now(),
	}

	p.injectTools(plan, userRequest)
	applyRetryOverride(plan, userRequest)
	Validate(plan, p.SafetyValidationEnabled)
	return plan, nil
}

// applyRetryOverride carries an explicit "retry up to N times" (or
// equivalent) directive from the user request onto every step, per
// spec.md §6's retry directive parsing — the Dispatcher honors it in
// place of its configured default when set.
func applyRetryOverride(plan *types.Plan, userRequest string) {
	limit := direct.ParseRetryLimit(userRequest)
	if limit == nil {
		return
	}
	for i := range plan.Steps {
		plan.Steps[i].RetryOverride = limit
	}
}

type parsedSteps struct {
	description string
	steps       []types.PlanStep
}

// parseSteps extracts and decodes the LLM's JSON plan, falling back to
// a single synthesized step (spec.md §4.5 step 6) when parsing yields
// zero steps.
func (p *Planner) parseSteps(raw, userRequest string) parsedSteps {
	extracted, err := llmclient.ExtractJSON(raw)
	if err == nil {
		if steps, desc, ok := decodeRawPlan(extracted); ok && len(steps) > 0 {
			return parsedSteps{description: desc, steps: coerceSteps(steps)}
		}
	}
	return p.fallbackPlan(userRequest)
}

// decodeRawPlan accepts either {"description":...,"steps":[...]} or a
// bare [...] array of steps, matching spec.md §4.5 step 3's tolerance
// for either shape.
func decodeRawPlan(raw json.RawMessage) ([]rawStep, string, bool) {
	var obj rawPlan
	if err := json.Unmarshal(raw, &obj); err == nil && (len(obj.Steps) > 0 || obj.Description != "") {
		return obj.Steps, obj.Description, true
	}
	var bare []rawStep
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, "", true
	}
	return nil, "", false
}

// coerceSteps renumbers steps to a contiguous 1..n range, drops unknown
// safety flags, and clamps dependencies to earlier step numbers only —
// spec.md §4.5 step 4.
func coerceSteps(raw []rawStep) []types.PlanStep {
	out := make([]types.PlanStep, 0, len(raw))
	for i, r := range raw {
		stepNumber := i + 1

		flags := make([]types.SafetyFlag, 0, len(r.SafetyFlags))
		for _, f := range r.SafetyFlags {
			if types.IsKnownSafetyFlag(f) {
				flags = append(flags, types.SafetyFlag(f))
			}
		}

		deps := make([]int, 0, len(r.Dependencies))
		for _, d := range r.Dependencies {
			if d > 0 && d < stepNumber {
				deps = append(deps, d)
			}
		}

		tools := r.RequiredTools
		if tools == nil {
			tools = []string{}
		}

		out = append(out, types.PlanStep{
			StepNumber:    stepNumber,
			Description:   r.Description,
			RequiredTools: tools,
			Dependencies:  deps,
			SafetyFlags:   flags,
			Status:        types.StepPending,
		})
	}
	return out
}

// fallbackPlan synthesizes a single-step plan by applying the same
// keyword-intent rules to the user request alone, per spec.md §4.5
// step 6.
func (p *Planner) fallbackPlan(userRequest string) parsedSteps {
	tool := InferTool("", userRequest)
	return parsedSteps{
		description: userRequest,
		steps: []types.PlanStep{
			{
				StepNumber:    1,
				Description:   RewriteDescriptionForTool(userRequest, tool),
				RequiredTools: []string{tool},
				Dependencies:  []int{},
				SafetyFlags:   []types.SafetyFlag{},
				Status:        types.StepPending,
			},
		},
	}
}

// injectTools fills in a tool for any step the LLM left without one,
// per spec.md §4.5 step 5.
func (p *Planner) injectTools(plan *types.Plan, userRequest string) {
	for i := range plan.Steps {
		step := &plan.Steps[i]
		if len(step.RequiredTools) > 0 {
			continue
		}
		tool := InferTool(step.Description, userRequest)
		step.RequiredTools = []string{tool}
		step.Description = RewriteDescriptionForTool(step.Description, tool)
	}
}
