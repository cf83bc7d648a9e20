package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

func newStep(n int, deps []int, flags ...types.SafetyFlag) types.PlanStep {
	return types.PlanStep{
		StepNumber:   n,
		Description:  "do something",
		Dependencies: deps,
		SafetyFlags:  flags,
	}
}

func TestValidateContiguousAndSafe(t *testing.T) {
	plan := &types.Plan{Steps: []types.PlanStep{newStep(1, nil), newStep(2, []int{1})}}
	Validate(plan, true)
	assert.True(t, plan.ValidationResult.IsValid)
	assert.Empty(t, plan.ValidationResult.Issues)
	assert.True(t, plan.IsSafe)
}

func TestValidateDetectsForwardDependency(t *testing.T) {
	plan := &types.Plan{Steps: []types.PlanStep{newStep(1, []int{2}), newStep(2, nil)}}
	Validate(plan, true)
	assert.False(t, plan.ValidationResult.IsValid)
	assert.NotEmpty(t, plan.ValidationResult.Issues)
}

func TestValidateDetectsNonContiguousStepNumbers(t *testing.T) {
	plan := &types.Plan{Steps: []types.PlanStep{newStep(1, nil), newStep(3, nil)}}
	Validate(plan, true)
	assert.False(t, plan.ValidationResult.IsValid)
}

func TestValidateWarnsOnStepOneDependency(t *testing.T) {
	plan := &types.Plan{Steps: []types.PlanStep{newStep(1, []int{1})}}
	Validate(plan, true)
	assert.NotEmpty(t, plan.ValidationResult.Warnings)
}

func TestValidateFlagsSafetyConcerns(t *testing.T) {
	plan := &types.Plan{Steps: []types.PlanStep{newStep(1, nil, types.SafetyDestructive)}}
	Validate(plan, true)
	assert.NotEmpty(t, plan.ValidationResult.SafetyConcerns)
	assert.False(t, plan.IsSafe)
}

func TestValidateIsSafeFalseWhenSafetyValidationDisabled(t *testing.T) {
	plan := &types.Plan{Steps: []types.PlanStep{newStep(1, nil)}}
	Validate(plan, false)
	assert.False(t, plan.IsSafe)
}

func TestValidateStampsVerifiedAt(t *testing.T) {
	plan := &types.Plan{Steps: []types.PlanStep{newStep(1, nil)}}
	Validate(plan, true)
	assert.False(t, plan.VerifiedAt.IsZero())
}
