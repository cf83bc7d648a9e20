// Package executor implements the Executor Server (spec.md §4.7): it
// maps one PlanStep to a concrete Tool Registry call, synthesizes the
// call's parameters, and — when enabled — consults the Step Verifier
// to confirm the adapter's claimed side effect actually happened.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// Router is the subset of *registry.Registry the executor needs.
type Router interface {
	Route(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error)
}

// StepVerifier is the subset of *verifier.Verifier the executor needs.
type StepVerifier interface {
	Verify(actionType string, resultData, actionParams map[string]any) types.VerificationResult
}

// Result is the Executor Server's return contract, per spec.md §4.7's
// final paragraph.
type Result struct {
	Success             bool
	ActionType          string
	Message             string
	Data                map[string]any
	Error               string
	ExecutionTimeMs     float64
	Verified            bool
	VerificationMessage string
}

// Server is the Executor Server.
type Server struct {
	Registry            Router
	Verifier            StepVerifier
	VerificationEnabled bool
}

// New builds a Server. verifier may be nil iff verificationEnabled is
// false.
func New(registry Router, verifier StepVerifier, verificationEnabled bool) *Server {
	return &Server{Registry: registry, Verifier: verifier, VerificationEnabled: verificationEnabled}
}

// Execute runs one step: resolves its action type from
// required_tools[0], synthesizes params, calls the registry, and
// verifies the outcome if enabled.
func (s *Server) Execute(ctx context.Context, step types.PlanStep, stepContext map[string]any, overrides map[string]any) Result {
	start := time.Now()

	if len(step.RequiredTools) == 0 {
		return Result{
			Success:         false,
			Error:           "step has no required_tools to dispatch",
			ExecutionTimeMs: float64(time.Since(start).Milliseconds()),
		}
	}
	actionType := step.RequiredTools[0]
	params := synthesizeParams(actionType, step.Description, stepContext, overrides)

	actionResult, err := s.Registry.Route(ctx, actionType, params)
	if err != nil {
		return Result{
			Success:         false,
			ActionType:      actionType,
			Error:           err.Error(),
			ExecutionTimeMs: float64(time.Since(start).Milliseconds()),
		}
	}

	result := Result{
		Success:         actionResult.Success,
		ActionType:      actionResult.ActionType,
		Message:         actionResult.Message,
		Data:            actionResult.Data,
		Error:           actionResult.Error,
		ExecutionTimeMs: actionResult.ExecutionTimeMs,
	}

	if !s.VerificationEnabled || s.Verifier == nil {
		return result
	}
	if !actionResult.Success {
		// Nothing to verify — the adapter already reports failure.
		return result
	}

	verification := s.Verifier.Verify(actionType, actionResult.Data, params)
	result.Verified = verification.Verified
	result.VerificationMessage = verification.Message
	result.Success = result.Success && verification.Verified
	if !verification.Verified && verification.Error != "" {
		result.Error = fmt.Sprintf("%s (verification: %s)", result.Error, verification.Error)
	}
	return result
}
