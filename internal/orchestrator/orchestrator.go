// Package orchestrator implements the user-visible orchestration
// surface from spec.md §6: ProcessCommand and ProcessCommandStream,
// wiring T1->T2->(T3->L4->M1) for task requests and T4->L5->M2 for
// code-generation requests, fronted by a casual-chat intent
// classifier — grounded on the teacher's cmd/server/server.go, which
// wires its PlannerOrchestrator and WorkflowOrchestrator session types
// around a shared registry, database and LLM client the same way.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/direct"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/dispatcher"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/planner"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/rag"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// Planning is the subset of *planner.Planner the Orchestrator needs.
type Planning interface {
	Plan(ctx context.Context, userRequest, ragContext string) (*types.Plan, error)
	PlanStream(ctx context.Context, userRequest, ragContext string, onProgress planner.ProgressFunc) (*types.Plan, error)
}

// CodeExecutor is the subset of *direct.Executor the Orchestrator needs.
type CodeExecutor interface {
	ExecuteRequest(ctx context.Context, requestID, userRequest string, onProgress direct.ProgressFunc) direct.Outcome
}

// ContextRetriever is the subset of *rag.Service the Orchestrator needs
// to seed a plan prompt with memory-derived guidance.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, memoryTypes []string, tags []string, topK int) ([]rag.RetrievalResult, error)
}

// DispatcherFactory builds a fresh Dispatcher for one request, so that
// per-call subscribers (used to assemble a streamed transcript) never
// leak across requests sharing one Orchestrator.
type DispatcherFactory func(exec dispatcher.StepExecutor) *dispatcher.Dispatcher

// Config bundles the Orchestrator's tunables.
type Config struct {
	RetryPolicy dispatcher.RetryPolicy
	RAGTopK     int
}

// Orchestrator wires the Planner, Dispatcher, Executor Server and
// Direct Executor behind ProcessCommand/ProcessCommandStream, per
// spec.md §6 and SPEC_FULL.md §4.11.
type Orchestrator struct {
	Planner       Planning
	StepExec      dispatcher.StepExecutor
	CodeExec      CodeExecutor
	RAG           ContextRetriever
	Intent        *IntentClassifier
	NewDispatcher DispatcherFactory
	Config        Config
}

// New builds an Orchestrator.
func New(p Planning, stepExec dispatcher.StepExecutor, codeExec CodeExecutor, rag ContextRetriever, cfg Config) *Orchestrator {
	return &Orchestrator{
		Planner:  p,
		StepExec: stepExec,
		CodeExec: codeExec,
		RAG:      rag,
		Intent:   NewIntentClassifier(),
		NewDispatcher: func(exec dispatcher.StepExecutor) *dispatcher.Dispatcher {
			return dispatcher.New(exec, cfg.RetryPolicy)
		},
		Config: cfg,
	}
}

// Result aggregates everything one ProcessCommand/ProcessCommandStream
// call produced, for callers that need more than the formatted
// transcript string (e.g. the HTTP API).
type Result struct {
	Intent              Intent
	Transcript          string
	Plan                *types.Plan
	Summary             dispatcher.Summary
	Outcomes            []types.StepOutcome
	CodeOutcome         *direct.Outcome
	ConversationalReply string
}

// ragContextFor retrieves RAG snippets for userRequest and joins them
// into a plain string for planner.ComposePrompt's ragContext parameter.
// It calls Retrieve directly rather than EnrichPrompt so the Planner's
// own "Relevant context" header (added in ComposePrompt when ragContext
// is non-empty) is never duplicated.
func (o *Orchestrator) ragContextFor(ctx context.Context, userRequest string) string {
	if o.RAG == nil {
		return ""
	}
	topK := o.Config.RAGTopK
	if topK <= 0 {
		topK = 3
	}
	results, err := o.RAG.Retrieve(ctx, userRequest, nil, nil, topK)
	if err != nil || len(results) == 0 {
		return ""
	}
	snippets := make([]string, 0, len(results))
	for _, r := range results {
		if r.Snippet != "" {
			snippets = append(snippets, r.Snippet)
		}
	}
	return strings.Join(snippets, "\n")
}

// ProcessCommand runs the full classify -> (casual | code | plan+dispatch)
// flow and returns a formatted transcript, per spec.md §6's
// "process_command(text) -> formatted transcript of plan + outcomes".
func (o *Orchestrator) ProcessCommand(ctx context.Context, userRequest string) (Result, error) {
	intent := o.Intent.Classify(userRequest)

	switch intent {
	case IntentCasual:
		reply := o.Intent.CasualReply(userRequest)
		return Result{Intent: intent, Transcript: reply, ConversationalReply: reply}, nil

	case IntentCode:
		outcome := o.CodeExec.ExecuteRequest(ctx, uuid.NewString(), userRequest, nil)
		return Result{
			Intent:      intent,
			Transcript:  formatCodeTranscript(outcome),
			CodeOutcome: &outcome,
		}, nil

	default:
		ragContext := o.ragContextFor(ctx, userRequest)
		plan, err := o.Planner.Plan(ctx, userRequest, ragContext)
		if err != nil {
			return Result{}, fmt.Errorf("plan: %w", err)
		}

		d := o.NewDispatcher(o.StepExec)
		summary, outcomes := d.Dispatch(ctx, plan)

		reply := o.Intent.CasualReply(userRequest)
		return Result{
			Intent:              intent,
			Transcript:          formatTaskTranscript(plan, summary, outcomes),
			Plan:                plan,
			Summary:             summary,
			Outcomes:            outcomes,
			ConversationalReply: reply,
		}, nil
	}
}

// ProcessCommandStream runs the same classify/route flow as
// ProcessCommand, but streams chunks through onChunk in the literal
// order spec.md §6 names: planning progress, a blank line,
// "[Executing...]", per-step streaming output, an "Execution Result:"
// summary, and a trailing conversational response.
func (o *Orchestrator) ProcessCommandStream(ctx context.Context, userRequest string, onChunk func(string)) (Result, error) {
	if onChunk == nil {
		onChunk = func(string) {}
	}
	intent := o.Intent.Classify(userRequest)

	switch intent {
	case IntentCasual:
		reply := o.Intent.CasualReply(userRequest)
		onChunk(reply)
		return Result{Intent: intent, Transcript: reply, ConversationalReply: reply}, nil

	case IntentCode:
		var transcript strings.Builder
		outcome := o.CodeExec.ExecuteRequest(ctx, uuid.NewString(), userRequest, func(line string) {
			onChunk(line + "\n")
			transcript.WriteString(line + "\n")
		})
		result := formatCodeTranscript(outcome)
		onChunk(result)
		transcript.WriteString(result)
		return Result{Intent: intent, Transcript: transcript.String(), CodeOutcome: &outcome}, nil

	default:
		ragContext := o.ragContextFor(ctx, userRequest)

		var transcript strings.Builder
		plan, err := o.Planner.PlanStream(ctx, userRequest, ragContext, func(line string) {
			onChunk(line + "\n")
			transcript.WriteString(line + "\n")
		})
		if err != nil {
			return Result{}, fmt.Errorf("plan: %w", err)
		}

		onChunk("\n")
		transcript.WriteString("\n")
		onChunk("[Executing...]\n")
		transcript.WriteString("[Executing...]\n")

		d := o.NewDispatcher(o.StepExec)
		d.Subscribe(func(outcome types.StepOutcome) {
			line := formatStepLine(outcome) + "\n"
			onChunk(line)
			transcript.WriteString(line)
		})
		summary, outcomes := d.Dispatch(ctx, plan)

		resultLine := formatExecutionResult(summary) + "\n"
		onChunk(resultLine)
		transcript.WriteString(resultLine)

		reply := o.Intent.CasualReply(userRequest)
		onChunk(reply)
		transcript.WriteString(reply)

		return Result{
			Intent:              intent,
			Transcript:          transcript.String(),
			Plan:                plan,
			Summary:             summary,
			Outcomes:            outcomes,
			ConversationalReply: reply,
		}, nil
	}
}
