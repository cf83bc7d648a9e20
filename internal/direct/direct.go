// Package direct implements the Direct Executor (spec.md §4.9): the
// code-generation path that turns a user request into a working,
// sandbox-verified Python program and archives it on success.
package direct

import (
	"context"
	"fmt"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/llmclient"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/sandbox"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// SandboxRunner is the subset of *sandbox.Manager the Direct Executor
// drives its verification gates through.
type SandboxRunner interface {
	CreateRun(runID string) (string, error)
	RunPath(runID string) string
	WriteCode(runID, filename, code string) (string, error)
	WriteTest(runID, filename, testCode string) (string, error)
	CheckSyntax(ctx context.Context, runID, codeFile string) sandbox.GateResult
	RunTests(ctx context.Context, runID, testDir string) sandbox.GateResult
	RunSmokeTest(ctx context.Context, runID, codeFile, stdinData string) sandbox.GateResult
	CleanupRun(runID string) error
}

// LLMGenerator is the subset of llmclient.Client the Direct Executor
// needs for plain (non-JSON) single-shot code generation.
type LLMGenerator interface {
	Generate(ctx context.Context, req llmclient.Request) (*llmclient.Response, error)
}

// ExecutionSaver is the subset of *memory.Module the Direct Executor
// needs to persist a successful generation.
type ExecutionSaver interface {
	SaveExecution(ctx context.Context, exec types.ExecutionMemory) (string, error)
}

// PatternSource supplies learned-mistake patterns to seed the
// generation prompt, satisfied by a mistake-learning component;
// returning nil/empty is always valid.
type PatternSource interface {
	PatternsFor(tags []string) []string
}

// Executor runs the generate -> sandbox-verify -> export loop.
type Executor struct {
	LLM        LLMGenerator
	Sandbox    SandboxRunner
	Archiver   *Archiver
	Memory     ExecutionSaver
	Patterns   PatternSource
	MaxRetries int // backstop when the user gives no explicit limit
}

// New builds an Executor.
func New(llm LLMGenerator, sb SandboxRunner, archiver *Archiver, mem ExecutionSaver, patterns PatternSource, maxRetries int) *Executor {
	return &Executor{LLM: llm, Sandbox: sb, Archiver: archiver, Memory: mem, Patterns: patterns, MaxRetries: maxRetries}
}

// ProgressFunc receives one human-readable progress line at a time,
// mirroring execute_request's yielded strings.
type ProgressFunc func(line string)

// Outcome is the terminal result of an ExecuteRequest call.
type Outcome struct {
	Success      bool
	Code         string
	ExportedPath string
	Attempts     int
	Error        string
}

// ExecuteRequest drives the full generate/verify/retry/export loop for
// userRequest, per spec.md §4.9.
func (e *Executor) ExecuteRequest(ctx context.Context, requestID, userRequest string, onProgress ProgressFunc) Outcome {
	if onProgress == nil {
		onProgress = func(string) {}
	}

	maxAttempts := ParseRetryLimit(userRequest)
	if maxAttempts == nil && e.MaxRetries > 0 {
		maxAttempts = &e.MaxRetries
	}

	var (
		code           string
		lastErrorOutput string
		runID          string
	)

	tags := []string{"general"}
	saveToDesktop := detectDesktopSaveRequest(userRequest)
	if saveToDesktop {
		tags = append(tags, "file_ops", "desktop")
	}

	for attempt := 1; ; attempt++ {
		if maxAttempts != nil && attempt > *maxAttempts {
			return Outcome{Success: false, Attempts: attempt - 1, Error: fmt.Sprintf("max retries (%d) exceeded", *maxAttempts)}
		}

		var err error
		if attempt == 1 {
			onProgress(fmt.Sprintf("Generating code... (attempt %d)", attempt))
			code, err = e.generateCode(ctx, userRequest, tags)
		} else {
			onProgress(fmt.Sprintf("Fixing code... (attempt %d)", attempt))
			code, err = e.generateFix(ctx, userRequest, code, lastErrorOutput, attempt)
		}
		if err != nil {
			return Outcome{Success: false, Attempts: attempt, Error: err.Error()}
		}

		if saveToDesktop {
			code = rewriteForDesktopSave(code, e.Archiver.DesktopDir)
		}

		if runID == "" {
			runID, err = e.Sandbox.CreateRun("")
			if err != nil {
				return Outcome{Success: false, Attempts: attempt, Error: err.Error()}
			}
		}
		onProgress(fmt.Sprintf("Created isolated sandbox: %s", runID))

		isGUI := sandbox.IsGUIProgram(code)
		stdinData := ""
		if !isGUI && hasInputCalls(code) {
			_, prompts := detectInputCalls(code)
			inputs := generateTestInputs(prompts)
			stdinData = joinLines(inputs)
		}

		result := e.runGates(ctx, runID, code, isGUI, stdinData)
		at := now()
		archivePath, archiveErr := e.Archiver.ArchiveAttempt(requestID, userRequest, code, attempt, result.Status == types.SandboxSuccess, string(result.Status), result.ErrorMessage, at)
		if archiveErr == nil {
			onProgress(fmt.Sprintf("Archived attempt %d at %s", attempt, archivePath))
		}

		if result.Status == types.SandboxSuccess {
			onProgress("All verification gates passed")
			finalPath, _ := e.Archiver.ArchiveFinal(requestID, userRequest, code, at)
			e.saveMemory(ctx, userRequest, code, finalPath, result, isGUI)
			e.Sandbox.CleanupRun(runID)
			return Outcome{Success: true, Code: code, ExportedPath: finalPath, Attempts: attempt}
		}

		onProgress(fmt.Sprintf("Verification failed: %s", result.Status))
		lastErrorOutput = result.ErrorMessage
		if result.PytestSummary != "" {
			lastErrorOutput = result.PytestSummary
		}
		e.Sandbox.CleanupRun(runID)
		runID = ""
	}
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func (e *Executor) generateCode(ctx context.Context, userRequest string, tags []string) (string, error) {
	var patterns []string
	if e.Patterns != nil {
		patterns = e.Patterns.PatternsFor(tags)
	}
	prompt := buildGenerationPrompt(userRequest, patterns)
	resp, err := e.LLM.Generate(ctx, llmclient.Request{Messages: []llmclient.Message{{Role: "user", Content: prompt}}, MaxTokens: 4096})
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return cleanCode(resp.Content), nil
}

func (e *Executor) generateFix(ctx context.Context, userRequest, previousCode, errorOutput string, attempt int) (string, error) {
	prompt := buildFixPrompt(userRequest, previousCode, errorOutput, attempt)
	resp, err := e.LLM.Generate(ctx, llmclient.Request{Messages: []llmclient.Message{{Role: "user", Content: prompt}}, MaxTokens: 4096})
	if err != nil {
		return "", fmt.Errorf("generate fix: %w", err)
	}
	return cleanCode(resp.Content), nil
}

func (e *Executor) saveMemory(ctx context.Context, userRequest, code, exportedPath string, result types.SandboxResult, isGUI bool) {
	if e.Memory == nil {
		return
	}
	fileLocations := []string{result.CodePath}
	if exportedPath != "" {
		fileLocations = append(fileLocations, exportedPath)
	}
	fileLocations = append(fileLocations, result.TestPaths...)

	tags := []string{"python", "sandbox_verification"}
	if isGUI {
		tags = append(tags, "gui")
	} else {
		tags = append(tags, "cli")
	}

	_, _ = e.Memory.SaveExecution(ctx, types.ExecutionMemory{
		UserRequest:   userRequest,
		Description:   describeExecution(userRequest),
		CodeGenerated: code,
		FileLocations: fileLocations,
		Output:        fmt.Sprintf("Sandbox verification passed in %.2fs", result.DurationSecs),
		Success:       true,
		Tags:          tags,
		SandboxRunID:  result.RunID,
	})
}

// now is overridden in tests to keep archive timestamps deterministic.
var now = func() time.Time { return time.Now().UTC() }
