package direct

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/sandbox"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// basicTestTemplate asserts only that the generated program
// byte-compiles cleanly, grounded on sandbox_manager.py's
// _generate_basic_test. It does not import the program, so none of its
// top-level code runs in the tests gate.
const basicTestTemplate = `import py_compile


def test_compiles():
    py_compile.compile(%q, doraise=True)
`

// runGates writes code (and, for non-GUI programs, a minimal
// compile-check test) into a sandbox run and drives it through the
// syntax/test/smoke gates, per spec.md §4.8's verification pipeline.
func (e *Executor) runGates(ctx context.Context, runID, code string, isGUI bool, stdinData string) types.SandboxResult {
	start := now()

	codePath, err := e.Sandbox.WriteCode(runID, "main.py", code)
	if err != nil {
		return e.gateError(runID, start, fmt.Sprintf("write code: %v", err))
	}

	gatesPassed := map[string]bool{"syntax": false, "tests": false, "smoke": false}

	syntaxResult := e.Sandbox.CheckSyntax(ctx, runID, codePath)
	gatesPassed["syntax"] = syntaxResult.Passed
	if !syntaxResult.Passed {
		return e.finishGates(runID, start, types.SandboxSyntaxError, codePath, nil, syntaxResult, gatesPassed, syntaxErrorMessage(syntaxResult))
	}

	var testPaths []string
	if !isGUI {
		testPath, err := e.Sandbox.WriteTest(runID, "test_main.py", fmt.Sprintf(basicTestTemplate, codePath))
		if err != nil {
			return e.gateError(runID, start, fmt.Sprintf("write test: %v", err))
		}
		testPaths = append(testPaths, testPath)

		testsResult := e.Sandbox.RunTests(ctx, runID, filepath.Dir(testPath))
		gatesPassed["tests"] = testsResult.Passed
		if !testsResult.Passed {
			result := e.finishGates(runID, start, types.SandboxTestFailure, codePath, testPaths, testsResult, gatesPassed, fmt.Sprintf("tests failed: %s", testsResult.Summary))
			result.PytestSummary = testsResult.Summary
			e.writeRunMetadata(runID, result)
			return result
		}
	} else {
		gatesPassed["tests"] = true
	}

	if isGUI {
		gatesPassed["smoke"] = true
		result := e.finishGates(runID, start, types.SandboxSuccess, codePath, testPaths, sandbox.GateResult{Passed: true}, gatesPassed, "")
		e.writeRunMetadata(runID, result)
		return result
	}

	if sandbox.DetectGUIMainloop(code) {
		result := e.finishGates(runID, start, types.SandboxError, codePath, testPaths, sandbox.GateResult{}, gatesPassed, "GUI mainloop() detected in CLI program")
		e.writeRunMetadata(runID, result)
		return result
	}

	smokeResult := e.Sandbox.RunSmokeTest(ctx, runID, codePath, stdinData)
	gatesPassed["smoke"] = smokeResult.Passed
	if !smokeResult.Passed {
		msg := fmt.Sprintf("smoke test failed: %s", smokeResult.Stderr)
		if smokeResult.TimedOut {
			msg = smokeResult.Err
		}
		status := types.SandboxError
		if smokeResult.TimedOut {
			status = types.SandboxTimeout
		}
		result := e.finishGates(runID, start, status, codePath, testPaths, smokeResult, gatesPassed, msg)
		e.writeRunMetadata(runID, result)
		return result
	}

	result := e.finishGates(runID, start, types.SandboxSuccess, codePath, testPaths, smokeResult, gatesPassed, "")
	e.writeRunMetadata(runID, result)
	return result
}

func syntaxErrorMessage(r sandbox.GateResult) string {
	if r.Err != "" {
		return r.Err
	}
	if r.Stderr != "" {
		return r.Stderr
	}
	return "syntax check failed"
}

func (e *Executor) gateError(runID string, start time.Time, message string) types.SandboxResult {
	return types.SandboxResult{
		RunID:        runID,
		Status:       types.SandboxError,
		ErrorMessage: message,
		GatesPassed:  map[string]bool{"syntax": false, "tests": false, "smoke": false},
		DurationSecs: now().Sub(start).Seconds(),
	}
}

func (e *Executor) finishGates(runID string, start time.Time, status types.SandboxStatus, codePath string, testPaths []string, last sandbox.GateResult, gatesPassed map[string]bool, errorMessage string) types.SandboxResult {
	return types.SandboxResult{
		RunID:        runID,
		Status:       status,
		CodePath:     codePath,
		TestPaths:    testPaths,
		Stdout:       last.Stdout,
		Stderr:       last.Stderr,
		ExitCode:     last.ExitCode,
		ErrorMessage: errorMessage,
		GatesPassed:  gatesPassed,
		DurationSecs: now().Sub(start).Seconds(),
	}
}

// writeRunMetadata persists run_metadata.json under the run's logs/
// directory on completion, per spec.md §4.8.
func (e *Executor) writeRunMetadata(runID string, result types.SandboxResult) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}
	path := filepath.Join(e.Sandbox.RunPath(runID), "logs", "run_metadata.json")
	_ = os.WriteFile(path, data, 0o644)
}
