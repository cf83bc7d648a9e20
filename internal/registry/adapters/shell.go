package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// ShellParams is the reflected parameter schema for powershell_* actions.
type ShellParams struct {
	Command       string `json:"command,omitempty"`
	ScriptContent string `json:"script_content,omitempty"`
	Status        string `json:"status,omitempty"`
	FilePath      string `json:"file_path,omitempty"`
	Algorithm     string `json:"algorithm,omitempty"`
}

// ShellAdapter implements the powershell_* family, grounded on
// system_actions/powershell.py: every command is routed through
// powershell.exe (falling back to pwsh.exe), resolved once at
// construction time the way the original probes for the available
// binary before running anything.
type ShellAdapter struct {
	DryRun  bool
	Timeout time.Duration
	shell   []string
}

// NewShellAdapter builds a ShellAdapter, probing for a working
// PowerShell binary.
func NewShellAdapter(dryRun bool, timeout time.Duration) *ShellAdapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ShellAdapter{DryRun: dryRun, Timeout: timeout, shell: resolvePowerShell()}
}

func resolvePowerShell() []string {
	candidates := [][]string{{"powershell.exe"}, {"pwsh.exe"}, {"pwsh"}}
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return c
		}
	}
	return []string{"powershell.exe"}
}

func (a *ShellAdapter) Execute(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	start := time.Now()
	switch actionType {
	case "powershell_execute":
		return a.run(ctx, start, "powershell_execute", str(params, "command"))
	case "powershell_execute_script":
		return a.run(ctx, start, "powershell_execute_script", str(params, "script_content"))
	case "powershell_get_system_info":
		return a.run(ctx, start, "powershell_get_system_info", "Get-ComputerInfo | ConvertTo-Json")
	case "powershell_get_processes":
		return a.run(ctx, start, "powershell_get_processes", "Get-Process | ConvertTo-Json")
	case "powershell_get_services":
		status := str(params, "status")
		if status == "" {
			status = "running"
		}
		return a.run(ctx, start, "powershell_get_services", fmt.Sprintf("Get-Service | Where-Object {$_.Status -eq '%s'} | ConvertTo-Json", statusToPowerShell(status)))
	case "powershell_get_programs":
		return a.run(ctx, start, "powershell_get_programs", "Get-ItemProperty HKLM:\\Software\\Microsoft\\Windows\\CurrentVersion\\Uninstall\\* | Select-Object DisplayName, DisplayVersion | ConvertTo-Json")
	case "powershell_check_file_hash":
		algorithm := str(params, "algorithm")
		if algorithm == "" {
			algorithm = "SHA256"
		}
		return a.run(ctx, start, "powershell_check_file_hash", fmt.Sprintf("Get-FileHash -Path '%s' -Algorithm %s | ConvertTo-Json", str(params, "file_path"), algorithm))
	default:
		return deniedResult(actionType, start, fmt.Sprintf("unknown powershell action: %s", actionType)), nil
	}
}

func statusToPowerShell(status string) string {
	return strings.Title(strings.ToLower(status))
}

func (a *ShellAdapter) run(ctx context.Context, start time.Time, actionType, command string) (types.ActionResult, error) {
	if a.DryRun {
		return okResult(actionType, start, fmt.Sprintf("[dry run] would execute: %s", truncate(command, 100)),
			map[string]any{"command": command, "dry_run": true}), nil
	}

	cmdCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	args := append(append([]string{}, a.shell[1:]...), "-Command", command)
	cmd := exec.CommandContext(cmdCtx, a.shell[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	exitCode := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	} else if runErr != nil {
		return errResult(actionType, start, "failed to invoke powershell", runErr), nil
	}

	result := types.ActionResult{
		Success:    exitCode == 0,
		ActionType: actionType,
		Message:    fmt.Sprintf("powershell command exited with code %d", exitCode),
		Data: map[string]any{
			"command":     command,
			"return_code": exitCode,
			"stdout":      strings.TrimSpace(stdout.String()),
			"stderr":      strings.TrimSpace(stderr.String()),
		},
		ExecutionTimeMs: ElapsedMs(start),
	}
	if exitCode != 0 {
		result.Error = strings.TrimSpace(stderr.String())
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
