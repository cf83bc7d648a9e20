package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/config"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/direct"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/dispatcher"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/executor"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/llmclient"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/logging"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/memory"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/orchestrator"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/planner"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/rag"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/registry"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/sandbox"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/storage"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/verifier"
)

// app bundles everything wired up for one process lifetime: the
// Orchestrator plus the pieces cmd/assistant's own commands need
// directly (the logger, and the memory/archive readers httpapi fronts).
type app struct {
	Orchestrator *orchestrator.Orchestrator
	Logger       *logging.Logger
	Memory       *memory.Module
	Archiver     *direct.Archiver
}

// buildApp wires the full dependency graph from cfg, exactly as the
// teacher's cmd/server/server.go assembles its registries, database and
// LLM client once at startup and hands them to per-session
// orchestrators.
func buildApp(cfg config.Config) (*app, error) {
	logger, err := logging.New(logging.Config{
		LogFile:      cfg.LogFile,
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		EnableStdout: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	llm, err := llmclient.New(cfg.LLMProvider, cfg.LLMModel, logger.Raw())
	if err != nil {
		return nil, fmt.Errorf("build llm client: %w", err)
	}

	backend, err := storage.NewSQLiteBackend(filepath.Join(cfg.MemoryDir(), "memory.db"))
	if err != nil {
		return nil, fmt.Errorf("open memory backend: %w", err)
	}
	mem := memory.New(backend)

	ragService := rag.NewService(mem)

	reg := registry.Build(registry.BuildOptions{
		DryRun:                cfg.DryRun,
		ActionTimeout:         30 * time.Second,
		AllowedDirectories:    cfg.AllowedPaths,
		DisallowedDirectories: cfg.DeniedPaths,
	})

	var stepVerifier executor.StepVerifier
	if cfg.VerificationEnabled {
		stepVerifier = verifier.New()
	}
	execServer := executor.New(reg, stepVerifier, cfg.VerificationEnabled)

	plan := planner.New(llm, reg, cfg.SafetyValidationEnabled, cfg.Temperature)

	sb := sandbox.New(cfg.SandboxRunsDir())
	archiver := direct.NewArchiver(cfg.DesktopArchiveDir())
	patterns := memory.NewMistakePatternSource(mem, 5)
	codeExec := direct.New(llm, sb, archiver, mem, patterns, cfg.CodeMaxRetries)

	orch := orchestrator.New(plan, execServer, codeExec, ragService, orchestrator.Config{
		RetryPolicy: dispatcher.RetryPolicy{
			MaxRetries: cfg.ActionMaxRetries,
			BaseDelay:  cfg.RetryBaseDelay,
		},
		RAGTopK: 3,
	})

	return &app{Orchestrator: orch, Logger: logger, Memory: mem, Archiver: archiver}, nil
}
