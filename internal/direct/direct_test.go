package direct

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/llmclient"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/sandbox"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// fakeLLM returns one response per call, in order; the last response
// repeats once exhausted.
type fakeLLM struct {
	responses []string
	calls     int
}

func (f *fakeLLM) Generate(ctx context.Context, req llmclient.Request) (*llmclient.Response, error) {
	idx := f.calls
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	f.calls++
	return &llmclient.Response{Content: f.responses[idx]}, nil
}

type fakeSaver struct {
	saved []types.ExecutionMemory
}

func (f *fakeSaver) SaveExecution(ctx context.Context, exec types.ExecutionMemory) (string, error) {
	f.saved = append(f.saved, exec)
	return "mem-1", nil
}

type fakePatterns struct {
	patterns []string
}

func (f *fakePatterns) PatternsFor(tags []string) []string {
	return f.patterns
}

func TestExecuteRequestSucceedsOnFirstAttempt(t *testing.T) {
	sb := sandbox.New(t.TempDir())
	archiver := NewArchiver(t.TempDir())
	saver := &fakeSaver{}
	llm := &fakeLLM{responses: []string{"print('hello world')\n"}}

	exec := New(llm, sb, archiver, saver, &fakePatterns{}, 3)

	var progress []string
	outcome := exec.ExecuteRequest(context.Background(), "req-ok", "print hello world", func(line string) {
		progress = append(progress, line)
	})

	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Attempts)
	assert.NotEmpty(t, outcome.ExportedPath)
	assert.NotEmpty(t, progress)
	require.Len(t, saver.saved, 1)
	assert.Contains(t, saver.saved[0].Tags, "cli")
}

func TestExecuteRequestGivesUpAfterExplicitRetryLimit(t *testing.T) {
	sb := sandbox.New(t.TempDir())
	archiver := NewArchiver(t.TempDir())
	llm := &fakeLLM{responses: []string{"this is not python(((", "still not python((("}}

	exec := New(llm, sb, archiver, &fakeSaver{}, nil, 10)

	outcome := exec.ExecuteRequest(context.Background(), "req-fail", "try up to 2 times to write broken code", nil)

	assert.False(t, outcome.Success)
	assert.Equal(t, 2, outcome.Attempts)
	assert.Contains(t, outcome.Error, "max retries")
}

func TestExecuteRequestFixesCodeOnSecondAttempt(t *testing.T) {
	sb := sandbox.New(t.TempDir())
	archiver := NewArchiver(t.TempDir())
	llm := &fakeLLM{responses: []string{"this is not python(((", "print('fixed')\n"}}

	exec := New(llm, sb, archiver, &fakeSaver{}, nil, 5)

	outcome := exec.ExecuteRequest(context.Background(), "req-fix", "write something", nil)

	assert.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.Attempts)
}
