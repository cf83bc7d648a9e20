package memory

import "context"

// MistakePatternSource surfaces past failed ExecutionMemory error
// messages tagged with a given set of tags, so the Direct Executor can
// seed its generation prompt with "previous mistakes" per spec.md
// §4.9. It satisfies internal/direct.PatternSource.
type MistakePatternSource struct {
	module *Module
	limit  int
}

// NewMistakePatternSource builds a MistakePatternSource over mod,
// returning at most limit patterns per call (0 means a default of 5).
func NewMistakePatternSource(mod *Module, limit int) *MistakePatternSource {
	if limit <= 0 {
		limit = 5
	}
	return &MistakePatternSource{module: mod, limit: limit}
}

// PatternsFor collects distinct error messages from failed executions
// tagged with any of tags, most recent first.
func (p *MistakePatternSource) PatternsFor(tags []string) []string {
	ctx := context.Background()
	seen := map[string]bool{}
	var patterns []string

	for _, tag := range tags {
		entries, err := p.module.GetExecutionsByTag(ctx, tag)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Success || e.ErrorMessage == "" || seen[e.ErrorMessage] {
				continue
			}
			seen[e.ErrorMessage] = true
			patterns = append(patterns, e.ErrorMessage)
			if len(patterns) >= p.limit {
				return patterns
			}
		}
	}
	return patterns
}
