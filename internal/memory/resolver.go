package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// ReferenceResolver answers "what does this pronoun/phrase refer to" by
// matching a free-text reference against recent execution memory. This
// addresses spec.md's Open Question on reference resolution: rather than
// mandate a single algorithm, the module exposes the interface and ships
// SimpleResolver, a substring/tag-overlap heuristic, as the default.
type ReferenceResolver interface {
	// Resolve returns the best-matching ExecutionMemory for reference
	// ("that file", "the script I just wrote"), or ok=false if nothing
	// in recent history plausibly matches.
	Resolve(ctx context.Context, reference string, recent []types.ExecutionMemory) (types.ExecutionMemory, bool)
}

// SimpleResolver scores candidates by token overlap between reference
// and each execution's description/user_request/tags, breaking ties by
// recency. It never resolves a reference to an execution that scores
// zero — an empty overlap means "I don't know", not "guess the latest".
type SimpleResolver struct{}

// NewSimpleResolver builds the default ReferenceResolver.
func NewSimpleResolver() *SimpleResolver { return &SimpleResolver{} }

func (r *SimpleResolver) Resolve(ctx context.Context, reference string, recent []types.ExecutionMemory) (types.ExecutionMemory, bool) {
	refTerms := tokenize(reference)
	if len(refTerms) == 0 || len(recent) == 0 {
		return types.ExecutionMemory{}, false
	}

	ordered := append([]types.ExecutionMemory(nil), recent...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Timestamp.After(ordered[j].Timestamp) })

	bestScore := 0
	bestIdx := -1
	for i, e := range ordered {
		haystack := tokenize(e.Description + " " + e.UserRequest + " " + strings.Join(e.Tags, " "))
		score := overlapCount(refTerms, haystack)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx == -1 {
		return types.ExecutionMemory{}, false
	}
	return ordered[bestIdx], true
}
