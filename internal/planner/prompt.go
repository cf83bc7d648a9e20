package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

const systemPrompt = `You are the planning component of a desktop automation assistant. Given a user request, produce a JSON plan of concrete, verifiable steps.

Respond with a single JSON object of the shape:
{
  "description": "one-line summary of the overall task",
  "steps": [
    {
      "step_number": 1,
      "description": "what this step does, starting with the tool name when relevant",
      "required_tools": ["file_list"],
      "dependencies": [],
      "safety_flags": []
    }
  ]
}

Rules:
- step_number must be contiguous starting at 1.
- dependencies lists earlier step_numbers this step needs to run after.
- required_tools must be chosen from the tool catalog below; pick the single most specific tool per step.
- safety_flags may include: destructive, network_access, file_modification, system_command, external_dependency.
- Respond with JSON only, no prose before or after.`

// ComposePrompt builds the planning prompt: the system instructions,
// the tool catalog from the registry, and an optional RAG-enriched
// context block — grounded on spec.md §4.5 step 1.
func ComposePrompt(userRequest string, actions map[string]string, ragContext string) (system string, user string) {
	system = systemPrompt + "\n\n" + renderCatalog(actions)
	if ragContext != "" {
		system += "\n\nRelevant context from memory:\n" + ragContext
	}
	user = fmt.Sprintf("User request: %s", userRequest)
	return system, user
}

func renderCatalog(actions map[string]string) string {
	actionTypes := make([]string, 0, len(actions))
	for actionType := range actions {
		actionTypes = append(actionTypes, actionType)
	}
	sort.Strings(actionTypes)

	var b strings.Builder
	b.WriteString("Available tools:\n")
	for _, actionType := range actionTypes {
		fmt.Fprintf(&b, "- %s: %s\n", actionType, actions[actionType])
	}
	return b.String()
}

// RAGMemoryTypes is the fixed set of memory types the planner enriches
// its prompt from, per spec.md §4.5 step 1.
var RAGMemoryTypes = []string{
	string(types.MemoryTypeToolKnowledge),
	string(types.MemoryTypeTaskHistory),
	string(types.MemoryTypeUserPreference),
}
