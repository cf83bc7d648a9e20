// Package registry implements the Tool Registry (spec.md §4.4): a
// catalog of callable action types, each backed by an Adapter, with
// JSON-schema parameter descriptions for the Planner and uniform
// dry-run/allow-deny enforcement delegated to each adapter family.
package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/apperrors"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// Adapter executes one action type. params carries the step's decoded
// arguments; implementations are responsible for validating them.
type Adapter interface {
	Execute(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error)
}

// Entry describes one registered action: its adapter, a human
// description for the Planner prompt, and an example struct whose
// fields are reflected into a JSON schema for parameter validation.
type Entry struct {
	ActionType  string
	Description string
	Adapter     Adapter
	ParamsType  any // zero-value struct used for jsonschema.Reflect
}

// Registry is the routing table from action_type to Entry, grounded on
// SystemActionRouter.route_action's prefix dispatch
// (file_/gui_/typing_/registry_/ocr_/powershell_/subprocess_), but
// indexed by exact action type rather than a long if/elif chain.
type Registry struct {
	entries map[string]Entry
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{entries: map[string]Entry{}}
}

// Register adds or replaces the Entry for e.ActionType.
func (r *Registry) Register(e Entry) {
	r.entries[e.ActionType] = e
}

// Route dispatches a step's action_type to its Adapter. An unknown
// action type is a ValidationError — the planner should never emit
// one, but a malformed or hand-edited plan might.
func (r *Registry) Route(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	entry, ok := r.entries[actionType]
	if !ok {
		return types.ActionResult{}, apperrors.NewValidationError("unknown action type: %s", actionType)
	}
	return entry.Adapter.Execute(ctx, actionType, params)
}

// ListActions returns every registered action type mapped to its
// description — the catalog the Planner's prompt is built from. The
// map carries no order; ActionTypes gives the sorted list.
func (r *Registry) ListActions() map[string]string {
	out := make(map[string]string, len(r.entries))
	for actionType, entry := range r.entries {
		out[actionType] = entry.Description
	}
	return out
}

// ActionTypes returns every registered action type in sorted order.
func (r *Registry) ActionTypes() []string {
	out := make([]string, 0, len(r.entries))
	for actionType := range r.entries {
		out = append(out, actionType)
	}
	sort.Strings(out)
	return out
}

// Schema reflects the JSON schema for actionType's parameter struct,
// per the teacher's cmd/schema-gen pattern (invopop/jsonschema with
// RequiredFromJSONSchemaTags, so only a `jsonschema:"required"` tag
// marks a field required; omitempty on the json tag plays no part).
func (r *Registry) Schema(actionType string) (*jsonschema.Schema, error) {
	entry, ok := r.entries[actionType]
	if !ok {
		return nil, fmt.Errorf("unknown action type: %s", actionType)
	}
	if entry.ParamsType == nil {
		return &jsonschema.Schema{Type: "object"}, nil
	}
	reflector := new(jsonschema.Reflector)
	reflector.ExpandedStruct = true
	reflector.DoNotReference = true
	reflector.RequiredFromJSONSchemaTags = true
	return reflector.Reflect(entry.ParamsType), nil
}
