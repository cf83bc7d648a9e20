package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// TypingParams is the reflected parameter schema for typing_* actions.
type TypingParams struct {
	Text     string   `json:"text,omitempty"`
	Key      string   `json:"key,omitempty"`
	Keys     []string `json:"keys,omitempty" jsonschema:"description=Key combination for a hotkey, e.g. [\"ctrl\",\"c\"]"`
	Interval float64  `json:"interval,omitempty"`
}

// TypingAdapter implements typing_type_text, typing_press_key,
// typing_hotkey, typing_copy_to_clipboard, typing_paste_from_clipboard,
// typing_get_clipboard_content — grounded on system_actions/typing.py,
// which wraps pyautogui/pyperclip. As with GUIAdapter, no keyboard
// automation or clipboard library is present anywhere in the
// retrieval pack, so only dry_run is actually fulfilled; a live
// invocation reports the backend as not installed.
type TypingAdapter struct {
	DryRun bool
}

// NewTypingAdapter builds a TypingAdapter.
func NewTypingAdapter(dryRun bool) *TypingAdapter {
	return &TypingAdapter{DryRun: dryRun}
}

func (a *TypingAdapter) Execute(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	start := time.Now()
	switch actionType {
	case "typing_type_text":
		text := str(params, "text")
		return a.dryRunOr(start, actionType, fmt.Sprintf("would type %q", truncate(text, 60)), map[string]any{"length": len(text)})
	case "typing_press_key":
		return a.dryRunOr(start, actionType, fmt.Sprintf("would press key %q", str(params, "key")), map[string]any{"key": str(params, "key")})
	case "typing_hotkey":
		keys := stringSlice(params, "keys")
		return a.dryRunOr(start, actionType, fmt.Sprintf("would press hotkey %v", keys), map[string]any{"keys": keys})
	case "typing_copy_to_clipboard":
		text := str(params, "text")
		return a.dryRunOr(start, actionType, "would copy text to the clipboard", map[string]any{"length": len(text)})
	case "typing_paste_from_clipboard":
		return a.dryRunOr(start, actionType, "would paste clipboard content", nil)
	case "typing_get_clipboard_content":
		return a.dryRunOr(start, actionType, "would read clipboard content", nil)
	default:
		return deniedResult(actionType, start, fmt.Sprintf("unknown typing action: %s", actionType)), nil
	}
}

func (a *TypingAdapter) dryRunOr(start time.Time, actionType, preview string, data map[string]any) (types.ActionResult, error) {
	if a.DryRun {
		if data == nil {
			data = map[string]any{}
		}
		data["dry_run"] = true
		return okResult(actionType, start, "[dry run] "+preview, data), nil
	}
	return errResult(actionType, start, "keyboard/clipboard automation backend is not installed", fmt.Errorf("not installed")), nil
}
