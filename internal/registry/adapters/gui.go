package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// GUIParams is the reflected parameter schema for gui_* actions.
type GUIParams struct {
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
	Button  string `json:"button,omitempty"`
	Clicks  int    `json:"clicks,omitempty"`
	Region  []int  `json:"region,omitempty" jsonschema:"description=Optional [left,top,width,height] capture region"`
	Duration float64 `json:"duration,omitempty"`
}

// GUIAdapter implements gui_get_screen_size, gui_capture_screen,
// gui_move_mouse, gui_click_mouse, gui_get_mouse_position — grounded on
// system_actions/gui_control.py, which wraps pyautogui. No GUI
// automation library (the Go equivalent of pyautogui/robotgo) is
// available anywhere in the retrieval pack, so this adapter always
// honors dry_run faithfully and, when asked to actually move a mouse
// or capture a screen outside of dry_run, reports the capability as
// not installed rather than silently no-op'ing — the same permanent,
// non-retriable failure mode the dispatcher already recognizes for a
// genuinely missing dependency.
type GUIAdapter struct {
	DryRun bool
}

// NewGUIAdapter builds a GUIAdapter.
func NewGUIAdapter(dryRun bool) *GUIAdapter {
	return &GUIAdapter{DryRun: dryRun}
}

func (a *GUIAdapter) Execute(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	start := time.Now()
	switch actionType {
	case "gui_get_screen_size":
		return a.dryRunOr(start, actionType, "would report the primary screen size", nil)
	case "gui_capture_screen":
		return a.dryRunOr(start, actionType, "would capture the screen", map[string]any{"region": params["region"]})
	case "gui_move_mouse":
		return a.dryRunOr(start, actionType, fmt.Sprintf("would move the mouse to (%v, %v)", params["x"], params["y"]), map[string]any{"x": params["x"], "y": params["y"]})
	case "gui_click_mouse":
		return a.dryRunOr(start, actionType, fmt.Sprintf("would click the %v mouse button", params["button"]), map[string]any{"button": params["button"], "clicks": params["clicks"]})
	case "gui_get_mouse_position":
		return a.dryRunOr(start, actionType, "would report the current mouse position", nil)
	default:
		return deniedResult(actionType, start, fmt.Sprintf("unknown gui action: %s", actionType)), nil
	}
}

func (a *GUIAdapter) dryRunOr(start time.Time, actionType, preview string, data map[string]any) (types.ActionResult, error) {
	if a.DryRun {
		if data == nil {
			data = map[string]any{}
		}
		data["dry_run"] = true
		return okResult(actionType, start, "[dry run] "+preview, data), nil
	}
	return errResult(actionType, start, "GUI automation backend is not installed", fmt.Errorf("not installed")), nil
}
