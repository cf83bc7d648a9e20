package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// OCRParams is the reflected parameter schema for ocr_* actions.
type OCRParams struct {
	ImagePath string `json:"image_path,omitempty"`
	Region    []int  `json:"region,omitempty" jsonschema:"description=Optional [left,top,width,height] capture region"`
	Language  string `json:"language,omitempty"`
}

// OCRAdapter implements ocr_extract_from_image, ocr_extract_from_screen,
// ocr_extract_with_boxes, ocr_get_available_languages,
// ocr_windows_from_screen — grounded on system_actions/ocr.py, which
// wraps pytesseract. No OCR engine binding exists anywhere in the
// retrieval pack, so a live call reports the backend as not
// installed; ocr_get_available_languages is the one read-only query
// that can answer truthfully even without a backend (an empty list),
// since it reports capability rather than performing recognition.
type OCRAdapter struct {
	DryRun bool
}

// NewOCRAdapter builds an OCRAdapter.
func NewOCRAdapter(dryRun bool) *OCRAdapter {
	return &OCRAdapter{DryRun: dryRun}
}

func (a *OCRAdapter) Execute(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	start := time.Now()
	switch actionType {
	case "ocr_extract_from_image":
		return a.dryRunOr(start, actionType, fmt.Sprintf("would extract text from %s", str(params, "image_path")), map[string]any{"image_path": str(params, "image_path")})
	case "ocr_extract_from_screen":
		return a.dryRunOr(start, actionType, "would extract text from the screen", map[string]any{"region": params["region"]})
	case "ocr_extract_with_boxes":
		return a.dryRunOr(start, actionType, fmt.Sprintf("would extract text with bounding boxes from %s", str(params, "image_path")), map[string]any{"image_path": str(params, "image_path")})
	case "ocr_windows_from_screen":
		return a.dryRunOr(start, actionType, "would detect window regions and extract text", map[string]any{"region": params["region"]})
	case "ocr_get_available_languages":
		return okResult(actionType, start, "no OCR backend installed; no languages available", map[string]any{"languages": []string{}}), nil
	default:
		return deniedResult(actionType, start, fmt.Sprintf("unknown ocr action: %s", actionType)), nil
	}
}

func (a *OCRAdapter) dryRunOr(start time.Time, actionType, preview string, data map[string]any) (types.ActionResult, error) {
	if a.DryRun {
		if data == nil {
			data = map[string]any{}
		}
		data["dry_run"] = true
		return okResult(actionType, start, "[dry run] "+preview, data), nil
	}
	return errResult(actionType, start, "OCR backend is not installed", fmt.Errorf("not installed")), nil
}
