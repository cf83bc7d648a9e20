package dispatcher

import (
	"errors"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/apperrors"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/executor"
)

// classifyPermanent reports whether result's failure should abort
// retries for this step immediately, per spec.md §4.6 step 6.
func classifyPermanent(result executor.Result) bool {
	if result.Success {
		return false
	}
	if result.VerificationMessage != "" && !result.Verified {
		if apperrors.IsPermanentVerificationError(result.VerificationMessage + " " + result.Error) {
			return true
		}
	}
	return apperrors.IsPermanentAdapterError(result.Error)
}

// classifyFatal reports whether result's failure should abort the
// entire remaining plan, per spec.md §4.6 step 7.
func classifyFatal(result executor.Result) bool {
	if result.Error == "" {
		return false
	}
	return apperrors.IsFatal(errors.New(result.Error))
}
