package types

import "time"

// SafetyFlag enumerates the recognized step-level safety markers.
type SafetyFlag string

const (
	SafetyDestructive         SafetyFlag = "destructive"
	SafetyNetworkAccess       SafetyFlag = "network_access"
	SafetyFileModification    SafetyFlag = "file_modification"
	SafetySystemCommand       SafetyFlag = "system_command"
	SafetyExternalDependency  SafetyFlag = "external_dependency"
)

// AllSafetyFlags lists every recognized flag, used to drop unknown ones
// during plan parsing.
var AllSafetyFlags = []SafetyFlag{
	SafetyDestructive,
	SafetyNetworkAccess,
	SafetyFileModification,
	SafetySystemCommand,
	SafetyExternalDependency,
}

// IsKnownSafetyFlag reports whether s names a recognized flag.
func IsKnownSafetyFlag(s string) bool {
	for _, f := range AllSafetyFlags {
		if string(f) == s {
			return true
		}
	}
	return false
}

// StepStatus is the PlanStep lifecycle state.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
	StepSkipped    StepStatus = "skipped"
)

// PlanStep is one concrete, verifiable action within a Plan.
type PlanStep struct {
	StepNumber       int          `json:"step_number"`
	Description      string       `json:"description"`
	RequiredTools    []string     `json:"required_tools"`
	Dependencies     []int        `json:"dependencies"`
	SafetyFlags      []SafetyFlag `json:"safety_flags"`
	EstimatedSeconds float64      `json:"estimated_duration,omitempty"`
	Status           StepStatus   `json:"status"`

	// RetryOverride carries a user-specified "retry up to N times"
	// directive parsed from the originating request, when present.
	RetryOverride *int `json:"retry_override,omitempty"`
}

// PlanValidationResult is the outcome of validating a Plan's structure
// and safety posture.
type PlanValidationResult struct {
	IsValid         bool     `json:"is_valid"`
	Issues          []string `json:"issues"`
	Warnings        []string `json:"warnings"`
	SafetyConcerns  []string `json:"safety_concerns"`
}

// Plan is a validated, ordered sequence of PlanSteps produced from a
// single user request.
type Plan struct {
	PlanID           string                `json:"plan_id"`
	UserInput        string                `json:"user_input"`
	Description      string                `json:"description"`
	Steps            []PlanStep            `json:"steps"`
	ValidationResult PlanValidationResult  `json:"validation_result"`
	IsSafe           bool                  `json:"is_safe"`
	GeneratedAt      time.Time             `json:"generated_at"`
	VerifiedAt       time.Time             `json:"verified_at"`
}

// AttemptResult is one execution of a step under retry.
type AttemptResult struct {
	AttemptNumber      int     `json:"attempt_number"`
	Success            bool    `json:"success"`
	Verified           bool    `json:"verified"`
	ActionType         string  `json:"action_type"`
	UsedAlternative    bool    `json:"used_alternative"`
	AlternativeAction  string  `json:"alternative_action,omitempty"`
	Error              string  `json:"error,omitempty"`
	ExecutionTimeMs    float64 `json:"execution_time_ms"`
}

// StepOutcome is the final, possibly-retried result of one PlanStep.
type StepOutcome struct {
	StepNumber           int             `json:"step_number"`
	StepDescription      string          `json:"step_description"`
	Success              bool            `json:"success"`
	Message              string          `json:"message"`
	Data                 map[string]any  `json:"data,omitempty"`
	Error                string          `json:"error,omitempty"`
	ExecutionTimeMs      float64         `json:"execution_time_ms"`
	Verified             bool            `json:"verified"`
	VerificationMessage  string          `json:"verification_message,omitempty"`
	Attempts             []AttemptResult `json:"attempts"`
}
