package direct

import (
	"regexp"
	"strconv"
)

// retryLimitPattern matches an explicit attempt-limit directive the
// user embedded in their request, e.g. "try up to 3 times", "retry
// at most 5 times" or "at most 3 attempts", grounded on original_source's
// retry_parsing.parse_retry_limit.
var retryLimitPattern = regexp.MustCompile(`(?i)(?:try|retry|attempt)s?\s+(?:up to |at most )?(\d+)\s*times?|(?:up to|at most)\s+(\d+)\s*attempts?`)

// ParseRetryLimit extracts an explicit attempt limit from userRequest,
// per spec.md §4.9's "unless the user request embeds an explicit
// attempt limit" and §6's "retry up to N times"/"at most N attempts"
// directive parsing, shared by both the Direct Executor and the
// Dispatcher retry policy. Returns nil when no limit is named.
func ParseRetryLimit(userRequest string) *int {
	m := retryLimitPattern.FindStringSubmatch(userRequest)
	if m == nil {
		return nil
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
