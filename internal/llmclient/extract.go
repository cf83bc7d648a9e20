package llmclient

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeFencePattern  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
	singleQuotedKeyPattern   = regexp.MustCompile(`'([^'\\]*)'\s*:`)
	singleQuotedValuePattern = regexp.MustCompile(`:\s*'([^'\\]*)'`)
)

// ExtractJSON pulls a JSON object or array out of an LLM's free-form
// reply, grounded on spec.md §4.5 step 3's defensive-extraction
// pipeline: strip fences, locate the outermost brace/bracket span, and
// — only if that still fails to parse — run a repair pass of total
// string transforms (smart quotes, single-quoted keys/values, trailing
// commas, brace/bracket balancing) before a final re-parse. Never
// calls back into the model to repair its own output.
func ExtractJSON(raw string) (json.RawMessage, error) {
	candidate := stripCodeFences(raw)
	candidate = locateOutermostSpan(candidate)
	if candidate == "" {
		return nil, fmt.Errorf("no JSON object or array found in response")
	}

	if json.Valid([]byte(candidate)) {
		return json.RawMessage(candidate), nil
	}

	repaired := repair(candidate)
	if json.Valid([]byte(repaired)) {
		return json.RawMessage(repaired), nil
	}

	return nil, fmt.Errorf("could not parse JSON from response after repair")
}

func stripCodeFences(s string) string {
	if m := codeFencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(s)
}

// locateOutermostSpan finds the first '{' or '[' and the matching
// last '}' or ']' in the string, returning everything between them
// inclusive. This tolerates prose before/after the JSON payload.
func locateOutermostSpan(s string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			start = i
			open, close = '{', '}'
			break
		}
		if s[i] == '[' {
			start = i
			open, close = '[', ']'
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := strings.LastIndexByte(s, close)
	if end == -1 || end < start {
		return ""
	}
	_ = open
	return s[start : end+1]
}

// repair applies a pipeline of total string transforms that, taken
// together, fix the malformations LLMs routinely introduce: smart
// quotes, single-quoted keys/values, trailing commas, and unbalanced
// braces/brackets. Each step is idempotent, so running repair twice
// on already-repaired (or already-valid) input is a no-op.
func repair(s string) string {
	s = normalizeSmartQuotes(s)
	s = singleQuotedKeyPattern.ReplaceAllString(s, `"$1":`)
	s = singleQuotedValuePattern.ReplaceAllString(s, `: "$1"`)
	s = trailingCommaPattern.ReplaceAllString(s, "$1")
	s = balanceBrackets(s)
	return s
}

func normalizeSmartQuotes(s string) string {
	replacer := strings.NewReplacer(
		"\u201c", `"`, "\u201d", `"`,
		"\u2018", "'", "\u2019", "'",
	)
	return replacer.Replace(s)
}

// balanceBrackets appends any missing closing braces/brackets,
// tracking nesting depth while skipping over string literals so
// braces inside quoted values don't throw off the count.
func balanceBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		s += string(stack[i])
	}
	return s
}
