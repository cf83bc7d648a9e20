package direct

import (
	"regexp"
	"strings"
)

var desktopSavePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)save\s+(?:it|them|the\s+file|to\s+desktop)`),
	regexp.MustCompile(`(?i)(?:on|to)\s+desktop`),
	regexp.MustCompile(`(?i)desktop\s+(?:folder|directory)`),
}

// detectDesktopSaveRequest reports whether userRequest asks for the
// output to land on the desktop, grounded on DirectExecutor's
// _detect_desktop_save_request.
func detectDesktopSaveRequest(userRequest string) bool {
	for _, p := range desktopSavePatterns {
		if p.MatchString(userRequest) {
			return true
		}
	}
	return false
}

// currentDirLiteralPattern matches a bare "." or "desktop" path
// literal the generated code opens/writes to, the target of the
// desktop-path rewrite.
var currentDirLiteralPattern = regexp.MustCompile(`(?i)(['"])(\.|desktop)(['"])`)

// rewriteForDesktopSave replaces a literal "." or "desktop" path in
// code with desktopDir, grounded on DirectExecutor._modify_for_desktop_save.
func rewriteForDesktopSave(code, desktopDir string) string {
	return currentDirLiteralPattern.ReplaceAllString(code, "${1}"+escapeReplacement(desktopDir)+"${3}")
}

// escapeReplacement guards against dollar signs in a path being misread
// as regexp replacement syntax ("$" is the only special character in a
// Go replacement template; backslashes are copied as they are).
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
