package sandbox

import "strings"

// mainloopPatterns are the blocking-call shapes a GUI program's
// top-level code might contain, grounded on sandbox_manager.py's
// detect_gui_mainloop.
var mainloopPatterns = []string{
	"mainloop()",
	".mainloop()",
	"tk.mainloop()",
	"root.mainloop()",
	"app.mainloop()",
	"CTk.mainloop()",
	"app.run()",
}

// guiFrameworkPatterns identify GUI toolkit imports/usages, grounded
// on sandbox_manager.py's is_gui_program.
var guiFrameworkPatterns = []string{
	"tkinter",
	"customtkinter",
	"ctk",
	"pyqt5",
	"pyqt6",
	"pyside2",
	"pyside6",
	"pygame",
	"kivy",
	"wx",
}

// DetectGUIMainloop reports whether code contains a blocking GUI
// mainloop call that would hang the smoke-test gate if run directly.
func DetectGUIMainloop(code string) bool {
	for _, pattern := range mainloopPatterns {
		if strings.Contains(code, pattern) {
			return true
		}
	}
	return false
}

// IsGUIProgram reports whether code appears to use a GUI framework at
// all, used to decide whether the test and smoke gates should run.
func IsGUIProgram(code string) bool {
	lower := strings.ToLower(code)
	for _, pattern := range guiFrameworkPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
