package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectGUIMainloopFindsRootMainloop(t *testing.T) {
	assert.True(t, DetectGUIMainloop("root = tk.Tk()\nroot.mainloop()\n"))
}

func TestDetectGUIMainloopFalseForCLI(t *testing.T) {
	assert.False(t, DetectGUIMainloop("print('hello world')\n"))
}

func TestIsGUIProgramDetectsTkinter(t *testing.T) {
	assert.True(t, IsGUIProgram("import tkinter as tk\n"))
}

func TestIsGUIProgramFalseForPlainScript(t *testing.T) {
	assert.False(t, IsGUIProgram("import sys\nprint(sys.argv)\n"))
}
