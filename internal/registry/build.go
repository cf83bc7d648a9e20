package registry

import (
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/registry/adapters"
)

// BuildOptions configures the adapters wired in by Build.
type BuildOptions struct {
	DryRun            bool
	ActionTimeout     time.Duration
	AllowedDirectories []string
	DisallowedDirectories []string
}

// Build assembles the full Registry for the seven action families
// (file, gui, typing, registry, ocr, shell/powershell, subprocess),
// the same catalog SystemActionRouter exposes in the original source,
// each entry carrying the parameter struct Schema reflects against.
func Build(opts BuildOptions) *Registry {
	guard := adapters.PathGuard{Allowed: opts.AllowedDirectories, Disallowed: opts.DisallowedDirectories}
	fileAdapter := adapters.NewFileAdapter(guard, opts.DryRun)
	guiAdapter := adapters.NewGUIAdapter(opts.DryRun)
	typingAdapter := adapters.NewTypingAdapter(opts.DryRun)
	ocrAdapter := adapters.NewOCRAdapter(opts.DryRun)
	shellAdapter := adapters.NewShellAdapter(opts.DryRun, opts.ActionTimeout)
	subprocessAdapter := adapters.NewSubprocessAdapter(opts.DryRun, opts.ActionTimeout)
	registryAdapter := adapters.NewRegistryAdapter(opts.DryRun)

	r := New()

	fileActions := map[string]string{
		"file_list":             "List files in a directory, optionally recursive",
		"file_create":           "Create or overwrite a file with the given content",
		"file_delete":           "Delete a single file",
		"file_delete_directory": "Recursively delete a directory",
		"file_move":             "Move or rename a file",
		"file_copy":             "Copy a file to a new location",
		"file_get_info":         "Get size/modified-time/type metadata about a file",
	}
	for actionType, desc := range fileActions {
		r.Register(Entry{ActionType: actionType, Description: desc, Adapter: fileAdapter, ParamsType: adapters.FileParams{}})
	}

	guiActions := map[string]string{
		"gui_get_screen_size":    "Report the primary screen's resolution",
		"gui_capture_screen":     "Capture a screenshot of the screen or a region",
		"gui_move_mouse":         "Move the mouse pointer to a screen coordinate",
		"gui_click_mouse":        "Click a mouse button at the current or given position",
		"gui_get_mouse_position": "Report the current mouse pointer coordinates",
	}
	for actionType, desc := range guiActions {
		r.Register(Entry{ActionType: actionType, Description: desc, Adapter: guiAdapter, ParamsType: adapters.GUIParams{}})
	}

	typingActions := map[string]string{
		"typing_type_text":             "Type a string of text at the current focus",
		"typing_press_key":             "Press a single keyboard key",
		"typing_hotkey":                "Press a combination of keys simultaneously",
		"typing_copy_to_clipboard":     "Copy text onto the system clipboard",
		"typing_paste_from_clipboard":  "Paste the current clipboard content",
		"typing_get_clipboard_content": "Read the current clipboard content without pasting",
	}
	for actionType, desc := range typingActions {
		r.Register(Entry{ActionType: actionType, Description: desc, Adapter: typingAdapter, ParamsType: adapters.TypingParams{}})
	}

	registryActions := map[string]string{
		"registry_list_subkeys": "List the subkeys under a Windows registry path",
		"registry_list_values":  "List the value names under a Windows registry key",
		"registry_read_value":   "Read a single Windows registry value",
		"registry_write_value":  "Write or create a Windows registry value",
		"registry_delete_value": "Delete a Windows registry value",
	}
	for actionType, desc := range registryActions {
		r.Register(Entry{ActionType: actionType, Description: desc, Adapter: registryAdapter, ParamsType: adapters.RegistryParams{}})
	}

	ocrActions := map[string]string{
		"ocr_extract_from_image":      "Extract text from an image file",
		"ocr_extract_from_screen":     "Extract text from the current screen or a region",
		"ocr_extract_with_boxes":      "Extract text from an image along with bounding boxes",
		"ocr_get_available_languages": "List OCR languages available on this machine",
		"ocr_windows_from_screen":     "Detect window regions on screen and extract their text",
	}
	for actionType, desc := range ocrActions {
		r.Register(Entry{ActionType: actionType, Description: desc, Adapter: ocrAdapter, ParamsType: adapters.OCRParams{}})
	}

	shellActions := map[string]string{
		"powershell_execute":          "Run a PowerShell command and capture its output",
		"powershell_execute_script":   "Run a block of PowerShell script content",
		"powershell_get_system_info":  "Report computer/OS information via Get-ComputerInfo",
		"powershell_get_processes":    "List running processes via Get-Process",
		"powershell_get_services":     "List Windows services filtered by status",
		"powershell_get_programs":     "List installed programs from the registry uninstall key",
		"powershell_check_file_hash":  "Compute a file's hash via Get-FileHash",
	}
	for actionType, desc := range shellActions {
		r.Register(Entry{ActionType: actionType, Description: desc, Adapter: shellAdapter, ParamsType: adapters.ShellParams{}})
	}

	subprocessActions := map[string]string{
		"subprocess_execute":          "Run an arbitrary shell command and capture its output",
		"subprocess_open_application": "Launch an application as a detached process",
		"subprocess_ping":             "Ping a host and report reachability",
		"subprocess_get_network":      "Report network interface configuration",
		"subprocess_get_disk_usage":   "Report disk usage for a path",
		"subprocess_get_environment":  "Report environment variables",
		"subprocess_kill_process":     "Terminate a process by PID",
		"subprocess_list_processes":   "List running processes",
	}
	for actionType, desc := range subprocessActions {
		r.Register(Entry{ActionType: actionType, Description: desc, Adapter: subprocessAdapter, ParamsType: adapters.SubprocessParams{}})
	}

	return r
}
