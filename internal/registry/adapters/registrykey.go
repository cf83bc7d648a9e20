package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// RegistryParams is the reflected parameter schema for registry_*
// actions.
type RegistryParams struct {
	Hive      string `json:"hive,omitempty" jsonschema:"description=Root hive, e.g. HKEY_CURRENT_USER"`
	Path      string `json:"path,omitempty" jsonschema:"description=Key path under the hive"`
	ValueName string `json:"value_name,omitempty"`
	ValueType string `json:"value_type,omitempty" jsonschema:"description=REG_SZ, REG_DWORD, REG_QWORD, REG_BINARY, REG_MULTI_SZ"`
	Value     string `json:"value,omitempty"`
}

// RegistryAdapter implements registry_list_subkeys,
// registry_list_values, registry_read_value, registry_write_value,
// registry_delete_value — grounded on system_actions/registry.py,
// which wraps winreg. The Windows-specific implementation lives in
// registrykey_windows.go using golang.org/x/sys/windows/registry;
// this file holds the shared dispatch/param plumbing so the adapter
// compiles (and can be registered, schema-reflected, and dry-run
// tested) on any platform.
type RegistryAdapter struct {
	DryRun bool
	impl   registryImpl
}

// NewRegistryAdapter builds a RegistryAdapter bound to the current
// platform's registry backend.
func NewRegistryAdapter(dryRun bool) *RegistryAdapter {
	return &RegistryAdapter{DryRun: dryRun, impl: newRegistryImpl()}
}

func (a *RegistryAdapter) Execute(ctx context.Context, actionType string, params map[string]any) (types.ActionResult, error) {
	start := time.Now()
	hive := str(params, "hive")
	path := str(params, "path")
	valueName := str(params, "value_name")

	switch actionType {
	case "registry_list_subkeys":
		if a.DryRun {
			return okResult(actionType, start, fmt.Sprintf("[dry run] would list subkeys of %s\\%s", hive, path), map[string]any{"dry_run": true}), nil
		}
		subkeys, err := a.impl.ListSubkeys(hive, path)
		if err != nil {
			return errResult(actionType, start, fmt.Sprintf("failed to list subkeys of %s\\%s", hive, path), err), nil
		}
		return okResult(actionType, start, fmt.Sprintf("listed %d subkeys", len(subkeys)), map[string]any{"subkeys": subkeys}), nil

	case "registry_list_values":
		if a.DryRun {
			return okResult(actionType, start, fmt.Sprintf("[dry run] would list values of %s\\%s", hive, path), map[string]any{"dry_run": true}), nil
		}
		values, err := a.impl.ListValues(hive, path)
		if err != nil {
			return errResult(actionType, start, fmt.Sprintf("failed to list values of %s\\%s", hive, path), err), nil
		}
		return okResult(actionType, start, fmt.Sprintf("listed %d values", len(values)), map[string]any{"values": values}), nil

	case "registry_read_value":
		if a.DryRun {
			return okResult(actionType, start, fmt.Sprintf("[dry run] would read %s\\%s!%s", hive, path, valueName), map[string]any{"dry_run": true}), nil
		}
		value, valueType, err := a.impl.ReadValue(hive, path, valueName)
		if err != nil {
			return errResult(actionType, start, fmt.Sprintf("failed to read %s\\%s!%s", hive, path, valueName), err), nil
		}
		return okResult(actionType, start, fmt.Sprintf("read %s\\%s!%s", hive, path, valueName), map[string]any{"value": value, "value_type": valueType}), nil

	case "registry_write_value":
		valueType := str(params, "value_type")
		value := str(params, "value")
		if a.DryRun {
			return okResult(actionType, start, fmt.Sprintf("[dry run] would write %s\\%s!%s", hive, path, valueName), map[string]any{"dry_run": true}), nil
		}
		if err := a.impl.WriteValue(hive, path, valueName, valueType, value); err != nil {
			return errResult(actionType, start, fmt.Sprintf("failed to write %s\\%s!%s", hive, path, valueName), err), nil
		}
		return okResult(actionType, start, fmt.Sprintf("wrote %s\\%s!%s", hive, path, valueName), map[string]any{"hive": hive, "path": path, "value_name": valueName}), nil

	case "registry_delete_value":
		if a.DryRun {
			return okResult(actionType, start, fmt.Sprintf("[dry run] would delete %s\\%s!%s", hive, path, valueName), map[string]any{"dry_run": true}), nil
		}
		if err := a.impl.DeleteValue(hive, path, valueName); err != nil {
			return errResult(actionType, start, fmt.Sprintf("failed to delete %s\\%s!%s", hive, path, valueName), err), nil
		}
		return okResult(actionType, start, fmt.Sprintf("deleted %s\\%s!%s", hive, path, valueName), map[string]any{"hive": hive, "path": path, "value_name": valueName}), nil

	default:
		return deniedResult(actionType, start, fmt.Sprintf("unknown registry action: %s", actionType)), nil
	}
}

// registryImpl is the platform-specific backend RegistryAdapter
// delegates to.
type registryImpl interface {
	ListSubkeys(hive, path string) ([]string, error)
	ListValues(hive, path string) ([]string, error)
	ReadValue(hive, path, valueName string) (string, string, error)
	WriteValue(hive, path, valueName, valueType, value string) error
	DeleteValue(hive, path, valueName string) error
}

// ReadRegistryValue exposes the platform registry backend's read path
// directly, so the Step Verifier can confirm a write/delete without
// depending on the RegistryAdapter's dry-run state.
func ReadRegistryValue(hive, path, valueName string) (string, string, error) {
	return newRegistryImpl().ReadValue(hive, path, valueName)
}
