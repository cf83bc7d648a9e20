//go:build !windows

package adapters

import "fmt"

// noopRegistry stands in for windowsRegistry on non-Windows build
// targets, where the Win32 registry simply does not exist; every
// call reports the platform mismatch rather than faking data.
type noopRegistry struct{}

func newRegistryImpl() registryImpl {
	return noopRegistry{}
}

var errNotWindows = fmt.Errorf("the registry_* actions require a Windows host")

func (noopRegistry) ListSubkeys(hive, path string) ([]string, error) {
	return nil, errNotWindows
}

func (noopRegistry) ListValues(hive, path string) ([]string, error) {
	return nil, errNotWindows
}

func (noopRegistry) ReadValue(hive, path, valueName string) (string, string, error) {
	return "", "", errNotWindows
}

func (noopRegistry) WriteValue(hive, path, valueName, valueType, value string) error {
	return errNotWindows
}

func (noopRegistry) DeleteValue(hive, path, valueName string) error {
	return errNotWindows
}
