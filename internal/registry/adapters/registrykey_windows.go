//go:build windows

package adapters

import (
	"fmt"
	"strconv"

	"golang.org/x/sys/windows/registry"
)

// windowsRegistry implements registryImpl on top of
// golang.org/x/sys/windows/registry, the ecosystem-standard Go binding
// for the Win32 registry APIs (already present in go.mod transitively
// via viper's dependency tree).
type windowsRegistry struct{}

func newRegistryImpl() registryImpl {
	return windowsRegistry{}
}

func rootKey(hive string) (registry.Key, error) {
	switch hive {
	case "HKEY_CLASSES_ROOT", "HKCR":
		return registry.CLASSES_ROOT, nil
	case "HKEY_CURRENT_USER", "HKCU", "":
		return registry.CURRENT_USER, nil
	case "HKEY_LOCAL_MACHINE", "HKLM":
		return registry.LOCAL_MACHINE, nil
	case "HKEY_USERS", "HKU":
		return registry.USERS, nil
	case "HKEY_CURRENT_CONFIG", "HKCC":
		return registry.CURRENT_CONFIG, nil
	default:
		return 0, fmt.Errorf("unknown registry hive: %s", hive)
	}
}

func (windowsRegistry) ListSubkeys(hive, path string) ([]string, error) {
	root, err := rootKey(hive)
	if err != nil {
		return nil, err
	}
	key, err := registry.OpenKey(root, path, registry.READ)
	if err != nil {
		return nil, err
	}
	defer key.Close()
	return key.ReadSubKeyNames(-1)
}

func (windowsRegistry) ListValues(hive, path string) ([]string, error) {
	root, err := rootKey(hive)
	if err != nil {
		return nil, err
	}
	key, err := registry.OpenKey(root, path, registry.READ)
	if err != nil {
		return nil, err
	}
	defer key.Close()
	return key.ReadValueNames(-1)
}

func (windowsRegistry) ReadValue(hive, path, valueName string) (string, string, error) {
	root, err := rootKey(hive)
	if err != nil {
		return "", "", err
	}
	key, err := registry.OpenKey(root, path, registry.READ)
	if err != nil {
		return "", "", err
	}
	defer key.Close()

	if s, _, err := key.GetStringValue(valueName); err == nil {
		return s, "REG_SZ", nil
	}
	if v, _, err := key.GetIntegerValue(valueName); err == nil {
		return strconv.FormatUint(v, 10), "REG_DWORD", nil
	}
	if bs, _, err := key.GetBinaryValue(valueName); err == nil {
		return fmt.Sprintf("%x", bs), "REG_BINARY", nil
	}
	if ss, _, err := key.GetStringsValue(valueName); err == nil {
		return fmt.Sprint(ss), "REG_MULTI_SZ", nil
	}
	return "", "", fmt.Errorf("value %s not found or unsupported type", valueName)
}

func (windowsRegistry) WriteValue(hive, path, valueName, valueType, value string) error {
	root, err := rootKey(hive)
	if err != nil {
		return err
	}
	key, _, err := registry.CreateKey(root, path, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	switch valueType {
	case "REG_DWORD":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid REG_DWORD value %q: %w", value, err)
		}
		return key.SetDWordValue(valueName, uint32(n))
	case "REG_QWORD":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid REG_QWORD value %q: %w", value, err)
		}
		return key.SetQWordValue(valueName, n)
	case "REG_MULTI_SZ":
		return key.SetStringsValue(valueName, []string{value})
	case "REG_BINARY":
		return key.SetBinaryValue(valueName, []byte(value))
	default:
		return key.SetStringValue(valueName, value)
	}
}

func (windowsRegistry) DeleteValue(hive, path, valueName string) error {
	root, err := rootKey(hive)
	if err != nil {
		return err
	}
	key, err := registry.OpenKey(root, path, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	return key.DeleteValue(valueName)
}
