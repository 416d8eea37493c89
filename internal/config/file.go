package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileDefaults is the on-disk shape of an optional local defaults file,
// modeled directly on the teacher's Config/ServerConfig split
// (src/config/config.go): a small YAML document a user can hand-edit to
// seed settings the same way the teacher seeds per-language server
// commands.
type FileDefaults struct {
	EVMVersion    string   `yaml:"evm,omitempty"`
	RevertStrings string   `yaml:"revert_strings,omitempty"`
	Remapping     []string `yaml:"remapping,omitempty"`
}

// LoadDefaultsFile reads a YAML defaults file from path. A missing file is
// not an error: it simply means no on-disk defaults are configured.
func LoadDefaultsFile(path string) (*FileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileDefaults{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var defaults FileDefaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &defaults, nil
}

// SaveDefaultsFile writes defaults back to path, creating the parent
// directory if needed.
func SaveDefaultsFile(defaults *FileDefaults, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to marshal config file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultFilePath returns the default location a user-level defaults file
// lives at.
func DefaultFilePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".solidity-lsp", "config.yaml")
}

// ApplyFileDefaults merges a FileDefaults document onto settings by
// re-using the same Ingest routine that handles initializationOptions, so
// the two configuration sources share one parsing/validation path.
func ApplyFileDefaults(settings *Settings, defaults *FileDefaults) {
	if defaults == nil {
		return
	}
	raw := map[string]interface{}{}
	if defaults.EVMVersion != "" {
		raw["evm"] = defaults.EVMVersion
	}
	if defaults.RevertStrings != "" {
		raw["revertStrings"] = defaults.RevertStrings
	}
	if len(defaults.Remapping) > 0 {
		arr := make([]interface{}, len(defaults.Remapping))
		for i, r := range defaults.Remapping {
			arr[i] = r
		}
		raw["remapping"] = arr
	}
	Ingest(settings, raw, nil)
}
