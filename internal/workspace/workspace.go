package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const BaseDirName = "StyleMirror"

// Settings holds workspace-level defaults for the rewrite backend. Empty
// fields leave the built-in defaults in place; environment variables win
// over both.
type Settings struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// DefaultRoot is ~/StyleMirror.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, BaseDirName), nil
}

func SettingsPath(base string) string {
	return filepath.Join(base, "configs", "settings.json")
}

// EnsureAt creates the workspace skeleton under base and seeds an empty
// settings.json. An existing settings file is left untouched.
func EnsureAt(base string) (string, error) {
	for _, p := range []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "projects"),
	} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	path := SettingsPath(base)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveSettings(base, Settings{}); err != nil {
			return "", err
		}
	}
	return base, nil
}

// LoadSettings reads configs/settings.json. A missing file yields zero
// Settings and no error.
func LoadSettings(base string) (Settings, error) {
	raw, err := os.ReadFile(SettingsPath(base))
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

func SaveSettings(base string, s Settings) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(SettingsPath(base), raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
