package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/collagepack/internal/model"
)

// DefaultPresetsPath returns the default file path for saved presets.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets saves presets to a JSON file.
func SavePresets(path string, presets []model.SettingsPreset) error {
	return writeJSON(path, presets)
}

// LoadPresets loads presets from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadPresets(path string) ([]model.SettingsPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SettingsPreset{}, nil
		}
		return nil, err
	}

	var presets []model.SettingsPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, err
	}
	if presets == nil {
		presets = []model.SettingsPreset{}
	}
	return presets, nil
}

// FindPreset returns the preset with the given name, ignoring case.
func FindPreset(presets []model.SettingsPreset, name string) (model.SettingsPreset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return model.SettingsPreset{}, false
}

// UpsertPreset replaces the preset with the same name or appends a new one.
func UpsertPreset(presets []model.SettingsPreset, preset model.SettingsPreset) ([]model.SettingsPreset, error) {
	if strings.TrimSpace(preset.Name) == "" {
		return presets, errors.New("preset has no name")
	}
	out := make([]model.SettingsPreset, 0, len(presets)+1)
	replaced := false
	for _, p := range presets {
		if strings.EqualFold(p.Name, preset.Name) {
			out = append(out, preset)
			replaced = true
			continue
		}
		out = append(out, p)
	}
	if !replaced {
		out = append(out, preset)
	}
	return out, nil
}
