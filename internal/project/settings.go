package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/model"
)

// isTOML reports whether path names a TOML file.
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadSettings reads collage settings from a TOML (.toml) or JSON file.
// Keys missing from the file keep their DefaultSettings values.
func LoadSettings(path string) (model.CollageSettings, error) {
	s := model.DefaultSettings()
	if err := LoadSettingsInto(path, &s); err != nil {
		return model.CollageSettings{}, err
	}
	return s, nil
}

// LoadSettingsInto decodes a settings file on top of s. Only the keys
// present in the file change; s is left untouched on error.
func LoadSettingsInto(path string, s *model.CollageSettings) error {
	next := *s

	if isTOML(path) {
		md, err := toml.DecodeFile(path, &next)
		if err != nil {
			return settingsReadError(path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return errors.New(errors.ErrCodeInvalidFormat, "settings %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return settingsReadError(path, err)
		}
		if err := json.Unmarshal(data, &next); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "settings %s is not valid JSON", path)
		}
	}

	if _, ok := model.ParseAlgorithm(string(next.Algorithm)); !ok {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "settings %s: unknown algorithm %q", path, next.Algorithm)
	}
	*s = next
	return nil
}

func settingsReadError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s not found", path)
	}
	if _, ok := err.(toml.ParseError); ok {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "settings %s is not valid TOML", path)
	}
	return fmt.Errorf("read settings %s: %w", path, err)
}

// SaveSettings writes settings as TOML for .toml paths and JSON otherwise.
func SaveSettings(path string, s model.CollageSettings) error {
	if !isTOML(path) {
		return writeJSON(path, s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return f.Close()
}
