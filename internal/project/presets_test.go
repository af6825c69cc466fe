package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/collagepack/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.json")

	wall := model.DefaultSettings()
	wall.PaperSize = "16x20"
	wall.Algorithm = model.AlgorithmTreemap

	presets := []model.SettingsPreset{
		{Name: "Wall", Description: "Large print", Settings: wall},
		{Name: "Postcard", Settings: model.DefaultSettings()},
	}

	if err := SavePresets(path, presets); err != nil {
		t.Fatalf("SavePresets: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("presets file was not created")
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded))
	}
	if loaded[0].Settings.PaperSize != "16x20" || loaded[0].Settings.Algorithm != model.AlgorithmTreemap {
		t.Errorf("unexpected first preset: %+v", loaded[0])
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	presets, err := LoadPresets(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if presets == nil || len(presets) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", presets)
	}
}

func TestLoadPresetsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := os.WriteFile(path, []byte("[{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestFindPreset(t *testing.T) {
	presets := []model.SettingsPreset{{Name: "Wall"}, {Name: "Postcard"}}

	if p, ok := FindPreset(presets, "postcard"); !ok || p.Name != "Postcard" {
		t.Errorf("expected case-insensitive match, got %+v %v", p, ok)
	}
	if _, ok := FindPreset(presets, "poster"); ok {
		t.Error("expected no match for unknown name")
	}
}

func TestUpsertPreset(t *testing.T) {
	presets := []model.SettingsPreset{{Name: "Wall"}}

	updated := model.DefaultSettings()
	updated.Gap = 0.5
	presets, err := UpsertPreset(presets, model.SettingsPreset{Name: "wall", Settings: updated})
	if err != nil {
		t.Fatalf("UpsertPreset: %v", err)
	}
	if len(presets) != 1 || presets[0].Settings.Gap != 0.5 {
		t.Errorf("expected replacement, got %+v", presets)
	}

	presets, err = UpsertPreset(presets, model.SettingsPreset{Name: "Postcard"})
	if err != nil {
		t.Fatalf("UpsertPreset: %v", err)
	}
	if len(presets) != 2 {
		t.Errorf("expected append, got %d presets", len(presets))
	}

	if _, err := UpsertPreset(presets, model.SettingsPreset{Name: "  "}); err == nil {
		t.Error("expected error for blank name")
	}
}
