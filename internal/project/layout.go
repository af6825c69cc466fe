package project

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/model"
)

// LayoutFileVersion is written to every saved layout. Files with a
// different major version are rejected on load.
const LayoutFileVersion = "1.0.0"

// LayoutFile is a saved layout: the settings it was produced with, the
// result, and the pool the placements refer to. Together they are enough
// to re-render the layout later, images included.
type LayoutFile struct {
	Version   string                    `json:"version"`
	CreatedAt string                    `json:"created_at"`
	Page      model.PaperSize           `json:"page"`
	Settings  model.CollageSettings     `json:"settings"`
	Result    model.CollageLayoutResult `json:"result"`
	Pool      []model.PoolImage         `json:"pool,omitempty"`
}

// SaveLayout writes a layout, its settings and its pool to path as JSON.
// The seed used is recorded in the saved settings so the layout can be
// regenerated.
func SaveLayout(path string, settings model.CollageSettings, page model.PaperSize, result model.CollageLayoutResult, pool []model.PoolImage) error {
	seed := result.Seed
	settings.Seed = &seed

	doc := LayoutFile{
		Version:   LayoutFileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Page:      page,
		Settings:  settings,
		Result:    result,
		Pool:      pool,
	}
	if err := writeJSON(path, doc); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// LoadLayout reads a layout written by SaveLayout.
func LoadLayout(path string) (LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LayoutFile{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s not found", path)
		}
		return LayoutFile{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	var doc LayoutFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return LayoutFile{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse layout file %s", path)
	}
	if doc.Version == "" {
		return LayoutFile{}, errors.New(errors.ErrCodeInvalidFormat, "invalid layout file: missing version field")
	}
	if major(doc.Version) != major(LayoutFileVersion) {
		return LayoutFile{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout file version %s (want %s)", doc.Version, LayoutFileVersion)
	}
	if doc.Result.Placements == nil {
		doc.Result.Placements = []model.PlacedImage{}
	}
	if doc.Result.UnusedImageIDs == nil {
		doc.Result.UnusedImageIDs = []string{}
	}
	return doc, nil
}

func major(version string) string {
	v, _, _ := strings.Cut(strings.TrimPrefix(version, "v"), ".")
	return v
}
