package importer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Decoders registered for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/model"
)

// imageExtensions lists the file types ScanDirectory reads.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// ScanDirectory builds a pool from the image files directly inside dir.
// Only headers are decoded. The id of each image is its file name without
// extension; files that cannot be read become warnings.
func ScanDirectory(dir string) (ImportResult, error) {
	result := ImportResult{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, errors.Wrap(errors.ErrCodeFileNotFound, err, "image directory %s not found", dir)
		}
		return result, fmt.Errorf("reading image directory: %w", err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !imageExtensions[ext] {
			continue
		}

		path := filepath.Join(dir, name)
		width, height, err := readDimensions(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		img := model.NewPoolImage(path, width, height)
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if seen[id] {
			id = name
		}
		if !seen[id] {
			img.ID = id
		}
		seen[img.ID] = true

		result.Images = append(result.Images, img)
	}

	if len(result.Images) == 0 {
		result.Warnings = append(result.Warnings, "No images found")
	}
	return result, nil
}

// readDimensions decodes only the header of the image at path.
func readDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}
