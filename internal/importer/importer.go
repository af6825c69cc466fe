// Package importer builds image pools from manifests and directories.
// Manifests are CSV or Excel sheets listing one image per row; delimiters
// and header names are detected automatically.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Images   []model.PoolImage
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID     int
	Width  int
	Height int
	Path   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":     {"id", "image", "image id", "name", "label", "key"},
	"width":  {"width", "w", "width px", "width_px", "px width", "x"},
	"height": {"height", "h", "height px", "height_px", "px height", "y"},
	"path":   {"path", "file", "filename", "file name", "source", "url"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against known aliases for each role.
// Returns the mapping and true if a header was detected, or the positional
// mapping id, width, height, path and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, Width: -1, Height: -1, Path: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "id":
					if mapping.ID == -1 {
						mapping.ID = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "path":
					if mapping.Path == -1 {
						mapping.Path = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: 0, Width: 1, Height: 2, Path: 3}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parsePixels reads a pixel count. Whole-number decimals such as "1200.0"
// are accepted since spreadsheets often store them that way.
func parsePixels(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not a whole number")
	}
	return int(f), nil
}

// parseRow extracts a PoolImage from a row using the given column mapping.
// Returns the image and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.PoolImage, string) {
	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.PoolImage{}, fmt.Sprintf("%s: Missing width value", rowLabel)
	}
	width, err := parsePixels(widthStr)
	if err != nil {
		return model.PoolImage{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.PoolImage{}, fmt.Sprintf("%s: Missing height value", rowLabel)
	}
	height, err := parsePixels(heightStr)
	if err != nil {
		return model.PoolImage{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr)
	}

	if width <= 0 || height <= 0 {
		return model.PoolImage{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel)
	}

	img := model.NewPoolImage(getCell(row, mapping.Path), width, height)
	if id := getCell(row, mapping.ID); id != "" {
		img.ID = id
	}
	return img, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a pool manifest from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return importCSVData(data)
}

// ImportCSVFromReader imports a pool manifest read from r, such as stdin.
func ImportCSVFromReader(r io.Reader) ImportResult {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read input: %v", err)}}
	}
	return importCSVData(data)
}

func importCSVData(data []byte) ImportResult {
	result := ImportResult{}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportExcel imports a pool manifest from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportManifest picks the CSV or Excel importer by file extension.
// A missing file or an unrecognised extension is returned as an error;
// row-level problems land in the result.
func ImportManifest(path string) (ImportResult, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ImportResult{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s not found", path)
		}
		return ImportResult{}, fmt.Errorf("reading manifest: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path), nil
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path), nil
	default:
		return ImportResult{}, errors.New(errors.ErrCodeInvalidFormat,
			"manifest %s: unsupported extension (want .csv, .tsv, .txt, .xlsx or .xlsm)", path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a pool image.
// A row whose id repeats an earlier one is rejected.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric width cell.
		if _, err := parsePixels(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		img, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if first, dup := seen[img.ID]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate id '%s' (first seen on %s)", rowLabel, img.ID, first))
			continue
		}
		seen[img.ID] = rowLabel

		result.Images = append(result.Images, img)
	}

	return result
}
