package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/collagepack/internal/errors"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("ID,Width,Height\nbeach,1800,1200\ndog,1200,1600\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("ID;Width;Height\nbeach;1800;1200\ndog;1200;1600\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("ID\tWidth\tHeight\nbeach\t1800\t1200\ndog\t1200\t1600\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("ID|Width|Height\nbeach|1800|1200\ndog|1200|1600\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"ID", "Width", "Height", "Path"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.ID != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Path != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"file", "NAME", "width_px", "height_px"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Path != 0 {
		t.Errorf("expected Path at 0, got %d", mapping.Path)
	}
	if mapping.ID != 1 {
		t.Errorf("expected ID at 1, got %d", mapping.ID)
	}
	if mapping.Width != 2 || mapping.Height != 3 {
		t.Errorf("expected Width 2 and Height 3, got %d and %d", mapping.Width, mapping.Height)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"beach", "1800", "1200"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.ID != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Path != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	input := "ID,Width,Height,Path\nbeach,1800,1200,photos/beach.jpg\ndog,1200,1600,photos/dog.jpg\n"
	result := ImportCSVFromReader(strings.NewReader(input))

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(result.Images))
	}

	img := result.Images[0]
	if img.ID != "beach" {
		t.Errorf("expected id 'beach', got '%s'", img.ID)
	}
	if img.WidthPixels != 1800 || img.HeightPixels != 1200 {
		t.Errorf("expected 1800x1200, got %dx%d", img.WidthPixels, img.HeightPixels)
	}
	if img.Path != "photos/beach.jpg" {
		t.Errorf("expected path photos/beach.jpg, got '%s'", img.Path)
	}
	if img.Selected {
		t.Error("imported images start unselected")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("beach,1800,1200\ndog,1200,1600\n"))

	if len(result.Images) != 2 {
		t.Fatalf("expected 2 images, got %d (errors: %v)", len(result.Images), result.Errors)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Photo,Across,Down\nbeach,1800,1200\n"))

	if len(result.Images) != 1 {
		t.Fatalf("expected 1 image, got %d (errors: %v)", len(result.Images), result.Errors)
	}
}

func TestImportCSVFromReader_BlankIDGenerated(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID,Width,Height\n,1800,1200\n,900,900\n"))

	if len(result.Images) != 2 {
		t.Fatalf("expected 2 images, got %d (errors: %v)", len(result.Images), result.Errors)
	}
	if result.Images[0].ID == "" || result.Images[0].ID == result.Images[1].ID {
		t.Errorf("expected distinct generated ids, got %q and %q", result.Images[0].ID, result.Images[1].ID)
	}
}

func TestImportCSVFromReader_DuplicateID(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID,Width,Height\nbeach,1800,1200\nbeach,900,900\n"))

	if len(result.Images) != 1 {
		t.Errorf("expected 1 image, got %d", len(result.Images))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Duplicate id") {
		t.Errorf("expected duplicate id error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidWidth(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID,Width,Height\nbeach,wide,1200\n"))

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid width") {
		t.Errorf("unexpected error: %s", result.Errors[0])
	}
}

func TestImportCSVFromReader_FractionalPixels(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID,Width,Height\na,1800.0,1200\nb,1800.5,1200\n"))

	if len(result.Images) != 1 {
		t.Errorf("expected 1 image, got %d", len(result.Images))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_NonPositive(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID,Width,Height\na,0,1200\nb,100,-5\n"))

	if len(result.Images) != 0 {
		t.Errorf("expected no images, got %d", len(result.Images))
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID,Width\nbeach,1800\n"))

	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing height column")
	}
	if !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected error to mention Height, got: %s", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID,Width,Height\nbeach,1800,1200\n,,\ndog,1200,1600\n"))

	if len(result.Images) != 2 {
		t.Errorf("expected 2 images, got %d (errors: %v)", len(result.Images), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""))

	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.csv")
	content := "ID;Width;Height\nbeach;1800;1200\ndog;1200;1600\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Images) != 2 {
		t.Fatalf("expected 2 images, got %d (errors: %v)", len(result.Images), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))

	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pool.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Image", "Width", "Height"},
		{"beach", 1800, 1200},
		{"dog", 1200, 1600},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(result.Images))
	}
	if result.Images[1].ID != "dog" || result.Images[1].HeightPixels != 1600 {
		t.Errorf("unexpected image %+v", result.Images[1])
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"beach", 1800, 1200},
		{"dog", 1200, 1600},
	})

	result := ImportExcel(path)

	if len(result.Images) != 2 {
		t.Fatalf("expected 2 images, got %d (errors: %v)", len(result.Images), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))

	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportManifest_PicksByExtension(t *testing.T) {
	xlsx := createTestExcel(t, [][]interface{}{{"beach", 1800, 1200}})
	got, err := ImportManifest(xlsx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Images) != 1 {
		t.Errorf("expected 1 image from xlsx, got %d (errors: %v)", len(got.Images), got.Errors)
	}

	csvPath := filepath.Join(t.TempDir(), "pool.csv")
	if err := os.WriteFile(csvPath, []byte("beach,1800,1200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = ImportManifest(csvPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Images) != 1 {
		t.Errorf("expected 1 image from csv, got %d (errors: %v)", len(got.Images), got.Errors)
	}
}

func TestImportManifest_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.pdf")
	if err := os.WriteFile(path, []byte("beach,1800,1200\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportManifest(path)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestImportManifest_MissingFile(t *testing.T) {
	_, err := ImportManifest(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestImportCSVFromReader_DetectsDelimiter(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID;Width;Height\nbeach;1800;1200\n"))

	if len(result.Images) != 1 {
		t.Fatalf("expected 1 image, got %d (errors: %v)", len(result.Images), result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
}
