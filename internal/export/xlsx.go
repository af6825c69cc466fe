package export

import (
	"fmt"

	"github.com/piwi3910/collagepack/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by ExportXLSX.
const (
	SheetPlacements = "Placements"
	SheetUnused     = "Unused"
	SheetSummary    = "Summary"
)

// ExportXLSX writes the layout as a workbook with a placement table, the
// unused image ids and a summary sheet.
func ExportXLSX(path string, result model.CollageLayoutResult, page model.PaperSize) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlacements); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	headers := []interface{}{"Image", "X (in)", "Y (in)", "Width (in)", "Height (in)", "Scale"}
	if err := f.SetSheetRow(SheetPlacements, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetPlacements, 1, 1, bold); err != nil {
		return err
	}
	for i, p := range result.Placements {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{p.ImageID, p.Rect.X, p.Rect.Y, p.Rect.Width, p.Rect.Height, p.ScaleFactor}
		if err := f.SetSheetRow(SheetPlacements, cell, &row); err != nil {
			return fmt.Errorf("writing placement %s: %w", p.ImageID, err)
		}
	}
	if err := f.SetColWidth(SheetPlacements, "A", "A", 24); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetUnused); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetUnused, "A1", "Image"); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetUnused, 1, 1, bold); err != nil {
		return err
	}
	for i, id := range result.UnusedImageIDs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetUnused, cell, id); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	summary := [][]interface{}{
		{"Paper", page.Name},
		{"Page width (in)", page.Width},
		{"Page height (in)", page.Height},
		{"Coverage", result.Coverage},
		{"Scale", result.ScaleFactor},
		{"Placed", len(result.Placements)},
		{"Unused", len(result.UnusedImageIDs)},
		{"Seed", int64(result.Seed)},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
