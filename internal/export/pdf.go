// Package export writes collage layouts to PDF, label sheets, DXF and
// spreadsheet files.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/collagepack/internal/model"
)

// placementColor represents an RGB color for a placed image.
type placementColor struct {
	R, G, B int
}

// placementColors is the fill cycle used when no image file is available.
var placementColors = []placementColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

const mmPerInch = 25.4

// Summary page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// previewOptions controls how buildPreview draws placements.
type previewOptions struct {
	pool       map[string]model.PoolImage // Source files for placements, by id
	drawImages bool
	onPlaced   func(i int, p model.PlacedImage) error
}

// ExportPDF writes a layout preview: the collage page at its physical size
// with every placement outlined and labelled, followed by a summary page.
func ExportPDF(path string, result model.CollageLayoutResult, page model.PaperSize) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}
	pdf, err := buildPreview(result, page, previewOptions{})
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// buildPreview assembles the preview document without writing it.
func buildPreview(result model.CollageLayoutResult, page model.PaperSize, opts previewOptions) (*fpdf.Fpdf, error) {
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %.2fx%.2f", page.Width, page.Height)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("Collage layout (seed %d)", result.Seed), true)

	pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width * mmPerInch, Ht: page.Height * mmPerInch})
	if err := renderLayoutPage(pdf, result, opts); err != nil {
		return nil, err
	}

	pdf.AddPageFormat("L", fpdf.SizeType{Wd: 210, Ht: 297})
	renderSummaryPage(pdf, result, page)

	if pdf.Err() {
		return nil, fmt.Errorf("building PDF: %w", pdf.Error())
	}
	return pdf, nil
}

// renderLayoutPage draws every placement at 1:1 scale on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.CollageLayoutResult, opts previewOptions) error {
	for i, p := range result.Placements {
		px := p.Rect.X * mmPerInch
		py := p.Rect.Y * mmPerInch
		pw := p.Rect.Width * mmPerInch
		ph := p.Rect.Height * mmPerInch

		drawn := false
		if opts.drawImages {
			if src, ok := opts.pool[p.ImageID]; ok {
				drawn = drawImageFile(pdf, src.Path, px, py, pw, ph)
			}
		}
		if !drawn {
			col := placementColors[i%len(placementColors)]
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
			pdf.Rect(px, py, pw, ph, "FD")
			drawPlacementLabel(pdf, p, px, py, pw, ph)
		}

		if opts.onPlaced != nil {
			if err := opts.onPlaced(i, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// drawImageFile places the image at path into the rect and reports whether
// it could. Only formats fpdf embeds natively are drawn.
func drawImageFile(pdf *fpdf.Fpdf, path string, x, y, w, h float64) bool {
	if path == "" {
		return false
	}
	var imageType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		imageType = "JPG"
	case ".png":
		imageType = "PNG"
	case ".gif":
		imageType = "GIF"
	default:
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}

	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptions(path, opts)
	if pdf.Err() {
		// A file fpdf cannot parse falls back to the placeholder box.
		pdf.ClearError()
		return false
	}
	pdf.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	return true
}

// drawPlacementLabel writes the image id and scale inside a placement box.
func drawPlacementLabel(pdf *fpdf.Fpdf, p model.PlacedImage, px, py, pw, ph float64) {
	if pw <= 15 || ph <= 8 {
		return
	}
	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)

	label := p.ImageID
	dims := fmt.Sprintf("%.2fx%.2f in @ %.0f%%", p.Rect.Width, p.Rect.Height, p.ScaleFactor*100)

	labelW := pdf.GetStringWidth(label)
	dimsW := pdf.GetStringWidth(dims)

	if labelW < pw-2 {
		pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	if ph > 14 && dimsW < pw-2 {
		pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
		pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	}
}

// renderSummaryPage draws the summary with overall statistics and a table
// of placements, continuing onto further pages as needed.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.CollageLayoutResult, page model.PaperSize) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Collage Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Paper", fmt.Sprintf("%s (%.2f x %.2f in)", page.Name, page.Width, page.Height)},
		{"Coverage", fmt.Sprintf("%.1f%%", result.CoveragePercent())},
		{"Scale", fmt.Sprintf("%.3f", result.ScaleFactor)},
		{"Images Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Images Unused", fmt.Sprintf("%d", len(result.UnusedImageIDs))},
		{"Seed", fmt.Sprintf("%d", result.Seed)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	colWidths := []float64{70, 35, 35, 35, 35, 35}
	headers := []string{"Image", "X (in)", "Y (in)", "Width (in)", "Height (in)", "Scale"}
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for i, p := range result.Placements {
		if y+6 > pageHeight-marginBottom-6 {
			pdf.AddPageFormat("L", fpdf.SizeType{Wd: 210, Ht: 297})
			y = marginTop
			drawHeader()
		}
		rowData := []string{
			p.ImageID,
			fmt.Sprintf("%.3f", p.Rect.X),
			fmt.Sprintf("%.3f", p.Rect.Y),
			fmt.Sprintf("%.3f", p.Rect.Width),
			fmt.Sprintf("%.3f", p.Rect.Height),
			fmt.Sprintf("%.1f%%", p.ScaleFactor*100),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(result.UnusedImageIDs) > 0 {
		y += 8
		if y > pageHeight-marginBottom-20 {
			pdf.AddPageFormat("L", fpdf.SizeType{Wd: 210, Ht: 297})
			y = marginTop
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Unused Images", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(pageWidth-marginLeft-marginRight-5, 5, strings.Join(result.UnusedImageIDs, ", "), "", "L", false)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by collagepack", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// poolByID indexes pool images by id.
func poolByID(pool []model.PoolImage) map[string]model.PoolImage {
	m := make(map[string]model.PoolImage, len(pool))
	for _, p := range pool {
		m[p.ID] = p
	}
	return m
}
