package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/collagepack/internal/model"
)

// DXF layer names.
const (
	LayerPage       = "PAGE"
	LayerPlacements = "PLACEMENTS"
	LayerLabels     = "LABELS"
)

// ExportDXF writes the layout as trim guides in inches: the page outline,
// one rectangle per placement and its image id. DXF's y axis points up, so
// page coordinates are flipped.
func ExportDXF(path string, result model.CollageLayoutResult, page model.PaperSize) error {
	if page.Width <= 0 || page.Height <= 0 {
		return fmt.Errorf("invalid page size %.2fx%.2f", page.Width, page.Height)
	}
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerPage, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("adding layer %s: %w", LayerPage, err)
	}
	if err := drawRect(d, 0, 0, page.Width, page.Height); err != nil {
		return err
	}

	if _, err := d.AddLayer(LayerPlacements, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("adding layer %s: %w", LayerPlacements, err)
	}
	for _, p := range result.Placements {
		x := p.Rect.X
		y := page.Height - p.Rect.Bottom()
		if err := drawRect(d, x, y, p.Rect.Width, p.Rect.Height); err != nil {
			return fmt.Errorf("placement %s: %w", p.ImageID, err)
		}
	}

	if _, err := d.AddLayer(LayerLabels, color.Yellow, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("adding layer %s: %w", LayerLabels, err)
	}
	for _, p := range result.Placements {
		h := textHeight(p.Rect)
		x := p.Rect.X + h/2
		y := page.Height - p.Rect.Y - 1.5*h
		if _, err := d.Text(p.ImageID, x, y, 0, h); err != nil {
			return fmt.Errorf("label %s: %w", p.ImageID, err)
		}
	}

	return d.SaveAs(path)
}

// drawRect adds the four edges of an axis-aligned rectangle to the current layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}

// textHeight picks a label height that fits inside r.
func textHeight(r model.CollageRect) float64 {
	return math.Max(0.05, math.Min(0.25, math.Min(r.Width, r.Height)/8))
}
