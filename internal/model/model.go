package model

import (
	"strings"

	"github.com/google/uuid"
)

// PoolImage is one uploaded image available to the collage.
type PoolImage struct {
	ID           string `json:"id"`
	Path         string `json:"path,omitempty"`
	WidthPixels  int    `json:"width_px"`
	HeightPixels int    `json:"height_px"`
	Selected     bool   `json:"selected"` // Set when the image appears in the final layout
}

func NewPoolImage(path string, w, h int) PoolImage {
	return PoolImage{
		ID:           uuid.New().String()[:8],
		Path:         path,
		WidthPixels:  w,
		HeightPixels: h,
	}
}

// ImageDimensions is the algorithm-facing view of one pool image in inches.
// Values are never mutated after construction; transforms return copies.
type ImageDimensions struct {
	ID           string  `json:"id"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Area         float64 `json:"area"`
	AspectRatio  float64 `json:"aspect_ratio"`  // Width / Height
	NativeWidth  float64 `json:"native_width"`  // Width before any scaling or normalization
	NativeHeight float64 `json:"native_height"` // Height before any scaling or normalization
}

func NewImageDimensions(id string, w, h float64) ImageDimensions {
	d := ImageDimensions{
		ID:           id,
		Width:        w,
		Height:       h,
		Area:         w * h,
		NativeWidth:  w,
		NativeHeight: h,
	}
	if h > 0 {
		d.AspectRatio = w / h
	}
	return d
}

// Scale returns a copy resized uniformly by f. The native size is kept.
func (d ImageDimensions) Scale(f float64) ImageDimensions {
	return d.Resize(d.Width*f, d.Height*f)
}

// Resize returns a copy with the given size, keeping id and native size.
func (d ImageDimensions) Resize(w, h float64) ImageDimensions {
	out := NewImageDimensions(d.ID, w, h)
	out.NativeWidth = d.NativeWidth
	out.NativeHeight = d.NativeHeight
	return out
}

// NativeScale returns the ratio of a placed width to this image's native width.
func (d ImageDimensions) NativeScale(placedWidth float64) float64 {
	if d.NativeWidth <= 0 {
		return 1
	}
	return placedWidth / d.NativeWidth
}

// CollageRect is a rectangle in inches relative to the page's top-left corner.
type CollageRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r CollageRect) Right() float64  { return r.X + r.Width }
func (r CollageRect) Bottom() float64 { return r.Y + r.Height }
func (r CollageRect) Area() float64   { return r.Width * r.Height }

// CenterX returns the horizontal centre of the rectangle.
func (r CollageRect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical centre of the rectangle.
func (r CollageRect) CenterY() float64 { return r.Y + r.Height/2 }

// CropBox is a source-pixel region. Only renderers fill it in.
type CropBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PlacedImage is one image positioned on the page.
type PlacedImage struct {
	ImageID     string      `json:"image_id"`
	Rect        CollageRect `json:"rect"`
	ScaleFactor float64     `json:"scale_factor"` // Placed size / native size
	CropBox     *CropBox    `json:"crop_box,omitempty"`
	Rotated     bool        `json:"rotated"` // Always false from the layout algorithms
}

// AlgorithmInput is one layout request.
type AlgorithmInput struct {
	Images       []ImageDimensions `json:"images"`
	PageWidth    float64           `json:"page_width"`
	PageHeight   float64           `json:"page_height"`
	Gap          float64           `json:"gap"`
	MinImageSize float64           `json:"min_image_size"` // Images with either side below this are unused
	Seed         uint32            `json:"seed"`
}

// PageArea returns the page area in square inches.
func (in AlgorithmInput) PageArea() float64 {
	return in.PageWidth * in.PageHeight
}

// AlgorithmOutput is the result of one layout algorithm run.
type AlgorithmOutput struct {
	Placements     []PlacedImage `json:"placements"`
	Coverage       float64       `json:"coverage"`
	UnusedImageIDs []string      `json:"unused_image_ids"`
}

// PlacedArea returns the total placed area in square inches.
func (o AlgorithmOutput) PlacedArea() float64 {
	var total float64
	for _, p := range o.Placements {
		total += p.Rect.Area()
	}
	return total
}

// CollageLayoutResult is the public result of a collage layout request.
type CollageLayoutResult struct {
	Placements     []PlacedImage `json:"placements"`
	Coverage       float64       `json:"coverage"`
	UnusedImageIDs []string      `json:"unused_image_ids"`
	ScaleFactor    float64       `json:"scale_factor"` // Global scale chosen by the optimizer
	Seed           uint32        `json:"seed"`
}

// PlacedIDs returns the set of image ids that were placed.
func (r CollageLayoutResult) PlacedIDs() map[string]bool {
	ids := make(map[string]bool, len(r.Placements))
	for _, p := range r.Placements {
		ids[p.ImageID] = true
	}
	return ids
}

// CoveragePercent returns coverage as a percentage.
func (r CollageLayoutResult) CoveragePercent() float64 {
	return r.Coverage * 100.0
}

// Algorithm names one of the layout strategies.
type Algorithm string

const (
	AlgorithmRow        Algorithm = "ffd-row"    // Shelf packing, rows top to bottom
	AlgorithmMasonry    Algorithm = "masonry"    // Equal-width columns, shortest column first
	AlgorithmGuillotine Algorithm = "guillotine" // Free-rectangle bin packing with guillotine splits
	AlgorithmSpiral     Algorithm = "spiral"     // Edges inward, then geometric post-passes
	AlgorithmTreemap    Algorithm = "treemap"    // Recursive proportional partitioning
)

// Algorithms lists every layout strategy in a stable order.
var Algorithms = []Algorithm{
	AlgorithmRow,
	AlgorithmMasonry,
	AlgorithmGuillotine,
	AlgorithmSpiral,
	AlgorithmTreemap,
}

// ParseAlgorithm matches a name case-insensitively. Returns false if unknown.
func ParseAlgorithm(name string) (Algorithm, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, a := range Algorithms {
		if string(a) == n {
			return a, true
		}
	}
	return "", false
}

// CropAnchor tells the renderer where to keep content when cropping.
type CropAnchor string

const (
	CropAnchorCenter CropAnchor = "center"
	CropAnchorTop    CropAnchor = "top"
	CropAnchorBottom CropAnchor = "bottom"
	CropAnchorLeft   CropAnchor = "left"
	CropAnchorRight  CropAnchor = "right"
)

// CollageSettings holds everything a collage request needs.
type CollageSettings struct {
	// Layout settings
	Algorithm           Algorithm `json:"algorithm" toml:"algorithm"`
	PaperSize           string    `json:"paper_size" toml:"paper_size"`
	Landscape           bool      `json:"landscape" toml:"landscape"`
	Gap                 float64   `json:"gap" toml:"gap"`                                     // Inches between images
	MaxDownscalePercent float64   `json:"max_downscale_percent" toml:"max_downscale_percent"` // 0-90
	MinImageSize        float64   `json:"min_image_size" toml:"min_image_size"`               // Inches
	NormalizeSizes      bool      `json:"normalize_sizes" toml:"normalize_sizes"`
	Seed                *uint32   `json:"seed,omitempty" toml:"seed,omitempty"` // nil = generate

	// Renderer settings, passed through untouched
	AllowCropping  bool       `json:"allow_cropping" toml:"allow_cropping"`
	MaxCropPercent float64    `json:"max_crop_percent" toml:"max_crop_percent"`
	CropAnchor     CropAnchor `json:"crop_anchor" toml:"crop_anchor"`
	OutputDPI      int        `json:"output_dpi" toml:"output_dpi"`
}

// MinScale returns the smallest global scale the optimizer may use.
func (s CollageSettings) MinScale() float64 {
	pct := s.MaxDownscalePercent
	if pct < 0 {
		pct = 0
	}
	if pct > MaxDownscaleLimit {
		pct = MaxDownscaleLimit
	}
	return 1 - pct/100.0
}

// MaxDownscaleLimit caps MaxDownscalePercent.
const MaxDownscaleLimit = 90.0

// SourceDPI is the assumed resolution of every pool image.
const SourceDPI = 300.0

func DefaultSettings() CollageSettings {
	return CollageSettings{
		Algorithm:           AlgorithmSpiral,
		PaperSize:           "letter",
		Landscape:           false,
		Gap:                 0.125,
		MaxDownscalePercent: 50,
		MinImageSize:        1.0,
		NormalizeSizes:      false,
		AllowCropping:       false,
		MaxCropPercent:      10,
		CropAnchor:          CropAnchorCenter,
		OutputDPI:           300,
	}
}

// ToImageDimensions converts pool images to inches at SourceDPI.
// Images with non-positive pixel sizes are skipped.
func ToImageDimensions(pool []PoolImage) []ImageDimensions {
	dims := make([]ImageDimensions, 0, len(pool))
	for _, p := range pool {
		if p.WidthPixels <= 0 || p.HeightPixels <= 0 {
			continue
		}
		dims = append(dims, NewImageDimensions(p.ID,
			float64(p.WidthPixels)/SourceDPI,
			float64(p.HeightPixels)/SourceDPI))
	}
	return dims
}

// ProgressEvent reports coarse progress of a collage request.
type ProgressEvent struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ProgressFunc receives progress events. It may be nil.
type ProgressFunc func(ProgressEvent)
