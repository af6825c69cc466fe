package engine

import (
	"math"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/geometry"
	"github.com/piwi3910/collagepack/internal/model"
)

// LayoutFunc places images on a page. Every algorithm has this signature.
// The error is reserved for geometry invariant violations; images that do
// not fit are reported in UnusedImageIDs.
type LayoutFunc func(in model.AlgorithmInput) (model.AlgorithmOutput, error)

var layouts = map[model.Algorithm]LayoutFunc{
	model.AlgorithmRow:        LayoutRows,
	model.AlgorithmMasonry:    LayoutMasonry,
	model.AlgorithmGuillotine: LayoutGuillotine,
	model.AlgorithmSpiral:     LayoutSpiral,
	model.AlgorithmTreemap:    LayoutTreemap,
}

// Lookup returns the layout function for an algorithm.
func Lookup(a model.Algorithm) (LayoutFunc, bool) {
	fn, ok := layouts[a]
	return fn, ok
}

// candidates splits the input into images large enough to lay out and the
// ids of those that are not. It returns false when the page itself is
// unusable, in which case every image is unused.
func candidates(in model.AlgorithmInput) ([]model.ImageDimensions, []string, bool) {
	unused := []string{}
	if in.PageWidth <= 0 || in.PageHeight <= 0 {
		for _, img := range in.Images {
			unused = append(unused, img.ID)
		}
		return nil, unused, false
	}

	valid := make([]model.ImageDimensions, 0, len(in.Images))
	for _, img := range in.Images {
		if img.Width <= 0 || img.Height <= 0 ||
			img.Width < in.MinImageSize || img.Height < in.MinImageSize {
			unused = append(unused, img.ID)
			continue
		}
		valid = append(valid, img)
	}
	return valid, unused, true
}

// gapOf returns the usable gap; negative gaps are treated as zero.
func gapOf(in model.AlgorithmInput) float64 {
	return math.Max(0, in.Gap)
}

// fitsPage returns true if img fits on the page without rotation.
func fitsPage(img model.ImageDimensions, in model.AlgorithmInput) bool {
	return img.Width <= in.PageWidth+geometry.Epsilon && img.Height <= in.PageHeight+geometry.Epsilon
}

// placedAt builds a placement of img at its current size.
func placedAt(img model.ImageDimensions, x, y float64) model.PlacedImage {
	return placedRect(img, model.CollageRect{X: x, Y: y, Width: img.Width, Height: img.Height})
}

// placedRect builds a placement of img stretched to rect.
func placedRect(img model.ImageDimensions, rect model.CollageRect) model.PlacedImage {
	return model.PlacedImage{
		ImageID:     img.ID,
		Rect:        rect,
		ScaleFactor: img.NativeScale(rect.Width),
	}
}

// finish validates placements and assembles the output. A placement with a
// non-positive size or outside the page is a defect in the algorithm.
func finish(in model.AlgorithmInput, placements []model.PlacedImage, unused []string) (model.AlgorithmOutput, error) {
	if placements == nil {
		placements = []model.PlacedImage{}
	}
	if unused == nil {
		unused = []string{}
	}

	for _, p := range placements {
		r := p.Rect
		if r.Width <= 0 || r.Height <= 0 || math.IsNaN(r.X) || math.IsNaN(r.Y) {
			return model.AlgorithmOutput{}, errors.New(errors.ErrCodeGeometryInvariant,
				"image %s placed with invalid rect %+v", p.ImageID, r)
		}
		if !geometry.WithinPage(r, in.PageWidth, in.PageHeight) {
			return model.AlgorithmOutput{}, errors.New(errors.ErrCodeGeometryInvariant,
				"image %s placed outside the %.3fx%.3f page at %+v", p.ImageID, in.PageWidth, in.PageHeight, r)
		}
	}

	out := model.AlgorithmOutput{
		Placements:     placements,
		UnusedImageIDs: unused,
	}
	if pageArea := in.PageArea(); pageArea > 0 {
		out.Coverage = math.Max(0, math.Min(1, out.PlacedArea()/pageArea))
	}
	return out, nil
}
