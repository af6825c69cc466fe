package engine

import (
	"math"

	"github.com/piwi3910/collagepack/internal/model"
)

const (
	// normalizeFill is the share of the page the normalized images aim to cover.
	normalizeFill = 0.85

	normalizeMaxGrow  = 1.2
	normalizeMaxScale = 1.5
)

// NormalizeSizes pulls image areas toward an equal share of the page. Large
// images shrink by the square root of their excess, small ones grow more
// gently. Factors are clamped to [minScale, 1.5], and an image pushed below
// minImageSize is scaled back up until its shorter side reaches it.
func NormalizeSizes(images []model.ImageDimensions, pageArea, minScale, minImageSize float64) []model.ImageDimensions {
	out := make([]model.ImageDimensions, len(images))
	if len(images) == 0 || pageArea <= 0 {
		copy(out, images)
		return out
	}

	target := normalizeFill * pageArea / float64(len(images))
	for i, img := range images {
		if img.Area <= 0 {
			out[i] = img
			continue
		}

		ratio := img.Area / target
		var f float64
		if ratio > 1 {
			f = 1 / math.Sqrt(ratio)
		} else {
			f = math.Min(1/math.Pow(ratio, 0.3), normalizeMaxGrow)
		}
		f = math.Max(minScale, math.Min(normalizeMaxScale, f))

		scaled := img.Scale(f)
		if short := math.Min(scaled.Width, scaled.Height); short < minImageSize {
			scaled = scaled.Scale(minImageSize / short)
		}
		out[i] = scaled
	}
	return out
}
