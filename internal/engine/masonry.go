package engine

import (
	"math"

	"github.com/piwi3910/collagepack/internal/geometry"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/random"
)

const masonryBias = 0.7

// LayoutMasonry lays images out in equal-width columns. Each image is scaled
// to the column width and dropped onto the shortest column.
func LayoutMasonry(in model.AlgorithmInput) (model.AlgorithmOutput, error) {
	valid, unused, ok := candidates(in)
	if !ok || len(valid) == 0 {
		return finish(in, nil, unused)
	}

	rng := random.New(in.Seed)
	ordered := random.BiasedShuffleByArea(valid, rng, masonryBias)
	gap := gapOf(in)

	var sumWidth float64
	for _, img := range ordered {
		sumWidth += img.Width
	}
	avgWidth := sumWidth / float64(len(ordered))

	cols := max(2, int(math.Round(in.PageWidth/(avgWidth+gap))))
	colWidth := columnWidth(in.PageWidth, gap, cols)
	for cols > 1 && colWidth < in.MinImageSize {
		cols--
		colWidth = columnWidth(in.PageWidth, gap, cols)
	}

	heights := make([]float64, cols)
	var placements []model.PlacedImage
	for _, img := range ordered {
		h := img.Height * colWidth / img.Width
		if colWidth <= 0 || colWidth < in.MinImageSize || h < in.MinImageSize {
			unused = append(unused, img.ID)
			continue
		}

		col := shortestColumn(heights)
		y := heights[col]
		if y+h > in.PageHeight+geometry.Epsilon {
			unused = append(unused, img.ID)
			continue
		}

		rect := model.CollageRect{
			X:      float64(col) * (colWidth + gap),
			Y:      y,
			Width:  colWidth,
			Height: h,
		}
		placements = append(placements, placedRect(img, rect))
		heights[col] = y + h + gap
	}

	return finish(in, placements, unused)
}

// columnWidth returns the width of each of cols columns separated by gap.
func columnWidth(pageWidth, gap float64, cols int) float64 {
	return (pageWidth - gap*float64(cols-1)) / float64(cols)
}

// shortestColumn returns the index of the lowest column, leftmost on ties.
func shortestColumn(heights []float64) int {
	best := 0
	for i, h := range heights {
		if h < heights[best]-geometry.Epsilon {
			best = i
		}
	}
	return best
}
