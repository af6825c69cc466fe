package engine

import (
	"github.com/piwi3910/collagepack/internal/geometry"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/random"
)

const rowBias = 0.85

// LayoutRows packs images into shelves. Images are placed left to right in
// the current row; one that does not fit the remaining width opens a new row
// below the tallest image of the current one.
func LayoutRows(in model.AlgorithmInput) (model.AlgorithmOutput, error) {
	valid, unused, ok := candidates(in)
	if !ok {
		return finish(in, nil, unused)
	}

	rng := random.New(in.Seed)
	ordered := random.BiasedShuffleByArea(valid, rng, rowBias)
	gap := gapOf(in)

	var placements []model.PlacedImage
	x, y, rowHeight := 0.0, 0.0, 0.0
	for _, img := range ordered {
		if !fitsPage(img, in) {
			unused = append(unused, img.ID)
			continue
		}

		px, py, rh := x, y, rowHeight
		if px > 0 && px+img.Width > in.PageWidth+geometry.Epsilon {
			px, py, rh = 0, y+rowHeight+gap, 0
		}
		if py+img.Height > in.PageHeight+geometry.Epsilon {
			unused = append(unused, img.ID)
			continue
		}

		placements = append(placements, placedAt(img, px, py))
		x, y, rowHeight = px+img.Width+gap, py, max(rh, img.Height)
	}

	return finish(in, placements, unused)
}
