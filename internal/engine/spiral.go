package engine

import (
	"math"

	"github.com/piwi3910/collagepack/internal/geometry"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/random"
)

const (
	spiralBias = 0.9

	// spiralMaxStretch caps how far an edge band may be enlarged to span its edge.
	spiralMaxStretch = 1.5
)

// side is one edge of the shrinking spiral bounds.
type side int

const (
	sideTop side = iota
	sideRight
	sideBottom
	sideLeft
)

var spiralOrder = []side{sideTop, sideRight, sideBottom, sideLeft}

// bounds is the unfilled interior of the page.
type bounds struct {
	left, top, right, bottom float64
}

func (b bounds) width() float64  { return b.right - b.left }
func (b bounds) height() float64 { return b.bottom - b.top }

// LayoutSpiral fills the page from its edges inward. Each round lines the
// top, right, bottom and left edges of the remaining bounds with a band of
// images, then shrinks the bounds past the band. Placements are then tucked
// toward the page edges, pushed outward and grown into leftover space.
func LayoutSpiral(in model.AlgorithmInput) (model.AlgorithmOutput, error) {
	valid, unused, ok := candidates(in)
	if !ok {
		return finish(in, nil, unused)
	}

	rng := random.New(in.Seed)
	ordered := random.BiasedShuffleByArea(valid, rng, spiralBias)
	gap := gapOf(in)

	queue := make([]model.ImageDimensions, 0, len(ordered))
	for _, img := range ordered {
		if !fitsPage(img, in) {
			unused = append(unused, img.ID)
			continue
		}
		queue = append(queue, img)
	}

	b := bounds{left: 0, top: 0, right: in.PageWidth, bottom: in.PageHeight}
	var placements []model.PlacedImage

rounds:
	for len(queue) > 0 {
		placedThisRound := 0
		for _, s := range spiralOrder {
			if len(queue) == 0 {
				break rounds
			}
			if b.width() <= 0 || b.height() <= 0 ||
				b.width() < in.MinImageSize || b.height() < in.MinImageSize {
				break rounds
			}
			var band []model.PlacedImage
			band, queue, b = fillSide(s, queue, b, gap)
			placements = append(placements, band...)
			placedThisRound += len(band)
		}
		if placedThisRound == 0 {
			break
		}
	}
	for _, img := range queue {
		unused = append(unused, img.ID)
	}

	tuckToEdges(placements, in.PageWidth, in.PageHeight, gap)
	pushOutward(placements, in.PageWidth, in.PageHeight, gap)
	growIntoSpace(placements, in.PageWidth, in.PageHeight, gap)

	return finish(in, placements, unused)
}

// fillSide lines one side of b with a band of queued images and returns the
// band, the images left in the queue and the shrunk bounds. The first image
// taken sets the band thickness; later ones must be no thicker and must fit
// in the remaining edge length.
func fillSide(s side, queue []model.ImageDimensions, b bounds, gap float64) ([]model.PlacedImage, []model.ImageDimensions, bounds) {
	horizontal := s == sideTop || s == sideBottom
	length, depth := b.width(), b.height()
	if !horizontal {
		length, depth = b.height(), b.width()
	}

	var taken, rest []model.ImageDimensions
	var used, sumAlong, thickness float64
	for _, img := range queue {
		along, thick := img.Width, img.Height
		if !horizontal {
			along, thick = img.Height, img.Width
		}
		need := along
		if len(taken) > 0 {
			need += gap
		}

		limit := depth
		if len(taken) > 0 {
			limit = thickness
		}
		if thick > limit+geometry.Epsilon || used+need > length+geometry.Epsilon {
			rest = append(rest, img)
			continue
		}

		if len(taken) == 0 {
			thickness = thick
		}
		taken = append(taken, img)
		used += need
		sumAlong += along
	}

	if len(taken) == 0 {
		return nil, queue, b
	}

	// Stretch the band toward the full edge length without passing native
	// size or the perpendicular span.
	factor := math.Min((length-gap*float64(len(taken)-1))/sumAlong, spiralMaxStretch)
	factor = math.Min(factor, depth/thickness)
	for _, img := range taken {
		if img.Width > 0 && img.NativeWidth > 0 {
			factor = math.Min(factor, img.NativeWidth/img.Width)
		}
	}
	factor = math.Max(factor, 1)

	band := make([]model.PlacedImage, 0, len(taken))
	cursor := 0.0
	switch s {
	case sideTop:
		cursor = b.left
	case sideRight:
		cursor = b.top
	case sideBottom:
		cursor = b.right
	case sideLeft:
		cursor = b.bottom
	}

	for _, img := range taken {
		w, h := img.Width*factor, img.Height*factor
		var r model.CollageRect
		switch s {
		case sideTop:
			r = model.CollageRect{X: cursor, Y: b.top, Width: w, Height: h}
			cursor += w + gap
		case sideRight:
			r = model.CollageRect{X: b.right - w, Y: cursor, Width: w, Height: h}
			cursor += h + gap
		case sideBottom:
			r = model.CollageRect{X: cursor - w, Y: b.bottom - h, Width: w, Height: h}
			cursor -= w + gap
		case sideLeft:
			r = model.CollageRect{X: b.left, Y: cursor - h, Width: w, Height: h}
			cursor -= h + gap
		}
		band = append(band, placedRect(img, r))
	}

	consumed := thickness*factor + gap
	switch s {
	case sideTop:
		b.top += consumed
	case sideRight:
		b.right -= consumed
	case sideBottom:
		b.bottom -= consumed
	case sideLeft:
		b.left += consumed
	}

	return band, rest, b
}
