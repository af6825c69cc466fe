package engine

import (
	"math"

	"github.com/piwi3910/collagepack/internal/geometry"
	"github.com/piwi3910/collagepack/internal/model"
)

// growSteps bounds the bisection used when a grown placement collides.
const growSteps = 12

// tuckToEdges slides each placement toward its nearest page edge until it
// meets a neighbour or the edge. Placements are updated in place.
func tuckToEdges(placements []model.PlacedImage, pageWidth, pageHeight, gap float64) {
	for i := range placements {
		r := placements[i].Rect
		distances := []float64{r.X, pageWidth - r.Right(), r.Y, pageHeight - r.Bottom()}
		nearest := 0
		for d := range distances {
			if distances[d] < distances[nearest] {
				nearest = d
			}
		}

		moved := r
		switch nearest {
		case 0:
			moved.X = geometry.FindMinX(r, placements, i, gap)
		case 1:
			moved.X = geometry.FindMaxX(r, placements, i, gap, pageWidth)
		case 2:
			moved.Y = geometry.FindMinY(r, placements, i, gap)
		case 3:
			moved.Y = geometry.FindMaxY(r, placements, i, gap, pageHeight)
		}
		commitMove(placements, i, moved, pageWidth, pageHeight, gap)
	}
}

// pushOutward moves each placement away from the page centre along whichever
// axis its centre is further off.
func pushOutward(placements []model.PlacedImage, pageWidth, pageHeight, gap float64) {
	for i := range placements {
		r := placements[i].Rect
		dx := r.CenterX() - pageWidth/2
		dy := r.CenterY() - pageHeight/2

		moved := r
		switch {
		case math.Abs(dx) >= math.Abs(dy) && dx < 0:
			moved.X = geometry.FindMinX(r, placements, i, gap)
		case math.Abs(dx) >= math.Abs(dy):
			moved.X = geometry.FindMaxX(r, placements, i, gap, pageWidth)
		case dy < 0:
			moved.Y = geometry.FindMinY(r, placements, i, gap)
		default:
			moved.Y = geometry.FindMaxY(r, placements, i, gap, pageHeight)
		}
		commitMove(placements, i, moved, pageWidth, pageHeight, gap)
	}
}

// growIntoSpace enlarges placements shown below native size, keeping the
// sides away from the page centre fixed and growing toward the centre.
// Growth stops at native size, at neighbours and at the page edge.
func growIntoSpace(placements []model.PlacedImage, pageWidth, pageHeight, gap float64) {
	for i := range placements {
		p := placements[i]
		if p.ScaleFactor <= 0 || p.ScaleFactor >= 1-geometry.Epsilon {
			continue
		}
		r := p.Rect
		growRight := r.CenterX() < pageWidth/2
		growDown := r.CenterY() < pageHeight/2

		var spaceH, spaceV float64
		if growRight {
			spaceH = geometry.FindSpaceRight(r, placements, i, gap, pageWidth)
		} else {
			spaceH = geometry.FindSpaceLeft(r, placements, i, gap)
		}
		if growDown {
			spaceV = geometry.FindSpaceBelow(r, placements, i, gap, pageHeight)
		} else {
			spaceV = geometry.FindSpaceAbove(r, placements, i, gap)
		}

		f := math.Min(1/p.ScaleFactor, math.Min(1+spaceH/r.Width, 1+spaceV/r.Height))
		if f <= 1+geometry.Epsilon {
			continue
		}

		fits := func(f float64) bool {
			g := grown(r, f, growRight, growDown)
			return geometry.WithinPage(g, pageWidth, pageHeight) &&
				!geometry.HasCollision(g, placements, p.ImageID, gap)
		}
		if !fits(f) {
			lo, hi := 1.0, f
			for step := 0; step < growSteps; step++ {
				mid := (lo + hi) / 2
				if fits(mid) {
					lo = mid
				} else {
					hi = mid
				}
			}
			f = lo
		}
		if f <= 1+geometry.Epsilon {
			continue
		}

		placements[i].Rect = grown(r, f, growRight, growDown)
		placements[i].ScaleFactor = math.Min(1, p.ScaleFactor*f)
	}
}

// grown returns r scaled by f, anchored on the sides it does not grow toward.
func grown(r model.CollageRect, f float64, growRight, growDown bool) model.CollageRect {
	g := model.CollageRect{Width: r.Width * f, Height: r.Height * f, X: r.X, Y: r.Y}
	if !growRight {
		g.X = r.Right() - g.Width
	}
	if !growDown {
		g.Y = r.Bottom() - g.Height
	}
	return g
}

// commitMove applies moved to placement i unless it would collide or leave the page.
func commitMove(placements []model.PlacedImage, i int, moved model.CollageRect, pageWidth, pageHeight, gap float64) {
	if moved == placements[i].Rect {
		return
	}
	if !geometry.WithinPage(moved, pageWidth, pageHeight) {
		return
	}
	if geometry.HasCollision(moved, placements, placements[i].ImageID, gap) {
		return
	}
	placements[i].Rect = moved
}
