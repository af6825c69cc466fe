// Package geometry holds the collision and free-space queries shared by every
// layout algorithm and post-pass. All functions are pure.
package geometry

import (
	"math"

	"github.com/piwi3910/collagepack/internal/model"
)

// Epsilon absorbs floating-point drift in every comparison below.
const Epsilon = 1e-6

// RectsIntersect returns true if a and b overlap once each is grown by
// tolerance along the axis separating them. With tolerance 0, touching edges
// do not intersect.
func RectsIntersect(a, b model.CollageRect, tolerance float64) bool {
	if a.Right()+tolerance <= b.X+Epsilon || b.Right()+tolerance <= a.X+Epsilon {
		return false
	}
	if a.Bottom()+tolerance <= b.Y+Epsilon || b.Bottom()+tolerance <= a.Y+Epsilon {
		return false
	}
	return true
}

// HasCollision returns true if rect intersects any placement other than excludeID.
func HasCollision(rect model.CollageRect, placements []model.PlacedImage, excludeID string, gap float64) bool {
	for _, p := range placements {
		if p.ImageID == excludeID {
			continue
		}
		if RectsIntersect(rect, p.Rect, gap) {
			return true
		}
	}
	return false
}

// WithinPage returns true if rect lies inside the page.
func WithinPage(rect model.CollageRect, pageWidth, pageHeight float64) bool {
	return rect.X >= -Epsilon && rect.Y >= -Epsilon &&
		rect.Right() <= pageWidth+Epsilon && rect.Bottom() <= pageHeight+Epsilon
}

// sharesColumn returns true if o would block r moving vertically: their
// horizontal extents, grown by gap, overlap.
func sharesColumn(r, o model.CollageRect, gap float64) bool {
	return o.X < r.Right()+gap-Epsilon && o.Right()+gap > r.X+Epsilon
}

// sharesRow returns true if o would block r moving horizontally.
func sharesRow(r, o model.CollageRect, gap float64) bool {
	return o.Y < r.Bottom()+gap-Epsilon && o.Bottom()+gap > r.Y+Epsilon
}

// FindMinY returns the smallest y rect can move up to, stopping gap short
// of the nearest blocker above it, or at the page top.
func FindMinY(rect model.CollageRect, placements []model.PlacedImage, self int, gap float64) float64 {
	bound := 0.0
	for i, p := range placements {
		if i == self || !sharesColumn(rect, p.Rect, gap) {
			continue
		}
		if p.Rect.Bottom() <= rect.Y+Epsilon {
			bound = math.Max(bound, p.Rect.Bottom()+gap)
		}
	}
	return math.Min(bound, rect.Y)
}

// FindMaxY returns the largest y rect can move down to.
func FindMaxY(rect model.CollageRect, placements []model.PlacedImage, self int, gap, pageHeight float64) float64 {
	bound := pageHeight - rect.Height
	for i, p := range placements {
		if i == self || !sharesColumn(rect, p.Rect, gap) {
			continue
		}
		if p.Rect.Y >= rect.Bottom()-Epsilon {
			bound = math.Min(bound, p.Rect.Y-gap-rect.Height)
		}
	}
	return math.Max(bound, rect.Y)
}

// FindMinX returns the smallest x rect can move left to.
func FindMinX(rect model.CollageRect, placements []model.PlacedImage, self int, gap float64) float64 {
	bound := 0.0
	for i, p := range placements {
		if i == self || !sharesRow(rect, p.Rect, gap) {
			continue
		}
		if p.Rect.Right() <= rect.X+Epsilon {
			bound = math.Max(bound, p.Rect.Right()+gap)
		}
	}
	return math.Min(bound, rect.X)
}

// FindMaxX returns the largest x rect can move right to.
func FindMaxX(rect model.CollageRect, placements []model.PlacedImage, self int, gap, pageWidth float64) float64 {
	bound := pageWidth - rect.Width
	for i, p := range placements {
		if i == self || !sharesRow(rect, p.Rect, gap) {
			continue
		}
		if p.Rect.X >= rect.Right()-Epsilon {
			bound = math.Min(bound, p.Rect.X-gap-rect.Width)
		}
	}
	return math.Max(bound, rect.X)
}

// FindSpaceRight returns the free distance between rect's right edge and the
// nearest blocker or the page edge.
func FindSpaceRight(rect model.CollageRect, placements []model.PlacedImage, self int, gap, pageWidth float64) float64 {
	return FindMaxX(rect, placements, self, gap, pageWidth) - rect.X
}

// FindSpaceLeft returns the free distance to the left of rect.
func FindSpaceLeft(rect model.CollageRect, placements []model.PlacedImage, self int, gap float64) float64 {
	return rect.X - FindMinX(rect, placements, self, gap)
}

// FindSpaceBelow returns the free distance below rect.
func FindSpaceBelow(rect model.CollageRect, placements []model.PlacedImage, self int, gap, pageHeight float64) float64 {
	return FindMaxY(rect, placements, self, gap, pageHeight) - rect.Y
}

// FindSpaceAbove returns the free distance above rect.
func FindSpaceAbove(rect model.CollageRect, placements []model.PlacedImage, self int, gap float64) float64 {
	return rect.Y - FindMinY(rect, placements, self, gap)
}
