package engine

import (
	"math"

	"github.com/piwi3910/collagepack/internal/geometry"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/random"
)

const (
	guillotineBias = 0.8

	// fitTolerance absorbs drift when testing an image against a free rect
	// and when deciding whether two free rects share an edge. It stays below
	// geometry.Epsilon so a tolerated fit never leaves the page.
	fitTolerance = geometry.Epsilon / 2

	// minFragment is the smallest free rect kept when no minimum image size applies.
	minFragment = 1e-3
)

// LayoutGuillotine packs images into a list of free rectangles, splitting the
// chosen rectangle in two after every placement.
func LayoutGuillotine(in model.AlgorithmInput) (model.AlgorithmOutput, error) {
	valid, unused, ok := candidates(in)
	if !ok {
		return finish(in, nil, unused)
	}

	rng := random.New(in.Seed)
	ordered := random.BiasedShuffleByArea(valid, rng, guillotineBias)

	packer := newGuillotinePacker(in.PageWidth, in.PageHeight, gapOf(in), math.Max(in.MinImageSize, minFragment))

	var placements []model.PlacedImage
	for _, img := range ordered {
		ok, x, y := packer.insert(img.Width, img.Height)
		if !ok {
			unused = append(unused, img.ID)
			continue
		}
		placements = append(placements, placedAt(img, x, y))
	}

	return finish(in, placements, unused)
}

// guillotinePacker implements the guillotine bin-packing algorithm.
// It maintains a list of disjoint free rectangles and splits one on each insertion.
type guillotinePacker struct {
	freeRects []rect
	gap       float64
	fragment  float64
}

type rect struct {
	x, y, w, h float64
}

func newGuillotinePacker(width, height, gap, fragment float64) *guillotinePacker {
	return &guillotinePacker{
		freeRects: []rect{{0, 0, width, height}},
		gap:       gap,
		fragment:  fragment,
	}
}

// insert tries to place an image of given dimensions. Returns success and position.
// Uses Best Short Side Fit (BSSF), ties broken by the long side, then by list order.
func (gp *guillotinePacker) insert(w, h float64) (bool, float64, float64) {
	bestIdx := -1
	bestShort, bestLong := math.MaxFloat64, math.MaxFloat64

	for i, r := range gp.freeRects {
		if w > r.w+fitTolerance || h > r.h+fitTolerance {
			continue
		}
		leftW, leftH := r.w-w, r.h-h
		short, long := math.Min(leftW, leftH), math.Max(leftW, leftH)
		if short < bestShort || (short == bestShort && long < bestLong) {
			bestIdx = i
			bestShort, bestLong = short, long
		}
	}

	if bestIdx < 0 {
		return false, 0, 0
	}

	chosen := gp.freeRects[bestIdx]
	gp.freeRects = append(gp.freeRects[:bestIdx], gp.freeRects[bestIdx+1:]...)
	gp.split(chosen, w, h)
	gp.mergeFreeRects()
	gp.freeRects = pruneContained(gp.freeRects)

	return true, chosen.x, chosen.y
}

// split divides the remainder of r after placing a w x h image at its
// top-left corner. The cut runs along the axis with less leftover, so the
// larger remainder stays in one piece. Both children start a gap away
// from the image.
func (gp *guillotinePacker) split(r rect, w, h float64) {
	var right, bottom rect
	if r.w-w <= r.h-h {
		// Horizontal cut: the bottom child spans the full width.
		right = rect{x: r.x + w + gp.gap, y: r.y, w: r.w - w - gp.gap, h: h}
		bottom = rect{x: r.x, y: r.y + h + gp.gap, w: r.w, h: r.h - h - gp.gap}
	} else {
		// Vertical cut: the right child spans the full height.
		right = rect{x: r.x + w + gp.gap, y: r.y, w: r.w - w - gp.gap, h: r.h}
		bottom = rect{x: r.x, y: r.y + h + gp.gap, w: w, h: r.h - h - gp.gap}
	}

	for _, c := range []rect{right, bottom} {
		if c.w > 0 && c.h > 0 && c.w >= gp.fragment && c.h >= gp.fragment {
			gp.freeRects = append(gp.freeRects, c)
		}
	}
}

// mergeFreeRects joins pairs of free rects that touch along a full shared edge.
func (gp *guillotinePacker) mergeFreeRects() {
	for i := 0; i < len(gp.freeRects); i++ {
		for j := i + 1; j < len(gp.freeRects); j++ {
			merged, ok := mergeRects(gp.freeRects[i], gp.freeRects[j])
			if !ok {
				continue
			}
			gp.freeRects[i] = merged
			gp.freeRects = append(gp.freeRects[:j], gp.freeRects[j+1:]...)
			// Rescan against the grown rect.
			j = i
		}
	}
}

func mergeRects(a, b rect) (rect, bool) {
	if near(a.x, b.x) && near(a.w, b.w) {
		if near(a.y+a.h, b.y) {
			return rect{x: a.x, y: a.y, w: a.w, h: a.h + b.h}, true
		}
		if near(b.y+b.h, a.y) {
			return rect{x: a.x, y: b.y, w: a.w, h: a.h + b.h}, true
		}
	}
	if near(a.y, b.y) && near(a.h, b.h) {
		if near(a.x+a.w, b.x) {
			return rect{x: a.x, y: a.y, w: a.w + b.w, h: a.h}, true
		}
		if near(b.x+b.w, a.x) {
			return rect{x: b.x, y: a.y, w: a.w + b.w, h: a.h}, true
		}
	}
	return rect{}, false
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= fitTolerance
}

// pruneContained removes any rect that is fully contained within another.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && containsRect(b, a) && (!containsRect(a, b) || j < i) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+fitTolerance && outer.y <= inner.y+fitTolerance &&
		outer.x+outer.w >= inner.x+inner.w-fitTolerance &&
		outer.y+outer.h >= inner.y+inner.h-fitTolerance
}
