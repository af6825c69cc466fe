package engine

import (
	"math"

	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/random"
)

const (
	treemapBias = 0.6

	// treemapFill is the share of the page the scaled images are sized to cover.
	treemapFill = 0.85

	// treemapJitter is the chance a split point is moved by one image.
	treemapJitter = 0.2
)

// LayoutTreemap partitions the page recursively. Each split cuts the longer
// side so that the two halves get area in proportion to their images, and
// each image is fitted and centred in its final cell.
func LayoutTreemap(in model.AlgorithmInput) (model.AlgorithmOutput, error) {
	valid, unused, ok := candidates(in)
	if !ok || len(valid) == 0 {
		return finish(in, nil, unused)
	}

	rng := random.New(in.Seed)
	ordered := random.BiasedShuffleByArea(valid, rng, treemapBias)

	scale := math.Sqrt(in.PageArea()/sumArea(ordered)) * treemapFill
	scaled := make([]model.ImageDimensions, len(ordered))
	for i, img := range ordered {
		scaled[i] = img.Scale(scale)
	}

	t := &treemap{gap: gapOf(in), rng: rng, unused: unused}
	t.split(scaled, model.CollageRect{Width: in.PageWidth, Height: in.PageHeight})

	return finish(in, t.placements, t.unused)
}

type treemap struct {
	gap        float64
	rng        *random.Rand
	placements []model.PlacedImage
	unused     []string
}

func (t *treemap) split(items []model.ImageDimensions, area model.CollageRect) {
	if len(items) == 0 {
		return
	}
	if len(items) == 1 {
		t.leaf(items[0], area)
		return
	}

	vertical := area.Width >= area.Height
	span := area.Height
	if vertical {
		span = area.Width
	}
	usable := span - t.gap
	if usable <= 0 {
		for _, img := range items {
			t.unused = append(t.unused, img.ID)
		}
		return
	}

	total := sumArea(items)
	k := bestSplit(items, area, vertical, usable, total)
	if t.rng.Next() < treemapJitter {
		if t.rng.Next() < 0.5 {
			k--
		} else {
			k++
		}
		k = max(1, min(len(items)-1, k))
	}

	first := usable * sumArea(items[:k]) / total
	var a, b model.CollageRect
	if vertical {
		a = model.CollageRect{X: area.X, Y: area.Y, Width: first, Height: area.Height}
		b = model.CollageRect{X: area.X + first + t.gap, Y: area.Y, Width: usable - first, Height: area.Height}
	} else {
		a = model.CollageRect{X: area.X, Y: area.Y, Width: area.Width, Height: first}
		b = model.CollageRect{X: area.X, Y: area.Y + first + t.gap, Width: area.Width, Height: usable - first}
	}

	t.split(items[:k], a)
	t.split(items[k:], b)
}

// leaf fits img inside area preserving its aspect ratio and centres it.
func (t *treemap) leaf(img model.ImageDimensions, area model.CollageRect) {
	if area.Width <= 0 || area.Height <= 0 || img.Width <= 0 || img.Height <= 0 {
		t.unused = append(t.unused, img.ID)
		return
	}
	f := math.Min(area.Width/img.Width, area.Height/img.Height)
	w, h := img.Width*f, img.Height*f
	r := model.CollageRect{
		X:      area.X + (area.Width-w)/2,
		Y:      area.Y + (area.Height-h)/2,
		Width:  w,
		Height: h,
	}
	t.placements = append(t.placements, placedRect(img, r))
}

// bestSplit picks the index k that splits items into [0,k) and [k,n) with
// sub-rectangles whose aspect ratios best match the images they hold.
func bestSplit(items []model.ImageDimensions, area model.CollageRect, vertical bool, usable, total float64) int {
	best, bestCost := 1, math.Inf(1)
	for k := 1; k < len(items); k++ {
		first := usable * sumArea(items[:k]) / total
		second := usable - first
		if first <= 0 || second <= 0 {
			continue
		}

		var arA, arB float64
		if vertical {
			arA, arB = first/area.Height, second/area.Height
		} else {
			arA, arB = area.Width/first, area.Width/second
		}
		cost := math.Abs(math.Log(meanAspect(items[:k]))-math.Log(arA)) +
			math.Abs(math.Log(meanAspect(items[k:]))-math.Log(arB))
		if cost < bestCost {
			best, bestCost = k, cost
		}
	}
	return best
}

func sumArea(items []model.ImageDimensions) float64 {
	var total float64
	for _, img := range items {
		total += img.Area
	}
	return total
}

func meanAspect(items []model.ImageDimensions) float64 {
	var total float64
	for _, img := range items {
		total += img.AspectRatio
	}
	return total / float64(len(items))
}
