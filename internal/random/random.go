// Package random provides the deterministic generator every layout algorithm
// draws from, so a seed always reproduces the same collage.
package random

import (
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/piwi3910/collagepack/internal/model"
)

// Rand is a Mulberry32 generator. It is not safe for concurrent use; each
// layout run creates its own.
type Rand struct {
	state uint32
}

// New returns a generator seeded with seed.
func New(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Next returns a float in [0, 1).
func (r *Rand) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// NextInt returns an integer in [min, max).
func (r *Rand) NextInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(math.Floor(r.Next()*float64(max-min)))
}

// NextFloat returns a float in [min, max).
func (r *Rand) NextFloat(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](r *Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.NextInt(0, i+1)
		items[i], items[j] = items[j], items[i]
	}
}

// GenerateSeed returns a fresh seed from the wall clock and one random draw.
// It is the only non-deterministic call in the layout core.
func GenerateSeed() uint32 {
	now := uint64(time.Now().UnixNano())
	return uint32(now) ^ uint32(now>>32) ^ rand.Uint32()
}

// BiasedShuffleByArea returns a copy of images ordered largest first, then
// loosened: at position i the element stays with probability
// biasFactor*(1-i/n), otherwise it swaps with one of the next few elements.
// The window shrinks towards the end of the list.
func BiasedShuffleByArea(images []model.ImageDimensions, r *Rand, biasFactor float64) []model.ImageDimensions {
	out := make([]model.ImageDimensions, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Area > out[j].Area
	})

	n := len(out)
	if n < 2 {
		return out
	}

	maxWindow := max(2, int(math.Ceil(float64(n)/3)))
	for i := 0; i < n-1; i++ {
		progress := float64(i) / float64(n)
		stay := biasFactor * (1 - progress)
		if r.Next() <= stay {
			continue
		}
		window := int(math.Ceil(float64(maxWindow) * (1 - progress)))
		window = max(1, min(n-i-1, window))
		j := i + 1 + r.NextInt(0, window)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
