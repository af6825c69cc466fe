package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/collagepack/internal/model"
)

const (
	// targetCoverage is the page coverage the optimizer aims for.
	targetCoverage = 0.92

	// coverageTolerance is how far from targetCoverage a result may land
	// and still be accepted.
	coverageTolerance = 0.05

	refineWindow     = 0.15
	refineIterations = 8
	refineResolution = 0.02
)

// coarseScales are tried in order before the binary refinement.
var coarseScales = []float64{1.0, 0.8, 0.6, 0.5, 0.4, 0.3, 0.2, 0.15, 0.1}

// Options configures one optimizer run.
type Options struct {
	PageWidth           float64
	PageHeight          float64
	Gap                 float64
	MinImageSize        float64
	MaxDownscalePercent float64
	Normalize           bool
	Seed                uint32
}

// MinScale returns the smallest global scale the run may use.
func (o Options) MinScale() float64 {
	pct := math.Max(0, math.Min(model.MaxDownscaleLimit, o.MaxDownscalePercent))
	return 1 - pct/100.0
}

// OptionsFromSettings builds optimizer options for a page of the given size.
func OptionsFromSettings(s model.CollageSettings, pageWidth, pageHeight float64, seed uint32) Options {
	return Options{
		PageWidth:           pageWidth,
		PageHeight:          pageHeight,
		Gap:                 s.Gap,
		MinImageSize:        s.MinImageSize,
		MaxDownscalePercent: s.MaxDownscalePercent,
		Normalize:           s.NormalizeSizes,
		Seed:                seed,
	}
}

// OptimizeResult is the best layout found and the global scale that produced it.
type OptimizeResult struct {
	Scale      float64
	Output     model.AlgorithmOutput
	Iterations int // Number of layout runs performed
}

// Optimizer searches for the global scale at which a layout algorithm
// covers the page best.
type Optimizer struct {
	Layout  LayoutFunc
	Options Options
}

func New(layout LayoutFunc, opts Options) *Optimizer {
	return &Optimizer{Layout: layout, Options: opts}
}

// candidate is one scored layout run.
type candidate struct {
	scale  float64
	output model.AlgorithmOutput
	score  float64
}

// Optimize runs the layout at a series of global scales and returns the
// best result. A coarse scan over fixed scales is followed by a binary
// search around the best one. Either phase stops early once coverage is
// within tolerance of the target with at least two thirds of the images
// placed.
func (o *Optimizer) Optimize(images []model.ImageDimensions) (OptimizeResult, error) {
	if len(images) == 0 {
		return OptimizeResult{Scale: 1.0, Output: emptyOutput(images)}, nil
	}

	minScale := o.Options.MinScale()
	base := images
	if o.Options.Normalize {
		base = NormalizeSizes(images, o.Options.PageWidth*o.Options.PageHeight, minScale, o.Options.MinImageSize)
	}

	iterations := 0
	var best *candidate
	consider := func(c candidate) {
		if len(c.output.Placements) == 0 {
			return
		}
		if best == nil || c.score > best.score+1e-12 ||
			(math.Abs(c.score-best.score) <= 1e-12 && len(c.output.Placements) > len(best.output.Placements)) {
			cc := c
			best = &cc
		}
	}

	for _, s := range coarseScales {
		if s < minScale-1e-9 {
			continue
		}
		c, err := o.run(base, s)
		if err != nil {
			return OptimizeResult{}, err
		}
		iterations++
		consider(c)
		if o.acceptable(c, len(images)) {
			return OptimizeResult{Scale: s, Output: c.output, Iterations: iterations}, nil
		}
	}

	if best == nil {
		return OptimizeResult{Scale: 1.0, Output: emptyOutput(images), Iterations: iterations}, nil
	}

	lo := math.Max(minScale, best.scale-refineWindow)
	hi := math.Min(1.0, best.scale+refineWindow)
	for i := 0; i < refineIterations && hi-lo > refineResolution; i++ {
		mid := (lo + hi) / 2
		c, err := o.run(base, mid)
		if err != nil {
			return OptimizeResult{}, err
		}
		iterations++
		consider(c)
		if o.acceptable(c, len(images)) {
			return OptimizeResult{Scale: mid, Output: c.output, Iterations: iterations}, nil
		}

		switch {
		case c.output.Coverage < targetCoverage:
			hi = mid
		case c.output.Coverage > targetCoverage+coverageTolerance:
			lo = mid
		default:
			hi = mid
		}
	}

	return OptimizeResult{Scale: best.scale, Output: best.output, Iterations: iterations}, nil
}

// run lays out images scaled by s. If no image survives the minimum size
// at that scale the algorithm is skipped and every image is unused.
func (o *Optimizer) run(images []model.ImageDimensions, s float64) (candidate, error) {
	scaled := make([]model.ImageDimensions, len(images))
	usable := 0
	for i, img := range images {
		scaled[i] = img.Scale(s)
		if scaled[i].Width >= o.Options.MinImageSize && scaled[i].Height >= o.Options.MinImageSize {
			usable++
		}
	}
	if usable == 0 {
		return candidate{scale: s, output: emptyOutput(images)}, nil
	}

	out, err := o.Layout(model.AlgorithmInput{
		Images:       scaled,
		PageWidth:    o.Options.PageWidth,
		PageHeight:   o.Options.PageHeight,
		Gap:          o.Options.Gap,
		MinImageSize: o.Options.MinImageSize,
		Seed:         o.Options.Seed,
	})
	if err != nil {
		return candidate{}, fmt.Errorf("layout at scale %.3f: %w", s, err)
	}
	return candidate{scale: s, output: out, score: score(out, len(images))}, nil
}

func (o *Optimizer) acceptable(c candidate, total int) bool {
	return math.Abs(c.output.Coverage-targetCoverage) <= coverageTolerance &&
		3*len(c.output.Placements) >= 2*total
}

// score rewards coverage, weighted toward layouts that place more images.
func score(out model.AlgorithmOutput, total int) float64 {
	if total == 0 {
		return 0
	}
	return out.Coverage * (0.5 + 0.5*float64(len(out.Placements))/float64(total))
}

// emptyOutput reports every image as unused.
func emptyOutput(images []model.ImageDimensions) model.AlgorithmOutput {
	unused := make([]string, 0, len(images))
	for _, img := range images {
		unused = append(unused, img.ID)
	}
	return model.AlgorithmOutput{
		Placements:     []model.PlacedImage{},
		UnusedImageIDs: unused,
	}
}
