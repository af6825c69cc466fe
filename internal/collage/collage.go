// Package collage turns a pool of images and a settings bundle into a
// finished collage layout.
//
// The Generator resolves the paper size, converts pixel sizes to inches,
// runs the scale optimizer with the chosen algorithm and reports which pool
// images made it onto the page. Painting the result is left to a Renderer.
//
// # Usage
//
//	gen := collage.NewGenerator(logger, export.NewPDFRenderer("out.pdf"))
//	outcome, err := gen.Generate(ctx, pool, settings, func(ev model.ProgressEvent) {
//	    fmt.Printf("%d/%d %s\n", ev.Step, ev.Total, ev.Message)
//	})
package collage

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/collagepack/internal/engine"
	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/random"
)

// Progress steps emitted by Generate itself. A renderer continues from
// StepLayoutDone+1, one step per placed image.
const (
	StepLayoutStart = 1
	StepLayoutDone  = 2
)

// Renderer paints a finished layout. Cropping, resampling and output
// resolution are the renderer's concern; the layout is final.
type Renderer interface {
	Render(ctx context.Context, job RenderJob, progress model.ProgressFunc) error
}

// RenderJob is everything a Renderer needs to paint one collage.
type RenderJob struct {
	Result     model.CollageLayoutResult
	Pool       []model.PoolImage
	Page       model.PaperSize
	Settings   model.CollageSettings
	TotalSteps int // Total for progress events the renderer emits
}

// Outcome is the result of one Generate call.
type Outcome struct {
	Result     model.CollageLayoutResult
	Pool       []model.PoolImage // Copy of the input pool with Selected set
	Page       model.PaperSize
	Iterations int // Layout runs performed by the optimizer
}

// Generator runs collage requests.
type Generator struct {
	Logger   *log.Logger
	Renderer Renderer // Optional
}

// NewGenerator creates a Generator. A nil logger falls back to log.Default().
func NewGenerator(logger *log.Logger, renderer Renderer) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{Logger: logger, Renderer: renderer}
}

// Generate lays out pool on the page named in settings. Unknown algorithm
// or paper names are errors; images that cannot be placed are not. The
// onProgress callback may be nil. When the Generator has a Renderer the
// result is handed to it before returning.
func (g *Generator) Generate(ctx context.Context, pool []model.PoolImage, settings model.CollageSettings, onProgress model.ProgressFunc) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	layout, ok := engine.Lookup(settings.Algorithm)
	if !ok {
		return Outcome{}, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", settings.Algorithm)
	}
	page, ok := model.LookupPaperSize(settings.PaperSize, settings.Landscape)
	if !ok {
		return Outcome{}, errors.New(errors.ErrCodeInvalidPaperSize, "unknown paper size %q", settings.PaperSize)
	}

	seed := random.GenerateSeed()
	if settings.Seed != nil {
		seed = *settings.Seed
	}

	dims := model.ToImageDimensions(pool)
	total := len(pool) + StepLayoutDone
	emit := func(step int, msg string) {
		if onProgress != nil {
			onProgress(model.ProgressEvent{Step: step, Total: total, Message: msg})
		}
	}

	g.Logger.Debug("computing layout",
		"algorithm", settings.Algorithm,
		"paper", page.Name,
		"page", fmt.Sprintf("%.2fx%.2f", page.Width, page.Height),
		"images", len(dims),
		"seed", seed)
	emit(StepLayoutStart, "Computing layout")
	start := time.Now()

	opts := engine.OptionsFromSettings(settings, page.Width, page.Height, seed)
	res, err := engine.New(layout, opts).Optimize(dims)
	if err != nil {
		return Outcome{}, fmt.Errorf("optimize %s layout: %w", settings.Algorithm, err)
	}

	result := model.CollageLayoutResult{
		Placements:     res.Output.Placements,
		Coverage:       res.Output.Coverage,
		UnusedImageIDs: append(res.Output.UnusedImageIDs, skippedIDs(pool)...),
		ScaleFactor:    res.Scale,
		Seed:           seed,
	}

	placed := result.PlacedIDs()
	marked := make([]model.PoolImage, len(pool))
	for i, p := range pool {
		p.Selected = placed[p.ID]
		marked[i] = p
	}

	emit(StepLayoutDone, fmt.Sprintf("Layout complete: %d of %d images placed", len(result.Placements), len(pool)))
	g.Logger.Info("layout complete",
		"algorithm", settings.Algorithm,
		"placed", len(result.Placements),
		"unused", len(result.UnusedImageIDs),
		"coverage", fmt.Sprintf("%.1f%%", result.CoveragePercent()),
		"scale", fmt.Sprintf("%.3f", result.ScaleFactor),
		"iterations", res.Iterations,
		"elapsed", time.Since(start).Round(time.Millisecond))

	outcome := Outcome{Result: result, Pool: marked, Page: page, Iterations: res.Iterations}
	if g.Renderer == nil {
		return outcome, nil
	}

	job := RenderJob{Result: result, Pool: marked, Page: page, Settings: settings, TotalSteps: total}
	if err := g.Renderer.Render(ctx, job, onProgress); err != nil {
		return outcome, fmt.Errorf("render collage: %w", err)
	}
	return outcome, nil
}

// skippedIDs returns ids of pool images with no usable pixel size. They never
// reach the optimizer but are still reported as unused.
func skippedIDs(pool []model.PoolImage) []string {
	var ids []string
	for _, p := range pool {
		if p.WidthPixels <= 0 || p.HeightPixels <= 0 {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
