package export

import (
	"context"
	"fmt"

	"github.com/piwi3910/collagepack/internal/collage"
	"github.com/piwi3910/collagepack/internal/model"
)

// PDFRenderer paints a collage into a PDF file. Pool images whose files
// are JPEG, PNG or GIF are embedded into their placement rects; others are
// drawn as labelled boxes.
type PDFRenderer struct {
	Path       string
	DrawImages bool
}

func NewPDFRenderer(path string) *PDFRenderer {
	return &PDFRenderer{Path: path, DrawImages: true}
}

// Render implements collage.Renderer. It emits one progress event per
// placement and stops early if ctx is cancelled.
func (r *PDFRenderer) Render(ctx context.Context, job collage.RenderJob, progress model.ProgressFunc) error {
	opts := previewOptions{
		pool:       poolByID(job.Pool),
		drawImages: r.DrawImages,
		onPlaced: func(i int, p model.PlacedImage) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if progress != nil {
				progress(model.ProgressEvent{
					Step:    collage.StepLayoutDone + 1 + i,
					Total:   job.TotalSteps,
					Message: fmt.Sprintf("Rendered %s", p.ImageID),
				})
			}
			return nil
		},
	}

	pdf, err := buildPreview(job.Result, job.Page, opts)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(r.Path); err != nil {
		return fmt.Errorf("writing %s: %w", r.Path, err)
	}
	return nil
}
