package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/collagepack/internal/collage"
	"github.com/piwi3910/collagepack/internal/export"
	"github.com/piwi3910/collagepack/internal/project"
)

// newRenderCmd creates the render command, which re-exports a layout saved
// with 'layout --out'.
func newRenderCmd() *cobra.Command {
	var opts outputOpts

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Export a saved layout",
		Long: `Export a layout saved with 'layout --out'.

The layout file carries the pool it was made from, so the PDF embeds the
original image files when they are still on disk. Use --no-images for an
outline preview.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF preview")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", false, "outline placements in the PDF instead of embedding image files")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write a PDF sheet of QR labels")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "write DXF trim guides")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write an XLSX placement sheet")
	cmd.MarkFlagsOneRequired("pdf", "labels", "dxf", "xlsx")
	return cmd
}

func runRender(ctx context.Context, w io.Writer, input string, opts *outputOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := project.LoadLayout(input)
	if err != nil {
		return err
	}
	logger.Info("Loaded layout", "placements", len(doc.Result.Placements), "pool", len(doc.Pool), "seed", doc.Result.Seed)

	if opts.pdf != "" {
		if err := renderPDF(ctx, opts, doc); err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		printFile(w, opts.pdf)
	}

	return writeOutputs(w, &outputOpts{labels: opts.labels, dxf: opts.dxf, xlsx: opts.xlsx},
		doc.Settings, doc.Page, doc.Result, doc.Pool)
}

func renderPDF(ctx context.Context, opts *outputOpts, doc project.LayoutFile) error {
	if opts.noImages || len(doc.Pool) == 0 {
		return export.ExportPDF(opts.pdf, doc.Result, doc.Page)
	}
	job := collage.RenderJob{
		Result:     doc.Result,
		Page:       doc.Page,
		Settings:   doc.Settings,
		Pool:       doc.Pool,
		TotalSteps: collage.StepLayoutDone + len(doc.Result.Placements),
	}
	return export.NewPDFRenderer(opts.pdf).Render(ctx, job, nil)
}
