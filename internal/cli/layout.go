package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/collagepack/internal/collage"
	"github.com/piwi3910/collagepack/internal/export"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/project"
)

// fillTarget is the page fill assumed when estimating pages for unused images.
const fillTarget = 0.85

// outputOpts lists the files a command writes.
type outputOpts struct {
	json     string
	pdf      string
	noImages bool // outline placements in the PDF instead of drawing image files
	labels   string
	dxf      string
	xlsx     string
}

func addOutputFlags(cmd *cobra.Command, o *outputOpts) {
	cmd.Flags().StringVarP(&o.json, "out", "o", "", "write the layout as JSON")
	cmd.Flags().StringVar(&o.pdf, "pdf", "", "write a PDF preview")
	cmd.Flags().BoolVar(&o.noImages, "no-images", false, "outline placements in the PDF instead of embedding image files")
	cmd.Flags().StringVar(&o.labels, "labels", "", "write a PDF sheet of QR labels")
	cmd.Flags().StringVar(&o.dxf, "dxf", "", "write DXF trim guides")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "write an XLSX placement sheet")
}

type layoutOpts struct {
	source     sourceOpts
	settings   settingsOpts
	output     outputOpts
	savePreset string
	saveConfig string
}

// newLayoutCmd creates the layout command.
func newLayoutCmd() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Lay out a pool of images on a page",
		Long: `Lay out a pool of images on one page.

The pool comes from a directory (--dir) or a CSV/Excel manifest (--manifest).
Settings are taken from the app config, then --preset, then --config, then
individual flags. Images that do not fit are listed as unused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.source.stdin = cmd.InOrStdin()
			settings, err := resolveSettings(cmd, &opts.settings)
			if err != nil {
				return err
			}
			return runLayout(cmd.Context(), cmd.OutOrStdout(), settings, &opts)
		},
	}

	addSourceFlags(cmd, &opts.source)
	addSettingsFlags(cmd, &opts.settings)
	addOutputFlags(cmd, &opts.output)
	cmd.Flags().StringVar(&opts.savePreset, "save-preset", "", "save the resolved settings as a named preset")
	cmd.Flags().StringVar(&opts.saveConfig, "save-config", "", "write the resolved settings to a .toml or .json file")

	return cmd
}

func runLayout(ctx context.Context, w io.Writer, settings model.CollageSettings, opts *layoutOpts) error {
	logger := loggerFromContext(ctx)

	pool, _, err := loadPool(ctx, &opts.source)
	if err != nil {
		return err
	}

	var renderer collage.Renderer
	if opts.output.pdf != "" {
		r := export.NewPDFRenderer(opts.output.pdf)
		r.DrawImages = !opts.output.noImages
		renderer = r
	}
	gen := collage.NewGenerator(logger, renderer)

	st := startStage(logger, "layout")
	outcome, err := gen.Generate(ctx, pool, settings, func(ev model.ProgressEvent) {
		logger.Debug(ev.Message, "step", ev.Step, "total", ev.Total)
	})
	if err != nil {
		return err
	}
	st.done("algorithm", settings.Algorithm,
		"placed", len(outcome.Result.Placements),
		"unused", len(outcome.Result.UnusedImageIDs),
		"coverage", fmt.Sprintf("%.1f%%", outcome.Result.CoveragePercent()))

	printSummary(w, outcome)
	if len(outcome.Result.UnusedImageIDs) > 0 {
		printWarning(w, "%d images unused", len(outcome.Result.UnusedImageIDs))
		if isVerbose(ctx) {
			printEstimate(w, pool, outcome.Page, settings.Gap)
		}
	}

	if opts.output.pdf != "" {
		printFile(w, opts.output.pdf)
	}
	if err := writeOutputs(w, &opts.output, settings, outcome.Page, outcome.Result, outcome.Pool); err != nil {
		return err
	}

	if opts.savePreset != "" {
		if err := savePreset(opts.savePreset, settings); err != nil {
			return err
		}
		printSuccess(w, "Saved preset %s", opts.savePreset)
	}
	if opts.saveConfig != "" {
		if err := project.SaveSettings(opts.saveConfig, settings); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		printFile(w, opts.saveConfig)
	}
	return nil
}

// writeOutputs writes every requested file except the rendered PDF.
func writeOutputs(w io.Writer, o *outputOpts, settings model.CollageSettings, page model.PaperSize, result model.CollageLayoutResult, pool []model.PoolImage) error {
	if o.json != "" {
		if err := project.SaveLayout(o.json, settings, page, result, pool); err != nil {
			return err
		}
		printFile(w, o.json)
	}
	if o.labels != "" {
		if err := export.ExportLabels(o.labels, result, pool); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		printFile(w, o.labels)
	}
	if o.dxf != "" {
		if err := export.ExportDXF(o.dxf, result, page); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
		printFile(w, o.dxf)
	}
	if o.xlsx != "" {
		if err := export.ExportXLSX(o.xlsx, result, page); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		printFile(w, o.xlsx)
	}
	return nil
}

func printSummary(w io.Writer, outcome collage.Outcome) {
	r := outcome.Result
	printSuccess(w, "Layout complete")
	printKeyValue(w, "Paper", fmt.Sprintf("%s (%.2f x %.2f in)", outcome.Page.Name, outcome.Page.Width, outcome.Page.Height))
	printKeyValue(w, "Placed", fmt.Sprintf("%d", len(r.Placements)))
	printKeyValue(w, "Unused", fmt.Sprintf("%d", len(r.UnusedImageIDs)))
	printKeyValue(w, "Coverage", fmt.Sprintf("%.1f%%", r.CoveragePercent()))
	printKeyValue(w, "Scale", fmt.Sprintf("%.3f", r.ScaleFactor))
	printKeyValue(w, "Seed", fmt.Sprintf("%d", r.Seed))
}

// printEstimate reports how many pages the whole pool would need at native size.
func printEstimate(w io.Writer, pool []model.PoolImage, page model.PaperSize, gap float64) {
	est := model.EstimatePages(model.ToImageDimensions(pool), page.Width, page.Height, gap, fillTarget)
	printKeyValue(w, "Estimate", fmt.Sprintf("%d pages at native size (%.2f exact, %d oversized)",
		est.PagesNeededMin, est.PagesNeededExact, est.OversizedImages))
}

func savePreset(name string, settings model.CollageSettings) error {
	path := project.DefaultPresetsPath()
	presets, err := project.LoadPresets(path)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	settings.Seed = nil
	presets, err = project.UpsertPreset(presets, model.SettingsPreset{Name: name, Settings: settings})
	if err != nil {
		return err
	}
	return project.SavePresets(path, presets)
}
