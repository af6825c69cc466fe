package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/collagepack/internal/engine"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/random"
)

type compareOpts struct {
	source   sourceOpts
	settings settingsOpts
}

// newCompareCmd creates the compare command, which runs every algorithm on
// the same pool and seed.
func newCompareCmd() *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare all layout algorithms on a pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.source.stdin = cmd.InOrStdin()
			settings, err := resolveSettings(cmd, &opts.settings)
			if err != nil {
				return err
			}
			return runCompare(cmd.Context(), cmd.OutOrStdout(), settings, &opts)
		},
	}

	addSourceFlags(cmd, &opts.source)
	addSettingsFlags(cmd, &opts.settings)
	return cmd
}

func runCompare(ctx context.Context, w io.Writer, settings model.CollageSettings, opts *compareOpts) error {
	logger := loggerFromContext(ctx)

	pool, _, err := loadPool(ctx, &opts.source)
	if err != nil {
		return err
	}
	page, _ := model.LookupPaperSize(settings.PaperSize, settings.Landscape)

	seed := random.GenerateSeed()
	if settings.Seed != nil {
		seed = *settings.Seed
	}

	st := startStage(logger, "compare")
	results, err := engine.CompareAlgorithms(ctx, model.ToImageDimensions(pool),
		engine.OptionsFromSettings(settings, page.Width, page.Height, seed))
	if err != nil {
		return err
	}
	best, _ := engine.BestResult(results)
	st.done("algorithms", len(results), "best", best.Algorithm, "seed", seed)

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%d images on %s (%.2f x %.2f in), seed %d",
		len(pool), page.Name, page.Width, page.Height, seed)))
	fmt.Fprintln(w, comparisonTable(results))
	return nil
}

// comparisonTable renders results with the best-scoring row highlighted.
func comparisonTable(results []engine.ComparisonResult) string {
	best, _ := engine.BestResult(results)
	highlight := -1
	rows := make([][]string, len(results))
	for i, r := range results {
		if r.Algorithm == best.Algorithm {
			highlight = i
		}
		rows[i] = []string{
			string(r.Algorithm),
			fmt.Sprintf("%.3f", r.Result.Scale),
			fmt.Sprintf("%.1f%%", r.CoveragePercent()),
			fmt.Sprintf("%d", r.PlacedCount),
			fmt.Sprintf("%d", r.UnusedCount),
			fmt.Sprintf("%d", r.Result.Iterations),
			fmt.Sprintf("%.3f", r.Score),
		}
	}
	headers := []string{"Algorithm", "Scale", "Coverage", "Placed", "Unused", "Runs", "Score"}
	return renderTable(headers, rows, highlight)
}
