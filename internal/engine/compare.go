package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/collagepack/internal/model"
)

// ComparisonResult holds the optimizer result and computed statistics for
// one algorithm.
type ComparisonResult struct {
	Algorithm   model.Algorithm
	Result      OptimizeResult
	Score       float64
	PlacedCount int
	UnusedCount int
}

// CoveragePercent returns the coverage of the result as a percentage.
func (r ComparisonResult) CoveragePercent() float64 {
	return r.Result.Output.Coverage * 100.0
}

// CompareAlgorithms runs the optimizer with every algorithm on the same
// images and seed. Runs are concurrent; results come back in the order of
// model.Algorithms.
func CompareAlgorithms(ctx context.Context, images []model.ImageDimensions, opts Options) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, len(model.Algorithms))

	g, ctx := errgroup.WithContext(ctx)
	for i, alg := range model.Algorithms {
		layout, ok := Lookup(alg)
		if !ok {
			return nil, fmt.Errorf("no layout registered for %s", alg)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := New(layout, opts).Optimize(images)
			if err != nil {
				return fmt.Errorf("%s: %w", alg, err)
			}
			results[i] = ComparisonResult{
				Algorithm:   alg,
				Result:      res,
				Score:       score(res.Output, len(images)),
				PlacedCount: len(res.Output.Placements),
				UnusedCount: len(res.Output.UnusedImageIDs),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BestResult returns the comparison with the highest score, the earliest on ties.
func BestResult(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score || (r.Score == best.Score && r.PlacedCount > best.PlacedCount) {
			best = r
		}
	}
	return best, true
}
