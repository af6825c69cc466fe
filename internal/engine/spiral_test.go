package engine

import (
	"testing"

	"github.com/piwi3910/collagepack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corners(placements []model.PlacedImage) [][2]float64 {
	out := make([][2]float64, 0, len(placements))
	for _, p := range placements {
		out = append(out, [2]float64{p.Rect.X, p.Rect.Y})
	}
	return out
}

func TestLayoutSpiral_SingleImageInCorner(t *testing.T) {
	in := model.AlgorithmInput{Images: squares(1, 4), PageWidth: 10, PageHeight: 10, Seed: 3}

	out, err := LayoutSpiral(in)
	require.NoError(t, err)
	require.Len(t, out.Placements, 1)
	assert.Equal(t, model.CollageRect{X: 0, Y: 0, Width: 4, Height: 4}, out.Placements[0].Rect)
	assert.InDelta(t, 1.0, out.Placements[0].ScaleFactor, 1e-9)
	assert.InDelta(t, 0.16, out.Coverage, 1e-9)
}

func TestLayoutSpiral_TopEdgeThenRight(t *testing.T) {
	in := model.AlgorithmInput{Images: squares(4, 2), PageWidth: 6, PageHeight: 6, Seed: 12}

	out, err := LayoutSpiral(in)
	require.NoError(t, err)
	assertValidLayout(t, in, out)
	assert.ElementsMatch(t, [][2]float64{{0, 0}, {2, 0}, {4, 0}, {4, 2}}, corners(out.Placements))
}

func TestLayoutSpiral_GrowsDownscaledImageToNative(t *testing.T) {
	img := model.NewImageDimensions("photo", 8, 8).Scale(0.5)
	in := model.AlgorithmInput{Images: []model.ImageDimensions{img}, PageWidth: 10, PageHeight: 10, Seed: 1}

	out, err := LayoutSpiral(in)
	require.NoError(t, err)
	require.Len(t, out.Placements, 1)

	p := out.Placements[0]
	assert.InDelta(t, 0.0, p.Rect.X, 1e-9)
	assert.InDelta(t, 0.0, p.Rect.Y, 1e-9)
	assert.InDelta(t, 8.0, p.Rect.Width, 1e-9)
	assert.InDelta(t, 8.0, p.Rect.Height, 1e-9)
	assert.InDelta(t, 1.0, p.ScaleFactor, 1e-9)
}

func TestLayoutSpiral_NeverExceedsNative(t *testing.T) {
	images := randomImages(21, 12)
	for i := range images {
		images[i] = images[i].Scale(0.6)
	}
	in := model.AlgorithmInput{Images: images, PageWidth: 8.5, PageHeight: 11, Gap: 0.1, MinImageSize: 0.2, Seed: 21}

	out, err := LayoutSpiral(in)
	require.NoError(t, err)
	assertValidLayout(t, in, out)
	for _, p := range out.Placements {
		assert.LessOrEqual(t, p.ScaleFactor, 1.0+1e-9, "image %s", p.ImageID)
	}
}

func TestTuckToEdges_SlidesToNearestEdge(t *testing.T) {
	placements := []model.PlacedImage{
		{ImageID: "a", Rect: model.CollageRect{X: 1, Y: 4, Width: 2, Height: 2}},
		{ImageID: "b", Rect: model.CollageRect{X: 6, Y: 7, Width: 2, Height: 2}},
	}

	tuckToEdges(placements, 10, 10, 0.5)

	assert.Equal(t, model.CollageRect{X: 0, Y: 4, Width: 2, Height: 2}, placements[0].Rect)
	assert.Equal(t, model.CollageRect{X: 6, Y: 8, Width: 2, Height: 2}, placements[1].Rect)
}

func TestTuckToEdges_StopsAtNeighbour(t *testing.T) {
	placements := []model.PlacedImage{
		{ImageID: "wall", Rect: model.CollageRect{X: 0, Y: 0, Width: 1, Height: 10}},
		{ImageID: "a", Rect: model.CollageRect{X: 3, Y: 4, Width: 2, Height: 2}},
	}

	tuckToEdges(placements, 10, 10, 0.5)

	assert.Equal(t, 1.5, placements[1].Rect.X)
}

func TestPushOutward_AwayFromCentre(t *testing.T) {
	placements := []model.PlacedImage{
		{ImageID: "a", Rect: model.CollageRect{X: 6, Y: 4.5, Width: 2, Height: 1}},
	}

	pushOutward(placements, 10, 10, 0)

	assert.Equal(t, 8.0, placements[0].Rect.X)
	assert.Equal(t, 4.5, placements[0].Rect.Y)
}

func TestGrowIntoSpace_BlockedByNeighbour(t *testing.T) {
	placements := []model.PlacedImage{
		{ImageID: "a", Rect: model.CollageRect{X: 0, Y: 0, Width: 2, Height: 2}, ScaleFactor: 0.5},
		{ImageID: "b", Rect: model.CollageRect{X: 3, Y: 0, Width: 2, Height: 2}, ScaleFactor: 1},
	}

	growIntoSpace(placements, 10, 10, 0)

	a := placements[0]
	assert.InDelta(t, 3.0, a.Rect.Width, 1e-9)
	assert.InDelta(t, 3.0, a.Rect.Height, 1e-9)
	assert.InDelta(t, 0.75, a.ScaleFactor, 1e-9)
	assert.Equal(t, model.CollageRect{X: 3, Y: 0, Width: 2, Height: 2}, placements[1].Rect)
}

func TestFillSide_StretchesBandToEdge(t *testing.T) {
	img := model.NewImageDimensions("a", 8, 8).Scale(0.5)

	band, rest, b := fillSide(sideTop, []model.ImageDimensions{img}, bounds{0, 0, 10, 10}, 0)
	require.Len(t, band, 1)
	assert.Empty(t, rest)
	assert.Equal(t, model.CollageRect{X: 0, Y: 0, Width: 6, Height: 6}, band[0].Rect, "capped at 1.5x")
	assert.InDelta(t, 0.75, band[0].ScaleFactor, 1e-9)
	assert.InDelta(t, 6.0, b.top, 1e-9)
}

func TestFillSide_NativeSizeCapsStretch(t *testing.T) {
	images := []model.ImageDimensions{
		model.NewImageDimensions("a", 8, 4).Scale(0.5),
		model.NewImageDimensions("b", 8, 4).Scale(0.5),
	}

	band, rest, b := fillSide(sideTop, images, bounds{0, 0, 9, 10}, 1)
	require.Len(t, band, 2)
	assert.Empty(t, rest)
	assert.Equal(t, model.CollageRect{X: 0, Y: 0, Width: 4, Height: 2}, band[0].Rect)
	assert.Equal(t, model.CollageRect{X: 5, Y: 0, Width: 4, Height: 2}, band[1].Rect)
	assert.InDelta(t, 3.0, b.top, 1e-9, "band plus gap")
}

func TestFillSide_DepthCapsStretch(t *testing.T) {
	img := model.NewImageDimensions("tall", 20, 40).Scale(0.1)

	band, _, b := fillSide(sideTop, []model.ImageDimensions{img}, bounds{0, 0, 10, 5}, 0)
	require.Len(t, band, 1)
	assert.InDelta(t, 2.5, band[0].Rect.Width, 1e-9)
	assert.InDelta(t, 5.0, band[0].Rect.Height, 1e-9)
	assert.InDelta(t, 5.0, b.top, 1e-9)
}

func TestFillSide_RightEdgeRunsDown(t *testing.T) {
	images := []model.ImageDimensions{
		model.NewImageDimensions("a", 2, 2),
		model.NewImageDimensions("b", 2, 2),
	}

	band, _, b := fillSide(sideRight, images, bounds{0, 2, 10, 10}, 0)
	require.Len(t, band, 2)
	assert.Equal(t, model.CollageRect{X: 8, Y: 2, Width: 2, Height: 2}, band[0].Rect, "native size caps stretch")
	assert.Equal(t, model.CollageRect{X: 8, Y: 4, Width: 2, Height: 2}, band[1].Rect)
	assert.InDelta(t, 8.0, b.right, 1e-9)
}
