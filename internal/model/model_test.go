package model

import (
	"math"
	"testing"
)

func TestNewImageDimensionsDerivedFields(t *testing.T) {
	d := NewImageDimensions("x", 6, 4)
	if d.Area != 24 {
		t.Errorf("expected area 24, got %f", d.Area)
	}
	if d.AspectRatio != 1.5 {
		t.Errorf("expected aspect 1.5, got %f", d.AspectRatio)
	}
	if d.NativeWidth != 6 || d.NativeHeight != 4 {
		t.Errorf("expected native 6x4, got %fx%f", d.NativeWidth, d.NativeHeight)
	}
}

func TestImageDimensionsScaleKeepsIdentity(t *testing.T) {
	d := NewImageDimensions("x", 6, 4)
	s := d.Scale(0.5)

	if s.ID != "x" {
		t.Errorf("expected id x, got %s", s.ID)
	}
	if s.Width != 3 || s.Height != 2 {
		t.Errorf("expected 3x2, got %fx%f", s.Width, s.Height)
	}
	if s.Area != 6 {
		t.Errorf("area must follow width*height, got %f", s.Area)
	}
	if s.NativeWidth != 6 {
		t.Errorf("native width must survive scaling, got %f", s.NativeWidth)
	}
	if math.Abs(s.NativeScale(s.Width)-0.5) > 1e-12 {
		t.Errorf("expected native scale 0.5, got %f", s.NativeScale(s.Width))
	}
	// The original is untouched
	if d.Width != 6 {
		t.Errorf("original mutated: width %f", d.Width)
	}
}

func TestToImageDimensionsConvertsAt300DPI(t *testing.T) {
	pool := []PoolImage{
		{ID: "a", WidthPixels: 3000, HeightPixels: 1500},
		{ID: "bad", WidthPixels: 0, HeightPixels: 100},
	}
	dims := ToImageDimensions(pool)
	if len(dims) != 1 {
		t.Fatalf("expected 1 dimension, got %d", len(dims))
	}
	if dims[0].Width != 10 || dims[0].Height != 5 {
		t.Errorf("expected 10x5 inches, got %fx%f", dims[0].Width, dims[0].Height)
	}
}

func TestParseAlgorithm(t *testing.T) {
	a, ok := ParseAlgorithm(" Spiral ")
	if !ok || a != AlgorithmSpiral {
		t.Errorf("expected spiral, got %q ok=%v", a, ok)
	}
	if _, ok := ParseAlgorithm("simulated-annealing"); ok {
		t.Error("expected unknown algorithm to fail")
	}
}

func TestMinScaleClamped(t *testing.T) {
	s := DefaultSettings()
	s.MaxDownscalePercent = 95
	if got := s.MinScale(); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("expected min scale 0.1, got %f", got)
	}
	s.MaxDownscalePercent = -5
	if got := s.MinScale(); got != 1 {
		t.Errorf("expected min scale 1, got %f", got)
	}
}

func TestLookupPaperSize(t *testing.T) {
	p, ok := LookupPaperSize("LETTER", false)
	if !ok {
		t.Fatal("expected letter to exist")
	}
	if p.Width != 8.5 || p.Height != 11 {
		t.Errorf("expected 8.5x11, got %fx%f", p.Width, p.Height)
	}

	p, _ = LookupPaperSize("letter", true)
	if p.Width != 11 || p.Height != 8.5 {
		t.Errorf("expected landscape 11x8.5, got %fx%f", p.Width, p.Height)
	}

	if _, ok := LookupPaperSize("napkin", false); ok {
		t.Error("expected unknown paper to fail")
	}
}

func TestCollageLayoutResultPlacedIDs(t *testing.T) {
	r := CollageLayoutResult{
		Placements: []PlacedImage{{ImageID: "a"}, {ImageID: "b"}},
		Coverage:   0.5,
	}
	ids := r.PlacedIDs()
	if !ids["a"] || !ids["b"] || ids["c"] {
		t.Errorf("unexpected placed ids %v", ids)
	}
	if r.CoveragePercent() != 50 {
		t.Errorf("expected 50%%, got %f", r.CoveragePercent())
	}
}
