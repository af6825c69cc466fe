package model

import (
	"sort"
	"strings"
)

// PaperSize is a named physical page size in inches (portrait).
type PaperSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Built-in paper sizes
var PaperSizes = []PaperSize{
	{Name: "letter", Width: 8.5, Height: 11},
	{Name: "legal", Width: 8.5, Height: 14},
	{Name: "tabloid", Width: 11, Height: 17},
	{Name: "a3", Width: 11.69, Height: 16.54},
	{Name: "a4", Width: 8.27, Height: 11.69},
	{Name: "a5", Width: 5.83, Height: 8.27},
	{Name: "4x6", Width: 4, Height: 6},
	{Name: "5x7", Width: 5, Height: 7},
	{Name: "8x10", Width: 8, Height: 10},
	{Name: "11x14", Width: 11, Height: 14},
	{Name: "12x12", Width: 12, Height: 12},
	{Name: "16x20", Width: 16, Height: 20},
}

// LookupPaperSize returns the page size for name, swapped when landscape.
func LookupPaperSize(name string, landscape bool) (PaperSize, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range PaperSizes {
		if p.Name == n {
			if landscape {
				p.Width, p.Height = p.Height, p.Width
			}
			return p, true
		}
	}
	return PaperSize{}, false
}

// GetPaperSizeNames returns all paper size names, sorted.
func GetPaperSizeNames() []string {
	names := make([]string, 0, len(PaperSizes))
	for _, p := range PaperSizes {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
