package model

import "math"

// PageEstimate holds the result of a page-count calculation for a pool.
type PageEstimate struct {
	TotalImageArea   float64 `json:"total_image_area"`   // Sum of image areas including gap allowance (sq in)
	PageArea         float64 `json:"page_area"`          // Area of one page (sq in)
	FillTarget       float64 `json:"fill_target"`        // Fraction of each page expected to be covered
	PagesNeededExact float64 `json:"pages_needed_exact"` // Exact fractional number of pages
	PagesNeededMin   int     `json:"pages_needed_min"`   // Ceiling of exact
	OversizedImages  int     `json:"oversized_images"`   // Images larger than the page on either side
	Gap              float64 `json:"gap"`                // Gap used in the calculation
}

// EstimatePages computes how many pages of the given size the images would
// need at their current size. Each image is charged its area grown by the gap
// on two sides; pages are assumed to be filled to fillTarget.
func EstimatePages(images []ImageDimensions, pageWidth, pageHeight, gap, fillTarget float64) PageEstimate {
	if fillTarget <= 0 || fillTarget > 1 {
		fillTarget = 1
	}

	var totalArea float64
	oversized := 0
	for _, img := range images {
		if img.Width > pageWidth || img.Height > pageHeight {
			oversized++
		}
		totalArea += (img.Width + gap) * (img.Height + gap)
	}

	pageArea := pageWidth * pageHeight
	if pageArea <= 0 {
		return PageEstimate{
			TotalImageArea:  totalArea,
			FillTarget:      fillTarget,
			OversizedImages: oversized,
			Gap:             gap,
		}
	}

	exact := totalArea / (pageArea * fillTarget)
	return PageEstimate{
		TotalImageArea:   totalArea,
		PageArea:         pageArea,
		FillTarget:       fillTarget,
		PagesNeededExact: exact,
		PagesNeededMin:   int(math.Ceil(exact)),
		OversizedImages:  oversized,
		Gap:              gap,
	}
}
