package models

import "math"

// PageMeta is the pagination block returned alongside every feed page.
type PageMeta struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPageMeta builds pagination meta for the given effective page.
// totalPages = ceil(totalItems / pageSize).
func NewPageMeta(page, pageSize, totalItems int) PageMeta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	return PageMeta{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    pageSize,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// ClampPage forces page into [1, totalPages], or 1 when there are no pages.
// A filter change can shrink the result set below the current page; callers
// must clamp and refetch rather than render an empty page.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
