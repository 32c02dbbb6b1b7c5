package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Current    int   `json:"current"`    // Current page number (1-based)
	Total      int   `json:"total"`      // Total number of pages, at least 1
	HasNext    bool  `json:"hasNext"`    // Current < Total
	HasPrev    bool  `json:"hasPrev"`    // Current > 1
	TotalItems int64 `json:"totalItems"` // Number of matching items across all pages
}

// NewMetadata builds Metadata for the given page of totalItems.
func NewMetadata(page, limit int, totalItems int64) Metadata {
	totalPages := CalculateTotalPages(totalItems, limit)
	return Metadata{
		Current:    page,
		Total:      totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		TotalItems: totalItems,
	}
}
