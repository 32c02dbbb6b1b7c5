package pagination

import "math"

// CalculateOffset calculates the store offset based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Examples:
//   - Page 1, Limit 10 -> Offset 0
//   - Page 2, Limit 10 -> Offset 10
//   - Page 3, Limit 50 -> Offset 100
//
// The result saturates at math.MaxInt instead of wrapping, so an absurd page
// still lands past the last row.
func CalculateOffset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// Uses ceiling division to ensure all items are included.
//
// Special cases:
//   - If total is 0, returns 1 (always at least 1 page)
//   - Otherwise, returns ceil(total / limit)
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 1 // Always at least 1 page
	}
	// Ceiling division: (total + limit - 1) / limit
	return int((total + int64(limit) - 1) / int64(limit))
}
