// Package pagination slices ordered result sets into fixed-size pages.
// It is a pure function of its inputs and keeps no state.
package pagination

import "strconv"

// Page is one served slice of an ordered result set. Numbers are 1-indexed.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Paginate serves the requested page of items. A requested value that is
// absent or does not parse as a positive integer falls back to page 1; a
// value past the end clamps to the last page. An empty input still yields
// page 1 of 1.
func Paginate[T any](items []T, pageSize int, requested string) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	number := 1
	if n, err := strconv.Atoi(requested); err == nil && n > 0 {
		number = n
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
