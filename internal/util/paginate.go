package util

import "github.com/ruhienterprises/careers-api/internal/response"

// Paginate slices items for a 1-based page. A page or pageSize below 1
// returns all items and a nil Pagination.
func Paginate[T any](items []T, page, pageSize int) ([]T, *response.Pagination) {
	if page < 1 || pageSize < 1 {
		return items, nil
	}
	p, from, to := response.NewPagination(page, pageSize, len(items))
	return items[from:to], p
}
