package response

// Pagination describes one page of an in-memory list. From and To are
// 1-based item positions; both are 0 for an empty page.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination computes the window for page over total items and returns
// the slice bounds to apply. Pages past the end are empty, however large
// page or pageSize is.
func NewPagination(page, pageSize, total int) (p *Pagination, from, to int) {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	from, to = total, total
	if page <= totalPages {
		from = (page - 1) * pageSize
		to = from + min(pageSize, total-from)
	}
	p = &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int64(totalPages),
		TotalItems: int64(total),
		HasMore:    to < total,
	}
	if from < to {
		p.From, p.To = from+1, to
	}
	return p, from, to
}
