package query

// PageRef points at an adjacent result page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev descriptors; either is omitted when no such
// page exists.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate derives the next/prev descriptors for a page of a filtered set of
// total rows. Next exists iff page*limit < total, prev iff page > 1.
func Paginate(page int, limit int, total int64) Pagination {
	pagination := Pagination{}
	if int64(page)*int64(limit) < total {
		pagination.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		pagination.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return pagination
}
