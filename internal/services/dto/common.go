package dto

// ==============================
// 📄 PAGINATION
// ==============================

type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func NewListResponse[T any](items []T, total int64, page, pageSize int) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	if page <= 0 {
		page = 1
	}
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &ListResponse[T]{Items: items, Total: total, Page: page, Pages: pages}
}

// CreatedResponse is returned by intake endpoints on success.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
