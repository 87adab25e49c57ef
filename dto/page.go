package dto

// PageResponse represents a paginated list response
type PageResponse[T any] struct {
	Results    []T   `json:"results"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPageResponse builds a page, mapping each item with conv
func NewPageResponse[M any, T any](items []M, totalCount int64, page, pageSize int, conv func(*M) T) PageResponse[T] {
	results := make([]T, 0, len(items))
	for i := range items {
		results = append(results, conv(&items[i]))
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return PageResponse[T]{
		Results:    results,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
