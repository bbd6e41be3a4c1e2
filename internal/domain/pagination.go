package domain

const (
	// DefaultPageSize — кол-во записей на странице по умолчанию.
	DefaultPageSize = 20
	// MaxPageSize — максимальное кол-во записей на странице.
	MaxPageSize = 100
)

// PageRequest — нормализованные параметры страницы.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest нормализует номер страницы и размер: значения вне
// диапазона прижимаются к границам, а не отклоняются.
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, Size: size}
}

// Offset вернёт смещение для запроса к хранилищу.
func (p PageRequest) Offset() int64 {
	return int64(p.Page-1) * int64(p.Size)
}

// Limit вернёт ограничение выборки.
func (p PageRequest) Limit() int64 {
	return int64(p.Size)
}

// PageInfo — метаданные пагинации.
type PageInfo struct {
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPageInfo считает метаданные по общему числу записей.
func NewPageInfo(total int64, req PageRequest) PageInfo {
	totalPages := (total + int64(req.Size) - 1) / int64(req.Size)
	return PageInfo{
		Total:      total,
		TotalPages: totalPages,
		Page:       req.Page,
		PageSize:   req.Size,
		HasNext:    int64(req.Page) < totalPages,
		HasPrev:    req.Page > 1,
	}
}

// PaginatedResult — страница выдачи с метаданными.
type PaginatedResult[T any] struct {
	Items    []T      `json:"items"`
	PageInfo PageInfo `json:"pagination"`
}
