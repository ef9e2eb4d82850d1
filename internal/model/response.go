package model

// FieldError 字段级校验错误（校验失败时随响应返回）
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination 列表响应的分页元信息
// totalPages = ceil(total / limit)，hasNext = page < totalPages
type Pagination struct {
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination 由总数和分页参数计算分页元信息
func NewPagination(page, limit, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	totalPages := (total + limit - 1) / limit

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
