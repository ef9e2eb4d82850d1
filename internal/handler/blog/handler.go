package blog

import (
	"blinkfit/internal/service"
)

// Handler 文章处理器
type Handler struct {
	blogService *service.BlogService
}

// NewHandler 创建文章处理器
func NewHandler(blogService *service.BlogService) *Handler {
	return &Handler{
		blogService: blogService,
	}
}
