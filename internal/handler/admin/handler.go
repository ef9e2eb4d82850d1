package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// Handler 管理后台处理器
type Handler struct {
	authService    *service.AuthService
	blogService    *service.BlogService
	contactService *service.ContactService
}

// NewHandler 创建管理后台处理器
func NewHandler(
	authService *service.AuthService,
	blogService *service.BlogService,
	contactService *service.ContactService,
) *Handler {
	return &Handler{
		authService:    authService,
		blogService:    blogService,
		contactService: contactService,
	}
}

// fail 将service错误映射为HTTP响应（admin包共用）
func fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.FailValidation(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		httpx.Fail(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrNotDoctor):
		httpx.Fail(c, http.StatusBadRequest, "User is not a doctor account")
	case errors.Is(err, service.ErrInvalidTransition):
		httpx.Fail(c, http.StatusConflict, "Contact status can only move forward")
	default:
		httpx.Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// queryInt64 解析整型查询参数，非法值回落到默认值
func queryInt64(c *gin.Context, key string, def int64) int64 {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
