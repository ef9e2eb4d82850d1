package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/model"
	"blinkfit/internal/model/blog"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// ListResponseData 列表响应数据
type ListResponseData struct {
	Blogs      []*blog.Blog     `json:"blogs"`
	Pagination model.Pagination `json:"pagination"`
}

// fail 将service错误映射为HTTP响应（blog包共用）
func fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.FailValidation(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		httpx.Fail(c, http.StatusNotFound, "Article not found")
	case errors.Is(err, service.ErrForbidden):
		httpx.Fail(c, http.StatusForbidden, "You do not have permission to manage this article")
	case errors.Is(err, service.ErrSlugTaken):
		httpx.Fail(c, http.StatusConflict, "An article with this slug already exists")
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
