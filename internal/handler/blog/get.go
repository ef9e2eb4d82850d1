package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
)

// Get 根据slug获取已发布文章
// @Summary      文章详情
// @Description  返回已发布文章，浏览计数+1
// @Tags         文章
// @Produce      json
// @Param        slug  path  string  true  "文章slug"
// @Success      200  {object}  httpx.Response
// @Failure      404  {object}  httpx.Response
// @Router       /api/v1/blogs/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	b, err := h.blogService.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "OK", b)
}
