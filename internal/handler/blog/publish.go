package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
)

// PublishRequest 发布状态变更请求
type PublishRequest struct {
	Published *bool `json:"published" binding:"required"` // true发布，false下线
}

// SetPublished 发布/下线文章
// @Summary      发布或下线文章
// @Description  发布立即生效，published_at只在首次发布时设置
// @Tags         文章
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "文章ID"
// @Param        request  body      PublishRequest  true  "发布状态"
// @Success      200     {object}  httpx.Response
// @Failure      403     {object}  httpx.Response
// @Failure      404     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/blogs/{id}/publish [patch]
func (h *Handler) SetPublished(c *gin.Context) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	b, err := h.blogService.SetPublished(c.Request.Context(), actor, c.Param("id"), *req.Published)
	if err != nil {
		fail(c, err)
		return
	}

	message := "Article published"
	if !b.Published {
		message = "Article unpublished"
	}
	httpx.OK(c, http.StatusOK, message, b)
}
