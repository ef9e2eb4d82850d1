package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
)

// Delete 删除文章
// @Summary      删除文章
// @Description  医生只能删除自己的文章，管理员可以删除任意文章
// @Tags         文章
// @Produce      json
// @Param        id  path  string  true  "文章ID"
// @Success      200  {object}  httpx.Response
// @Failure      403  {object}  httpx.Response
// @Failure      404  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/blogs/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Article deleted", nil)
}
