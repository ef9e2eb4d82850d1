package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
)

// LikeResponseData 点赞响应数据
type LikeResponseData struct {
	Slug  string `json:"slug"`
	Likes int64  `json:"likes"`
}

// Like 给已发布文章点赞
// @Summary      点赞文章
// @Tags         文章
// @Produce      json
// @Param        slug  path  string  true  "文章slug"
// @Success      200  {object}  httpx.Response
// @Failure      404  {object}  httpx.Response
// @Router       /api/v1/blogs/{slug}/like [post]
func (h *Handler) Like(c *gin.Context) {
	b, err := h.blogService.Like(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Thanks for the like", LikeResponseData{
		Slug:  b.Slug,
		Likes: b.Likes,
	})
}
