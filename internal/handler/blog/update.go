package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// UpdateRequest 更新文章请求
// 缺省字段不修改；标题变化会重新派生slug
type UpdateRequest struct {
	Title           *string   `json:"title"`
	Excerpt         *string   `json:"excerpt"`
	Content         *string   `json:"content"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags"`
	FeaturedImage   *string   `json:"featured_image"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
}

// Update 更新文章
// @Summary      更新文章
// @Description  医生只能更新自己的文章，管理员可以更新任意文章
// @Tags         文章
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "文章ID"
// @Param        request  body      UpdateRequest  true  "更新请求"
// @Success      200     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      403     {object}  httpx.Response
// @Failure      404     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/blogs/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	b, err := h.blogService.Update(c.Request.Context(), actor, c.Param("id"), service.UpdateBlogInput{
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Category:        req.Category,
		Tags:            req.Tags,
		FeaturedImage:   req.FeaturedImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Article updated", b)
}
