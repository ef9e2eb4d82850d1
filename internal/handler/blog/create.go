package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// CreateRequest 创建文章请求
type CreateRequest struct {
	Title           string   `json:"title" binding:"required"`   // 标题
	Excerpt         string   `json:"excerpt" binding:"required"` // 摘要
	Content         string   `json:"content" binding:"required"` // 正文
	Author          string   `json:"author"`                     // 署名（仅管理员可指定）
	Category        string   `json:"category" binding:"required"`
	Tags            []string `json:"tags"`
	FeaturedImage   string   `json:"featured_image"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Published       *bool    `json:"published"` // 缺省为已发布
}

// Create 创建文章
// @Summary      创建文章
// @Description  医生创建的文章归属本人；管理员可以平台署名发文
// @Tags         文章
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "创建请求"
// @Success      201     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      401     {object}  httpx.Response
// @Failure      409     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/blogs [post]
func (h *Handler) Create(c *gin.Context) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	b, err := h.blogService.Create(c.Request.Context(), actor, service.CreateBlogInput{
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		Author:          req.Author,
		Category:        req.Category,
		Tags:            req.Tags,
		FeaturedImage:   req.FeaturedImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Published:       req.Published,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusCreated, "Article created", b)
}
