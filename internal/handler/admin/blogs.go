package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/model"
	"blinkfit/internal/model/blog"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// ListBlogsResponseData 全量文章列表响应数据
type ListBlogsResponseData struct {
	Blogs      []*blog.Blog     `json:"blogs"`
	Pagination model.Pagination `json:"pagination"`
}

// ListBlogs 全量文章列表（含草稿）
// @Summary      全量文章列表
// @Description  管理端视图，包含未发布的草稿
// @Tags         管理后台
// @Produce      json
// @Param        page      query  int     false  "页码，默认1"
// @Param        limit     query  int     false  "每页数量，默认10"
// @Param        category  query  string  false  "分类筛选"
// @Param        search    query  string  false  "关键词搜索"
// @Param        sort      query  string  false  "排序：latest/popular/oldest"
// @Success      200  {object}  httpx.Response
// @Failure      403  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/blogs [get]
func (h *Handler) ListBlogs(c *gin.Context) {
	blogs, pagination, err := h.blogService.List(c.Request.Context(), service.ListInput{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     queryInt64(c, "page", 1),
		Limit:    queryInt64(c, "limit", 10),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "OK", ListBlogsResponseData{
		Blogs:      blogs,
		Pagination: pagination,
	})
}
