package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// List 公开文章列表
// @Summary      文章列表
// @Description  已发布文章，支持分类筛选、关键词搜索、排序和分页
// @Tags         文章
// @Produce      json
// @Param        page      query  int     false  "页码，默认1"
// @Param        limit     query  int     false  "每页数量，默认10，最大50"
// @Param        category  query  string  false  "分类筛选"
// @Param        search    query  string  false  "关键词（匹配标题/摘要/正文）"
// @Param        sort      query  string  false  "排序：latest/popular/oldest，默认latest"
// @Success      200  {object}  httpx.Response
// @Router       /api/v1/blogs [get]
func (h *Handler) List(c *gin.Context) {
	blogs, pagination, err := h.blogService.List(c.Request.Context(), service.ListInput{
		PublishedOnly: true,
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		Sort:          c.Query("sort"),
		Page:          queryInt64(c, "page", 1),
		Limit:         queryInt64(c, "limit", 10),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "OK", ListResponseData{
		Blogs:      blogs,
		Pagination: pagination,
	})
}

// ListMine 当前作者的文章列表（含草稿）
// @Summary      我的文章
// @Tags         文章
// @Produce      json
// @Param        page   query  int  false  "页码，默认1"
// @Param        limit  query  int  false  "每页数量，默认10，最大50"
// @Success      200  {object}  httpx.Response
// @Failure      401  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/blogs/mine [get]
func (h *Handler) ListMine(c *gin.Context) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	blogs, pagination, err := h.blogService.List(c.Request.Context(), service.ListInput{
		AuthorID: actor.ID,
		Sort:     c.Query("sort"),
		Page:     queryInt64(c, "page", 1),
		Limit:    queryInt64(c, "limit", 10),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "OK", ListResponseData{
		Blogs:      blogs,
		Pagination: pagination,
	})
}
