package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
)

// StatsResponseData 仪表盘统计数据
type StatsResponseData struct {
	TotalArticles     int64 `json:"total_articles"`
	PublishedArticles int64 `json:"published_articles"`
	TotalViews        int64 `json:"total_views"`
	PendingDoctors    int64 `json:"pending_doctors"`
	NewContacts       int64 `json:"new_contacts"`
}

// Stats 仪表盘统计
// @Summary      仪表盘统计
// @Description  文章总数/已发布数/总浏览量/待审核医生数/未读联系提交数
// @Tags         管理后台
// @Produce      json
// @Success      200  {object}  httpx.Response
// @Failure      403  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	blogStats, err := h.blogService.Stats(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	pendingDoctors, err := h.authService.CountPendingDoctors(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	newContacts, err := h.contactService.CountNew(ctx)
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "OK", StatsResponseData{
		TotalArticles:     blogStats.TotalArticles,
		PublishedArticles: blogStats.PublishedArticles,
		TotalViews:        blogStats.TotalViews,
		PendingDoctors:    pendingDoctors,
		NewContacts:       newContacts,
	})
}
