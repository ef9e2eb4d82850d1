package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/model"
	"blinkfit/internal/model/contact"
	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// ListContactsResponseData 联系提交列表响应数据
type ListContactsResponseData struct {
	Contacts   []*contact.Contact `json:"contacts"`
	Pagination model.Pagination   `json:"pagination"`
}

// ListContacts 联系提交列表
// @Summary      联系提交列表
// @Description  按状态筛选，按创建时间倒序分页
// @Tags         管理后台
// @Produce      json
// @Param        status  query  string  false  "状态筛选：new/read/replied/closed"
// @Param        page    query  int     false  "页码，默认1"
// @Param        limit   query  int     false  "每页数量，默认10"
// @Success      200  {object}  httpx.Response
// @Failure      403  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/contacts [get]
func (h *Handler) ListContacts(c *gin.Context) {
	contacts, pagination, err := h.contactService.List(
		c.Request.Context(),
		c.Query("status"),
		queryInt64(c, "page", 1),
		queryInt64(c, "limit", 10),
	)
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "OK", ListContactsResponseData{
		Contacts:   contacts,
		Pagination: pagination,
	})
}

// UpdateContactRequest 联系提交状态更新请求
type UpdateContactRequest struct {
	Status    string `json:"status" binding:"required,oneof=new read replied closed"`
	Priority  string `json:"priority" binding:"omitempty,oneof=low normal high"`
	ReplyNote string `json:"reply_note" binding:"omitempty,max=2000"`
}

// UpdateContact 更新联系提交的处理状态
// @Summary      更新联系提交状态
// @Description  状态只能前进：new/read/replied/closed
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "提交ID"
// @Param        request  body      UpdateContactRequest  true  "状态更新"
// @Success      200     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      404     {object}  httpx.Response
// @Failure      409     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/admin/contacts/{id} [patch]
func (h *Handler) UpdateContact(c *gin.Context) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.contactService.UpdateStatus(c.Request.Context(), actor.ID, c.Param("id"), service.UpdateStatusInput{
		Status:    req.Status,
		Priority:  req.Priority,
		ReplyNote: req.ReplyNote,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Contact updated", updated)
}
