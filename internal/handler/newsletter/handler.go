package newsletter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// Handler 邮件订阅处理器
type Handler struct {
	newsletterService *service.NewsletterService
}

// NewHandler 创建邮件订阅处理器
func NewHandler(newsletterService *service.NewsletterService) *Handler {
	return &Handler{
		newsletterService: newsletterService,
	}
}

// SubscribeRequest 订阅请求
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"` // 邮箱
	Name  string `json:"name" binding:"omitempty,max=100"`
}

// Subscribe 订阅newsletter
// @Summary      订阅newsletter
// @Description  重复订阅幂等成功
// @Tags         订阅
// @Accept       json
// @Produce      json
// @Param        request  body      SubscribeRequest  true  "订阅请求"
// @Success      201     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Router       /api/v1/newsletter/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.newsletterService.Subscribe(c.Request.Context(), req.Email, req.Name); err != nil {
		httpx.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.OK(c, http.StatusCreated, "You're subscribed! Welcome aboard.", nil)
}

// UnsubscribeRequest 退订请求
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"` // 邮箱
}

// Unsubscribe 退订newsletter
// @Summary      退订newsletter
// @Description  未知邮箱同样返回成功
// @Tags         订阅
// @Accept       json
// @Produce      json
// @Param        request  body      UnsubscribeRequest  true  "退订请求"
// @Success      200     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Router       /api/v1/newsletter/unsubscribe [post]
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.newsletterService.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		httpx.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.OK(c, http.StatusOK, "You've been unsubscribed.", nil)
}
