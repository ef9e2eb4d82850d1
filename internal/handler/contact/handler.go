package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// Handler 联系表单处理器
type Handler struct {
	contactService *service.ContactService
}

// NewHandler 创建联系表单处理器
func NewHandler(contactService *service.ContactService) *Handler {
	return &Handler{
		contactService: contactService,
	}
}

// SubmitRequest 表单提交请求
type SubmitRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`       // 姓名
	Email   string `json:"email" binding:"required,email"`              // 邮箱
	Subject string `json:"subject" binding:"required,max=200"`          // 主题
	Message string `json:"message" binding:"required,min=10,max=5000"`  // 内容
	Type    string `json:"type" binding:"omitempty,oneof=general support feedback partnership"` // 类型
}

// Submit 提交联系表单
// @Summary      提交联系表单
// @Description  每个IP在15分钟窗口内最多提交3次
// @Tags         联系
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitRequest  true  "提交内容"
// @Success      201     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      429     {object}  httpx.Response
// @Router       /api/v1/contact [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	submission, err := h.contactService.Submit(c.Request.Context(), service.SubmitInput{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Type:      req.Type,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			httpx.FailValidation(c, http.StatusBadRequest, "Validation failed", verr.Fields)
			return
		}
		httpx.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.OK(c, http.StatusCreated, "Thank you for reaching out, we'll get back to you soon.", gin.H{
		"id": submission.ID,
	})
}
