package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
)

// LogoutRequest 退出登录请求
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 要吊销的Refresh Token
}

// Logout 退出登录
// @Summary      退出登录
// @Description  吊销Refresh Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      LogoutRequest  true  "退出请求"
// @Success      200     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Logged out", nil)
}
