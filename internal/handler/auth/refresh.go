package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/httpx"
)

// RefreshRequest 刷新Token请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // Refresh Token
}

// RefreshResponseData 刷新Token响应数据
type RefreshResponseData struct {
	AccessToken string `json:"access_token"` // 新的Access Token
	ExpiresIn   int    `json:"expires_in"`   // 过期时间（秒）
	TokenType   string `json:"token_type"`   // Token类型：Bearer
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Description  使用Refresh Token换取新的Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "刷新请求"
// @Success      200     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      401     {object}  httpx.Response
// @Router       /api/v1/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Token refreshed", RefreshResponseData{
		AccessToken: resp.AccessToken,
		ExpiresIn:   resp.ExpiresIn,
		TokenType:   resp.TokenType,
	})
}
