package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/httpx"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // 邮箱
	Password string `json:"password" binding:"required"`    // 密码
}

// LoginResponseData 登录响应数据
type LoginResponseData struct {
	AccessToken  string   `json:"access_token"`  // Access Token
	RefreshToken string   `json:"refresh_token"` // Refresh Token
	ExpiresIn    int      `json:"expires_in"`    // 过期时间（秒）
	TokenType    string   `json:"token_type"`    // Token类型：Bearer
	User         UserInfo `json:"user"`          // 用户信息
}

// Login 医生登录
// @Summary      医生登录
// @Description  内容作者登录，角色参与查找：同一邮箱只匹配doctor账号
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "登录请求"
// @Success      200     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      401     {object}  httpx.Response
// @Router       /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	h.login(c, auth.RoleDoctor)
}

// AdminLogin 管理员登录
// @Summary      管理员登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "登录请求"
// @Success      200     {object}  httpx.Response
// @Failure      400     {object}  httpx.Response
// @Failure      401     {object}  httpx.Response
// @Router       /api/v1/auth/admin/login [post]
func (h *Handler) AdminLogin(c *gin.Context) {
	h.login(c, auth.RoleAdmin)
}

func (h *Handler) login(c *gin.Context, role auth.Role) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		fail(c, err)
		return
	}

	httpx.OK(c, http.StatusOK, "Login successful", LoginResponseData{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
		User:         toUserInfo(resp.User),
	})
}
