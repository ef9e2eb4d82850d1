package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
)

// GetMe 获取当前登录用户
// @Summary      当前用户
// @Description  返回当前登录用户信息
// @Tags         认证
// @Produce      json
// @Success      200  {object}  httpx.Response
// @Failure      401  {object}  httpx.Response
// @Security     BearerAuth
// @Router       /api/v1/auth/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := ctxutil.GetActor(c.Request.Context())
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	httpx.OK(c, http.StatusOK, "OK", toUserInfo(actor))
}
