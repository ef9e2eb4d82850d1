package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/ctxutil"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/policy"
	"blinkfit/internal/service"
)

// Auth JWT 认证中间件
// 从 Authorization header 中提取 Bearer token，验证后按 token 里的用户ID
// 重新加载账号注入 context：角色以当前库里的为准，不信任签发时的快照
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		// 提取 Token（Bearer {token}）
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpx.Fail(c, http.StatusUnauthorized, "Invalid authorization header")
			c.Abort()
			return
		}

		actor, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			message := "Invalid or expired token"
			if errors.Is(err, service.ErrUserInactive) {
				message = "Account is deactivated"
			}
			httpx.Fail(c, http.StatusUnauthorized, message)
			c.Abort()
			return
		}

		ctx := ctxutil.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles 角色门禁中间件，必须挂在 Auth 之后
func RequireRoles(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ctxutil.GetActor(c.Request.Context())
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		if !policy.HasRole(actor, roles...) {
			httpx.Fail(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
