package ctxutil

import (
	"context"

	"blinkfit/internal/model/auth"
)

// actorKeyType 使用私有类型避免与其他 context key 冲突
type actorKeyType struct{}

var actorKey = actorKeyType{}

// WithActor 将已认证用户注入到 context 中
// 在认证中间件验证Token并重新加载用户后调用：
//
//	ctx := ctxutil.WithActor(c.Request.Context(), user)
//	c.Request = c.Request.WithContext(ctx)
func WithActor(ctx context.Context, actor *auth.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor 从 context 中解析已认证用户
func GetActor(ctx context.Context) (*auth.User, bool) {
	if ctx == nil {
		return nil, false
	}
	actor, ok := ctx.Value(actorKey).(*auth.User)
	if !ok || actor == nil {
		return nil, false
	}
	return actor, true
}
