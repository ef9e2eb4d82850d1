package policy

import (
	"blinkfit/internal/model/auth"
	"blinkfit/internal/model/blog"
)

// CanManage 判断用户能否修改/删除一篇文章
// 规则是扁平的：admin 可以管理一切；doctor 只能管理自己拥有的文章
// 没有共享所有权，也没有角色继承
func CanManage(actor *auth.User, article *blog.Blog) bool {
	if actor == nil || article == nil {
		return false
	}
	if actor.Role == auth.RoleAdmin {
		return true
	}
	return actor.Role == auth.RoleDoctor && article.AuthorID != "" && actor.ID == article.AuthorID
}

// HasRole 集合成员判断，用于按端点声明允许的角色
func HasRole(actor *auth.User, allowed ...auth.Role) bool {
	if actor == nil {
		return false
	}
	for _, role := range allowed {
		if actor.Role == role {
			return true
		}
	}
	return false
}
