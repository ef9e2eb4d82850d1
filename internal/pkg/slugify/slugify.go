package slugify

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	multiHyphen  = regexp.MustCompile(`-+`)
)

// Make 从标题生成URL安全的slug
// 规则：小写 -> 去掉除连字符外的非字母数字字符 -> 空白折叠为连字符 ->
// 连续连字符折叠 -> 去掉首尾连字符
// 同一输入永远产出同一结果；全标点的标题会得到空字符串，由调用方拒绝
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValid 检查字符串是否是合法slug
func IsValid(slug string) bool {
	return slug != "" && slug == Make(slug)
}
