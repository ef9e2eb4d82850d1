package id

import (
	"github.com/google/uuid"
)

// New 生成实体主键与请求ID使用的UUID（string格式）
func New() string {
	return uuid.New().String()
}
