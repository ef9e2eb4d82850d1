package httpx

import (
	"github.com/gin-gonic/gin"

	"blinkfit/internal/model"
)

// Response 统一响应信封（所有API共用）
type Response struct {
	Success bool               `json:"success"`          // 是否成功
	Message string             `json:"message"`          // 响应消息
	Data    any                `json:"data,omitempty"`   // 响应数据（可选）
	Errors  []model.FieldError `json:"errors,omitempty"` // 字段级错误（可选）
}

// OK 写成功响应
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail 写失败响应
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// FailValidation 写字段级校验失败响应
func FailValidation(c *gin.Context, status int, message string, errs []model.FieldError) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}
