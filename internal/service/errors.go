package service

import (
	"errors"
	"fmt"

	"blinkfit/internal/model"
)

// 各 service 共用的错误
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("operation not permitted")
)

// ValidationError 字段级校验失败
// Handler 层用 errors.As 取出字段明细放进响应
type ValidationError struct {
	Fields []model.FieldError
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d field errors)", len(e.Fields))
}

// NewValidationError 创建校验错误
func NewValidationError(fields []model.FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
