package util

import (
	"errors"
	"fmt"
)

// 错误按类别区分，服务层只返回这些类别的包装，边界层统一映射为HTTP响应。
// 校验顺序约定：先 NotFound 再 Forbidden，避免对无权限者暴露资源是否存在的差异。
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("permission denied")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

func NotFoundError(resource string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, resource, id)
}

func ForbiddenError(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}

func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func ConflictError(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}
