package service

import "errors"

// 서비스 공통 에러 (핸들러에서 HTTP 상태 코드로 변환)
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthorized    = errors.New("permission denied")
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrValidation      = errors.New("invalid input")
)
