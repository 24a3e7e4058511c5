package util

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrIncorrectPassword     = errors.New("current password is incorrect")
	ErrModuleNotFound        = errors.New("module not found")
	ErrPathNotFound          = errors.New("learning path not found")
	ErrInvestmentNotFound    = errors.New("investment not found")
	ErrEmptyQuiz             = errors.New("module has no quiz questions")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ValidationError 请求参数校验失败，携带字段级别的错误信息
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
