package util

import (
	"errors"
	"net/http"

	"wealth_builder_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// ValidationFailed 返回字段级别的校验错误
func ValidationFailed(c *gin.Context, verr *ValidationError) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  verr.Fields,
	})
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// RespondError 将业务错误映射为 HTTP 响应，未知错误统一记录日志并返回 500
func RespondError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr)
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, ErrModuleNotFound):
		NotFound(c, "Module not found")
	case errors.Is(err, ErrPathNotFound):
		NotFound(c, "Learning path not found")
	case errors.Is(err, ErrUserNotFound):
		NotFound(c, "User not found")
	case errors.Is(err, ErrInvestmentNotFound):
		NotFound(c, "Investment not found")
	case errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, "User already exists")
	case errors.Is(err, ErrInvalidCredentials):
		BadRequest(c, "Invalid credentials")
	case errors.Is(err, ErrIncorrectPassword):
		BadRequest(c, "Current password is incorrect")
	case errors.Is(err, ErrEmptyQuiz):
		BadRequest(c, "Module has no quiz questions")
	case errors.Is(err, ErrDependencyUnavailable):
		logger.Log.Error("Dependency unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		LogInternalError(c, err)
	}
}
