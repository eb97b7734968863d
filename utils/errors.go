package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes shared by the REST surface and the socket gateway. Socket
// handlers emit them inside "error" events, REST handlers map them to HTTP
// statuses.
const (
	CodeBadParams    = "EMO-400"
	CodeUnauthorized = "EMO-401"
	CodeForbidden    = "EMO-403"
	CodeNotFound     = "EMO-404"
	CodeConflict     = "EMO-409"
	CodeInternal     = "EMO-500"
)

// AppError is the uniform tagged error sent to clients.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func BadParams(message string) *AppError {
	return &AppError{Code: CodeBadParams, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func Internal(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message}
}

// AsAppError normalizes any error into an AppError, defaulting to EMO-500 so
// internal details never leak with a misleading code.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err.Error())
}

// HTTPStatus maps an EMO-xxx code to its HTTP status.
func HTTPStatus(code string) int {
	switch code {
	case CodeBadParams:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithAppError writes the uniform error body and stops the handler chain.
func AbortWithAppError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	c.AbortWithStatusJSON(HTTPStatus(appErr.Code), gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorHandler converts errors attached to the gin context into the uniform
// EMO-xxx JSON body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := AsAppError(c.Errors.Last().Err)
		c.JSON(HTTPStatus(appErr.Code), gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		})
	}
}
