package apperrors

import (
	"net/http"
	"time"

	"audition_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартное тело ответа об ошибке
type ErrorResponse struct {
	Status    int         `json:"status"`
	Error     string      `json:"error"`
	Code      ErrorCode   `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Path      string      `json:"path,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewErrorResponse собирает тело ответа. Для 5xx детали и причина
// никогда не попадают к клиенту.
func NewErrorResponse(appErr *AppError, path string) ErrorResponse {
	resp := ErrorResponse{
		Status:    appErr.HTTPCode,
		Error:     http.StatusText(appErr.HTTPCode),
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		Path:      path,
		Timestamp: time.Now().UTC(),
	}
	if appErr.HTTPCode >= http.StatusInternalServerError {
		resp.Code = CodeInternalError
		resp.Message = "Internal server error"
		resp.Details = nil
		if appErr.Code == CodeBadGateway || appErr.Code == CodeExternalServiceError {
			resp.Code = appErr.Code
			resp.Message = appErr.Message
		}
	}
	return resp
}

// HandleError пишет ошибку в gin.Context. Неизвестные ошибки превращаются в 500.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode == 0 {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxWithError(c.Request.Context(), "server error", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, NewErrorResponse(appErr, c.Request.URL.Path))
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// RecoveryHandler превращает панику в общий 500 без утечки деталей
func RecoveryHandler(c *gin.Context, recovered any) {
	logger.CtxError(c.Request.Context(), "panic recovered",
		"panic", recovered,
		"path", c.Request.URL.Path,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		NewErrorResponse(InternalError(nil), c.Request.URL.Path))
}
