package handlers

import (
	"fmt"
	"strconv"

	"audition_backend/internal/auth"
	"audition_backend/internal/logger"
	"audition_backend/internal/middleware"
	"audition_backend/internal/repositories"
	"audition_backend/internal/validator"
	"audition_backend/pkg/apperrors"
	"audition_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB извлекает *gorm.DB, который положил DBMiddleware
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	val, ok := c.Get(contextkeys.DBKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", contextkeys.DBKey)
		panic("DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB",
			"key", contextkeys.DBKey,
			"type", fmt.Sprintf("%T", val),
		)
		panic("db in context has incorrect type")
	}
	return db
}

// BindAndValidate разбирает JSON-тело и проверяет его правилами validator
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWarn(ctx, "Failed to bind JSON body", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWarn(ctx, "Failed to bind query params", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.CtxWarn(c.Request.Context(), "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	} else {
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode < 500 {
		logger.CtxWarn(c.Request.Context(), "Service error",
			"code", appErr.Code,
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
	}
	apperrors.HandleError(c, err)
}

// Actor возвращает аутентифицированного пользователя. Без токена пишет 401.
func (h *BaseHandler) Actor(c *gin.Context) (auth.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: actor not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrMissingToken)
		return auth.Actor{}, false
	}
	return actor, true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParsePagination читает page и size (page_size - синоним).
// Значения по умолчанию и предел размера применяет repositories.NewPagination.
func ParsePagination(c *gin.Context) repositories.Pagination {
	page := ParseQueryInt(c, "page", 1)
	size := ParseQueryInt(c, "size", 0)
	if size == 0 {
		size = ParseQueryInt(c, "page_size", 0)
	}
	return repositories.NewPagination(page, size)
}
