package middleware

import (
	"errors"
	"strings"

	"audition_backend/internal/auth"
	"audition_backend/internal/logger"
	"audition_backend/pkg/apperrors"
	"audition_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				logger.CtxDebug(c.Request.Context(), "Expired token")
			}
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		actor := auth.ActorFromClaims(claims)

		// Сохраняем пользователя в контекст
		c.Set(contextkeys.ActorKey, actor)
		c.Set(contextkeys.UserIDKey, actor.ID)
		c.Set(contextkeys.UserTypeKey, actor.Type)
		c.Request = c.Request.WithContext(logger.WithActor(c.Request.Context(), actor.ID, string(actor.Type)))
		c.Next()
	}
}

// Authorize проверяет таблицу прав роль × ресурс × действие.
// Проверку владельца строки выполняет сервис.
func Authorize(resource auth.Resource, action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		if !auth.Can(actor.Type, resource, action) {
			logger.CtxWarn(c.Request.Context(), "Access denied",
				"user_type", actor.Type,
				"resource", resource,
				"action", action,
			)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}

		c.Next()
	}
}

// GetActor извлекает аутентифицированного пользователя из контекста
func GetActor(c *gin.Context) (auth.Actor, bool) {
	value, exists := c.Get(contextkeys.ActorKey)
	if !exists {
		return auth.Actor{}, false
	}
	actor, ok := value.(auth.Actor)
	return actor, ok
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	actor, ok := GetActor(c)
	if !ok {
		return ""
	}
	return actor.ID
}
