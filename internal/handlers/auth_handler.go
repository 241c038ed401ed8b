package handlers

import (
	"net/http"

	"audition_backend/internal/services"
	"audition_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes - public принимает rate limiter от роутера, me требует токен
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc, limiters ...gin.HandlerFunc) {
	public := r.Group("/auth")
	public.Use(limiters...)
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
		public.POST("/social/login", h.SocialLogin)
	}

	r.GET("/auth/me", authMW, h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) SocialLogin(c *gin.Context) {
	var req dto.SocialLoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.authService.SocialLogin(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), h.GetDB(c), actor.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
