package handlers

import (
	"net/http"

	"audition_backend/internal/auth"
	"audition_backend/internal/middleware"
	"audition_backend/internal/services"
	"audition_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuditionHandler struct {
	*BaseHandler
	auditionService services.AuditionService
}

func NewAuditionHandler(base *BaseHandler, auditionService services.AuditionService) *AuditionHandler {
	return &AuditionHandler{
		BaseHandler:     base,
		auditionService: auditionService,
	}
}

func (h *AuditionHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	public := r.Group("/auditions")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
		public.GET("/business/:businessId", h.ListByBusiness)
	}

	auditions := r.Group("/auditions")
	auditions.Use(authMW)
	{
		auditions.GET("/my", middleware.Authorize(auth.ResourceAudition, auth.ActionList), h.ListMine)
		auditions.POST("", middleware.Authorize(auth.ResourceAudition, auth.ActionCreate), h.Create)
		auditions.PUT("/:id", middleware.Authorize(auth.ResourceAudition, auth.ActionUpdate), h.Update)
		auditions.DELETE("/:id", middleware.Authorize(auth.ResourceAudition, auth.ActionDelete), h.Delete)
	}
}

func (h *AuditionHandler) List(c *gin.Context) {
	var query dto.AuditionListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, err := h.auditionService.List(c.Request.Context(), h.GetDB(c), &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *AuditionHandler) Get(c *gin.Context) {
	audition, err := h.auditionService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, audition)
}

func (h *AuditionHandler) ListByBusiness(c *gin.Context) {
	page, err := h.auditionService.ListByBusiness(c.Request.Context(), h.GetDB(c), c.Param("businessId"), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *AuditionHandler) ListMine(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	page, err := h.auditionService.ListMine(c.Request.Context(), h.GetDB(c), actor, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *AuditionHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.CreateAuditionRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	audition, err := h.auditionService.Create(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, audition)
}

func (h *AuditionHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.UpdateAuditionRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	audition, err := h.auditionService.Update(c.Request.Context(), h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, audition)
}

func (h *AuditionHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	if err := h.auditionService.Delete(c.Request.Context(), h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
