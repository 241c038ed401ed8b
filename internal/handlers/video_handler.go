package handlers

import (
	"net/http"

	"audition_backend/internal/auth"
	"audition_backend/internal/middleware"
	"audition_backend/internal/services"
	"audition_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	*BaseHandler
	videoService services.VideoService
}

func NewVideoHandler(base *BaseHandler, videoService services.VideoService) *VideoHandler {
	return &VideoHandler{
		BaseHandler:  base,
		videoService: videoService,
	}
}

func (h *VideoHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	public := r.Group("/videos")
	{
		public.GET("", h.List)
		public.GET("/:id", h.Get)
	}

	videos := r.Group("/videos")
	videos.Use(authMW)
	{
		videos.GET("/my", middleware.Authorize(auth.ResourceVideo, auth.ActionList), h.ListMine)
		videos.POST("", middleware.Authorize(auth.ResourceVideo, auth.ActionCreate), h.Create)
		videos.PUT("/:id", middleware.Authorize(auth.ResourceVideo, auth.ActionUpdate), h.Update)
		videos.DELETE("/:id", middleware.Authorize(auth.ResourceVideo, auth.ActionDelete), h.Delete)
		videos.POST("/:id/like", middleware.Authorize(auth.ResourceVideo, auth.ActionLike), h.Like)
	}
}

func (h *VideoHandler) List(c *gin.Context) {
	var query dto.VideoListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, err := h.videoService.List(c.Request.Context(), h.GetDB(c), &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get засчитывает просмотр
func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.videoService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) ListMine(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	page, err := h.videoService.ListMine(c.Request.Context(), h.GetDB(c), actor, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *VideoHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.CreateVideoRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	video, err := h.videoService.Create(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.UpdateVideoRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	video, err := h.videoService.Update(c.Request.Context(), h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	if err := h.videoService.Delete(c.Request.Context(), h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *VideoHandler) Like(c *gin.Context) {
	video, err := h.videoService.Like(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}
