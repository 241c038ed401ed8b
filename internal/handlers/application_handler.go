package handlers

import (
	"net/http"

	"audition_backend/internal/auth"
	"audition_backend/internal/middleware"
	"audition_backend/internal/models"
	"audition_backend/internal/services"
	"audition_backend/internal/services/dto"
	"audition_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

// Сегменты пути -> раунд отбора
var (
	resultRounds = map[string]models.Round{
		"result1":      models.RoundFirst,
		"result2":      models.RoundSecond,
		"result3":      models.RoundThird,
		"final-result": models.RoundFinal,
	}
	cohortRounds = map[string]models.Round{
		"first-round":  models.RoundFirst,
		"second-round": models.RoundSecond,
		"third-round":  models.RoundThird,
		"final":        models.RoundFinal,
	}
)

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	applications := r.Group("/applications")
	applications.Use(authMW)
	{
		applications.GET("", middleware.Authorize(auth.ResourceApplication, auth.ActionList), h.List)
		applications.GET("/:id", middleware.Authorize(auth.ResourceApplication, auth.ActionRead), h.Get)
		applications.POST("", middleware.Authorize(auth.ResourceApplication, auth.ActionCreate), h.Apply)
		applications.DELETE("/:id", middleware.Authorize(auth.ResourceApplication, auth.ActionDelete), h.Delete)
		applications.PUT("/:id/status", middleware.Authorize(auth.ResourceApplication, auth.ActionUpdate), h.UpdateStatus)

		screening := middleware.Authorize(auth.ResourceScreening, auth.ActionUpdate)
		for segment, round := range resultRounds {
			applications.PUT("/:id/"+segment, screening, h.UpdateResult(round))
		}

		cohorts := middleware.Authorize(auth.ResourceScreening, auth.ActionList)
		for segment, round := range cohortRounds {
			applications.GET("/auditions/:auditionId/results/"+segment, cohorts, h.Cohort(round))
		}
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

// List требует auditionId или userId
func (h *ApplicationHandler) List(c *gin.Context) {
	var query dto.ApplicationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page, err := h.applicationService.List(c.Request.Context(), h.GetDB(c), &query, ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	application, err := h.applicationService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

// UpdateStatus принимает статус из query (?status=) или из JSON-тела
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	status := models.ApplicationStatus(c.Query("status"))
	if status == "" {
		var req dto.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.HandleError(c, apperrors.ValidationError(map[string]string{"status": "This field is required"}))
			return
		}
		status = req.Status
	}

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), h.GetDB(c), actor, c.Param("id"), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) UpdateResult(round models.Round) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := h.Actor(c)
		if !ok {
			return
		}
		var req dto.UpdateResultRequest
		if !h.BindAndValidate(c, &req) {
			return
		}

		application, err := h.applicationService.UpdateResult(c.Request.Context(), h.GetDB(c), actor, c.Param("id"), round, &req)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, application)
	}
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Cohort - заявки с PASS в раунде
func (h *ApplicationHandler) Cohort(round models.Round) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := h.applicationService.Cohort(c.Request.Context(), h.GetDB(c), c.Param("auditionId"), round, ParsePagination(c))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
