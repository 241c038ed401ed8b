package handlers

import (
	"net/http"

	"audition_backend/internal/auth"
	"audition_backend/internal/middleware"
	"audition_backend/internal/services"
	"audition_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	*BaseHandler
	offerService services.OfferService
}

func NewOfferHandler(base *BaseHandler, offerService services.OfferService) *OfferHandler {
	return &OfferHandler{
		BaseHandler:  base,
		offerService: offerService,
	}
}

func (h *OfferHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	offers := r.Group("/offers")
	offers.Use(authMW)
	{
		list := middleware.Authorize(auth.ResourceOffer, auth.ActionList)
		respond := middleware.Authorize(auth.ResourceOffer, auth.ActionRespond)

		offers.GET("/users/:userId", list, h.ListForUser)
		offers.GET("/users/:userId/pending-count", list, h.PendingCount)
		offers.GET("/business/:businessId", list, h.ListForBusiness)
		offers.GET("/:id", middleware.Authorize(auth.ResourceOffer, auth.ActionRead), h.Get)
		offers.POST("", middleware.Authorize(auth.ResourceOffer, auth.ActionCreate), h.Create)
		offers.PUT("/:id/respond", respond, h.Respond)
		offers.PUT("/:id/read", respond, h.MarkAsRead)
	}
}

func (h *OfferHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.CreateOfferRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	offer, err := h.offerService.Create(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	offer, err := h.offerService.Get(c.Request.Context(), h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) ListForUser(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	page, err := h.offerService.ListForUser(c.Request.Context(), h.GetDB(c), actor, c.Param("userId"), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *OfferHandler) PendingCount(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	count, err := h.offerService.PendingCount(c.Request.Context(), h.GetDB(c), actor, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *OfferHandler) ListForBusiness(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	page, err := h.offerService.ListForBusiness(c.Request.Context(), h.GetDB(c), actor, c.Param("businessId"), ParsePagination(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *OfferHandler) Respond(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req dto.RespondOfferRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	offer, err := h.offerService.Respond(c.Request.Context(), h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) MarkAsRead(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	offer, err := h.offerService.MarkAsRead(c.Request.Context(), h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
