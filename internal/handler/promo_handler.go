package handler

import (
	"errors"
	"net/http"

	"go-booking-core/internal/model"
	"go-booking-core/internal/service"
	apperrors "go-booking-core/pkg/app_errors"
	"go-booking-core/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PromoHandler struct {
	service service.PromoService
}

func NewPromoHandler(service service.PromoService) *PromoHandler {
	return &PromoHandler{service: service}
}

// RegisterRoutes 折扣碼管理，全部限 organizer
func (h *PromoHandler) RegisterRoutes(r gin.IRouter, organizerOnly gin.HandlerFunc) {
	r.GET("promos", organizerOnly, h.List)
	r.GET("promos/:id", organizerOnly, h.Get)
	r.POST("promos", organizerOnly, h.Create)
	r.PUT("promos/:id", organizerOnly, h.Update)
	r.PUT("promos/:id/deactivate", organizerOnly, h.Deactivate)
}

func (h *PromoHandler) List(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}

	promos, err := h.service.ListByOrganizer(c, organizerID)
	if err != nil {
		h.handlePromoError(c, err, "List")
		return
	}

	c.JSON(http.StatusOK, promos)
}

func (h *PromoHandler) Get(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	promo, err := h.service.GetByID(c, id, organizerID)
	if err != nil {
		h.handlePromoError(c, err, "Get")
		return
	}

	c.JSON(http.StatusOK, promo)
}

func (h *PromoHandler) Create(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}

	var req model.CreatePromoCodeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	promo, err := h.service.Create(c, organizerID, req)
	if err != nil {
		h.handlePromoError(c, err, "Create")
		return
	}

	c.JSON(http.StatusCreated, promo)
}

func (h *PromoHandler) Update(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	var params model.UpdatePromoCodeParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	promo, err := h.service.Update(c, id, organizerID, params)
	if err != nil {
		h.handlePromoError(c, err, "Update")
		return
	}

	c.JSON(http.StatusOK, promo)
}

func (h *PromoHandler) Deactivate(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	promo, err := h.service.Deactivate(c, id, organizerID)
	if err != nil {
		h.handlePromoError(c, err, "Deactivate")
		return
	}

	c.JSON(http.StatusOK, promo)
}

// Helper functions

func (h *PromoHandler) handlePromoError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"reason": "invalid_input", "error": "Invalid request"})
	case errors.Is(err, apperrors.ErrPromoNotFound):
		log.Warn("Promo code not found")
		c.JSON(http.StatusNotFound, gin.H{"reason": "promo_not_found", "error": "Promo code not found"})
	default:
		log.Error("Internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
