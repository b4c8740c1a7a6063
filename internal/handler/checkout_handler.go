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

type CheckoutHandler struct {
	service service.SettlementService
}

func NewCheckoutHandler(service service.SettlementService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("checkout", h.Checkout)
	r.POST("promos/preview", h.PreviewPromo)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	purchaserID, ok := CurrentUser(c)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Checkout(c, purchaserID, req)
	if err != nil {
		h.handleCheckoutError(c, err, "Checkout")
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		// 冪等重試：回放先前的結果
		status = http.StatusOK
	}
	c.JSON(status, result)
}

func (h *CheckoutHandler) PreviewPromo(c *gin.Context) {
	var req model.ValidatePromoRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.PreviewPromo(c, req)
	if err != nil {
		h.handleCheckoutError(c, err, "PreviewPromo")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Helper functions

// handleCheckoutError 每種拒絕都帶可區分的 reason code，前台才能顯示對的訊息
func (h *CheckoutHandler) handleCheckoutError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"reason": "invalid_input", "error": "Invalid checkout request"})
	case errors.Is(err, apperrors.ErrMissingAttendeeInfo):
		c.JSON(http.StatusBadRequest, gin.H{"reason": "missing_attendee_info", "error": "Attendee name and email are required"})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"reason": "event_not_found", "error": "Event not found"})
	case errors.Is(err, apperrors.ErrPromoNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_promo", "detail": "not_found", "error": "Promo code not found"})
	case errors.Is(err, apperrors.ErrPromoInactive):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_promo", "detail": "inactive", "error": "Promo code is inactive"})
	case errors.Is(err, apperrors.ErrPromoExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_promo", "detail": "expired", "error": "Promo code is expired"})
	case errors.Is(err, apperrors.ErrPromoBelowMinimum):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "invalid_promo", "detail": "below_minimum", "error": "Cart subtotal below promo minimum"})
	case errors.Is(err, apperrors.ErrPromoUsageExhausted):
		log.Warn("Promo usage exhausted")
		c.JSON(http.StatusConflict, gin.H{"reason": "invalid_promo", "detail": "usage_exhausted", "error": "Promo code usage exhausted"})
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		log.Warn("Capacity exceeded")
		c.JSON(http.StatusConflict, gin.H{"reason": "capacity_exceeded", "error": "Event capacity exceeded"})
	case errors.Is(err, apperrors.ErrPaymentNotFound):
		log.Warn("Payment capture not found")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"reason": "payment_not_found", "error": "Payment capture not found"})
	case errors.Is(err, apperrors.ErrPaymentMismatch):
		log.Warn("Payment amount mismatch")
		c.JSON(http.StatusConflict, gin.H{"reason": "payment_mismatch", "error": "Captured amount does not match expected total"})
	default:
		log.Error("Internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
