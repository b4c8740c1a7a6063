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

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r gin.IRouter, organizerOnly gin.HandlerFunc) {
	r.GET("bookings", h.ListMine)
	r.GET("bookings/:id", h.Get)
	r.PUT("bookings/:id/cancel", h.Cancel)
	r.PUT("bookings/:id/confirm", h.ConfirmPayment)
	r.PUT("bookings/:id/rsvp", h.UpdateRSVP)
	r.GET("events/:id/bookings", organizerOnly, h.ListByEvent)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	purchaserID, ok := CurrentUser(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListByPurchaser(c, purchaserID)
	if err != nil {
		h.handleBookingError(c, err, "ListMine")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByEvent(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	bookings, err := h.service.ListByEvent(c, id, organizerID)
	if err != nil {
		h.handleBookingError(c, err, "ListByEvent")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	purchaserID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetByID(c, id, purchaserID)
	if err != nil {
		h.handleBookingError(c, err, "Get")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	purchaserID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.Cancel(c, id, purchaserID)
	if err != nil {
		h.handleBookingError(c, err, "Cancel")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	if _, ok := CurrentUser(c); !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.ConfirmPayment(c, id)
	if err != nil {
		h.handleBookingError(c, err, "ConfirmPayment")
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) UpdateRSVP(c *gin.Context) {
	purchaserID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateRSVPRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	booking, err := h.service.UpdateRSVP(c, id, purchaserID, req.RSVPStatus)
	if err != nil {
		h.handleBookingError(c, err, "UpdateRSVP")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Helper functions

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"reason": "invalid_input", "error": "Invalid request"})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{"reason": "booking_not_found", "error": "Booking not found"})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"reason": "event_not_found", "error": "Event not found"})
	case errors.Is(err, apperrors.ErrNotAuthorized):
		log.Warn("Not authorized")
		c.JSON(http.StatusForbidden, gin.H{"reason": "not_authorized", "error": "Not your event"})
	case errors.Is(err, apperrors.ErrInvalidBookingStatus):
		log.Warn("Invalid booking status transition")
		c.JSON(http.StatusConflict, gin.H{"reason": "invalid_status", "error": "Booking status does not allow this operation"})
	default:
		log.Error("Internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
