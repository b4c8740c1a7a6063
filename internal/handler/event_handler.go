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

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r gin.IRouter, organizerOnly gin.HandlerFunc) {
	r.GET("events", h.List)
	r.GET("events/:id", h.Get)
	r.POST("events", organizerOnly, h.Create)
	r.PUT("events/:id", organizerOnly, h.Update)
	r.GET("organizer/events", organizerOnly, h.ListMine)
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleEventError(c, err, "List")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) ListMine(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}

	events, err := h.service.ListByOrganizer(c, organizerID)
	if err != nil {
		h.handleEventError(c, err, "ListMine")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	event, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleEventError(c, err, "Get")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, organizerID, req)
	if err != nil {
		h.handleEventError(c, err, "Create")
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	var params model.UpdateEventParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	event, err := h.service.Update(c, id, organizerID, params)
	if err != nil {
		h.handleEventError(c, err, "Update")
		return
	}

	c.JSON(http.StatusOK, event)
}

// Helper functions

func (h *EventHandler) handleEventError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"reason": "invalid_input", "error": "Invalid request"})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"reason": "event_not_found", "error": "Event not found"})
	case errors.Is(err, apperrors.ErrNotAuthorized):
		log.Warn("Not authorized")
		c.JSON(http.StatusForbidden, gin.H{"reason": "not_authorized", "error": "Not your event"})
	default:
		log.Error("Internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
