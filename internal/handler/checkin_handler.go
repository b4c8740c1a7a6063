package handler

import (
	"errors"
	"net/http"
	"time"

	"go-booking-core/internal/model"
	"go-booking-core/internal/service"
	apperrors "go-booking-core/pkg/app_errors"
	"go-booking-core/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckInHandler struct {
	service service.CheckInService
}

func NewCheckInHandler(service service.CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

// RegisterRoutes 驗票相關路由；Scan 和驗票紀錄限 organizer
func (h *CheckInHandler) RegisterRoutes(r gin.IRouter, organizerOnly gin.HandlerFunc) {
	r.GET("bookings/:id/ticket", h.TicketPayload)
	r.POST("checkin/scan", organizerOnly, h.Scan)
	r.GET("events/:id/checkins", organizerOnly, h.ListByEvent)
}

func (h *CheckInHandler) Scan(c *gin.Context) {
	scannerID, ok := CurrentUser(c)
	if !ok {
		return
	}

	var req model.ScanRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Scan(c, scannerID, req)
	if err != nil {
		h.handleScanError(c, err, result)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "checked_in",
		"booking": result.Booking,
	})
}

func (h *CheckInHandler) TicketPayload(c *gin.Context) {
	purchaserID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	payload, err := h.service.TicketPayload(c, id, purchaserID)
	if err != nil {
		h.handleScanError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payload": payload})
}

func (h *CheckInHandler) ListByEvent(c *gin.Context) {
	organizerID, ok := CurrentUser(c)
	if !ok {
		return
	}
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}

	records, err := h.service.ListByEvent(c, id, organizerID)
	if err != nil {
		h.handleScanError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Helper functions

// handleScanError 門口的操作員要能分辨「已入場（幾點）」「不是這場」「票已取消」，
// 每種拒絕都帶 reason code，already_checked_in 另外帶原始時間戳
func (h *CheckInHandler) handleScanError(c *gin.Context, err error, result *model.ScanResult) {
	log := logger.WithComponent("handler").With(zap.String("operation", "Scan"), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrDuplicateScan):
		// 去抖動窗口內的重複讀取，合併掉，不當錯誤
		c.JSON(http.StatusAccepted, gin.H{"reason": "duplicate_scan"})
	case errors.Is(err, apperrors.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"reason": "invalid_payload", "error": "Malformed scan payload"})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{"reason": "booking_not_found", "error": "Booking not found"})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"reason": "booking_not_found", "error": "Booking not found"})
	case errors.Is(err, apperrors.ErrNotAuthorized):
		log.Warn("Scanner not authorized")
		c.JSON(http.StatusForbidden, gin.H{"reason": "not_authorized", "error": "Not your event"})
	case errors.Is(err, apperrors.ErrWrongEvent):
		c.JSON(http.StatusConflict, gin.H{"reason": "wrong_event", "error": "Ticket belongs to a different event"})
	case errors.Is(err, apperrors.ErrBookingCancelled):
		c.JSON(http.StatusConflict, gin.H{"reason": "booking_cancelled", "error": "Booking is cancelled"})
	case errors.Is(err, apperrors.ErrBookingNotConfirmed):
		c.JSON(http.StatusConflict, gin.H{"reason": "booking_not_confirmed", "error": "Booking is not confirmed"})
	case errors.Is(err, apperrors.ErrAlreadyCheckedIn):
		resp := gin.H{"reason": "already_checked_in", "error": "Booking already checked in"}
		if result != nil && !result.CheckedInAt.IsZero() {
			resp["checked_in_at"] = result.CheckedInAt.UTC().Format(time.RFC3339)
		}
		c.JSON(http.StatusConflict, resp)
	default:
		log.Error("Internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
