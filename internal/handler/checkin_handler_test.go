package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-booking-core/internal/middleware"
	"go-booking-core/internal/model"
	"go-booking-core/internal/service/mocks"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCheckInRouter(mockService *mocks.MockCheckInService, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewCheckInHandler(mockService)
	api := router.Group("/api/v1", stubAuth(userID, role))
	h.RegisterRoutes(api, middleware.RequireOrganizer())

	return router
}

func scanRequestBody() model.ScanRequest {
	return model.ScanRequest{
		Payload:   `{"bookingId":"x"}`,
		SessionID: "gate-1",
	}
}

func TestCheckInHandler_Scan(t *testing.T) {
	organizerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		mockService.On("Scan", mock.Anything, organizerID, mock.Anything).Return(&model.ScanResult{
			Booking:     &model.Booking{ID: uuid.New(), Status: model.BookingStatusCheckedIn, CheckedInAt: &at},
			CheckedInAt: at,
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/checkin/scan", scanRequestBody())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"result":"checked_in"`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrAlreadyCheckedIn 帶原始時間戳", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		at := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
		mockService.On("Scan", mock.Anything, organizerID, mock.Anything).Return(&model.ScanResult{
			Booking:     &model.Booking{ID: uuid.New(), Status: model.BookingStatusCheckedIn, CheckedInAt: &at},
			CheckedInAt: at,
		}, apperrors.ErrAlreadyCheckedIn).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/checkin/scan", scanRequestBody())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"reason":"already_checked_in"`)
		assert.Contains(t, w.Body.String(), `"checked_in_at":"2026-09-01T09:30:00Z"`)
	})

	t.Run("Success - duplicate_scan 回 202", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		mockService.On("Scan", mock.Anything, organizerID, mock.Anything).Return(nil, apperrors.ErrDuplicateScan).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/checkin/scan", scanRequestBody())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"reason":"duplicate_scan"`)
	})

	t.Run("Failed - ErrInvalidPayload", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		mockService.On("Scan", mock.Anything, organizerID, mock.Anything).Return(nil, apperrors.ErrInvalidPayload).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/checkin/scan", scanRequestBody())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"reason":"invalid_payload"`)
	})

	t.Run("Failed - ErrWrongEvent", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		mockService.On("Scan", mock.Anything, organizerID, mock.Anything).Return(nil, apperrors.ErrWrongEvent).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/checkin/scan", scanRequestBody())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"reason":"wrong_event"`)
	})

	t.Run("Failed - ErrBookingCancelled", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		mockService.On("Scan", mock.Anything, organizerID, mock.Anything).Return(nil, apperrors.ErrBookingCancelled).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/checkin/scan", scanRequestBody())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"reason":"booking_cancelled"`)
	})

	t.Run("Failed - purchaser 不能掃票", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RolePurchaser)

		req := createJSONHTTPRequest("POST", "/api/v1/checkin/scan", scanRequestBody())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCheckInHandler_TicketPayload(t *testing.T) {
	purchaserID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, purchaserID, middleware.RolePurchaser)

		bookingID := uuid.New()
		mockService.On("TicketPayload", mock.Anything, bookingID, purchaserID).Return(`{"bookingId":"..."}`, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/bookings/"+bookingID.String()+"/ticket", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"payload"`)
	})

	t.Run("Failed - 別人的票回 404", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, purchaserID, middleware.RolePurchaser)

		bookingID := uuid.New()
		mockService.On("TicketPayload", mock.Anything, bookingID, purchaserID).Return("", apperrors.ErrBookingNotFound).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/bookings/"+bookingID.String()+"/ticket", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - id 不是 UUID", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, purchaserID, middleware.RolePurchaser)

		req := createJSONHTTPRequest("GET", "/api/v1/bookings/not-a-uuid/ticket", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckInHandler_ListByEvent(t *testing.T) {
	organizerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		eventID := uuid.New()
		records := []*model.CheckInRecord{
			{ID: uuid.New(), EventID: eventID, CheckedInAt: time.Now().UTC()},
		}
		mockService.On("ListByEvent", mock.Anything, eventID, organizerID).Return(records, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/events/"+eventID.String()+"/checkins", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - 不是活動的 organizer", func(t *testing.T) {
		mockService := mocks.NewMockCheckInService()
		router := setupCheckInRouter(mockService, organizerID, middleware.RoleOrganizer)

		eventID := uuid.New()
		mockService.On("ListByEvent", mock.Anything, eventID, organizerID).Return(nil, apperrors.ErrNotAuthorized).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/events/"+eventID.String()+"/checkins", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
