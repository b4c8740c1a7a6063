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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupEventRouter(mockService *mocks.MockEventService, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewEventHandler(mockService)
	api := router.Group("/api/v1", stubAuth(userID, role))
	h.RegisterRoutes(api, middleware.RequireOrganizer())

	return router
}

func TestEventHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService()
		router := setupEventRouter(mockService, uuid.New(), middleware.RolePurchaser)

		events := []*model.Event{{ID: uuid.New(), Title: "Go Conference"}}
		mockService.On("List", mock.Anything).Return(events, nil).Once()

		req := createJSONHTTPRequest("GET", "/api/v1/events", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Go Conference")
	})
}

func TestEventHandler_Create(t *testing.T) {
	organizerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockEventService()
		router := setupEventRouter(mockService, organizerID, middleware.RoleOrganizer)

		mockService.On("Create", mock.Anything, organizerID, mock.Anything).Return(&model.Event{
			ID:    uuid.New(),
			Title: "Go Conference",
		}, nil).Once()

		body := model.CreateEventRequest{
			Title:    "Go Conference",
			Price:    decimal.NewFromInt(100),
			Capacity: 500,
			StartsAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		}
		req := createJSONHTTPRequest("POST", "/api/v1/events", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed - purchaser 不能開活動", func(t *testing.T) {
		mockService := mocks.NewMockEventService()
		router := setupEventRouter(mockService, organizerID, middleware.RolePurchaser)

		req := createJSONHTTPRequest("POST", "/api/v1/events", model.CreateEventRequest{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventHandler_Update(t *testing.T) {
	organizerID := uuid.New()

	t.Run("Failed - ErrNotAuthorized", func(t *testing.T) {
		mockService := mocks.NewMockEventService()
		router := setupEventRouter(mockService, organizerID, middleware.RoleOrganizer)

		id := uuid.New()
		mockService.On("Update", mock.Anything, id, organizerID, mock.Anything).Return(nil, apperrors.ErrNotAuthorized).Once()

		req := createJSONHTTPRequest("PUT", "/api/v1/events/"+id.String(), model.UpdateEventParams{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"reason":"not_authorized"`)
	})

	t.Run("Failed - ErrEventNotFound", func(t *testing.T) {
		mockService := mocks.NewMockEventService()
		router := setupEventRouter(mockService, organizerID, middleware.RoleOrganizer)

		id := uuid.New()
		mockService.On("Update", mock.Anything, id, organizerID, mock.Anything).Return(nil, apperrors.ErrEventNotFound).Once()

		req := createJSONHTTPRequest("PUT", "/api/v1/events/"+id.String(), model.UpdateEventParams{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
