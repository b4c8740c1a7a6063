package mocks

import (
	"context"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

func NewMockEventService() *MockEventService {
	return &MockEventService{}
}

func (m *MockEventService) List(ctx context.Context) ([]*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventService) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Create(ctx context.Context, organizerID uuid.UUID, req model.CreateEventRequest) (*model.Event, error) {
	args := m.Called(ctx, organizerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Update(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, id, organizerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}
