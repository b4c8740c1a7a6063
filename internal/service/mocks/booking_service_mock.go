package mocks

import (
	"context"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func NewMockBookingService() *MockBookingService {
	return &MockBookingService{}
}

func (m *MockBookingService) ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]*model.Booking, error) {
	args := m.Called(ctx, purchaserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingService) ListByEvent(ctx context.Context, eventID uuid.UUID, organizerID uuid.UUID) ([]*model.Booking, error) {
	args := m.Called(ctx, eventID, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingService) GetByID(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id, purchaserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id, purchaserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) UpdateRSVP(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID, status model.RSVPStatus) (*model.Booking, error) {
	args := m.Called(ctx, id, purchaserID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}
