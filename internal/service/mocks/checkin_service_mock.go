package mocks

import (
	"context"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCheckInService struct {
	mock.Mock
}

func NewMockCheckInService() *MockCheckInService {
	return &MockCheckInService{}
}

func (m *MockCheckInService) Scan(ctx context.Context, scannerID uuid.UUID, req model.ScanRequest) (*model.ScanResult, error) {
	args := m.Called(ctx, scannerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanResult), args.Error(1)
}

func (m *MockCheckInService) TicketPayload(ctx context.Context, bookingID uuid.UUID, purchaserID uuid.UUID) (string, error) {
	args := m.Called(ctx, bookingID, purchaserID)
	return args.String(0), args.Error(1)
}

func (m *MockCheckInService) ListByEvent(ctx context.Context, eventID uuid.UUID, organizerID uuid.UUID) ([]*model.CheckInRecord, error) {
	args := m.Called(ctx, eventID, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CheckInRecord), args.Error(1)
}
