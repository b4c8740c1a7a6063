package mocks

import (
	"context"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSettlementService struct {
	mock.Mock
}

func NewMockSettlementService() *MockSettlementService {
	return &MockSettlementService{}
}

func (m *MockSettlementService) Checkout(ctx context.Context, purchaserID uuid.UUID, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	args := m.Called(ctx, purchaserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResult), args.Error(1)
}

func (m *MockSettlementService) PreviewPromo(ctx context.Context, req model.ValidatePromoRequest) (*model.ValidatePromoResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidatePromoResponse), args.Error(1)
}
