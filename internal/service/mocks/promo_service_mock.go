package mocks

import (
	"context"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPromoService struct {
	mock.Mock
}

func NewMockPromoService() *MockPromoService {
	return &MockPromoService{}
}

func (m *MockPromoService) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.PromoCode, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PromoCode), args.Error(1)
}

func (m *MockPromoService) GetByID(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*model.PromoCode, error) {
	args := m.Called(ctx, id, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoService) Create(ctx context.Context, organizerID uuid.UUID, req model.CreatePromoCodeRequest) (*model.PromoCode, error) {
	args := m.Called(ctx, organizerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoService) Update(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, params model.UpdatePromoCodeParams) (*model.PromoCode, error) {
	args := m.Called(ctx, id, organizerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoService) Deactivate(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*model.PromoCode, error) {
	args := m.Called(ctx, id, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}
