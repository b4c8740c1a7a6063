package mocks

import (
	"context"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockPromoRepository struct {
	mock.Mock
}

func NewMockPromoRepository() *MockPromoRepository {
	return &MockPromoRepository{}
}

func (m *MockPromoRepository) Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	args := m.Called(ctx, promo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.PromoCode, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) Update(ctx context.Context, id uuid.UUID, params model.UpdatePromoCodeParams) (*model.PromoCode, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *MockPromoRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}
