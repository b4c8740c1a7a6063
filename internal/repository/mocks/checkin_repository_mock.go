package mocks

import (
	"context"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockCheckInRepository struct {
	mock.Mock
}

func NewMockCheckInRepository() *MockCheckInRepository {
	return &MockCheckInRepository{}
}

func (m *MockCheckInRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.CheckInRecord, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CheckInRecord), args.Error(1)
}

func (m *MockCheckInRepository) Create(ctx context.Context, tx pgx.Tx, record *model.CheckInRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}
