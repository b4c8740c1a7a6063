package mocks

import (
	"context"
	"time"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{}
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]*model.Booking, error) {
	args := m.Called(ctx, purchaserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Booking, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByPaymentReference(ctx context.Context, reference string) ([]*model.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateRSVP(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID, status model.RSVPStatus) (*model.Booking, error) {
	args := m.Called(ctx, id, purchaserID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) CreateBatch(ctx context.Context, tx pgx.Tx, bookings []*model.Booking) error {
	args := m.Called(ctx, tx, bookings)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByPaymentReferenceTx(ctx context.Context, tx pgx.Tx, reference string) ([]*model.Booking, error) {
	args := m.Called(ctx, tx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) AcquireCheckoutLock(ctx context.Context, tx pgx.Tx, reference string) error {
	args := m.Called(ctx, tx, reference)
	return args.Error(0)
}

func (m *MockBookingRepository) CountActiveByEvent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusIf(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to model.BookingStatus) (*model.Booking, error) {
	args := m.Called(ctx, tx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingRepository) CheckIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (bool, error) {
	args := m.Called(ctx, tx, id, at)
	return args.Bool(0), args.Error(1)
}
