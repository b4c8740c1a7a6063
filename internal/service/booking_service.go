package service

import (
	"context"

	"go-booking-core/internal/model"
	"go-booking-core/internal/repository"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingService interface {
	ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]*model.Booking, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, organizerID uuid.UUID) ([]*model.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID) (*model.Booking, error)
	// Cancel 單張票取消，pending/confirmed → cancelled（終態）
	Cancel(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID) (*model.Booking, error)
	// ConfirmPayment 付款確認事件：pending → confirmed
	ConfirmPayment(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	UpdateRSVP(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID, status model.RSVPStatus) (*model.Booking, error)
}

type BookingServiceImpl struct {
	pool        DB
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
}

func NewBookingService(pool DB, bookingRepo repository.BookingRepository, eventRepo repository.EventRepository) BookingService {
	return &BookingServiceImpl{
		pool:        pool,
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
	}
}

func (s *BookingServiceImpl) ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]*model.Booking, error) {
	return s.bookingRepo.ListByPurchaser(ctx, purchaserID)
}

func (s *BookingServiceImpl) ListByEvent(ctx context.Context, eventID uuid.UUID, organizerID uuid.UUID) ([]*model.Booking, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, apperrors.ErrNotAuthorized
	}

	return s.bookingRepo.ListByEvent(ctx, eventID)
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// 別人的 booking 一律當不存在，不透露
	if booking.PurchaserID != purchaserID {
		return nil, apperrors.ErrBookingNotFound
	}

	return booking, nil
}

func (s *BookingServiceImpl) Cancel(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id, purchaserID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(model.BookingStatusCancelled) {
		return nil, apperrors.ErrInvalidBookingStatus
	}

	return s.transition(ctx, id, booking.Status, model.BookingStatusCancelled)
}

func (s *BookingServiceImpl) ConfirmPayment(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != model.BookingStatusPending {
		return nil, apperrors.ErrInvalidBookingStatus
	}

	return s.transition(ctx, id, model.BookingStatusPending, model.BookingStatusConfirmed)
}

// transition 條件式狀態轉換：讀到的狀態在寫入時仍成立才生效，
// 並發下絕不做 read-then-write 覆蓋
func (s *BookingServiceImpl) transition(ctx context.Context, id uuid.UUID, from, to model.BookingStatus) (*model.Booking, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := s.bookingRepo.UpdateStatusIf(ctx, tx, id, from, to)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *BookingServiceImpl) UpdateRSVP(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID, status model.RSVPStatus) (*model.Booking, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}

	return s.bookingRepo.UpdateRSVP(ctx, id, purchaserID, status)
}
