package repository

import (
	"context"
	"fmt"
	"time"

	"go-booking-core/internal/model"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]*model.Booking, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Booking, error)
	FindByPaymentReference(ctx context.Context, reference string) ([]*model.Booking, error)
	UpdateRSVP(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID, status model.RSVPStatus) (*model.Booking, error)

	// Transaction methods
	CreateBatch(ctx context.Context, tx pgx.Tx, bookings []*model.Booking) error
	FindByPaymentReferenceTx(ctx context.Context, tx pgx.Tx, reference string) ([]*model.Booking, error)
	AcquireCheckoutLock(ctx context.Context, tx pgx.Tx, reference string) error
	CountActiveByEvent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error)
	UpdateStatusIf(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to model.BookingStatus) (*model.Booking, error)
	CheckIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (bool, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

const bookingColumns = `id, event_id, purchaser_id, status, rsvp_status,
		attendee_name, attendee_email, attendee_phone,
		promo_code, discount_amount, payment_reference, checked_in_at,
		created_at, updated_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.EventID,
		&booking.PurchaserID,
		&booking.Status,
		&booking.RSVPStatus,
		&booking.AttendeeName,
		&booking.AttendeeEmail,
		&booking.AttendeePhone,
		&booking.PromoCode,
		&booking.DiscountAmount,
		&booking.PaymentReference,
		&booking.CheckedInAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) ListByPurchaser(ctx context.Context, purchaserID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE purchaser_id = $1
		ORDER BY created_at DESC
	`
	return r.queryBookings(ctx, query, purchaserID)
}

func (r *BookingRepositoryImpl) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	return r.queryBookings(ctx, query, eventID)
}

func (r *BookingRepositoryImpl) FindByPaymentReference(ctx context.Context, reference string) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE payment_reference = $1
		ORDER BY created_at ASC
	`
	return r.queryBookings(ctx, query, reference)
}

func (r *BookingRepositoryImpl) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*model.Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*model.Booking, error) {
	bookings := make([]*model.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepositoryImpl) UpdateRSVP(ctx context.Context, id uuid.UUID, purchaserID uuid.UUID, status model.RSVPStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET rsvp_status = $1, updated_at = $2
		WHERE id = $3 AND purchaser_id = $4
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, status, time.Now().UTC(), id, purchaserID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) CreateBatch(ctx context.Context, tx pgx.Tx, bookings []*model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, event_id, purchaser_id, status, rsvp_status,
			attendee_name, attendee_email, attendee_phone,
			promo_code, discount_amount, payment_reference
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	for _, booking := range bookings {
		if booking.ID == uuid.Nil {
			booking.ID = uuid.New()
		}
		err := tx.QueryRow(ctx, query,
			booking.ID, booking.EventID, booking.PurchaserID,
			booking.Status, booking.RSVPStatus,
			booking.AttendeeName, booking.AttendeeEmail, booking.AttendeePhone,
			booking.PromoCode, booking.DiscountAmount, booking.PaymentReference,
		).Scan(&booking.CreatedAt, &booking.UpdatedAt)

		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
	}

	return nil
}

func (r *BookingRepositoryImpl) FindByPaymentReferenceTx(ctx context.Context, tx pgx.Tx, reference string) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE payment_reference = $1
		ORDER BY created_at ASC
	`

	rows, err := tx.Query(ctx, query, reference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// AcquireCheckoutLock 以 payment reference 取 advisory lock，
// 同一筆付款的並發重試會在這裡串行化，交易結束自動釋放。
func (r *BookingRepositoryImpl) AcquireCheckoutLock(ctx context.Context, tx pgx.Tx, reference string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, reference)
	if err != nil {
		return fmt.Errorf("failed to acquire checkout lock: %w", err)
	}
	return nil
}

// CountActiveByEvent 計算仍佔用容量的 booking 數（pending/confirmed/checked_in）。
// 需在持有 event row lock 的交易內呼叫，容量檢查才不會被並發結帳穿越。
func (r *BookingRepositoryImpl) CountActiveByEvent(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE event_id = $1 AND status != $2
	`

	var count int
	err := tx.QueryRow(ctx, query, eventID, model.BookingStatusCancelled).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateStatusIf 條件式狀態轉換：只有當前狀態仍為 from 時才寫入。
// 沒有命中任何 row 表示狀態已被並發操作改走，回報 ErrInvalidBookingStatus。
func (r *BookingRepositoryImpl) UpdateStatusIf(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to model.BookingStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, query, to, time.Now().UTC(), id, from))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrInvalidBookingStatus
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	return booking, nil
}

// CheckIn 驗票的 CAS：status 仍為 confirmed 才轉 checked_in 並蓋上時間戳。
// 回傳 false 表示另一次掃描已經先贏了這場競爭。
func (r *BookingRepositoryImpl) CheckIn(ctx context.Context, tx pgx.Tx, id uuid.UUID, at time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1, checked_in_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4
	`

	result, err := tx.Exec(ctx, query, model.BookingStatusCheckedIn, at.UTC(), id, model.BookingStatusConfirmed)
	if err != nil {
		return false, fmt.Errorf("failed to check in booking: %w", err)
	}

	return result.RowsAffected() == 1, nil
}
