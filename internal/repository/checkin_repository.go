package repository

import (
	"context"
	"fmt"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckInRepository interface {
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.CheckInRecord, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, record *model.CheckInRecord) error
}

type CheckInRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCheckInRepository(pool *pgxpool.Pool) CheckInRepository {
	return &CheckInRepositoryImpl{
		pool: pool,
	}
}

// Create 寫入驗票稽核紀錄。booking_id 唯一，重試時 ON CONFLICT 吞掉
// 重複寫入，保持冪等；紀錄本身 append-only。
func (r *CheckInRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, record *model.CheckInRecord) error {
	query := `
		INSERT INTO check_in_records (
			id, booking_id, event_id, purchaser_id, scanner_id, checked_in_at, device_meta
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (booking_id) DO NOTHING
	`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := tx.Exec(ctx, query,
		record.ID, record.BookingID, record.EventID, record.PurchaserID,
		record.ScannerID, record.CheckedInAt.UTC(), record.DeviceMeta,
	)
	if err != nil {
		return fmt.Errorf("failed to create check-in record: %w", err)
	}

	return nil
}

func (r *CheckInRepositoryImpl) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.CheckInRecord, error) {
	query := `
		SELECT id, booking_id, event_id, purchaser_id, scanner_id, checked_in_at, device_meta
		FROM check_in_records
		WHERE event_id = $1
		ORDER BY checked_in_at DESC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*model.CheckInRecord, 0)

	for rows.Next() {
		var record model.CheckInRecord
		err := rows.Scan(
			&record.ID,
			&record.BookingID,
			&record.EventID,
			&record.PurchaserID,
			&record.ScannerID,
			&record.CheckedInAt,
			&record.DeviceMeta,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
