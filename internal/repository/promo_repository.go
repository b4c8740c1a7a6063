package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-booking-core/internal/model"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoRepository interface {
	Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.PromoCode, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error)
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdatePromoCodeParams) (*model.PromoCode, error)

	// Transaction methods
	IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
}

type PromoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) PromoRepository {
	return &PromoRepositoryImpl{
		pool: pool,
	}
}

const promoColumns = `id, organizer_id, code, discount_type, discount_value,
		min_purchase, max_discount, valid_from, valid_until,
		usage_limit, usage_count, event_id, is_active, created_at, updated_at`

func scanPromo(row pgx.Row) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := row.Scan(
		&promo.ID,
		&promo.OrganizerID,
		&promo.Code,
		&promo.DiscountType,
		&promo.DiscountValue,
		&promo.MinPurchase,
		&promo.MaxDiscount,
		&promo.ValidFrom,
		&promo.ValidUntil,
		&promo.UsageLimit,
		&promo.UsageCount,
		&promo.EventID,
		&promo.IsActive,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *PromoRepositoryImpl) Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	query := `
		INSERT INTO promo_codes (
			id, organizer_id, code, discount_type, discount_value,
			min_purchase, max_discount, valid_from, valid_until,
			usage_limit, event_id, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + promoColumns

	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}

	created, err := scanPromo(r.pool.QueryRow(ctx, query,
		promo.ID, promo.OrganizerID, promo.Code, promo.DiscountType, promo.DiscountValue,
		promo.MinPurchase, promo.MaxDiscount, promo.ValidFrom, promo.ValidUntil,
		promo.UsageLimit, promo.EventID, promo.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	return created, nil
}

func (r *PromoRepositoryImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promos := make([]*model.PromoCode, 0)

	for rows.Next() {
		promo, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, promo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return promos, nil
}

func (r *PromoRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		WHERE id = $1
	`

	promo, err := scanPromo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return promo, nil
}

// FindByCode 查折扣碼，code 不分大小寫
func (r *PromoRepositoryImpl) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promo_codes
		WHERE LOWER(code) = LOWER($1)
	`

	promo, err := scanPromo(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return promo, nil
}

func (r *PromoRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdatePromoCodeParams) (*model.PromoCode, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.DiscountValue != nil {
		addSet("discount_value", *params.DiscountValue)
	}
	if params.MinPurchase != nil {
		addSet("min_purchase", *params.MinPurchase)
	}
	if params.MaxDiscount != nil {
		addSet("max_discount", *params.MaxDiscount)
	}
	if params.ValidFrom != nil {
		addSet("valid_from", *params.ValidFrom)
	}
	if params.ValidUntil != nil {
		addSet("valid_until", *params.ValidUntil)
	}
	if params.UsageLimit != nil {
		addSet("usage_limit", *params.UsageLimit)
	}
	if params.IsActive != nil {
		addSet("is_active", *params.IsActive)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE promo_codes
		SET %s
		WHERE id = $%d
		RETURNING `+promoColumns,
		strings.Join(sets, ", "), argPos)

	promo, err := scanPromo(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPromoNotFound
		}
		return nil, err
	}

	return promo, nil
}

// IncrementUsage 有上限的條件式遞增：usage_limit = 0 不限，否則只有
// usage_count 還沒到上限時 +1。沒有命中任何 row 表示額度已被搶完。
// 一次結帳只 +1，不隨張數增加。
func (r *PromoRepositoryImpl) IncrementUsage(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `
		UPDATE promo_codes
		SET usage_count = usage_count + 1, updated_at = $1
		WHERE id = $2 AND (usage_limit = 0 OR usage_count < usage_limit)
	`

	result, err := tx.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to increment promo usage: %w", err)
	}

	return result.RowsAffected() == 1, nil
}
