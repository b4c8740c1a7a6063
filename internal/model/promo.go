package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType 折扣類型
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// PromoCode 折扣碼。code 不分大小寫唯一。
// usage_count 只由 settlement 遞增，且在 usage_limit > 0 時永不超過上限。
type PromoCode struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	OrganizerID   uuid.UUID        `json:"organizer_id" db:"organizer_id"`
	Code          string           `json:"code" db:"code"`
	DiscountType  DiscountType     `json:"discount_type" db:"discount_type"`
	DiscountValue decimal.Decimal  `json:"discount_value" db:"discount_value"`
	MinPurchase   *decimal.Decimal `json:"min_purchase,omitempty" db:"min_purchase"`
	// MaxDiscount 只對 percentage 類型生效，封頂實際折扣
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty" db:"max_discount"`
	ValidFrom   time.Time        `json:"valid_from" db:"valid_from"`
	ValidUntil  time.Time        `json:"valid_until" db:"valid_until"`
	// UsageLimit 0 = 不限次數
	UsageLimit int `json:"usage_limit" db:"usage_limit"`
	UsageCount int `json:"usage_count" db:"usage_count"`
	// EventID nil = 適用於發行 organizer 的所有活動
	EventID   *uuid.UUID `json:"event_id,omitempty" db:"event_id"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type CreatePromoCodeRequest struct {
	Code          string           `json:"code" binding:"required"`
	DiscountType  DiscountType     `json:"discount_type" binding:"required"`
	DiscountValue decimal.Decimal  `json:"discount_value" binding:"required"`
	MinPurchase   *decimal.Decimal `json:"min_purchase"`
	MaxDiscount   *decimal.Decimal `json:"max_discount"`
	ValidFrom     time.Time        `json:"valid_from" binding:"required"`
	ValidUntil    time.Time        `json:"valid_until" binding:"required"`
	UsageLimit    int              `json:"usage_limit"`
	EventID       *uuid.UUID       `json:"event_id"`
}

type UpdatePromoCodeParams struct {
	DiscountValue *decimal.Decimal `json:"discount_value"`
	MinPurchase   *decimal.Decimal `json:"min_purchase"`
	MaxDiscount   *decimal.Decimal `json:"max_discount"`
	ValidFrom     *time.Time       `json:"valid_from"`
	ValidUntil    *time.Time       `json:"valid_until"`
	UsageLimit    *int             `json:"usage_limit"`
	IsActive      *bool            `json:"is_active"`
}
