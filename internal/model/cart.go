package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutItem 購物車的一行：活動 × 數量
type CheckoutItem struct {
	EventID  uuid.UUID `json:"event_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest 結帳請求。client 端帶來的金額只是提示，
// settlement 一律以當下的活動價格重新計算。
type CheckoutRequest struct {
	Items            []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	PromoCode        string         `json:"promo_code"`
	Attendee         AttendeeInfo   `json:"attendee" binding:"required"`
	PaymentReference string         `json:"payment_reference" binding:"required"`
}

// CheckoutResult 結帳結果
type CheckoutResult struct {
	Bookings  []*Booking      `json:"bookings"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	PromoCode string          `json:"promo_code,omitempty"`
	// Replayed 表示此結果來自同一 payment reference 的先前結帳（冪等重試）
	Replayed bool `json:"replayed,omitempty"`
}

// ValidatePromoRequest 購物車頁預覽折扣用；結帳時仍會重新驗證
type ValidatePromoRequest struct {
	Code  string         `json:"code" binding:"required"`
	Items []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// ValidatePromoResponse 折扣預覽
type ValidatePromoResponse struct {
	Valid    bool            `json:"valid"`
	Reason   string          `json:"reason,omitempty"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Receipt 結帳成功後送往通知佇列的收據訊息（fire-and-forget）
type Receipt struct {
	PaymentReference string          `json:"payment_reference"`
	PurchaserID      uuid.UUID       `json:"purchaser_id"`
	AttendeeEmail    string          `json:"attendee_email"`
	AttendeeName     string          `json:"attendee_name"`
	BookingIDs       []uuid.UUID     `json:"booking_ids"`
	Total            decimal.Decimal `json:"total"`
	IssuedAt         time.Time       `json:"issued_at"`
}
