package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus 訂位狀態類型
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCheckedIn BookingStatus = "checked_in"
)

// IsValid 驗證狀態是否有效
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCheckedIn:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態
// cancelled 和 checked_in 是終態
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCheckedIn},
		BookingStatusCancelled: {},
		BookingStatusCheckedIn: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// RSVPStatus 出席意願
type RSVPStatus string

const (
	RSVPStatusGoing    RSVPStatus = "going"
	RSVPStatusMaybe    RSVPStatus = "maybe"
	RSVPStatusNotGoing RSVPStatus = "not_going"
)

func (s RSVPStatus) IsValid() bool {
	switch s {
	case RSVPStatusGoing, RSVPStatusMaybe, RSVPStatusNotGoing:
		return true
	}
	return false
}

// Booking 一張票 = 一筆 booking。quantity-N 的購買會展開成 N 筆獨立記錄，
// 每筆可個別取消、個別 check-in。
type Booking struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	EventID          uuid.UUID       `json:"event_id" db:"event_id"`
	PurchaserID      uuid.UUID       `json:"purchaser_id" db:"purchaser_id"`
	Status           BookingStatus   `json:"status" db:"status"`
	RSVPStatus       RSVPStatus      `json:"rsvp_status" db:"rsvp_status"`
	AttendeeName     string          `json:"attendee_name" db:"attendee_name"`
	AttendeeEmail    string          `json:"attendee_email" db:"attendee_email"`
	AttendeePhone    *string         `json:"attendee_phone,omitempty" db:"attendee_phone"`
	PromoCode        *string         `json:"promo_code,omitempty" db:"promo_code"`
	DiscountAmount   decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	PaymentReference *string         `json:"payment_reference,omitempty" db:"payment_reference"`
	CheckedInAt      *time.Time      `json:"checked_in_at,omitempty" db:"checked_in_at"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// AttendeeInfo 購買當下留存的聯絡資料，之後蓋到每張票上
type AttendeeInfo struct {
	Name  string  `json:"name" binding:"required"`
	Email string  `json:"email" binding:"required,email"`
	Phone *string `json:"phone"`
}

type UpdateRSVPRequest struct {
	RSVPStatus RSVPStatus `json:"rsvp_status" binding:"required"`
}
