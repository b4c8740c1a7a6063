package apperrors

import "errors"

// validation errors: 請求本身不合法，不會觸碰儲存層
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidPayload      = errors.New("invalid scan payload")
	ErrMissingAttendeeInfo = errors.New("missing attendee info")
)

// promo code 驗證結果（business-rule errors）
var (
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrPromoInactive       = errors.New("promo code inactive")
	ErrPromoExpired        = errors.New("promo code expired")
	ErrPromoUsageExhausted = errors.New("promo code usage exhausted")
	ErrPromoBelowMinimum   = errors.New("cart subtotal below promo minimum purchase")
)

// settlement（結帳）
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCapacityExceeded = errors.New("event capacity exceeded")
	// integrity errors: 代表竄改或過期的 client 狀態，一律 fail closed
	ErrPaymentMismatch = errors.New("payment amount mismatch")
	ErrPaymentNotFound = errors.New("payment capture not found")
)

// booking 生命週期
var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidBookingStatus = errors.New("invalid booking status transition")
)

// check-in
var (
	ErrNotAuthorized       = errors.New("scanner is not the organizer of this event")
	ErrWrongEvent          = errors.New("booking belongs to a different event")
	ErrBookingCancelled    = errors.New("booking is cancelled")
	ErrBookingNotConfirmed = errors.New("booking is not confirmed")
	ErrAlreadyCheckedIn    = errors.New("booking already checked in")
	ErrDuplicateScan       = errors.New("duplicate scan suppressed")
)

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInternalServerError = errors.New("internal server error")
)
