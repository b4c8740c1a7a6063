package checkin

import (
	"encoding/json"
	"time"

	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
)

// Payload 掃描面解出來的 QR 內容。timestamp 只供參考，不參與授權判斷。
// 欄位名稱是 wire format 的一部分，必須能 round-trip。
type Payload struct {
	BookingID   string `json:"bookingId"`
	EventID     string `json:"eventId"`
	PurchaserID string `json:"purchaserId"`
	Timestamp   string `json:"timestamp"`
}

// Encode 產生票面 QR 的 payload 字串
func Encode(bookingID, eventID, purchaserID uuid.UUID, at time.Time) (string, error) {
	b, err := json.Marshal(Payload{
		BookingID:   bookingID.String(),
		EventID:     eventID.String(),
		PurchaserID: purchaserID.String(),
		Timestamp:   at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decoded 驗證過的 payload，id 已解析
type Decoded struct {
	BookingID   uuid.UUID
	EventID     uuid.UUID
	PurchaserID uuid.UUID
	Timestamp   time.Time
}

// Decode 解析原始掃描字串。任何缺欄位、非 JSON、非 UUID 的輸入一律
// 視為 invalid_payload，不往下走。
func Decode(raw string) (*Decoded, error) {
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, apperrors.ErrInvalidPayload
	}

	bookingID, err := uuid.Parse(p.BookingID)
	if err != nil {
		return nil, apperrors.ErrInvalidPayload
	}
	eventID, err := uuid.Parse(p.EventID)
	if err != nil {
		return nil, apperrors.ErrInvalidPayload
	}
	purchaserID, err := uuid.Parse(p.PurchaserID)
	if err != nil {
		return nil, apperrors.ErrInvalidPayload
	}

	// timestamp 僅供參考，解析失敗不擋驗票
	ts, err := time.Parse(time.RFC3339, p.Timestamp)
	if err != nil {
		ts = time.Time{}
	}

	return &Decoded{
		BookingID:   bookingID,
		EventID:     eventID,
		PurchaserID: purchaserID,
		Timestamp:   ts,
	}, nil
}
