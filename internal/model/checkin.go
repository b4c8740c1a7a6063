package model

import (
	"time"

	"github.com/google/uuid"
)

// ScanRequest 驗票請求。EventID 有值時表示掃描端鎖定單一活動。
type ScanRequest struct {
	Payload   string     `json:"payload" binding:"required"`
	SessionID string     `json:"session_id"`
	EventID   *uuid.UUID `json:"event_id"`
	// DeviceMeta 掃描端帶來的裝置資訊，原樣附到稽核紀錄
	DeviceMeta map[string]string `json:"device_meta"`
}

// ScanResult 驗票成功（或 already_checked_in 時帶原始時間戳）的結果
type ScanResult struct {
	Booking     *Booking  `json:"booking"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// CheckInRecord 驗票稽核紀錄，append-only，不修改不刪除。
// 一筆 CheckInRecord 存在 ⇔ 對應 booking 的 status = checked_in。
type CheckInRecord struct {
	ID          uuid.UUID `json:"id" db:"id"`
	BookingID   uuid.UUID `json:"booking_id" db:"booking_id"`
	EventID     uuid.UUID `json:"event_id" db:"event_id"`
	PurchaserID uuid.UUID `json:"purchaser_id" db:"purchaser_id"`
	ScannerID   uuid.UUID `json:"scanner_id" db:"scanner_id"`
	CheckedInAt time.Time `json:"checked_in_at" db:"checked_in_at"`
	// DeviceMeta 掃描端自由格式的裝置資訊，不做型別化
	DeviceMeta map[string]string `json:"device_meta,omitempty" db:"device_meta"`
}
