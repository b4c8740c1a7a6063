package service

import (
	"context"
	"time"

	"go-booking-core/internal/cache"
	"go-booking-core/internal/checkin"
	"go-booking-core/internal/model"
	"go-booking-core/internal/repository"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CheckInService interface {
	// Scan 驗票：解析 payload、驗掃描者身分、狀態轉換（CAS）＋寫稽核紀錄
	Scan(ctx context.Context, scannerID uuid.UUID, req model.ScanRequest) (*model.ScanResult, error)
	// TicketPayload 產生票面 QR 的 payload（購票者本人限定）
	TicketPayload(ctx context.Context, bookingID uuid.UUID, purchaserID uuid.UUID) (string, error)
	// ListByEvent 活動的驗票稽核紀錄（活動 organizer 限定）
	ListByEvent(ctx context.Context, eventID uuid.UUID, organizerID uuid.UUID) ([]*model.CheckInRecord, error)
}

type CheckInServiceImpl struct {
	pool        DB
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	checkinRepo repository.CheckInRepository
	debouncer   cache.ScanDebouncer
	now         func() time.Time
}

func NewCheckInService(
	pool DB,
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	checkinRepo repository.CheckInRepository,
	debouncer cache.ScanDebouncer,
) CheckInService {
	return &CheckInServiceImpl{
		pool:        pool,
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		checkinRepo: checkinRepo,
		debouncer:   debouncer,
		now:         time.Now,
	}
}

func (s *CheckInServiceImpl) Scan(ctx context.Context, scannerID uuid.UUID, req model.ScanRequest) (*model.ScanResult, error) {
	// 去抖動：同一 session 短窗口內的相同 payload 合併成一次驗證。
	// 只是吸收鏡頭連續讀取的最佳化，正確性仍由下面的 CAS 保證。
	first, _ := s.debouncer.Observe(ctx, req.SessionID, req.Payload)
	if !first {
		return nil, apperrors.ErrDuplicateScan
	}

	payload, err := checkin.Decode(req.Payload)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindByID(ctx, payload.BookingID)
	if err != nil {
		return nil, err
	}
	// payload 的 event/purchaser 和 booking 對不上 = 竄改或湊出來的 QR，
	// 一律當 not found，不透露 booking 存在
	if booking.EventID != payload.EventID || booking.PurchaserID != payload.PurchaserID {
		return nil, apperrors.ErrBookingNotFound
	}

	event, err := s.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != scannerID {
		return nil, apperrors.ErrNotAuthorized
	}

	// 掃描端鎖定單一活動時，別的活動的票直接擋下
	if req.EventID != nil && *req.EventID != booking.EventID {
		return nil, apperrors.ErrWrongEvent
	}

	switch booking.Status {
	case model.BookingStatusCancelled:
		return nil, apperrors.ErrBookingCancelled
	case model.BookingStatusPending:
		return nil, apperrors.ErrBookingNotConfirmed
	case model.BookingStatusCheckedIn:
		return s.alreadyCheckedIn(booking), apperrors.ErrAlreadyCheckedIn
	case model.BookingStatusConfirmed:
		// 往下走 CAS
	default:
		return nil, apperrors.ErrInvalidBookingStatus
	}

	return s.performCheckIn(ctx, scannerID, booking, req.DeviceMeta)
}

// performCheckIn CAS 轉換 + 稽核紀錄，同一筆交易
func (s *CheckInServiceImpl) performCheckIn(ctx context.Context, scannerID uuid.UUID, booking *model.Booking, deviceMeta map[string]string) (*model.ScanResult, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	at := s.now().UTC()

	won, err := s.bookingRepo.CheckIn(ctx, tx, booking.ID, at)
	if err != nil {
		return nil, err
	}
	if !won {
		// 另一台掃描裝置贏了這場競爭；回報原始的 check-in 時間
		fresh, err := s.bookingRepo.FindByID(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		return s.alreadyCheckedIn(fresh), apperrors.ErrAlreadyCheckedIn
	}

	err = s.checkinRepo.Create(ctx, tx, &model.CheckInRecord{
		ID:          uuid.New(),
		BookingID:   booking.ID,
		EventID:     booking.EventID,
		PurchaserID: booking.PurchaserID,
		ScannerID:   scannerID,
		CheckedInAt: at,
		DeviceMeta:  deviceMeta,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	booking.Status = model.BookingStatusCheckedIn
	booking.CheckedInAt = &at

	return &model.ScanResult{Booking: booking, CheckedInAt: at}, nil
}

// alreadyCheckedIn 帶上原始的 checked_in_at，門口操作員看得到「幾點已入場」
func (s *CheckInServiceImpl) alreadyCheckedIn(booking *model.Booking) *model.ScanResult {
	result := &model.ScanResult{Booking: booking}
	if booking.CheckedInAt != nil {
		result.CheckedInAt = *booking.CheckedInAt
	}
	return result
}

func (s *CheckInServiceImpl) TicketPayload(ctx context.Context, bookingID uuid.UUID, purchaserID uuid.UUID) (string, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if booking.PurchaserID != purchaserID {
		return "", apperrors.ErrBookingNotFound
	}

	return checkin.Encode(booking.ID, booking.EventID, booking.PurchaserID, s.now())
}

func (s *CheckInServiceImpl) ListByEvent(ctx context.Context, eventID uuid.UUID, organizerID uuid.UUID) ([]*model.CheckInRecord, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, apperrors.ErrNotAuthorized
	}

	return s.checkinRepo.ListByEvent(ctx, eventID)
}
