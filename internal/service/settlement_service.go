package service

import (
	"context"
	"strings"
	"time"

	"go-booking-core/config"
	"go-booking-core/internal/model"
	"go-booking-core/internal/payment"
	"go-booking-core/internal/promo"
	"go-booking-core/internal/queue"
	"go-booking-core/internal/repository"
	apperrors "go-booking-core/pkg/app_errors"
	"go-booking-core/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var minorUnit = decimal.NewFromInt(100)

type SettlementService interface {
	// Checkout 把購物車 + 已請款的付款結清成 booking 記錄。
	// 同一 payment reference 重試回傳先前結果，不重複開票。
	Checkout(ctx context.Context, purchaserID uuid.UUID, req model.CheckoutRequest) (*model.CheckoutResult, error)
	// PreviewPromo 購物車頁的折扣預覽；只是提示，結帳時一定重新驗證
	PreviewPromo(ctx context.Context, req model.ValidatePromoRequest) (*model.ValidatePromoResponse, error)
}

type SettlementServiceImpl struct {
	pool         DB
	bookingRepo  repository.BookingRepository
	eventRepo    repository.EventRepository
	promoRepo    repository.PromoRepository
	captures     payment.CaptureVerifier
	receiptQueue queue.ReceiptQueue
	cfg          config.SettlementConfig
	currency     string
	now          func() time.Time
}

func NewSettlementService(
	pool DB,
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	promoRepo repository.PromoRepository,
	captures payment.CaptureVerifier,
	receiptQueue queue.ReceiptQueue,
	cfg config.SettlementConfig,
	currency string,
) SettlementService {
	return &SettlementServiceImpl{
		pool:         pool,
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		promoRepo:    promoRepo,
		captures:     captures,
		receiptQueue: receiptQueue,
		cfg:          cfg,
		currency:     strings.ToLower(currency),
		now:          time.Now,
	}
}

func (s *SettlementServiceImpl) Checkout(ctx context.Context, purchaserID uuid.UUID, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	// 一律用當下的活動記錄重算，client 帶來的金額只是提示
	lines, events, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	subtotal := promo.Subtotal(lines)

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 同一 payment reference 的並發重試在 advisory lock 上串行化
	if err := s.bookingRepo.AcquireCheckoutLock(ctx, tx, req.PaymentReference); err != nil {
		return nil, err
	}

	// 冪等回放一定先於驗券和金額比對：首次結帳可能自己用掉了折扣碼的
	// 最後一個名額，重試時重新驗券會誤判 exhausted
	existing, err := s.bookingRepo.FindByPaymentReferenceTx(ctx, tx, req.PaymentReference)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return replayedResult(existing, subtotal), nil
	}

	// commit-time revalidation：購物車頁和結帳之間折扣碼可能過期或被搶完
	var promoRec *model.PromoCode
	discount := promo.Compute(nil, lines)
	if req.PromoCode != "" {
		promoRec, err = s.promoRepo.FindByCode(ctx, req.PromoCode)
		if err != nil {
			return nil, err
		}
		if err := promo.Validate(promoRec, s.now(), subtotal); err != nil {
			return nil, err
		}
		discount = promo.Compute(promoRec, lines)
	}

	total := subtotal.Sub(discount.Total)

	// 付款金額不信 client：向 provider 查已請款事實，和重算出的總額比對
	capture, err := s.captures.Lookup(ctx, req.PaymentReference)
	if err != nil {
		return nil, err
	}
	if capture.Currency != s.currency || capture.AmountMinor != total.Mul(minorUnit).IntPart() {
		return nil, apperrors.ErrPaymentMismatch
	}

	if s.cfg.EnforceCapacity {
		if err := s.checkCapacity(ctx, tx, req.Items, events); err != nil {
			return nil, err
		}
	}

	bookings := s.expandBookings(purchaserID, req, lines, discount, promoRec)
	if err := s.bookingRepo.CreateBatch(ctx, tx, bookings); err != nil {
		return nil, err
	}

	// usage_count +1（每次結帳一次，不隨張數），和開票同一筆交易
	if promoRec != nil {
		ok, err := s.promoRepo.IncrementUsage(ctx, tx, promoRec.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrPromoUsageExhausted
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishReceipt(purchaserID, req, bookings, total)

	return &model.CheckoutResult{
		Bookings:  bookings,
		Subtotal:  subtotal,
		Discount:  discount.Total,
		Total:     total,
		PromoCode: req.PromoCode,
	}, nil
}

func (s *SettlementServiceImpl) PreviewPromo(ctx context.Context, req model.ValidatePromoRequest) (*model.ValidatePromoResponse, error) {
	lines, _, err := s.resolveLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	subtotal := promo.Subtotal(lines)

	promoRec, err := s.promoRepo.FindByCode(ctx, req.Code)
	if err != nil {
		if err == apperrors.ErrPromoNotFound {
			return invalidPromoResponse(err, subtotal), nil
		}
		return nil, err
	}

	if err := promo.Validate(promoRec, s.now(), subtotal); err != nil {
		return invalidPromoResponse(err, subtotal), nil
	}

	discount := promo.Compute(promoRec, lines)
	return &model.ValidatePromoResponse{
		Valid:    true,
		Subtotal: subtotal,
		Discount: discount.Total,
		Total:    subtotal.Sub(discount.Total),
	}, nil
}

// Helper functions

// replayedResult 回放時折扣和總額從已落庫的 booking 重建，
// 不依賴折扣碼或活動價格當下的狀態
func replayedResult(existing []*model.Booking, subtotal decimal.Decimal) *model.CheckoutResult {
	discount := decimal.Zero
	promoCode := ""
	for _, b := range existing {
		discount = discount.Add(b.DiscountAmount)
		if b.PromoCode != nil {
			promoCode = *b.PromoCode
		}
	}
	return &model.CheckoutResult{
		Bookings:  existing,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal.Sub(discount),
		PromoCode: promoCode,
		Replayed:  true,
	}
}

func validateCheckoutRequest(req model.CheckoutRequest) error {
	if len(req.Items) == 0 || req.PaymentReference == "" {
		return apperrors.ErrInvalidInput
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return apperrors.ErrInvalidInput
		}
	}
	if req.Attendee.Name == "" || req.Attendee.Email == "" {
		return apperrors.ErrMissingAttendeeInfo
	}
	return nil
}

func (s *SettlementServiceImpl) resolveLines(ctx context.Context, items []model.CheckoutItem) ([]promo.Line, map[uuid.UUID]*model.Event, error) {
	lines := make([]promo.Line, 0, len(items))
	events := make(map[uuid.UUID]*model.Event)

	for _, item := range items {
		event, ok := events[item.EventID]
		if !ok {
			var err error
			event, err = s.eventRepo.FindByID(ctx, item.EventID)
			if err != nil {
				return nil, nil, err
			}
			events[item.EventID] = event
		}
		lines = append(lines, promo.Line{
			EventID:     event.ID,
			OrganizerID: event.OrganizerID,
			UnitPrice:   event.Price,
			Quantity:    item.Quantity,
		})
	}

	return lines, events, nil
}

// checkCapacity 鎖住 event row 後計數，容量判斷不被並發結帳穿越
func (s *SettlementServiceImpl) checkCapacity(ctx context.Context, tx pgx.Tx, items []model.CheckoutItem, events map[uuid.UUID]*model.Event) error {
	requested := make(map[uuid.UUID]int)
	for _, item := range items {
		requested[item.EventID] += item.Quantity
	}

	for eventID, quantity := range requested {
		event, err := s.eventRepo.FindByIDWithLock(ctx, tx, eventID)
		if err != nil {
			return err
		}
		count, err := s.bookingRepo.CountActiveByEvent(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if count+quantity > event.Capacity {
			return apperrors.ErrCapacityExceeded
		}
		events[eventID] = event
	}

	return nil
}

// expandBookings 把每行 event × quantity 展開成獨立的 booking row，
// 逐張蓋上同一份聯絡資料與分攤好的折扣
func (s *SettlementServiceImpl) expandBookings(
	purchaserID uuid.UUID,
	req model.CheckoutRequest,
	lines []promo.Line,
	discount promo.Discount,
	promoRec *model.PromoCode,
) []*model.Booking {
	var promoCode *string
	if promoRec != nil {
		promoCode = &promoRec.Code
	}
	reference := req.PaymentReference

	var bookings []*model.Booking
	for i, line := range lines {
		for j := 0; j < line.Quantity; j++ {
			bookings = append(bookings, &model.Booking{
				ID:               uuid.New(),
				EventID:          line.EventID,
				PurchaserID:      purchaserID,
				Status:           model.BookingStatusConfirmed,
				RSVPStatus:       model.RSVPStatusGoing,
				AttendeeName:     req.Attendee.Name,
				AttendeeEmail:    req.Attendee.Email,
				AttendeePhone:    req.Attendee.Phone,
				PromoCode:        promoCode,
				DiscountAmount:   discount.Items[i].PerTicket[j],
				PaymentReference: &reference,
			})
		}
	}
	return bookings
}

// publishReceipt fire-and-forget：發送失敗只記 log，絕不回滾交易。
// 用 context.Background()，不跟隨請求的生命週期。
func (s *SettlementServiceImpl) publishReceipt(purchaserID uuid.UUID, req model.CheckoutRequest, bookings []*model.Booking, total decimal.Decimal) {
	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	receipt := &model.Receipt{
		PaymentReference: req.PaymentReference,
		PurchaserID:      purchaserID,
		AttendeeEmail:    req.Attendee.Email,
		AttendeeName:     req.Attendee.Name,
		BookingIDs:       ids,
		Total:            total,
		IssuedAt:         s.now().UTC(),
	}

	go func() {
		if err := s.receiptQueue.PublishReceipt(context.Background(), receipt); err != nil {
			logger.WithComponent("settlement").Warn("failed to publish receipt",
				zap.String("payment_reference", receipt.PaymentReference), zap.Error(err))
		}
	}()
}

func invalidPromoResponse(err error, subtotal decimal.Decimal) *model.ValidatePromoResponse {
	return &model.ValidatePromoResponse{
		Valid:    false,
		Reason:   promo.ReasonOf(err),
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Total:    subtotal,
	}
}
