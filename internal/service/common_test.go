package service

import (
	"context"
	"sync"
	"time"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// fakeTx 讓 service 測試不需要真的資料庫。repository 都是 mock，
// 不會真的對 tx 下 SQL，只要能 Commit / Rollback 並記次數就夠。
type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Commit(ctx context.Context) error {
	t.commits++
	return nil
}
func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return nil
}
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                              { return nil }

// fakeDB 滿足 service.DB，每次 BeginTx 發一個 fakeTx
type fakeDB struct {
	mu     sync.Mutex
	lastTx *fakeTx
}

func (db *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.lastTx = &fakeTx{}
	return db.lastTx, nil
}

// Test fixtures

func testEvent(organizerID uuid.UUID, price int64, capacity int) *model.Event {
	return &model.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       "Go Conference",
		Price:       decimal.NewFromInt(price),
		Capacity:    capacity,
		StartsAt:    time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func testPromo(organizerID uuid.UUID, discountType model.DiscountType, value int64) *model.PromoCode {
	return &model.PromoCode{
		ID:            uuid.New(),
		OrganizerID:   organizerID,
		Code:          "SAVE20",
		DiscountType:  discountType,
		DiscountValue: decimal.NewFromInt(value),
		ValidFrom:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func testCheckoutRequest(eventID uuid.UUID, quantity int, reference string) model.CheckoutRequest {
	return model.CheckoutRequest{
		Items: []model.CheckoutItem{
			{EventID: eventID, Quantity: quantity},
		},
		Attendee: model.AttendeeInfo{
			Name:  "Alice",
			Email: "alice@example.com",
		},
		PaymentReference: reference,
	}
}

func confirmedBooking(eventID, purchaserID uuid.UUID) *model.Booking {
	return &model.Booking{
		ID:          uuid.New(),
		EventID:     eventID,
		PurchaserID: purchaserID,
		Status:      model.BookingStatusConfirmed,
		RSVPStatus:  model.RSVPStatusGoing,
	}
}
