package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-booking-core/internal/model"
	"go-booking-core/internal/queue"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakySink 前 failures 次失敗，之後成功；記錄每次送達
type flakySink struct {
	mu       sync.Mutex
	failures int
	sent     []*model.Receipt
	done     chan struct{}
}

func (s *flakySink) Send(ctx context.Context, receipt *model.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, receipt)
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	return nil
}

func testReceipt() *model.Receipt {
	return &model.Receipt{
		PaymentReference: "pi_worker_1",
		PurchaserID:      uuid.New(),
		AttendeeEmail:    "alice@example.com",
		BookingIDs:       []uuid.UUID{uuid.New()},
		Total:            decimal.NewFromInt(100),
		IssuedAt:         time.Now().UTC(),
	}
}

func TestReceiptWorker_Start(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewReceiptQueue(10)
		sink := &flakySink{done: make(chan struct{})}
		done := sink.done
		w := NewReceiptWorker(sink, q)
		require.NoError(t, w.Start(ctx))

		receipt := testReceipt()
		require.NoError(t, q.PublishReceipt(ctx, receipt))

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("receipt was not delivered")
		}

		sink.mu.Lock()
		defer sink.mu.Unlock()
		require.Len(t, sink.sent, 1)
		assert.Equal(t, receipt.PaymentReference, sink.sent[0].PaymentReference)
	})

	t.Run("Success - 出信失敗會重試", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewReceiptQueue(10)
		sink := &flakySink{failures: 2, done: make(chan struct{})}
		done := sink.done
		w := NewReceiptWorker(sink, q)
		require.NoError(t, w.Start(ctx))

		require.NoError(t, q.PublishReceipt(ctx, testReceipt()))

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("receipt was not redelivered after failures")
		}

		sink.mu.Lock()
		defer sink.mu.Unlock()
		assert.Len(t, sink.sent, 1)
	})
}
