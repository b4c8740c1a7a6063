package worker

import (
	"context"

	"go-booking-core/internal/model"
	"go-booking-core/internal/queue"
	"go-booking-core/pkg/logger"

	"go.uber.org/zap"
)

// NotificationSink 外部的通知收口（email/push），fire-and-forget，
// 本核心不等回執。
type NotificationSink interface {
	Send(ctx context.Context, receipt *model.Receipt) error
}

// LogNotificationSink 預設實作：只記 log，部署時替換成真的出信服務
type LogNotificationSink struct{}

func NewLogNotificationSink() NotificationSink {
	return &LogNotificationSink{}
}

func (s *LogNotificationSink) Send(ctx context.Context, receipt *model.Receipt) error {
	logger.WithComponent("notification").Info("receipt notification",
		zap.String("payment_reference", receipt.PaymentReference),
		zap.String("attendee_email", receipt.AttendeeEmail),
		zap.Int("booking_count", len(receipt.BookingIDs)),
		zap.String("total", receipt.Total.String()),
	)
	return nil
}

type ReceiptWorker interface {
	// 訂閱收據隊列
	Start(ctx context.Context) error
}

type ReceiptWorkerImpl struct {
	sink  NotificationSink
	queue queue.ReceiptQueue
}

func NewReceiptWorker(sink NotificationSink, queue queue.ReceiptQueue) ReceiptWorker {
	return &ReceiptWorkerImpl{
		sink:  sink,
		queue: queue,
	}
}

func (w *ReceiptWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeReceipts(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			err := w.sink.Send(ctx, msg.Data)

			if err != nil {
				// 出信端暫時不通就重試；收據丟了也不影響 booking 本身
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
