package queue

import (
	"context"
	"go-booking-core/internal/model"
)

type Delivery struct {
	Data *model.Receipt
	Ack  func()
	Nack func(requeue bool)
}

// ReceiptQueue 收據通知的 fire-and-forget 佇列。
// 發送失敗只記 log，絕不回滾已 commit 的結帳。
type ReceiptQueue interface {
	// 發送收據到隊列
	PublishReceipt(ctx context.Context, receipt *model.Receipt) error
	// 訂閱收據隊列
	SubscribeReceipts(ctx context.Context) (<-chan Delivery, error)
}

type ReceiptQueueImpl struct {
	// 使用 Go channel 的單機版佇列，測試與本地開發用
	ch chan *model.Receipt
}

func NewReceiptQueue(bufferSize int) ReceiptQueue {
	return &ReceiptQueueImpl{
		ch: make(chan *model.Receipt, bufferSize),
	}
}

func (q *ReceiptQueueImpl) PublishReceipt(ctx context.Context, receipt *model.Receipt) error {
	q.ch <- receipt
	return nil
}

func (q *ReceiptQueueImpl) SubscribeReceipts(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case receipt, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: receipt,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- receipt // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
