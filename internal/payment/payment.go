package payment

import (
	"context"

	"go-booking-core/config"
	"go-booking-core/pkg/logger"

	"go.uber.org/zap"
)

// Capture 已完成請款的付款事實：金額（最小幣值單位）、幣別、provider 的參照。
// settlement 只把它當輸入，金額是否吻合仍由 settlement 自己重算驗證。
type Capture struct {
	Reference string
	// AmountMinor 以最小幣值單位表示（例如 usd 的 cents）
	AmountMinor int64
	Currency    string
}

// CaptureVerifier 查詢某個 payment reference 的請款結果
type CaptureVerifier interface {
	Lookup(ctx context.Context, reference string) (*Capture, error)
}

// NewCaptureVerifier 依設定挑 provider。未知 provider 一律退回 mock，
// 避免設定錯誤時默默打到真的 Stripe。
func NewCaptureVerifier(cfg *config.PaymentConfig) CaptureVerifier {
	if cfg.Provider == "stripe" && cfg.StripeSecretKey != "" {
		return NewStripeCaptureVerifier(cfg.StripeSecretKey)
	}
	if cfg.Provider != "mock" {
		logger.WithComponent("payment").Warn("unknown payment provider, falling back to mock",
			zap.String("provider", cfg.Provider))
	}
	return NewMockCaptureVerifier()
}
