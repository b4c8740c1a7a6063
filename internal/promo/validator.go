package promo

import (
	"time"

	"go-booking-core/internal/model"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/shopspring/decimal"
)

// Validate 檢查折扣碼的時間與使用次數有效性。純函式，無副作用，可重複呼叫。
// 結帳時必須再驗一次（commit-time revalidation），不能只信購物車頁的結果。
func Validate(p *model.PromoCode, now time.Time, subtotal decimal.Decimal) error {
	if p == nil {
		return apperrors.ErrPromoNotFound
	}

	if !p.IsActive {
		return apperrors.ErrPromoInactive
	}

	// 有效期間採含首尾的日期語意，截斷到天
	day := truncateToDay(now)
	if day.Before(truncateToDay(p.ValidFrom)) || day.After(truncateToDay(p.ValidUntil)) {
		return apperrors.ErrPromoExpired
	}

	// usage_limit = 0 表示不限次數
	if p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit {
		return apperrors.ErrPromoUsageExhausted
	}

	if p.MinPurchase != nil && subtotal.LessThan(*p.MinPurchase) {
		return apperrors.ErrPromoBelowMinimum
	}

	return nil
}

// ReasonOf 對應 validator 的 sentinel error 到 API 上的 reason code
func ReasonOf(err error) string {
	switch err {
	case apperrors.ErrPromoNotFound:
		return "not_found"
	case apperrors.ErrPromoInactive:
		return "inactive"
	case apperrors.ErrPromoExpired:
		return "expired"
	case apperrors.ErrPromoUsageExhausted:
		return "usage_exhausted"
	case apperrors.ErrPromoBelowMinimum:
		return "below_minimum"
	}
	return ""
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
