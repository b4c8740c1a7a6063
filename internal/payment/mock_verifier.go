package payment

import (
	"context"
	"strings"
	"sync"

	apperrors "go-booking-core/pkg/app_errors"
)

// MockCaptureVerifier 本地開發與測試用的 in-memory capture 表
type MockCaptureVerifier struct {
	mu       sync.RWMutex
	captures map[string]*Capture
}

func NewMockCaptureVerifier() *MockCaptureVerifier {
	return &MockCaptureVerifier{
		captures: make(map[string]*Capture),
	}
}

// Record 登記一筆已請款的付款，供後續 Lookup
func (v *MockCaptureVerifier) Record(reference string, amountMinor int64, currency string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.captures[reference] = &Capture{
		Reference:   reference,
		AmountMinor: amountMinor,
		Currency:    strings.ToLower(currency),
	}
}

func (v *MockCaptureVerifier) Lookup(ctx context.Context, reference string) (*Capture, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	capture, ok := v.captures[reference]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	return capture, nil
}
