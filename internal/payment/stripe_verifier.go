package payment

import (
	"context"
	"strings"

	apperrors "go-booking-core/pkg/app_errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripeCaptureVerifier 以 PaymentIntent id 當 reference，向 Stripe 查已請款金額
type StripeCaptureVerifier struct{}

func NewStripeCaptureVerifier(secretKey string) *StripeCaptureVerifier {
	stripe.Key = secretKey
	return &StripeCaptureVerifier{}
}

func (v *StripeCaptureVerifier) Lookup(ctx context.Context, reference string) (*Capture, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(reference, params)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, apperrors.ErrPaymentNotFound
	}

	return &Capture{
		Reference:   pi.ID,
		AmountMinor: pi.AmountReceived,
		Currency:    strings.ToLower(string(pi.Currency)),
	}, nil
}
