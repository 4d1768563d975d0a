package payment

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"pitchbook/utils"
)

// providerTimeout bounds a single payment-provider call. A stalled provider
// surfaces PaymentProviderError instead of hanging the request; the
// reservation stays pending and the caller may retry.
const providerTimeout = 30 * time.Second

// PaymentProvider is the external payment capability: create a charge, get
// back a reference the payer completes out of band. Confirmation arrives
// through the Confirm endpoint, not through this interface. The idempotency
// key is stable per logical charge; repeating a call with the same key must
// return the existing charge instead of opening a duplicate.
type PaymentProvider interface {
	CreateCharge(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string, metadata map[string]string) (string, error)
}

// StripeProvider implements PaymentProvider on Stripe PaymentIntents. The
// API key is set process-wide at startup; the provider itself is
// constructor-injected so the coordinator never touches global state.
type StripeProvider struct{}

func NewStripeProvider() *StripeProvider {
	return &StripeProvider{}
}

// CreateCharge opens a PaymentIntent and returns its id as the external
// reference. Stripe deduplicates on the idempotency key, so retrying a
// partially failed plan reuses the intents already opened.
func (p *StripeProvider) CreateCharge(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string, metadata map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.SetIdempotencyKey(idempotencyKey)
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", utils.PaymentProviderError{Message: "failed to create charge", Err: err}
	}
	return intent.ID, nil
}
