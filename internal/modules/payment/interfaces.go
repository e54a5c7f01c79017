package payment

import "context"

// Gateway talks to the payment provider.
type Gateway interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
	CreatePaymentIntent(ctx context.Context, params IntentParams) (*Intent, error)
}
