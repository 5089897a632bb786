// Package payment talks to the external payment gateway. Only intent
// creation is used; confirmation arrives from the client through the order
// API.
package payment

import (
	"context" // Request contexts
	"errors"  // Error values
	"fmt"     // Error wrapping
	"math"    // Rounding

	"github.com/stripe/stripe-go/v76"        // Stripe API types
	"github.com/stripe/stripe-go/v76/client" // Stripe API client
)

// ErrInvalidAmount is returned for non-positive or non-finite prices.
var ErrInvalidAmount = errors.New("payment: amount must be positive")

// Gateway creates payment intents and returns the client secret used by the
// browser to complete the payment.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

// ToMinorUnits converts a price in major currency units to the integer
// minor units the gateway expects.
func ToMinorUnits(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidAmount
	}
	amount := int64(math.Round(price * 100))
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// StripeGateway is a Gateway backed by Stripe payment intents.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway returns a gateway authenticating with secretKey.
func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{api: client.New(secretKey, nil)}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	if amountMinor <= 0 {
		return "", ErrInvalidAmount
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("payment: create intent: %w", err)
	}
	return pi.ClientSecret, nil
}
