package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

type StripeGatewayConfig struct {
	SecretKey string
}

type stripeGateway struct{}

// NewStripeGateway настраивает глобальный ключ Stripe и возвращает шлюз,
// создающий PaymentIntent на каждое пожертвование.
func NewStripeGateway(cfg StripeGatewayConfig) (Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("invalid Stripe configuration: secret key is required")
	}
	stripe.Key = cfg.SecretKey
	return &stripeGateway{}, nil
}

func (g *stripeGateway) CreateOrder(ctx context.Context, amount float64, currency string, notes map[string]string) (*Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive, got %.2f", amount)
	}
	if currency == "" {
		currency = "inr"
	}

	receipt := uuid.NewString()

	metadata := map[string]string{"receipt": receipt}
	for k, v := range notes {
		metadata[k] = v
	}

	params := &stripe.PaymentIntentParams{
		// Stripe принимает суммы в минимальных единицах валюты.
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(strings.ToLower(currency)),
		Metadata: metadata,
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Order{
		OrderID: intent.ID,
		Receipt: receipt,
	}, nil
}
