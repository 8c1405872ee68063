package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

type stripePaymentIntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeGatewayConfig configures the StripeGateway. Intents and Sessions
// replace the live API clients when set.
type StripeGatewayConfig struct {
	APIKey   string
	Backends *stripe.Backends
	Intents  stripePaymentIntentAPI
	Sessions stripeSessionAPI
}

// StripeGateway creates destination charges through the Stripe API.
type StripeGateway struct {
	intents  stripePaymentIntentAPI
	sessions stripeSessionAPI
}

func NewStripeGateway(cfg StripeGatewayConfig) (*StripeGateway, error) {
	intents, sessions := cfg.Intents, cfg.Sessions
	if intents == nil || sessions == nil {
		apiKey := strings.TrimSpace(cfg.APIKey)
		if apiKey == "" {
			return nil, errors.New("stripe: api key is required")
		}
		sc := client.New(apiKey, cfg.Backends)
		if intents == nil {
			intents = sc.PaymentIntents
		}
		if sessions == nil {
			sessions = sc.CheckoutSessions
		}
	}
	return &StripeGateway{intents: intents, sessions: sessions}, nil
}

// CreatePaymentIntent creates a PaymentIntent whose application fee stays on
// the platform and whose remainder is transferred to the connected account.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, charge DestinationCharge) (*IntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(charge.AmountCents),
		Currency:             stripe.String(charge.Currency),
		ApplicationFeeAmount: stripe.Int64(charge.ApplicationFeeCents),
		PaymentMethodTypes:   stripe.StringSlice(charge.PaymentMethodTypes),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(charge.DestinationAccount),
		},
	}
	if charge.Description != "" {
		params.Description = stripe.String(charge.Description)
	}
	applyCommon(ctx, &params.Params, charge)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, err
	}
	return &IntentResult{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// CreateCheckoutSession creates a hosted Checkout Session for a single booking
// line item with the same destination-charge split.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, charge CheckoutCharge) (*CheckoutResult, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(charge.SuccessURL),
		CancelURL:          stripe.String(charge.CancelURL),
		PaymentMethodTypes: stripe.StringSlice(charge.PaymentMethodTypes),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(charge.Currency),
					UnitAmount: stripe.Int64(charge.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(charge.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(charge.ApplicationFeeCents),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(charge.DestinationAccount),
			},
		},
	}
	if ref := charge.Metadata["booking_id"]; ref != "" {
		params.ClientReferenceID = stripe.String(ref)
	}
	if charge.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(charge.CustomerEmail)
	}
	applyCommon(ctx, &params.Params, charge.DestinationCharge)

	sess, err := g.sessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{ID: sess.ID, URL: sess.URL}, nil
}

func applyCommon(ctx context.Context, p *stripe.Params, charge DestinationCharge) {
	p.Context = ctx
	if key := strings.TrimSpace(charge.IdempotencyKey); key != "" {
		p.SetIdempotencyKey(key)
	}
	for k, v := range charge.Metadata {
		p.AddMetadata(k, v)
	}
}
