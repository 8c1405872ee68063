package payment

import (
	"context"

	"salonpay/internal/models"

	"github.com/google/uuid"
)

// Service defines the booking payment service interface
type Service interface {
	// Fee preview, no processor call
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)

	// Destination charges
	CreateBookingPayment(ctx context.Context, req BookingPaymentRequest) (*BookingPaymentResponse, error)
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)

	// Records
	GetBookingPayment(ctx context.Context, businessID, id uuid.UUID) (*models.BookingPayment, error)
	ListBookingPayments(ctx context.Context, businessID uuid.UUID, bookingID string) ([]models.BookingPayment, error)
}

// SettingsProvider supplies the per-business payment configuration.
type SettingsProvider interface {
	Get(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error)
}

// Gateway creates charges at the payment processor.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, charge DestinationCharge) (*IntentResult, error)
	CreateCheckoutSession(ctx context.Context, charge CheckoutCharge) (*CheckoutResult, error)
}
