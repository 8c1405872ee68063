package payment

import (
	"salonpay/internal/models"
	"salonpay/internal/services/fees"

	"github.com/google/uuid"
)

// QuoteRequest asks for the fee split of a prospective charge. An empty
// PayoutOption uses the business setting.
type QuoteRequest struct {
	BusinessID    uuid.UUID `json:"-"`
	AmountCents   int64     `json:"amount_cents"`
	PaymentMethod string    `json:"payment_method" validate:"max=64"`
	PayoutOption  string    `json:"payout_option,omitempty"`
}

// Quote is the fee split plus the estimated net for the connected account.
type Quote struct {
	fees.Result
	AmountCents             int64             `json:"amount_cents"`
	Currency                string            `json:"currency"`
	PaymentMethod           string            `json:"payment_method"`
	PayoutOption            fees.PayoutOption `json:"payout_option"`
	NetAmountCents          int64             `json:"net_amount_cents"`
	PaymentMethodFeeDisplay string            `json:"payment_method_fee_display"`
}

type BookingPaymentRequest struct {
	BusinessID    uuid.UUID `json:"-"`
	BookingID     string    `json:"booking_id" validate:"required,max=100"`
	AmountCents   int64     `json:"amount_cents"`
	PaymentMethod string    `json:"payment_method" validate:"required,max=64"`
	PayoutOption  string    `json:"payout_option,omitempty"`
	Description   string    `json:"description,omitempty" validate:"max=500"`
}

type BookingPaymentResponse struct {
	Payment      *models.BookingPayment `json:"payment"`
	ClientSecret string                 `json:"client_secret"`
	Quote        *Quote                 `json:"quote"`
}

type CheckoutRequest struct {
	BookingPaymentRequest
	ServiceName   string `json:"service_name" validate:"max=250"`
	CustomerEmail string `json:"customer_email,omitempty" validate:"omitempty,email"`
}

type CheckoutResponse struct {
	Payment     *models.BookingPayment `json:"payment"`
	CheckoutURL string                 `json:"checkout_url"`
	Quote       *Quote                 `json:"quote"`
}

// DestinationCharge is a charge on the platform account whose funds, minus
// the application fee, are transferred to DestinationAccount.
type DestinationCharge struct {
	AmountCents         int64
	Currency            string
	ApplicationFeeCents int64
	DestinationAccount  string
	PaymentMethodTypes  []string
	Description         string
	IdempotencyKey      string
	Metadata            map[string]string
}

type CheckoutCharge struct {
	DestinationCharge
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type IntentResult struct {
	ID           string
	ClientSecret string
	Status       string
}

type CheckoutResult struct {
	ID  string
	URL string
}
