package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BookingPaymentKindIntent   = "payment_intent"
	BookingPaymentKindCheckout = "checkout_session"
)

// BookingPayment records a charge created for a booking together with the
// fee split that was sent to the processor.
type BookingPayment struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID            uuid.UUID       `gorm:"type:uuid;index;not null" json:"business_id"`
	BookingID             string          `gorm:"index;not null" json:"booking_id"`
	Kind                  string          `gorm:"not null" json:"kind"`
	StripeObjectID        string          `gorm:"uniqueIndex;not null" json:"stripe_object_id"`
	StripeAccountID       string          `json:"stripe_account_id"`
	Status                string          `gorm:"not null" json:"status"`
	Currency              string          `gorm:"not null" json:"currency"`
	PaymentMethod         string          `json:"payment_method"`
	PayoutOption          string          `json:"payout_option"`
	AmountCents           int64           `gorm:"not null" json:"amount_cents"`
	ApplicationFeeCents   int64           `gorm:"not null" json:"application_fee_cents"`
	PlatformFeeCents      int64           `gorm:"not null" json:"platform_fee_cents"`
	PaymentMethodFeeCents int64           `gorm:"not null" json:"payment_method_fee_cents"`
	PayoutFeeCents        int64           `gorm:"not null" json:"payout_fee_cents"`
	NetAmountCents        int64           `json:"net_amount_cents"`
	PlatformFeePercentage decimal.Decimal `gorm:"type:numeric(7,6)" json:"platform_fee_percentage"`
	Metadata              JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
