package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentSettings is the per-business payment configuration. A null
// PlatformFeePercentage means the platform default applies.
type PaymentSettings struct {
	ID                    uint                `gorm:"primarykey" json:"-"`
	BusinessID            uuid.UUID           `gorm:"type:uuid;uniqueIndex;not null" json:"business_id"`
	PlatformFeePercentage decimal.NullDecimal `gorm:"type:numeric(7,6)" json:"platform_fee_percentage"`
	PayoutOption          string              `gorm:"not null;default:'standard'" json:"payout_option"`
	StripeAccountID       string              `json:"stripe_account_id"`
	Currency              string              `gorm:"not null;default:'eur'" json:"currency"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}
