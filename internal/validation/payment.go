package validation

import (
	"strings"

	"salonpay/internal/services/fees"
	"salonpay/internal/services/payment"
	"salonpay/internal/services/settings"
)

// FeeQuote validates a fee preview request. Zero amounts are allowed.
func (v *Validator) FeeQuote(req *payment.QuoteRequest) {
	v.Struct(req)
	v.RangeCents("amount_cents", req.AmountCents, 0, MaxChargeAmountCents)
	v.payoutOption(req.PayoutOption)
}

// BookingPayment validates a destination charge request
func (v *Validator) BookingPayment(req *payment.BookingPaymentRequest) {
	v.Struct(req)
	v.chargeAmount(req.AmountCents)
	v.payoutOption(req.PayoutOption)
}

// Checkout validates a hosted checkout request
func (v *Validator) Checkout(req *payment.CheckoutRequest) {
	v.Struct(req)
	v.chargeAmount(req.AmountCents)
	v.payoutOption(req.PayoutOption)
}

// PaymentSettings validates a settings update
func (v *Validator) PaymentSettings(in *settings.UpdateInput) {
	if in.PlatformFeePercentage != nil {
		pct, _ := in.PlatformFeePercentage.Float64()
		v.Range("platform_fee_percentage", pct, 0, 1)
	}
	v.Required("payout_option", in.PayoutOption)
	v.payoutOption(in.PayoutOption)
	if in.Currency != "" {
		v.Check(len(strings.TrimSpace(in.Currency)) == 3, "currency", "must be a three-letter ISO code")
	}
	if id := strings.TrimSpace(in.StripeAccountID); id != "" {
		v.Check(strings.HasPrefix(id, "acct_"), "stripe_account_id", "must be a connected account id (acct_...)")
	}
}

// NetAmount validates the inputs of a net amount estimate
func (v *Validator) NetAmount(amount, applicationFee, paymentMethodFee int64) {
	v.RangeCents("amount_cents", amount, 0, MaxChargeAmountCents)
	v.Check(applicationFee >= 0, "application_fee_cents", "must not be negative")
	v.Check(paymentMethodFee >= 0, "payment_method_fee_cents", "must not be negative")
}

func (v *Validator) chargeAmount(cents int64) {
	v.RangeCents("amount_cents", cents, MinChargeAmountCents, MaxChargeAmountCents)
}

func (v *Validator) payoutOption(raw string) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return
	}
	v.OneOf("payout_option", raw, string(fees.PayoutStandard), string(fees.PayoutInstant))
}
