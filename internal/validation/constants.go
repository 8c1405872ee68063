package validation

const (
	// Amount limits in cents. 50 is Stripe's minimum EUR charge.
	MinChargeAmountCents = 50
	MaxChargeAmountCents = 99999999
)
