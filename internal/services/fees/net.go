package fees

// CalculateNetAmount estimates what the connected account receives once the
// application fee and the processor fee are taken out. The result is not
// clamped and may be negative. Actual settlement is decided by the processor.
func CalculateNetAmount(amountCents, applicationFeeCents, paymentMethodFeeCents int64) int64 {
	return amountCents - applicationFeeCents - paymentMethodFeeCents
}
