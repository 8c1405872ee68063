package fees

import (
	"github.com/shopspring/decimal"
)

// DefaultPlatformFeePercentage is used when neither the caller nor the
// calculator configuration supplies a platform fee (1.9%).
var DefaultPlatformFeePercentage = decimal.RequireFromString("0.019")

// DefaultCurrencySymbol is the symbol used by PaymentMethodFeeDisplay.
const DefaultCurrencySymbol = "€"

// Calculator computes application fees against a fee schedule.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	schedule           *Schedule
	defaultPlatformFee decimal.Decimal
	currencySymbol     string
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithDefaultPlatformFee replaces the fallback platform fee percentage.
func WithDefaultPlatformFee(pct decimal.Decimal) Option {
	return func(c *Calculator) {
		c.defaultPlatformFee = pct
	}
}

// WithCurrencySymbol sets the symbol used for fee display strings.
func WithCurrencySymbol(symbol string) Option {
	return func(c *Calculator) {
		if symbol != "" {
			c.currencySymbol = symbol
		}
	}
}

// NewCalculator returns a calculator for schedule. A nil schedule means
// DefaultSchedule.
func NewCalculator(schedule *Schedule, opts ...Option) *Calculator {
	if schedule == nil {
		schedule = DefaultSchedule()
	}
	c := &Calculator{
		schedule:           schedule,
		defaultPlatformFee: DefaultPlatformFeePercentage,
		currencySymbol:     DefaultCurrencySymbol,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedule returns the fee schedule the calculator prices against.
func (c *Calculator) Schedule() *Schedule {
	return c.schedule
}

// DefaultPlatformFee is the percentage applied when Params carries no override.
func (c *Calculator) DefaultPlatformFee() decimal.Decimal {
	return c.defaultPlatformFee
}

// CurrencySymbol is the symbol used when a fee is displayed without a currency.
func (c *Calculator) CurrencySymbol() string {
	return c.currencySymbol
}

// CalculateApplicationFee splits a charge into platform, processor and payout
// fees. Each component is rounded to whole cents on its own before the
// application fee is summed.
//
// A zero amount still carries the payout fee.
func (c *Calculator) CalculateApplicationFee(p Params) (Result, error) {
	if p.AmountCents < 0 {
		return Result{}, ErrInvalidAmount
	}
	if p.PayoutOption != PayoutStandard && p.PayoutOption != PayoutInstant {
		return Result{}, ErrInvalidPayoutOption
	}

	pct := c.defaultPlatformFee
	if p.PlatformFeePercentage != nil {
		pct = *p.PlatformFeePercentage
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(1)) {
		return Result{}, ErrInvalidPercentage
	}

	key, method := c.schedule.Resolve(p.PaymentMethod.Key)
	amount := decimal.NewFromInt(p.AmountCents)

	platformFee := roundToCents(amount.Mul(pct))
	methodFee := roundToCents(amount.Mul(method.Percent).Add(decimal.NewFromInt(method.Fixed)))
	payoutFee := c.schedule.Payout(p.PayoutOption)

	return Result{
		ApplicationFeeCents:   platformFee + payoutFee,
		PlatformFeeCents:      platformFee,
		PaymentMethodFeeCents: methodFee,
		PayoutFeeCents:        payoutFee,
		Breakdown: Breakdown{
			PaymentMethod:         key,
			PlatformFeePercentage: pct,
			MethodPercent:         method.Percent,
			MethodFixedCents:      method.Fixed,
			PayoutOption:          p.PayoutOption,
		},
	}, nil
}

// roundToCents rounds half away from zero to a whole number of cents.
func roundToCents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
