package fees

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MethodKey is the canonical name of a payment method in the fee schedule.
type MethodKey string

const (
	MethodCard              MethodKey = "card"
	MethodCardInternational MethodKey = "card_international"
	MethodIDEAL             MethodKey = "ideal"
	MethodBancontact        MethodKey = "bancontact"
	MethodKlarna            MethodKey = "klarna"
	MethodSEPADebit         MethodKey = "sepa_debit"
	MethodSofort            MethodKey = "sofort"
	MethodGiropay           MethodKey = "giropay"
	MethodEPS               MethodKey = "eps"
	MethodP24               MethodKey = "p24"
	MethodDefault           MethodKey = "default"

	// MethodUnknown marks a method string that matched nothing. It is never a
	// schedule key and always resolves to the default entry.
	MethodUnknown MethodKey = ""
)

// methodAliases maps processor-specific spellings to canonical keys.
var methodAliases = map[string]MethodKey{
	"card":               MethodCard,
	"pm_card":            MethodCard,
	"visa":               MethodCard,
	"visa_debit":         MethodCard,
	"mastercard":         MethodCard,
	"maestro":            MethodCard,
	"cartes_bancaires":   MethodCard,
	"card_international": MethodCardInternational,
	"amex":               MethodCardInternational,
	"american_express":   MethodCardInternational,
	"discover":           MethodCardInternational,
	"jcb":                MethodCardInternational,
	"diners":             MethodCardInternational,
	"unionpay":           MethodCardInternational,
	"ideal":              MethodIDEAL,
	"bancontact":         MethodBancontact,
	"klarna":             MethodKlarna,
	"sepa_debit":         MethodSEPADebit,
	"sepa":               MethodSEPADebit,
	"sofort":             MethodSofort,
	"giropay":            MethodGiropay,
	"eps":                MethodEPS,
	"p24":                MethodP24,
	"przelewy24":         MethodP24,
	"default":            MethodDefault,
}

// PaymentMethod is a payment method resolved at the system boundary.
// Raw keeps the caller's original string, which matters for MethodUnknown.
type PaymentMethod struct {
	Key MethodKey
	Raw string
}

// ParsePaymentMethod normalizes a free-form method name. It never fails:
// names without a canonical key or alias become MethodUnknown.
func ParsePaymentMethod(raw string) PaymentMethod {
	name := strings.ToLower(strings.TrimSpace(raw))
	if key, ok := methodAliases[name]; ok {
		return PaymentMethod{Key: key, Raw: raw}
	}
	return PaymentMethod{Key: MethodUnknown, Raw: raw}
}

// Known reports whether the method resolved to a canonical key.
func (m PaymentMethod) Known() bool {
	return m.Key != MethodUnknown
}

func (m PaymentMethod) String() string {
	if m.Known() {
		return string(m.Key)
	}
	return m.Raw
}

// PayoutOption selects how fast funds reach the connected account.
type PayoutOption string

const (
	PayoutStandard PayoutOption = "standard"
	PayoutInstant  PayoutOption = "instant"
)

// ParsePayoutOption accepts "standard" or "instant" in any case.
func ParsePayoutOption(raw string) (PayoutOption, error) {
	switch PayoutOption(strings.ToLower(strings.TrimSpace(raw))) {
	case PayoutStandard:
		return PayoutStandard, nil
	case PayoutInstant:
		return PayoutInstant, nil
	}
	return "", ErrInvalidPayoutOption
}

// FeeStructure is a processor fee: a fraction of the amount plus a fixed part in cents.
type FeeStructure struct {
	Percent decimal.Decimal `json:"percent"`
	Fixed   int64           `json:"fixed"`
}

// Params is the input of a single fee calculation.
type Params struct {
	AmountCents   int64
	PaymentMethod PaymentMethod
	PayoutOption  PayoutOption

	// PlatformFeePercentage overrides the calculator default when set,
	// e.g. 0.019 for 1.9%.
	PlatformFeePercentage *decimal.Decimal
}

// Breakdown echoes the rates used for a calculation. It is meant for audit
// and display, not for recomputation.
type Breakdown struct {
	PaymentMethod         MethodKey       `json:"payment_method"`
	PlatformFeePercentage decimal.Decimal `json:"platform_fee_percentage"`
	MethodPercent         decimal.Decimal `json:"method_percent"`
	MethodFixedCents      int64           `json:"method_fixed_cents"`
	PayoutOption          PayoutOption    `json:"payout_option"`
}

// Result holds the fee components of one charge, all in cents.
//
// ApplicationFeeCents is the only value handed to the destination charge.
// PaymentMethodFeeCents is an estimate of what the processor keeps and is
// not part of the application fee.
type Result struct {
	ApplicationFeeCents   int64     `json:"application_fee_cents"`
	PlatformFeeCents      int64     `json:"platform_fee_cents"`
	PaymentMethodFeeCents int64     `json:"payment_method_fee_cents"`
	PayoutFeeCents        int64     `json:"payout_fee_cents"`
	Breakdown             Breakdown `json:"breakdown"`
}
