package fees

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var currencySymbols = map[string]string{
	"eur": "€",
	"usd": "$",
	"gbp": "£",
}

// FormatFee renders a fee structure for display, e.g. "1.5% + €0.25",
// "€0.29" for a flat fee or "1.4%" for a pure percentage.
func FormatFee(fs FeeStructure, symbol string) string {
	fixed := symbol + decimal.New(fs.Fixed, -2).StringFixed(2)
	switch {
	case fs.Percent.IsZero():
		return fixed
	case fs.Fixed == 0:
		return fs.Percent.Mul(hundred).StringFixed(1) + "%"
	default:
		return fmt.Sprintf("%s%% + %s", fs.Percent.Mul(hundred).StringFixed(1), fixed)
	}
}

// PaymentMethodFeeDisplay returns the processor fee of method as a short
// human string in the calculator's currency.
func (c *Calculator) PaymentMethodFeeDisplay(method PaymentMethod) string {
	return FormatFee(c.schedule.Method(method.Key), c.currencySymbol)
}

// PaymentMethodFeeDisplayIn renders the processor fee of method in currency,
// an ISO code such as "usd". Codes without a known symbol are shown as the
// upper-case code, and an empty code uses the calculator's symbol.
func (c *Calculator) PaymentMethodFeeDisplayIn(method PaymentMethod, currency string) string {
	return FormatFee(c.schedule.Method(method.Key), c.symbolFor(currency))
}

func (c *Calculator) symbolFor(currency string) string {
	code := strings.ToLower(strings.TrimSpace(currency))
	if code == "" {
		return c.currencySymbol
	}
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return strings.ToUpper(code) + " "
}
