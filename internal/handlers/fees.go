package handlers

import (
	"sort"

	"salonpay/internal/services/fees"
	"salonpay/internal/services/payment"
	"salonpay/internal/utils"
	"salonpay/internal/utils/response"
	"salonpay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type FeeHandler struct {
	calculator *fees.Calculator
	payments   payment.Service
	logger     *zap.Logger
}

func NewFeeHandler(calculator *fees.Calculator, payments payment.Service, logger *zap.Logger) *FeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeeHandler{
		calculator: calculator,
		payments:   payments,
		logger:     logger,
	}
}

type methodFee struct {
	Method     fees.MethodKey  `json:"method"`
	Percent    decimal.Decimal `json:"percent"`
	FixedCents int64           `json:"fixed_cents"`
	Display    string          `json:"display"`
}

func (h *FeeHandler) describe(key fees.MethodKey, fs fees.FeeStructure) methodFee {
	return methodFee{
		Method:     key,
		Percent:    fs.Percent,
		FixedCents: fs.Fixed,
		Display:    fees.FormatFee(fs, h.calculator.CurrencySymbol()),
	}
}

// ListMethods returns the processor fee table with display strings
func (h *FeeHandler) ListMethods(c *fiber.Ctx) error {
	schedule := h.calculator.Schedule()
	table := schedule.Methods()

	methods := make([]methodFee, 0, len(table))
	for key, fs := range table {
		methods = append(methods, h.describe(key, fs))
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Method < methods[j].Method })

	return response.Success(c, "Fee schedule", fiber.Map{
		"methods": methods,
		"payout_fees": fiber.Map{
			string(fees.PayoutStandard): schedule.Payout(fees.PayoutStandard),
			string(fees.PayoutInstant):  schedule.Payout(fees.PayoutInstant),
		},
		"default_platform_fee_percentage": h.calculator.DefaultPlatformFee(),
	})
}

// GetMethod returns the fee of a single payment method. Unknown methods
// report the default entry they are priced at.
func (h *FeeHandler) GetMethod(c *fiber.Ctx) error {
	method := fees.ParsePaymentMethod(c.Params("method"))
	key, fs := h.calculator.Schedule().Resolve(method.Key)

	return response.Success(c, "Payment method fee", fiber.Map{
		"requested": method.String(),
		"known":     method.Known(),
		"fee":       h.describe(key, fs),
	})
}

// NetAmount estimates what the connected account receives
func (h *FeeHandler) NetAmount(c *fiber.Ctx) error {
	var input struct {
		AmountCents           int64 `json:"amount_cents"`
		ApplicationFeeCents   int64 `json:"application_fee_cents"`
		PaymentMethodFeeCents int64 `json:"payment_method_fee_cents"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.NetAmount(input.AmountCents, input.ApplicationFeeCents, input.PaymentMethodFeeCents)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	return response.Success(c, "Net amount", fiber.Map{
		"net_amount_cents": fees.CalculateNetAmount(input.AmountCents, input.ApplicationFeeCents, input.PaymentMethodFeeCents),
	})
}

// Quote previews the fee split for the caller's business
func (h *FeeHandler) Quote(c *fiber.Ctx) error {
	claims, err := utils.GetBusinessClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req payment.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.FeeQuote(&req)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	req.BusinessID = claims.BusinessID
	q, err := h.payments.Quote(c.UserContext(), req)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}

	return response.Success(c, "Fee quote", q)
}
