package handlers

import (
	"salonpay/internal/services/settings"
	"salonpay/internal/utils"
	"salonpay/internal/utils/response"
	"salonpay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	service settings.Service
	logger  *zap.Logger
}

func NewSettingsHandler(service settings.Service, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{service: service, logger: logger}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	claims, err := utils.GetBusinessClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	ps, err := h.service.Get(c.UserContext(), claims.BusinessID)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return response.Success(c, "Payment settings", ps)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	claims, err := utils.GetBusinessClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		PlatformFeePercentage *decimal.Decimal `json:"platform_fee_percentage"`
		PayoutOption          string           `json:"payout_option"`
		StripeAccountID       string           `json:"stripe_account_id"`
		Currency              string           `json:"currency"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	update := settings.UpdateInput{
		BusinessID:            claims.BusinessID,
		PlatformFeePercentage: input.PlatformFeePercentage,
		PayoutOption:          input.PayoutOption,
		StripeAccountID:       input.StripeAccountID,
		Currency:              input.Currency,
	}

	v := validation.New()
	v.PaymentSettings(&update)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	ps, err := h.service.Upsert(c.UserContext(), update)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return response.Success(c, "Payment settings updated", ps)
}
