package handlers

import (
	"errors"

	"salonpay/internal/services/fees"
	"salonpay/internal/services/payment"
	"salonpay/internal/services/settings"
	"salonpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// handleServiceError maps service sentinels onto HTTP statuses.
func handleServiceError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, fees.ErrInvalidAmount),
		errors.Is(err, fees.ErrInvalidPercentage),
		errors.Is(err, fees.ErrInvalidPayoutOption),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrMissingBookingID),
		errors.Is(err, payment.ErrFeeExceedsAmount),
		errors.Is(err, settings.ErrInvalidPercentage),
		errors.Is(err, settings.ErrInvalidCurrency):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, payment.ErrPaymentNotFound),
		errors.Is(err, settings.ErrSettingsNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, payment.ErrStripeAccountMissing):
		return response.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, payment.ErrProcessorFailed):
		logger.Warn("processor error", zap.String("path", c.Path()), zap.Error(err))
		return response.Error(c, fiber.StatusBadGateway, payment.ErrProcessorFailed.Error())
	default:
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return response.ServerError(c, "internal server error")
	}
}
