package utils

import (
	"errors"

	"salonpay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetBusinessClaims extracts the business claims from the Fiber context.
// It returns an error if the claims are missing or of an invalid type.
func GetBusinessClaims(c *fiber.Ctx) (*models.BusinessClaims, error) {
	v := c.Locals("claims")
	if v == nil {
		return nil, errors.New("claims not found in context")
	}

	claims, ok := v.(*models.BusinessClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}
