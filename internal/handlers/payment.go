package handlers

import (
	"salonpay/internal/services/payment"
	"salonpay/internal/utils"
	"salonpay/internal/utils/response"
	"salonpay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service payment.Service
	logger  *zap.Logger
}

func NewPaymentHandler(service payment.Service, logger *zap.Logger) *PaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentHandler{service: service, logger: logger}
}

// CreateIntent creates a destination-charge PaymentIntent for a booking
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	claims, err := utils.GetBusinessClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req payment.BookingPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.BookingPayment(&req)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	req.BusinessID = claims.BusinessID
	resp, err := h.service.CreateBookingPayment(c.UserContext(), req)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return response.Created(c, "Payment created", resp)
}

// CreateCheckout creates a hosted Checkout Session for a booking
func (h *PaymentHandler) CreateCheckout(c *fiber.Ctx) error {
	claims, err := utils.GetBusinessClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var req payment.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Checkout(&req)
	if !v.Valid() {
		return response.ValidationErrors(c, v.Errors)
	}

	req.BusinessID = claims.BusinessID
	resp, err := h.service.CreateCheckout(c.UserContext(), req)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return response.Created(c, "Checkout created", resp)
}

func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	claims, err := utils.GetBusinessClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	p, err := h.service.GetBookingPayment(c.UserContext(), claims.BusinessID, id)
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return response.Success(c, "Booking payment", p)
}

func (h *PaymentHandler) ListBookingPayments(c *fiber.Ctx) error {
	claims, err := utils.GetBusinessClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	payments, err := h.service.ListBookingPayments(c.UserContext(), claims.BusinessID, c.Params("bookingId"))
	if err != nil {
		return handleServiceError(c, h.logger, err)
	}
	return response.Success(c, "Booking payments", payments)
}
