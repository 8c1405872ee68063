package payment

import "errors"

var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrMissingBookingID     = errors.New("booking id is required")
	ErrFeeExceedsAmount     = errors.New("application fee must be less than the charge amount")
	ErrStripeAccountMissing = errors.New("business has no connected stripe account")
	ErrPaymentNotFound      = errors.New("booking payment not found")
	ErrProcessorFailed      = errors.New("payment processor request failed")
)
