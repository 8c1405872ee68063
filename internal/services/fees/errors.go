package fees

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount: must not be negative")
	ErrInvalidPercentage   = errors.New("invalid platform fee percentage: must be between 0 and 1")
	ErrInvalidPayoutOption = errors.New("invalid payout option: must be standard or instant")
	ErrMissingDefaultFee   = errors.New("fee schedule has no default entry")
	ErrMissingPayoutFee    = errors.New("fee schedule is missing a payout option")
	ErrInvalidFeeStructure = errors.New("invalid fee structure: percent and fixed must not be negative")
)
