package settings

import "errors"

var (
	ErrSettingsNotFound  = errors.New("payment settings not found")
	ErrInvalidPercentage = errors.New("platform fee percentage must be between 0 and 1")
	ErrInvalidCurrency   = errors.New("currency must be a three-letter ISO code")
)
