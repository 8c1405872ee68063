package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"salonpay/internal/models"
	"salonpay/internal/repositories"
	"salonpay/internal/services/fees"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UpdateInput carries a settings change for one business. A nil
// PlatformFeePercentage clears the override.
type UpdateInput struct {
	BusinessID            uuid.UUID
	PlatformFeePercentage *decimal.Decimal
	PayoutOption          string
	StripeAccountID       string
	Currency              string
}

type service struct {
	repo   repositories.PaymentSettingsRepository
	cache  Cache
	logger *zap.Logger
}

func NewService(repo repositories.PaymentSettingsRepository, cache Cache, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("settings"),
	}
}

// Get reads through the cache. Cache failures are logged and fall back to the database.
func (s *service) Get(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSettings(ctx, businessID)
		if err != nil {
			s.logger.Warn("settings cache read failed", zap.String("business_id", businessID.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	settings, err := s.repo.GetByBusinessID(ctx, businessID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheSettings(ctx, settings); err != nil {
			s.logger.Warn("settings cache write failed", zap.String("business_id", businessID.String()), zap.Error(err))
		}
	}
	return settings, nil
}

func (s *service) Upsert(ctx context.Context, input UpdateInput) (*models.PaymentSettings, error) {
	payout, err := fees.ParsePayoutOption(input.PayoutOption)
	if err != nil {
		return nil, err
	}

	settings := &models.PaymentSettings{
		BusinessID:      input.BusinessID,
		PayoutOption:    string(payout),
		StripeAccountID: strings.TrimSpace(input.StripeAccountID),
		Currency:        strings.ToLower(strings.TrimSpace(input.Currency)),
	}
	if settings.Currency == "" {
		settings.Currency = "eur"
	}
	if len(settings.Currency) != 3 {
		return nil, ErrInvalidCurrency
	}
	if p := input.PlatformFeePercentage; p != nil {
		if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(1)) {
			return nil, ErrInvalidPercentage
		}
		settings.PlatformFeePercentage = decimal.NullDecimal{Decimal: *p, Valid: true}
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save payment settings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateSettings(ctx, input.BusinessID); err != nil {
			s.logger.Warn("settings cache invalidation failed", zap.String("business_id", input.BusinessID.String()), zap.Error(err))
		}
	}

	s.logger.Info("payment settings updated",
		zap.String("business_id", input.BusinessID.String()),
		zap.String("payout_option", settings.PayoutOption),
		zap.Bool("custom_platform_fee", settings.PlatformFeePercentage.Valid),
	)
	return settings, nil
}
