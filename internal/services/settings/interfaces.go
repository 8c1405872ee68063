package settings

import (
	"context"

	"salonpay/internal/models"

	"github.com/google/uuid"
)

// Service reads and writes per-business payment settings.
type Service interface {
	Get(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error)
	Upsert(ctx context.Context, input UpdateInput) (*models.PaymentSettings, error)
}

// Cache is the subset of the Redis cache service used for settings.
type Cache interface {
	GetSettings(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error)
	CacheSettings(ctx context.Context, settings *models.PaymentSettings) error
	InvalidateSettings(ctx context.Context, businessID uuid.UUID) error
}
