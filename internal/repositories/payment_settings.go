package repositories

import (
	"context"
	"errors"

	"salonpay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentSettingsRepository interface {
	GetByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error)
	Upsert(ctx context.Context, settings *models.PaymentSettings) error
}

type paymentSettingsRepository struct {
	db *gorm.DB
}

func NewPaymentSettingsRepository(db *gorm.DB) PaymentSettingsRepository {
	return &paymentSettingsRepository{db: db}
}

func (r *paymentSettingsRepository) GetByBusinessID(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	err := r.db.WithContext(ctx).Where("business_id = ?", businessID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert inserts the settings or updates the row of the same business.
func (r *paymentSettingsRepository) Upsert(ctx context.Context, settings *models.PaymentSettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "business_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"platform_fee_percentage",
			"payout_option",
			"stripe_account_id",
			"currency",
			"updated_at",
		}),
	}).Create(settings).Error
}
