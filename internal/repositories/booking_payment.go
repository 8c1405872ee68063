package repositories

import (
	"context"
	"errors"

	"salonpay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingPaymentRepository interface {
	Create(ctx context.Context, payment *models.BookingPayment) (bool, error)
	GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.BookingPayment, error)
	ListByBooking(ctx context.Context, businessID uuid.UUID, bookingID string) ([]models.BookingPayment, error)
}

type bookingPaymentRepository struct {
	db *gorm.DB
}

func NewBookingPaymentRepository(db *gorm.DB) BookingPaymentRepository {
	return &bookingPaymentRepository{db: db}
}

// Create inserts payment unless a row for the same processor object exists.
// In that case payment is replaced by the stored row and created is false.
func (r *bookingPaymentRepository) Create(ctx context.Context, payment *models.BookingPayment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_object_id"}},
			DoNothing: true,
		}).
		Create(payment)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var existing models.BookingPayment
	err := r.db.WithContext(ctx).
		Where("stripe_object_id = ?", payment.StripeObjectID).
		First(&existing).Error
	if err != nil {
		return false, err
	}
	*payment = existing
	return false, nil
}

// GetByID scopes the lookup to the business so tenants cannot read each other's payments.
func (r *bookingPaymentRepository) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.BookingPayment, error) {
	var payment models.BookingPayment
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *bookingPaymentRepository) ListByBooking(ctx context.Context, businessID uuid.UUID, bookingID string) ([]models.BookingPayment, error) {
	var payments []models.BookingPayment
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND booking_id = ?", businessID, bookingID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
