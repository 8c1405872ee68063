package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"salonpay/internal/models"
	"salonpay/internal/repositories"
	"salonpay/internal/services/fees"
	"salonpay/internal/services/settings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds defaults for businesses without their own settings.
type Config struct {
	Currency           string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
}

type service struct {
	settings   SettingsProvider
	repo       repositories.BookingPaymentRepository
	gateway    Gateway
	calculator *fees.Calculator
	cfg        Config
	logger     *zap.Logger
}

// NewService creates a new booking payment service
func NewService(
	settingsProvider SettingsProvider,
	repo repositories.BookingPaymentRepository,
	gateway Gateway,
	calculator *fees.Calculator,
	cfg Config,
	logger *zap.Logger,
) Service {
	if calculator == nil {
		calculator = fees.NewCalculator(nil)
	}
	if cfg.Currency == "" {
		cfg.Currency = "eur"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		settings:   settingsProvider,
		repo:       repo,
		gateway:    gateway,
		calculator: calculator,
		cfg:        cfg,
		logger:     logger.Named("payment"),
	}
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	q, _, err := s.quote(ctx, req)
	return q, err
}

// quote loads the business settings and runs the fee calculation. Businesses
// without settings are quoted with the platform defaults.
func (s *service) quote(ctx context.Context, req QuoteRequest) (*Quote, *models.PaymentSettings, error) {
	ps, err := s.settings.Get(ctx, req.BusinessID)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		ps = &models.PaymentSettings{
			BusinessID:   req.BusinessID,
			PayoutOption: string(fees.PayoutStandard),
			Currency:     s.cfg.Currency,
		}
	} else if err != nil {
		return nil, nil, err
	}

	payoutRaw := req.PayoutOption
	if strings.TrimSpace(payoutRaw) == "" {
		payoutRaw = ps.PayoutOption
	}
	payout, err := fees.ParsePayoutOption(payoutRaw)
	if err != nil {
		return nil, nil, err
	}

	method := fees.ParsePaymentMethod(req.PaymentMethod)
	params := fees.Params{
		AmountCents:   req.AmountCents,
		PaymentMethod: method,
		PayoutOption:  payout,
	}
	if ps.PlatformFeePercentage.Valid {
		pct := ps.PlatformFeePercentage.Decimal
		params.PlatformFeePercentage = &pct
	}

	res, err := s.calculator.CalculateApplicationFee(params)
	if err != nil {
		return nil, nil, err
	}

	currency := ps.Currency
	if currency == "" {
		currency = s.cfg.Currency
	}

	return &Quote{
		Result:                  res,
		AmountCents:             req.AmountCents,
		Currency:                currency,
		PaymentMethod:           method.String(),
		PayoutOption:            payout,
		NetAmountCents:          fees.CalculateNetAmount(req.AmountCents, res.ApplicationFeeCents, res.PaymentMethodFeeCents),
		PaymentMethodFeeDisplay: s.calculator.PaymentMethodFeeDisplayIn(method, currency),
	}, ps, nil
}

// prepare validates a charge request and quotes it against a business that
// can receive destination charges.
func (s *service) prepare(ctx context.Context, req BookingPaymentRequest) (*Quote, *models.PaymentSettings, DestinationCharge, error) {
	if strings.TrimSpace(req.BookingID) == "" {
		return nil, nil, DestinationCharge{}, ErrMissingBookingID
	}
	if req.AmountCents <= 0 {
		return nil, nil, DestinationCharge{}, ErrInvalidAmount
	}

	q, ps, err := s.quote(ctx, QuoteRequest{
		BusinessID:    req.BusinessID,
		AmountCents:   req.AmountCents,
		PaymentMethod: req.PaymentMethod,
		PayoutOption:  req.PayoutOption,
	})
	if err != nil {
		return nil, nil, DestinationCharge{}, err
	}
	if ps.StripeAccountID == "" {
		return nil, nil, DestinationCharge{}, ErrStripeAccountMissing
	}
	// Stripe rejects an application fee that is not below the charge amount.
	if q.ApplicationFeeCents >= req.AmountCents {
		return nil, nil, DestinationCharge{}, ErrFeeExceedsAmount
	}

	charge := DestinationCharge{
		AmountCents:         req.AmountCents,
		Currency:            q.Currency,
		ApplicationFeeCents: q.ApplicationFeeCents,
		DestinationAccount:  ps.StripeAccountID,
		PaymentMethodTypes:  []string{stripeMethodType(q.Breakdown.PaymentMethod)},
		Description:         req.Description,
		Metadata: map[string]string{
			"booking_id":         req.BookingID,
			"business_id":        req.BusinessID.String(),
			"platform_fee_cents": strconv.FormatInt(q.PlatformFeeCents, 10),
			"payout_fee_cents":   strconv.FormatInt(q.PayoutFeeCents, 10),
			"payout_option":      string(q.PayoutOption),
			"requested_method":   q.PaymentMethod,
		},
	}
	return q, ps, charge, nil
}

func (s *service) CreateBookingPayment(ctx context.Context, req BookingPaymentRequest) (*BookingPaymentResponse, error) {
	q, ps, charge, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	charge.IdempotencyKey = idempotencyKey(models.BookingPaymentKindIntent, req, q)

	intent, err := s.gateway.CreatePaymentIntent(ctx, charge)
	if err != nil {
		s.logger.Error("payment intent creation failed",
			zap.String("business_id", req.BusinessID.String()),
			zap.String("booking_id", req.BookingID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrProcessorFailed, err)
	}

	record := newRecord(models.BookingPaymentKindIntent, req, q, ps)
	record.StripeObjectID = intent.ID
	record.Status = intent.Status
	if err := s.save(ctx, record); err != nil {
		return nil, err
	}

	return &BookingPaymentResponse{
		Payment:      record,
		ClientSecret: intent.ClientSecret,
		Quote:        q,
	}, nil
}

func (s *service) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	q, ps, charge, err := s.prepare(ctx, req.BookingPaymentRequest)
	if err != nil {
		return nil, err
	}
	charge.IdempotencyKey = idempotencyKey(models.BookingPaymentKindCheckout, req.BookingPaymentRequest, q)

	name := strings.TrimSpace(req.ServiceName)
	if name == "" {
		name = "Booking " + req.BookingID
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, CheckoutCharge{
		DestinationCharge: charge,
		ProductName:       name,
		CustomerEmail:     req.CustomerEmail,
		SuccessURL:        s.cfg.CheckoutSuccessURL,
		CancelURL:         s.cfg.CheckoutCancelURL,
	})
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("business_id", req.BusinessID.String()),
			zap.String("booking_id", req.BookingID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrProcessorFailed, err)
	}

	record := newRecord(models.BookingPaymentKindCheckout, req.BookingPaymentRequest, q, ps)
	record.StripeObjectID = sess.ID
	record.Status = "open"
	if err := s.save(ctx, record); err != nil {
		return nil, err
	}

	return &CheckoutResponse{
		Payment:     record,
		CheckoutURL: sess.URL,
		Quote:       q,
	}, nil
}

func (s *service) GetBookingPayment(ctx context.Context, businessID, id uuid.UUID) (*models.BookingPayment, error) {
	p, err := s.repo.GetByID(ctx, businessID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking payment: %w", err)
	}
	return p, nil
}

func (s *service) ListBookingPayments(ctx context.Context, businessID uuid.UUID, bookingID string) ([]models.BookingPayment, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, ErrMissingBookingID
	}
	payments, err := s.repo.ListByBooking(ctx, businessID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking payments: %w", err)
	}
	return payments, nil
}

// save persists record. A retried request that Stripe answered with the
// original object reuses the row already stored for it.
func (s *service) save(ctx context.Context, record *models.BookingPayment) error {
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		s.logger.Error("failed to persist booking payment",
			zap.String("stripe_object_id", record.StripeObjectID),
			zap.String("booking_id", record.BookingID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save booking payment: %w", err)
	}

	if !created {
		s.logger.Info("booking payment already recorded",
			zap.String("id", record.ID.String()),
			zap.String("stripe_object_id", record.StripeObjectID),
		)
		return nil
	}

	s.logger.Info("booking payment created",
		zap.String("id", record.ID.String()),
		zap.String("kind", record.Kind),
		zap.String("business_id", record.BusinessID.String()),
		zap.Int64("amount_cents", record.AmountCents),
		zap.Int64("application_fee_cents", record.ApplicationFeeCents),
	)
	return nil
}

func newRecord(kind string, req BookingPaymentRequest, q *Quote, ps *models.PaymentSettings) *models.BookingPayment {
	return &models.BookingPayment{
		ID:                    uuid.New(),
		BusinessID:            req.BusinessID,
		BookingID:             req.BookingID,
		Kind:                  kind,
		StripeAccountID:       ps.StripeAccountID,
		Currency:              q.Currency,
		PaymentMethod:         q.PaymentMethod,
		PayoutOption:          string(q.PayoutOption),
		AmountCents:           q.AmountCents,
		ApplicationFeeCents:   q.ApplicationFeeCents,
		PlatformFeeCents:      q.PlatformFeeCents,
		PaymentMethodFeeCents: q.PaymentMethodFeeCents,
		PayoutFeeCents:        q.PayoutFeeCents,
		NetAmountCents:        q.NetAmountCents,
		PlatformFeePercentage: q.Breakdown.PlatformFeePercentage,
		Metadata: models.JSON{
			"method_percent":     q.Breakdown.MethodPercent.String(),
			"method_fixed_cents": q.Breakdown.MethodFixedCents,
			"fee_display":        q.PaymentMethodFeeDisplay,
		},
	}
}

// idempotencyKey is stable for the same booking charge and fee split, so a
// retried request maps onto the original processor object. A changed payout
// option or platform fee changes the application fee and yields a new key.
func idempotencyKey(kind string, req BookingPaymentRequest, q *Quote) string {
	name := fmt.Sprintf("%s:%s:%s:%d:%s:%s:%d:%d", kind, req.BusinessID, req.BookingID, req.AmountCents,
		strings.ToLower(strings.TrimSpace(req.PaymentMethod)),
		q.PayoutOption, q.PlatformFeeCents, q.ApplicationFeeCents)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// stripeMethodType maps a fee schedule key to a Stripe payment method type.
// Both card keys and anything priced as default are charged as "card".
func stripeMethodType(key fees.MethodKey) string {
	switch key {
	case fees.MethodIDEAL, fees.MethodBancontact, fees.MethodKlarna, fees.MethodSEPADebit,
		fees.MethodSofort, fees.MethodGiropay, fees.MethodEPS, fees.MethodP24:
		return string(key)
	default:
		return "card"
	}
}
