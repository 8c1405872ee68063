package payment

import (
	"context"
	"errors"
	"testing"

	"salonpay/internal/models"
	"salonpay/internal/repositories"
	"salonpay/internal/services/fees"
	"salonpay/internal/services/settings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettings struct {
	mock.Mock
}

func (m *MockSettings) Get(ctx context.Context, businessID uuid.UUID) (*models.PaymentSettings, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentSettings), args.Error(1)
}

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) Create(ctx context.Context, payment *models.BookingPayment) (bool, error) {
	args := m.Called(ctx, payment)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) GetByID(ctx context.Context, businessID, id uuid.UUID) (*models.BookingPayment, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingPayment), args.Error(1)
}

func (m *MockRepo) ListByBooking(ctx context.Context, businessID uuid.UUID, bookingID string) ([]models.BookingPayment, error) {
	args := m.Called(ctx, businessID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingPayment), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePaymentIntent(ctx context.Context, charge DestinationCharge) (*IntentResult, error) {
	args := m.Called(ctx, charge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IntentResult), args.Error(1)
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, charge CheckoutCharge) (*CheckoutResult, error) {
	args := m.Called(ctx, charge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutResult), args.Error(1)
}

func connectedSettings(businessID uuid.UUID) *models.PaymentSettings {
	return &models.PaymentSettings{
		BusinessID:      businessID,
		PayoutOption:    "standard",
		StripeAccountID: "acct_salon",
		Currency:        "eur",
	}
}

func newTestService(st *MockSettings, repo *MockRepo, gw *MockGateway) Service {
	return NewService(st, repo, gw, fees.NewCalculator(nil), Config{
		Currency:           "eur",
		CheckoutSuccessURL: "https://app.example/success",
		CheckoutCancelURL:  "https://app.example/cancel",
	}, nil)
}

func TestPaymentService_Quote(t *testing.T) {
	businessID := uuid.New()
	custom := connectedSettings(businessID)
	custom.PayoutOption = "instant"
	custom.PlatformFeePercentage = decimal.NewNullDecimal(decimal.RequireFromString("0.025"))

	tests := []struct {
		name      string
		req       QuoteRequest
		setupMock func(*MockSettings)
		check     func(*testing.T, *Quote)
		wantErr   error
	}{
		{
			name: "business settings apply",
			req:  QuoteRequest{BusinessID: businessID, AmountCents: 10000, PaymentMethod: "iDEAL"},
			setupMock: func(st *MockSettings) {
				st.On("Get", mock.Anything, businessID).Return(custom, nil)
			},
			check: func(t *testing.T, q *Quote) {
				assert.Equal(t, int64(250), q.PlatformFeeCents)
				assert.Equal(t, int64(35), q.PayoutFeeCents)
				assert.Equal(t, int64(285), q.ApplicationFeeCents)
				assert.Equal(t, int64(29), q.PaymentMethodFeeCents)
				assert.Equal(t, int64(10000-285-29), q.NetAmountCents)
				assert.Equal(t, "€0.29", q.PaymentMethodFeeDisplay)
				assert.Equal(t, "ideal", q.PaymentMethod)
				assert.Equal(t, fees.PayoutInstant, q.PayoutOption)
			},
		},
		{
			name: "defaults without settings",
			req:  QuoteRequest{BusinessID: businessID, AmountCents: 10000, PaymentMethod: "klarna"},
			setupMock: func(st *MockSettings) {
				st.On("Get", mock.Anything, businessID).Return(nil, settings.ErrSettingsNotFound)
			},
			check: func(t *testing.T, q *Quote) {
				assert.Equal(t, int64(190), q.PlatformFeeCents)
				assert.Equal(t, int64(215), q.ApplicationFeeCents)
				assert.Equal(t, int64(434), q.PaymentMethodFeeCents)
				assert.Equal(t, "eur", q.Currency)
			},
		},
		{
			name: "payout override",
			req:  QuoteRequest{BusinessID: businessID, AmountCents: 10000, PaymentMethod: "ideal", PayoutOption: "instant"},
			setupMock: func(st *MockSettings) {
				st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
			},
			check: func(t *testing.T, q *Quote) {
				assert.Equal(t, int64(225), q.ApplicationFeeCents)
			},
		},
		{
			name: "unknown method keeps raw name",
			req:  QuoteRequest{BusinessID: businessID, AmountCents: 0, PaymentMethod: "Bitcoin"},
			setupMock: func(st *MockSettings) {
				st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
			},
			check: func(t *testing.T, q *Quote) {
				assert.Equal(t, "Bitcoin", q.PaymentMethod)
				assert.Equal(t, fees.MethodDefault, q.Breakdown.PaymentMethod)
				assert.Equal(t, int64(25), q.ApplicationFeeCents)
				assert.Equal(t, int64(25), q.PaymentMethodFeeCents)
			},
		},
		{
			name: "display follows business currency",
			req:  QuoteRequest{BusinessID: businessID, AmountCents: 10000, PaymentMethod: "card"},
			setupMock: func(st *MockSettings) {
				usd := connectedSettings(businessID)
				usd.Currency = "usd"
				st.On("Get", mock.Anything, businessID).Return(usd, nil)
			},
			check: func(t *testing.T, q *Quote) {
				assert.Equal(t, "usd", q.Currency)
				assert.Equal(t, "1.5% + $0.25", q.PaymentMethodFeeDisplay)
			},
		},
		{
			name: "negative amount",
			req:  QuoteRequest{BusinessID: businessID, AmountCents: -5, PaymentMethod: "card"},
			setupMock: func(st *MockSettings) {
				st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
			},
			wantErr: fees.ErrInvalidAmount,
		},
		{
			name: "invalid payout override",
			req:  QuoteRequest{BusinessID: businessID, AmountCents: 100, PaymentMethod: "card", PayoutOption: "weekly"},
			setupMock: func(st *MockSettings) {
				st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
			},
			wantErr: fees.ErrInvalidPayoutOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(MockSettings)
			tt.setupMock(st)

			s := newTestService(st, new(MockRepo), new(MockGateway))
			q, err := s.Quote(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				tt.check(t, q)
			}
			st.AssertExpectations(t)
		})
	}
}

func TestPaymentService_Quote_SettingsError(t *testing.T) {
	st := new(MockSettings)
	st.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	s := newTestService(st, new(MockRepo), new(MockGateway))
	_, err := s.Quote(context.Background(), QuoteRequest{BusinessID: uuid.New(), AmountCents: 100})
	assert.EqualError(t, err, "db down")
}

func TestPaymentService_CreateBookingPayment(t *testing.T) {
	businessID := uuid.New()
	req := BookingPaymentRequest{
		BusinessID:    businessID,
		BookingID:     "bk_42",
		AmountCents:   10000,
		PaymentMethod: "ideal",
		Description:   "Haircut",
	}

	st := new(MockSettings)
	repo := new(MockRepo)
	gw := new(MockGateway)

	st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
	gw.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(c DestinationCharge) bool {
		return c.AmountCents == 10000 &&
			c.ApplicationFeeCents == 215 &&
			c.DestinationAccount == "acct_salon" &&
			c.Currency == "eur" &&
			len(c.PaymentMethodTypes) == 1 && c.PaymentMethodTypes[0] == "ideal" &&
			c.IdempotencyKey != "" &&
			c.Metadata["booking_id"] == "bk_42"
	})).Return(&IntentResult{ID: "pi_123", ClientSecret: "pi_123_secret", Status: "requires_payment_method"}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.BookingPayment) bool {
		return p.BusinessID == businessID &&
			p.BookingID == "bk_42" &&
			p.Kind == models.BookingPaymentKindIntent &&
			p.StripeObjectID == "pi_123" &&
			p.ApplicationFeeCents == 215 &&
			p.PlatformFeeCents == 190 &&
			p.PayoutFeeCents == 25 &&
			p.PaymentMethodFeeCents == 29 &&
			p.NetAmountCents == 9756
	})).Return(true, nil)

	s := newTestService(st, repo, gw)
	resp, err := s.CreateBookingPayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pi_123_secret", resp.ClientSecret)
	assert.Equal(t, "requires_payment_method", resp.Payment.Status)
	assert.NotEqual(t, uuid.Nil, resp.Payment.ID)
	assert.Equal(t, int64(215), resp.Quote.ApplicationFeeCents)

	st.AssertExpectations(t)
	repo.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestPaymentService_CreateBookingPayment_Errors(t *testing.T) {
	businessID := uuid.New()
	valid := BookingPaymentRequest{BusinessID: businessID, BookingID: "bk_1", AmountCents: 5000, PaymentMethod: "card"}

	tests := []struct {
		name      string
		req       BookingPaymentRequest
		setupMock func(*MockSettings, *MockRepo, *MockGateway)
		wantErr   error
	}{
		{
			name:      "missing booking id",
			req:       BookingPaymentRequest{BusinessID: businessID, AmountCents: 5000},
			setupMock: func(*MockSettings, *MockRepo, *MockGateway) {},
			wantErr:   ErrMissingBookingID,
		},
		{
			name:      "zero amount",
			req:       BookingPaymentRequest{BusinessID: businessID, BookingID: "bk_1"},
			setupMock: func(*MockSettings, *MockRepo, *MockGateway) {},
			wantErr:   ErrInvalidAmount,
		},
		{
			name: "application fee not below amount",
			req:  BookingPaymentRequest{BusinessID: businessID, BookingID: "bk_1", AmountCents: 10, PaymentMethod: "ideal"},
			setupMock: func(st *MockSettings, _ *MockRepo, _ *MockGateway) {
				st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
			},
			wantErr: ErrFeeExceedsAmount,
		},
		{
			name: "no connected account",
			req:  valid,
			setupMock: func(st *MockSettings, _ *MockRepo, _ *MockGateway) {
				st.On("Get", mock.Anything, businessID).Return(nil, settings.ErrSettingsNotFound)
			},
			wantErr: ErrStripeAccountMissing,
		},
		{
			name: "processor failure",
			req:  valid,
			setupMock: func(st *MockSettings, _ *MockRepo, gw *MockGateway) {
				st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
				gw.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(nil, errors.New("card_declined"))
			},
			wantErr: ErrProcessorFailed,
		},
		{
			name: "persist failure",
			req:  valid,
			setupMock: func(st *MockSettings, repo *MockRepo, gw *MockGateway) {
				st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
				gw.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(&IntentResult{ID: "pi_1"}, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(false, repositories.ErrNotFound)
			},
			wantErr: repositories.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, repo, gw := new(MockSettings), new(MockRepo), new(MockGateway)
			tt.setupMock(st, repo, gw)

			s := newTestService(st, repo, gw)
			_, err := s.CreateBookingPayment(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			st.AssertExpectations(t)
			repo.AssertExpectations(t)
			gw.AssertExpectations(t)
		})
	}
}

func TestPaymentService_CreateCheckout(t *testing.T) {
	businessID := uuid.New()
	st, repo, gw := new(MockSettings), new(MockRepo), new(MockGateway)

	st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
	gw.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(c CheckoutCharge) bool {
		return c.ProductName == "Booking bk_7" &&
			c.SuccessURL == "https://app.example/success" &&
			c.CancelURL == "https://app.example/cancel" &&
			c.CustomerEmail == "client@example.com" &&
			c.ApplicationFeeCents == 225 &&
			c.PaymentMethodTypes[0] == "card"
	})).Return(&CheckoutResult{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.BookingPayment) bool {
		return p.Kind == models.BookingPaymentKindCheckout && p.StripeObjectID == "cs_1" && p.Status == "open"
	})).Return(true, nil)

	s := newTestService(st, repo, gw)
	resp, err := s.CreateCheckout(context.Background(), CheckoutRequest{
		BookingPaymentRequest: BookingPaymentRequest{
			BusinessID:    businessID,
			BookingID:     "bk_7",
			AmountCents:   10000,
			PaymentMethod: "visa",
			PayoutOption:  "instant",
		},
		CustomerEmail: "client@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_1", resp.CheckoutURL)

	st.AssertExpectations(t)
	repo.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestPaymentService_GetBookingPayment(t *testing.T) {
	businessID, id := uuid.New(), uuid.New()

	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, businessID, id).Return(nil, repositories.ErrNotFound).Once()
	repo.On("GetByID", mock.Anything, businessID, id).Return(&models.BookingPayment{ID: id}, nil).Once()

	s := newTestService(new(MockSettings), repo, new(MockGateway))

	_, err := s.GetBookingPayment(context.Background(), businessID, id)
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	p, err := s.GetBookingPayment(context.Background(), businessID, id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	repo.AssertExpectations(t)
}

func TestPaymentService_ListBookingPayments(t *testing.T) {
	businessID := uuid.New()

	repo := new(MockRepo)
	repo.On("ListByBooking", mock.Anything, businessID, "bk_1").Return([]models.BookingPayment{{BookingID: "bk_1"}}, nil)

	s := newTestService(new(MockSettings), repo, new(MockGateway))

	_, err := s.ListBookingPayments(context.Background(), businessID, " ")
	assert.ErrorIs(t, err, ErrMissingBookingID)

	payments, err := s.ListBookingPayments(context.Background(), businessID, "bk_1")
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	repo.AssertExpectations(t)
}

func TestIdempotencyKey(t *testing.T) {
	req := BookingPaymentRequest{BusinessID: uuid.New(), BookingID: "bk_1", AmountCents: 100, PaymentMethod: "card"}
	standard := &Quote{
		Result:       fees.Result{ApplicationFeeCents: 27, PlatformFeeCents: 2, PayoutFeeCents: 25},
		PayoutOption: fees.PayoutStandard,
	}

	first := idempotencyKey(models.BookingPaymentKindIntent, req, standard)
	assert.Equal(t, first, idempotencyKey(models.BookingPaymentKindIntent, req, standard))
	assert.NotEqual(t, first, idempotencyKey(models.BookingPaymentKindCheckout, req, standard))

	instant := &Quote{
		Result:       fees.Result{ApplicationFeeCents: 37, PlatformFeeCents: 2, PayoutFeeCents: 35},
		PayoutOption: fees.PayoutInstant,
	}
	assert.NotEqual(t, first, idempotencyKey(models.BookingPaymentKindIntent, req, instant))

	higherPlatformFee := &Quote{
		Result:       fees.Result{ApplicationFeeCents: 28, PlatformFeeCents: 3, PayoutFeeCents: 25},
		PayoutOption: fees.PayoutStandard,
	}
	assert.NotEqual(t, first, idempotencyKey(models.BookingPaymentKindIntent, req, higherPlatformFee))

	req.AmountCents = 200
	assert.NotEqual(t, first, idempotencyKey(models.BookingPaymentKindIntent, req, standard))
}

func TestPaymentService_CreateBookingPayment_PayoutChangeUsesNewKey(t *testing.T) {
	businessID := uuid.New()
	req := BookingPaymentRequest{BusinessID: businessID, BookingID: "bk_3", AmountCents: 10000, PaymentMethod: "ideal"}

	st, repo, gw := new(MockSettings), new(MockRepo), new(MockGateway)
	st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(true, nil)

	var keys []string
	gw.On("CreatePaymentIntent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			keys = append(keys, args.Get(1).(DestinationCharge).IdempotencyKey)
		}).
		Return(&IntentResult{ID: "pi_1"}, nil)

	s := newTestService(st, repo, gw)
	_, err := s.CreateBookingPayment(context.Background(), req)
	require.NoError(t, err)

	req.PayoutOption = "instant"
	resp, err := s.CreateBookingPayment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(225), resp.Quote.ApplicationFeeCents)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

// memoryRepo keeps one row per processor object, like the unique index on
// stripe_object_id.
type memoryRepo struct {
	rows map[string]models.BookingPayment
}

func (r *memoryRepo) Create(_ context.Context, payment *models.BookingPayment) (bool, error) {
	if existing, ok := r.rows[payment.StripeObjectID]; ok {
		*payment = existing
		return false, nil
	}
	r.rows[payment.StripeObjectID] = *payment
	return true, nil
}

func (r *memoryRepo) GetByID(context.Context, uuid.UUID, uuid.UUID) (*models.BookingPayment, error) {
	return nil, repositories.ErrNotFound
}

func (r *memoryRepo) ListByBooking(_ context.Context, businessID uuid.UUID, bookingID string) ([]models.BookingPayment, error) {
	var out []models.BookingPayment
	for _, p := range r.rows {
		if p.BusinessID == businessID && p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestPaymentService_CreateBookingPayment_RetryReusesRecord(t *testing.T) {
	businessID := uuid.New()
	req := BookingPaymentRequest{BusinessID: businessID, BookingID: "bk_5", AmountCents: 10000, PaymentMethod: "ideal"}

	st, gw := new(MockSettings), new(MockGateway)
	repo := &memoryRepo{rows: map[string]models.BookingPayment{}}
	st.On("Get", mock.Anything, businessID).Return(connectedSettings(businessID), nil)
	gw.On("CreatePaymentIntent", mock.Anything, mock.Anything).
		Return(&IntentResult{ID: "pi_same", ClientSecret: "pi_same_secret", Status: "requires_payment_method"}, nil).
		Twice()

	s := NewService(st, repo, gw, fees.NewCalculator(nil), Config{Currency: "eur"}, nil)

	first, err := s.CreateBookingPayment(context.Background(), req)
	require.NoError(t, err)
	second, err := s.CreateBookingPayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Payment.ID, second.Payment.ID)
	assert.Equal(t, "pi_same_secret", second.ClientSecret)

	payments, err := s.ListBookingPayments(context.Background(), businessID, "bk_5")
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	gw.AssertExpectations(t)
}

func TestStripeMethodType(t *testing.T) {
	assert.Equal(t, "card", stripeMethodType(fees.MethodCard))
	assert.Equal(t, "card", stripeMethodType(fees.MethodCardInternational))
	assert.Equal(t, "card", stripeMethodType(fees.MethodDefault))
	assert.Equal(t, "ideal", stripeMethodType(fees.MethodIDEAL))
	assert.Equal(t, "p24", stripeMethodType(fees.MethodP24))
}
