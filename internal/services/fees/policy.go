package fees

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Schedule is an immutable fee policy table. Build one with NewSchedule or
// use DefaultSchedule; there is no way to change it afterwards.
type Schedule struct {
	methods map[MethodKey]FeeStructure
	payouts map[PayoutOption]int64
}

// NewSchedule validates and copies the given tables. The method table must
// contain MethodDefault and the payout table must cover every PayoutOption.
func NewSchedule(methods map[MethodKey]FeeStructure, payouts map[PayoutOption]int64) (*Schedule, error) {
	if _, ok := methods[MethodDefault]; !ok {
		return nil, ErrMissingDefaultFee
	}

	s := &Schedule{
		methods: make(map[MethodKey]FeeStructure, len(methods)),
		payouts: make(map[PayoutOption]int64, 2),
	}
	for key, fs := range methods {
		if fs.Percent.IsNegative() || fs.Fixed < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFeeStructure, key)
		}
		s.methods[key] = fs
	}
	for _, opt := range []PayoutOption{PayoutStandard, PayoutInstant} {
		fee, ok := payouts[opt]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPayoutFee, opt)
		}
		if fee < 0 {
			return nil, fmt.Errorf("%w: payout %s", ErrInvalidFeeStructure, opt)
		}
		s.payouts[opt] = fee
	}
	return s, nil
}

var defaultSchedule = mustSchedule(
	map[MethodKey]FeeStructure{
		MethodCard:              {Percent: decimal.RequireFromString("0.015"), Fixed: 25},
		MethodCardInternational: {Percent: decimal.RequireFromString("0.0325"), Fixed: 25},
		MethodIDEAL:             {Percent: decimal.Zero, Fixed: 29},
		MethodBancontact:        {Percent: decimal.Zero, Fixed: 35},
		MethodKlarna:            {Percent: decimal.RequireFromString("0.0399"), Fixed: 35},
		MethodSEPADebit:         {Percent: decimal.Zero, Fixed: 35},
		MethodSofort:            {Percent: decimal.RequireFromString("0.014"), Fixed: 25},
		MethodGiropay:           {Percent: decimal.RequireFromString("0.014"), Fixed: 25},
		MethodEPS:               {Percent: decimal.RequireFromString("0.016"), Fixed: 25},
		MethodP24:               {Percent: decimal.RequireFromString("0.022"), Fixed: 30},
		MethodDefault:           {Percent: decimal.RequireFromString("0.015"), Fixed: 25},
	},
	map[PayoutOption]int64{
		PayoutStandard: 25,
		PayoutInstant:  35,
	},
)

func mustSchedule(methods map[MethodKey]FeeStructure, payouts map[PayoutOption]int64) *Schedule {
	s, err := NewSchedule(methods, payouts)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSchedule returns the compiled-in EUR fee schedule.
func DefaultSchedule() *Schedule {
	return defaultSchedule
}

// Method returns the fee structure for key, falling back to the default entry.
// Unknown methods are priced like a domestic card.
func (s *Schedule) Method(key MethodKey) FeeStructure {
	_, fs := s.Resolve(key)
	return fs
}

// Resolve returns the schedule key that prices key and its fee structure.
func (s *Schedule) Resolve(key MethodKey) (MethodKey, FeeStructure) {
	if fs, ok := s.methods[key]; ok {
		return key, fs
	}
	return MethodDefault, s.methods[MethodDefault]
}

// Payout returns the fixed payout surcharge in cents.
func (s *Schedule) Payout(option PayoutOption) int64 {
	return s.payouts[option]
}

// Methods returns a copy of the method table.
func (s *Schedule) Methods() map[MethodKey]FeeStructure {
	out := make(map[MethodKey]FeeStructure, len(s.methods))
	for k, v := range s.methods {
		out[k] = v
	}
	return out
}
