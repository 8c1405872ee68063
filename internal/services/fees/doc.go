/*
Package fees computes the platform's application fee for destination charges.

A charge is split into three components, each rounded to whole cents on its own:

  - platform fee: amount times the business's platform fee percentage
    (1.9% unless configured otherwise)
  - payout fee: a flat surcharge for standard or instant payouts
  - payment method fee: an estimate of what the processor keeps for the
    method used; reported only, never added to the application fee

The application fee is the platform fee plus the payout fee.

Usage:

	calc := fees.NewCalculator(fees.DefaultSchedule())

	res, err := calc.CalculateApplicationFee(fees.Params{
	    AmountCents:   10000,
	    PaymentMethod: fees.ParsePaymentMethod("iDEAL"),
	    PayoutOption:  fees.PayoutStandard,
	})
	// res.ApplicationFeeCents == 215

	net := fees.CalculateNetAmount(10000, res.ApplicationFeeCents, res.PaymentMethodFeeCents)

Method names are normalized once with ParsePaymentMethod. Names the schedule
does not know are priced with its default entry.

Errors:

  - ErrInvalidAmount: negative amount
  - ErrInvalidPercentage: platform fee percentage outside [0, 1]
  - ErrInvalidPayoutOption: payout option other than standard or instant
*/
package fees
