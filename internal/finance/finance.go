// Package finance implements the time-value-of-money primitives behind the
// benefit formulas: the spreadsheet-style PMT and PV functions under the
// standard sign convention, where cash paid out is negative. Both are exact
// algebraic evaluations with no iteration.
//
// The functions operate on float64 because the annuity algebra raises
// (1+rate) to fractional powers; money amounts are converted at the engine
// boundary.
package finance

import "math"

// Timing selects when payments fall within a period.
type Timing int

const (
	// End is an ordinary annuity: payments at period end.
	End Timing = 0
	// Due is an annuity-due: payments at period start. The engine always
	// uses Due.
	Due Timing = 1
)

// Payment returns the periodic payment that amortizes presentValue down to
// futureValue over the given number of periods at the given per-period rate.
// A zero rate degenerates to straight-line division. Periods may be
// fractional.
func Payment(rate, periods, presentValue, futureValue float64, when Timing) float64 {
	if rate == 0 {
		return -(presentValue + futureValue) / periods
	}
	factor := math.Pow(1+rate, periods)
	return -(presentValue*factor + futureValue) / ((1 + rate*float64(when)) * (factor - 1) / rate)
}

// PresentValue returns the present value of a stream of periodic payments
// plus a terminal futureValue, the inverse formulation of Payment.
func PresentValue(rate, periods, payment, futureValue float64, when Timing) float64 {
	if rate == 0 {
		return -payment*periods - futureValue
	}
	factor := math.Pow(1+rate, periods)
	return -(payment*(1+rate*float64(when))*(factor-1)/rate + futureValue) / factor
}
