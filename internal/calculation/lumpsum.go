package calculation

import (
	"math"

	"github.com/rsatools/pencalc/internal/domain"
	"github.com/rsatools/pencalc/internal/finance"
	"github.com/rsatools/pencalc/internal/tables"
)

// continuityCorrection converts a whole-year actuarial factor to payment
// periods under the annuity-due convention. The 11/24 term is standard and
// must be preserved exactly.
const continuityCorrection = 11.0 / 24.0

// LumpSumBounds carries everything derived while bounding the lump-sum, so
// the final validation and pension computation reuse the same figures.
type LumpSumBounds struct {
	// AdjustedBalance is the RSA balance discounted back over the arrears
	// window.
	AdjustedBalance float64
	// NetMonthlyRate is the per-period rate net of charges.
	NetMonthlyRate float64
	// Periods is the equivalent number of payment periods from the annuity
	// factor; fractional by construction.
	Periods float64
	// Max is the largest lump-sum leaving at least the minimum residual
	// pension, floored at zero.
	Max float64
	// Regulatory is the regulatory lump-sum floor.
	Regulatory float64
	// Recommended is the lump-sum the policy recommends within the bounds.
	Recommended float64
}

// ComputeLumpSumBounds derives the lump-sum envelope for a client: the
// discounted balance, the equivalent payment periods from the actuarial
// factor, and the maximum, regulatory and recommended lump-sums.
func ComputeLumpSumBounds(
	policy domain.RegulatoryPolicy,
	annuity *tables.TableSet,
	rsaBalance float64,
	arrearsMonths int,
	annualSalary float64,
	gender domain.Gender,
	frequency domain.Frequency,
	retirementAge int,
) (LumpSumBounds, error) {
	ax, err := annuity.Lookup(gender, frequency, retirementAge)
	if err != nil {
		return LumpSumBounds{}, err
	}

	discountRate := policy.DiscountRate.InexactFloat64()
	adjusted := rsaBalance * math.Pow(1+discountRate, -float64(arrearsMonths)/12)

	rate := policy.NetMonthlyRate()
	nc := ax - continuityCorrection
	periods := 2 * float64(frequency) * nc

	// The lump-sum may grow until the residual balance can no longer fund
	// the minimum pension floor of half the per-period salary.
	halfSalaryPerPeriod := annualSalary / float64(frequency) * policy.MinPensionPayoutFraction.InexactFloat64()
	maxLumpSum := math.Max(0, adjusted+finance.PresentValue(rate, periods, halfSalaryPerPeriod, 0, finance.Due))

	regulatory := rsaBalance * policy.RegulatoryLumpSumFraction.InexactFloat64()

	return LumpSumBounds{
		AdjustedBalance: adjusted,
		NetMonthlyRate:  rate,
		Periods:         periods,
		Max:             maxLumpSum,
		Regulatory:      regulatory,
		Recommended:     DetermineLumpSum(maxLumpSum, adjusted, regulatory),
	}, nil
}

// DetermineLumpSum picks the recommended lump-sum: cap at the available
// balance, else respect the computed maximum, else fall back to the
// regulatory floor. The branch order is load-bearing.
func DetermineLumpSum(maxLumpSum, adjustedBalance, regulatory float64) float64 {
	if maxLumpSum > adjustedBalance {
		return adjustedBalance
	}
	if maxLumpSum > regulatory {
		return maxLumpSum
	}
	return regulatory
}

// FinalMonthlyPension validates the chosen lump-sum against the bounds and,
// when valid, amortizes the residual balance into the per-period pension.
// The payment result is negated so the pension reads as cash the client
// receives.
func FinalMonthlyPension(chosen, minLumpSum float64, b LumpSumBounds) (float64, error) {
	if chosen < minLumpSum {
		return 0, domain.Errf(domain.ErrBelowMinimumLumpSum,
			"lumpsum %.2f is less than the minimum allowed %.2f", chosen, minLumpSum)
	}
	if b.Max > b.Regulatory && chosen > b.Max {
		return 0, domain.Errf(domain.ErrExceedsMaxLumpSum,
			"lumpsum %.2f exceeds the maximum lumpsum limit %.2f", chosen, b.Max)
	}
	if b.Max < b.Regulatory && chosen > b.Regulatory {
		return 0, domain.Errf(domain.ErrExceedsRegulatoryLumpSum,
			"lumpsum %.2f exceeds the regulatory lumpsum limit %.2f", chosen, b.Regulatory)
	}

	residual := b.AdjustedBalance - chosen
	return -finance.Payment(b.NetMonthlyRate, b.Periods, residual, 0, finance.Due), nil
}
