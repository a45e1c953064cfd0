package calculation

import (
	"math"
	"time"

	"github.com/rsatools/pencalc/internal/domain"
	"github.com/rsatools/pencalc/pkg/dateutil"
)

// MaxArrearsMonths returns the maximum allowable arrears window in whole
// months: the year fraction between retirement and valuation times twelve,
// capped for private-sector clients before rounding to the nearest month.
func MaxArrearsMonths(retirementDate, valuationDate time.Time, sector domain.Sector, privateCap int) int {
	months := dateutil.YearFraction(retirementDate, valuationDate) * 12
	if sector == domain.SectorPrivate {
		months = math.Min(months, float64(privateCap))
	}
	return int(math.Round(months))
}

// FinalArrearsMonths validates the negotiated arrears months against the
// maximum. Negotiating more than the maximum fails ExceedsMaxArrears.
func FinalArrearsMonths(negotiated, maxAllowed int) (int, error) {
	switch {
	case negotiated > maxAllowed:
		return 0, domain.Errf(domain.ErrExceedsMaxArrears,
			"negotiated months %d exceed the maximum allowable arrears %d", negotiated, maxAllowed)
	case negotiated < maxAllowed:
		return negotiated, nil
	default:
		return maxAllowed, nil
	}
}

// ArrearsAmount converts approved arrears months into a payable amount. At
// quarterly frequency the pension is per quarter, so months convert to
// quarters first.
func ArrearsAmount(frequency domain.Frequency, months int, pensionPerPeriod float64) float64 {
	if frequency == domain.FrequencyQuarterly {
		return float64(months) / 3 * pensionPerPeriod
	}
	return float64(months) * pensionPerPeriod
}
