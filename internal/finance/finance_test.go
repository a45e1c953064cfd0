package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentZeroRate(t *testing.T) {
	// At zero rate the payment is exactly straight-line division, with no
	// rate branch taken.
	assert.Equal(t, -100.0, Payment(0, 10, 1000, 0, Due))
	assert.Equal(t, -120.0, Payment(0, 10, 1000, 200, Due))
	assert.Equal(t, Payment(0, 10, 1000, 0, End), Payment(0, 10, 1000, 0, Due))
}

func TestPresentValueZeroRate(t *testing.T) {
	assert.Equal(t, 1000.0, PresentValue(0, 10, -100, 0, Due))
	assert.Equal(t, -1200.0, PresentValue(0, 10, 100, 200, End))
}

func TestPaymentPresentValueInverse(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		periods float64
		pv      float64
		fv      float64
		when    Timing
	}{
		{name: "monthly due", rate: 0.097125 / 12, periods: 349.0, pv: 1_000_000, fv: 0, when: Due},
		{name: "quarterly due", rate: 0.097125 / 4, periods: 116.3, pv: 750_000, fv: 0, when: Due},
		{name: "ordinary with future value", rate: 0.01, periods: 120, pv: 500_000, fv: 10_000, when: End},
		{name: "high rate short term", rate: 0.2, periods: 5, pv: 10_000, fv: 0, when: Due},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pmt := Payment(tt.rate, tt.periods, tt.pv, tt.fv, tt.when)
			back := PresentValue(tt.rate, tt.periods, pmt, tt.fv, tt.when)
			assert.InDelta(t, tt.pv, back, 1e-6)
		})
	}
}

func TestAnnuityDueCostsLessPerPeriod(t *testing.T) {
	// Paying at period start amortizes the same balance with a smaller
	// payment than paying at period end.
	due := Payment(0.01, 120, 100_000, 0, Due)
	ordinary := Payment(0.01, 120, 100_000, 0, End)
	assert.Less(t, ordinary, due) // both negative: due is closer to zero
}

func TestPaymentSignConvention(t *testing.T) {
	// A positive present value amortizes through negative (outgoing)
	// payments.
	assert.Negative(t, Payment(0.008, 240, 1_000_000, 0, Due))
	assert.Positive(t, PresentValue(0.008, 240, -5000, 0, Due))
}
