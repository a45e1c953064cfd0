package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsatools/pencalc/internal/domain"
	"github.com/rsatools/pencalc/internal/tables"
)

var twelve = decimal.NewFromInt(12)

// ResolveSalary determines the client's validated annual salary. Public
// sector clients retiring on or after the regulatory cutoff resolve through
// the salary-scale lookup; everyone else annualizes the declared monthly
// salary. The boolean is false when no salary is resolvable: a missing scale
// row, or a non-positive declared salary.
//
// This branch is the single switch governing which salary source is
// authoritative and is evaluated identically for interactive and batch
// callers.
func ResolveSalary(record *domain.ClientRecord, scale *tables.SalaryScale, cutoff time.Time) (decimal.Decimal, bool) {
	if record.Sector == domain.SectorPublic && !record.RetirementDate.Before(cutoff) {
		return scale.AnnualSalary(record.SalaryStructure, record.GradeLevel, record.Step)
	}
	if record.MonthlySalary.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return record.MonthlySalary.Mul(twelve), true
}
