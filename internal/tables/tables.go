// Package tables holds the read-only lookup data every calculation depends
// on: the four actuarial annuity-factor tables and the public-sector salary
// scale. Tables are loaded once at startup and never mutated afterwards, so
// concurrent readers need no locking.
package tables

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rsatools/pencalc/internal/domain"
)

// Key identifies one annuity-factor table. The four valid combinations are
// (M,4), (M,12), (F,4) and (F,12).
type Key struct {
	Gender    domain.Gender
	Frequency domain.Frequency
}

// AnnuityTable maps integer age to the actuarial annuity factor ax. Lookup
// is by exact age only; the source tables cover the full valid age range so
// no interpolation is performed.
type AnnuityTable struct {
	factors map[int]float64
}

// NewAnnuityTable builds a table from an age -> factor mapping.
func NewAnnuityTable(factors map[int]float64) *AnnuityTable {
	copied := make(map[int]float64, len(factors))
	for age, ax := range factors {
		copied[age] = ax
	}
	return &AnnuityTable{factors: copied}
}

// Factor returns the factor for an exact age.
func (t *AnnuityTable) Factor(age int) (float64, bool) {
	ax, ok := t.factors[age]
	return ax, ok
}

// Len returns the number of ages in the table.
func (t *AnnuityTable) Len() int {
	return len(t.factors)
}

// TableSet is the keyed collection of the four annuity-factor tables.
type TableSet struct {
	tables map[Key]*AnnuityTable
}

// NewTableSet creates an empty set.
func NewTableSet() *TableSet {
	return &TableSet{tables: make(map[Key]*AnnuityTable)}
}

// Add registers the table for a (gender, frequency) combination.
func (s *TableSet) Add(gender domain.Gender, frequency domain.Frequency, table *AnnuityTable) {
	s.tables[Key{Gender: gender, Frequency: frequency}] = table
}

// Lookup resolves the annuity factor for the combination and age. It fails
// with InvalidGenderFrequency for an unsupported combination and AgeNotFound
// when the age is outside the selected table.
func (s *TableSet) Lookup(gender domain.Gender, frequency domain.Frequency, age int) (float64, error) {
	table, ok := s.tables[Key{Gender: gender, Frequency: frequency}]
	if !ok {
		return 0, domain.Errf(domain.ErrInvalidGenderFrequency,
			"invalid combination of gender (%s) and frequency (%d)", gender, frequency)
	}
	ax, ok := table.Factor(age)
	if !ok {
		return 0, domain.Errf(domain.ErrAgeNotFound,
			"age %d not found in %s/%d annuity table", age, gender, frequency)
	}
	return ax, nil
}

type scaleKey struct {
	structure string
	grade     string
	step      string
}

// SalaryScale maps (structure, grade, step) to annual salary. Structure
// names compare case-insensitively; grade and step compare as exact text
// even when they look numeric.
type SalaryScale struct {
	rows map[scaleKey]decimal.Decimal
}

// NewSalaryScale creates an empty scale.
func NewSalaryScale() *SalaryScale {
	return &SalaryScale{rows: make(map[scaleKey]decimal.Decimal)}
}

// Add registers one scale row.
func (s *SalaryScale) Add(structure, grade, step string, annualSalary decimal.Decimal) {
	s.rows[scaleKey{
		structure: strings.ToLower(strings.TrimSpace(structure)),
		grade:     strings.TrimSpace(grade),
		step:      strings.TrimSpace(step),
	}] = annualSalary
}

// AnnualSalary looks up the salary for an exact triple. The boolean is false
// when no row matches.
func (s *SalaryScale) AnnualSalary(structure, grade, step string) (decimal.Decimal, bool) {
	salary, ok := s.rows[scaleKey{
		structure: strings.ToLower(strings.TrimSpace(structure)),
		grade:     strings.TrimSpace(grade),
		step:      strings.TrimSpace(step),
	}]
	return salary, ok
}

// Len returns the number of scale rows.
func (s *SalaryScale) Len() int {
	return len(s.rows)
}
