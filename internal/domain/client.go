package domain

import (
	"github.com/shopspring/decimal"
)

// Gender selects the annuity-factor table family.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Valid reports whether the gender is one of the supported codes.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Sector determines which salary source is authoritative and whether the
// arrears window is capped.
type Sector string

const (
	SectorPublic  Sector = "PU"
	SectorPrivate Sector = "PR"
)

// Valid reports whether the sector is one of the supported codes.
func (s Sector) Valid() bool {
	return s == SectorPublic || s == SectorPrivate
}

// Frequency is the number of pension payments per year.
type Frequency int

const (
	FrequencyQuarterly Frequency = 4
	FrequencyMonthly   Frequency = 12
)

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	return f == FrequencyQuarterly || f == FrequencyMonthly
}

// ClientRecord is the immutable per-client input to a benefit calculation.
// Exactly one salary source is resolvable for a record: the salary-scale
// triple for public-sector clients retiring on or after the regulatory
// cutoff, the declared monthly salary otherwise.
type ClientRecord struct {
	ID              string          `yaml:"client_id" json:"client_id"`
	BirthDate       Date            `yaml:"date_of_birth" json:"date_of_birth"`
	RetirementDate  Date            `yaml:"retirement_date" json:"retirement_date"`
	ProgrammingDate Date            `yaml:"programming_date" json:"programming_date"`
	Gender          Gender          `yaml:"gender" json:"gender"`
	Sector          Sector          `yaml:"sector" json:"sector"`
	Frequency       Frequency       `yaml:"frequency" json:"frequency"`
	RSABalance      decimal.Decimal `yaml:"rsa_balance" json:"rsa_balance"`

	// Salary sources. MonthlySalary applies to private-sector clients and
	// public-sector clients retiring before the cutoff; the scale triple
	// applies to public-sector clients retiring on or after it.
	MonthlySalary   decimal.Decimal `yaml:"monthly_salary,omitempty" json:"monthly_salary,omitempty"`
	SalaryStructure string          `yaml:"salary_structure,omitempty" json:"salary_structure,omitempty"`
	GradeLevel      string          `yaml:"grade_level,omitempty" json:"grade_level,omitempty"`
	Step            string          `yaml:"step,omitempty" json:"step,omitempty"`

	// Optional overrides for the single-client path. When nil the engine
	// takes the maximum allowable arrears and the recommended lump-sum,
	// which is what batch processing always does.
	PreferredArrearsMonths *int             `yaml:"preferred_arrears_months,omitempty" json:"preferred_arrears_months,omitempty"`
	NegotiatedLumpSum      *decimal.Decimal `yaml:"negotiated_lumpsum,omitempty" json:"negotiated_lumpsum,omitempty"`
}

// CalculationParameters are the derived per-client figures computed once
// before any benefit arithmetic. Immutable after construction; every later
// stage reads from here instead of re-deriving.
type CalculationParameters struct {
	CurrentAge       int
	RetirementAge    int
	MaxArrearsMonths int
	AnnualSalary     decimal.Decimal
	RSABalance       decimal.Decimal
}

// Status marks a per-client result row.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// PensionResult is the terminal output of one client calculation. On error,
// Status is ERROR and ErrorKind/ErrorMessage carry the originating failure;
// all benefit fields are zero. A result is never mutated after the engine
// returns it.
type PensionResult struct {
	ClientID     string `json:"client_id"`
	Status       Status `json:"status"`
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	// FailedStage names the pipeline stage that produced the error, for
	// audit trails. Empty on success.
	FailedStage string `json:"failed_stage,omitempty"`

	CurrentAge       int             `json:"current_age"`
	RetirementAge    int             `json:"retirement_age"`
	AnnualSalary     decimal.Decimal `json:"validated_salary"`
	MaxArrearsMonths int             `json:"max_arrears_months"`

	FinalArrearsMonths  int             `json:"final_arrears_months"`
	FinalLumpSum        decimal.Decimal `json:"final_lumpsum"`
	FinalMonthlyPension decimal.Decimal `json:"final_monthly_pension"`
	PensionArrears      decimal.Decimal `json:"pension_arrears"`
	TotalBenefit        decimal.Decimal `json:"total_benefit"`
	AnnuityPremium      decimal.Decimal `json:"annuity_premium"`
}
