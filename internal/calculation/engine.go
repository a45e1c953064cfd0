// Package calculation implements the pension benefit engine: salary
// resolution, the arrears and lump-sum policies, and the orchestrator that
// sequences them into one deterministic result per client.
package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rsatools/pencalc/internal/domain"
	"github.com/rsatools/pencalc/internal/tables"
	"github.com/rsatools/pencalc/pkg/dateutil"
)

// Stage identifies how far a calculation progressed before completing or
// failing. Stages are strictly sequential; a failure at any stage
// short-circuits to a terminal error result.
type Stage int

const (
	StageIntake Stage = iota
	StageAgeAndEligibility
	StageSalaryResolved
	StageArrearsBounded
	StageLumpSumBounded
	StageFinalValidated
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageIntake:
		return "Intake"
	case StageAgeAndEligibility:
		return "AgeAndEligibility"
	case StageSalaryResolved:
		return "SalaryResolved"
	case StageArrearsBounded:
		return "ArrearsBounded"
	case StageLumpSumBounded:
		return "LumpSumBounded"
	case StageFinalValidated:
		return "FinalValidated"
	case StageComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Engine runs benefit calculations against a fixed policy and read-only
// lookup tables. It holds no per-client state: every calculation is a pure
// function of the record, the tables and the policy, so one Engine is safe
// for concurrent use.
type Engine struct {
	policy  domain.RegulatoryPolicy
	annuity *tables.TableSet
	scale   *tables.SalaryScale
}

// NewEngine creates an engine over the given policy and tables.
func NewEngine(policy domain.RegulatoryPolicy, annuity *tables.TableSet, scale *tables.SalaryScale) *Engine {
	return &Engine{policy: policy, annuity: annuity, scale: scale}
}

// Policy returns the regulatory policy the engine calculates under.
func (e *Engine) Policy() domain.RegulatoryPolicy {
	return e.policy
}

// Parameters computes the derived per-client figures: ages, maximum arrears
// window and the validated annual salary. It covers the Intake through
// SalaryResolved stages and fails with the kind of the first offending
// field.
func (e *Engine) Parameters(record *domain.ClientRecord) (domain.CalculationParameters, error) {
	if record.RSABalance.LessThanOrEqual(decimal.Zero) {
		return domain.CalculationParameters{}, domain.Errf(domain.ErrInvalidBalance,
			"RSA balance must be positive, got %s", record.RSABalance)
	}

	salary, ok := ResolveSalary(record, e.scale, e.policy.CutoffDate.Time)
	if !ok {
		return domain.CalculationParameters{}, domain.Errf(domain.ErrInvalidSalaryInput,
			"no resolvable salary for client %q", record.ID)
	}

	return domain.CalculationParameters{
		CurrentAge:    dateutil.YearsBetween(record.BirthDate.Time, record.ProgrammingDate.Time),
		RetirementAge: dateutil.YearsBetween(record.BirthDate.Time, record.RetirementDate.Time),
		MaxArrearsMonths: MaxArrearsMonths(
			record.RetirementDate.Time,
			record.ProgrammingDate.Time,
			record.Sector,
			e.policy.PrivateSectorArrearsCap,
		),
		AnnualSalary: salary,
		RSABalance:   record.RSABalance,
	}, nil
}

// Calculate runs the full staged pipeline for one client and always returns
// a terminal result: SUCCESS with the complete benefit package, or ERROR
// carrying the originating error kind and message. No partial results are
// produced.
func (e *Engine) Calculate(record *domain.ClientRecord) domain.PensionResult {
	params, err := e.Parameters(record)
	if err != nil {
		return errorResult(record, err)
	}

	// ArrearsBounded: the preferred window defaults to the maximum and must
	// not exceed it.
	preferred := params.MaxArrearsMonths
	if record.PreferredArrearsMonths != nil {
		preferred = *record.PreferredArrearsMonths
	}
	finalArrears, err := FinalArrearsMonths(preferred, params.MaxArrearsMonths)
	if err != nil {
		return errorResult(record, err)
	}

	// LumpSumBounded.
	bounds, err := ComputeLumpSumBounds(
		e.policy,
		e.annuity,
		params.RSABalance.InexactFloat64(),
		finalArrears,
		params.AnnualSalary.InexactFloat64(),
		record.Gender,
		record.Frequency,
		params.RetirementAge,
	)
	if err != nil {
		return errorResult(record, err)
	}

	// FinalValidated: the chosen lump-sum defaults to the recommendation.
	chosen := bounds.Recommended
	if record.NegotiatedLumpSum != nil {
		chosen = record.NegotiatedLumpSum.InexactFloat64()
	}
	pension, err := FinalMonthlyPension(chosen, e.policy.MinimumLumpSum.InexactFloat64(), bounds)
	if err != nil {
		return errorResult(record, err)
	}

	// Complete.
	arrearsAmount := ArrearsAmount(record.Frequency, finalArrears, pension)
	totalBenefit := chosen + arrearsAmount
	annuityPremium := params.RSABalance.InexactFloat64() - totalBenefit - pension

	return domain.PensionResult{
		ClientID:            record.ID,
		Status:              domain.StatusSuccess,
		CurrentAge:          params.CurrentAge,
		RetirementAge:       params.RetirementAge,
		AnnualSalary:        params.AnnualSalary,
		MaxArrearsMonths:    params.MaxArrearsMonths,
		FinalArrearsMonths:  finalArrears,
		FinalLumpSum:        decimal.NewFromFloat(chosen),
		FinalMonthlyPension: decimal.NewFromFloat(pension),
		PensionArrears:      decimal.NewFromFloat(arrearsAmount),
		TotalBenefit:        decimal.NewFromFloat(totalBenefit),
		AnnuityPremium:      decimal.NewFromFloat(annuityPremium),
	}
}

// CalculateBatch runs the pipeline independently for every record. Records
// share only the read-only tables; one record's failure never affects
// another's result. Results come back in input order.
func (e *Engine) CalculateBatch(records []domain.ClientRecord) []domain.PensionResult {
	results := make([]domain.PensionResult, 0, len(records))
	for i := range records {
		results = append(results, e.Calculate(&records[i]))
	}
	return results
}

func errorResult(record *domain.ClientRecord, err error) domain.PensionResult {
	result := domain.PensionResult{
		ClientID:     record.ID,
		Status:       domain.StatusError,
		ErrorMessage: err.Error(),
	}
	if kind, ok := domain.KindOf(err); ok {
		result.ErrorKind = string(kind)
		result.FailedStage = stageForKind(kind).String()
	}
	return result
}

// stageForKind maps an error kind to the pipeline stage that raises it.
func stageForKind(kind domain.ErrorKind) Stage {
	switch kind {
	case domain.ErrInvalidBalance:
		return StageIntake
	case domain.ErrInvalidSalaryInput:
		return StageSalaryResolved
	case domain.ErrExceedsMaxArrears:
		return StageArrearsBounded
	case domain.ErrInvalidGenderFrequency, domain.ErrAgeNotFound:
		return StageLumpSumBounded
	default:
		return StageFinalValidated
	}
}
