// Package config parses and validates the YAML inputs: single-client
// records and regulatory policy overrides.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rsatools/pencalc/internal/domain"
)

// InputParser handles parsing of input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadClientFile loads and validates one client record from a YAML file.
func (ip *InputParser) LoadClientFile(filename string) (*domain.ClientRecord, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var record domain.ClientRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRecord(&record); err != nil {
		return nil, fmt.Errorf("client record validation failed: %w", err)
	}
	return &record, nil
}

// LoadPolicyFile loads a regulatory policy, starting from the compiled-in
// defaults and overlaying any values present in the file.
func (ip *InputParser) LoadPolicyFile(filename string) (domain.RegulatoryPolicy, error) {
	policy := domain.DefaultRegulatoryPolicy()

	data, err := os.ReadFile(filename)
	if err != nil {
		return policy, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePolicy(&policy); err != nil {
		return policy, fmt.Errorf("regulatory policy validation failed: %w", err)
	}
	return policy, nil
}

// ValidateRecord checks the structural validity of a client record: enums,
// required dates and date ordering. Cross-field benefit rules are the
// engine's job; this layer only rejects records the engine cannot interpret.
func (ip *InputParser) ValidateRecord(record *domain.ClientRecord) error {
	if record.BirthDate.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	if record.RetirementDate.IsZero() {
		return fmt.Errorf("retirement_date is required")
	}
	if record.ProgrammingDate.IsZero() {
		return fmt.Errorf("programming_date is required")
	}
	if !record.BirthDate.Before(record.RetirementDate.Time) {
		return fmt.Errorf("date_of_birth must precede retirement_date")
	}
	if !record.BirthDate.Before(record.ProgrammingDate.Time) {
		return fmt.Errorf("date_of_birth must precede programming_date")
	}
	if !record.Gender.Valid() {
		return fmt.Errorf("gender must be M or F, got %q", record.Gender)
	}
	if !record.Sector.Valid() {
		return fmt.Errorf("sector must be PU or PR, got %q", record.Sector)
	}
	if !record.Frequency.Valid() {
		return fmt.Errorf("frequency must be 4 or 12, got %d", record.Frequency)
	}
	if record.RSABalance.LessThan(decimal.Zero) {
		return fmt.Errorf("rsa_balance cannot be negative")
	}
	if record.MonthlySalary.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly_salary cannot be negative")
	}
	if record.PreferredArrearsMonths != nil && *record.PreferredArrearsMonths < 0 {
		return fmt.Errorf("preferred_arrears_months cannot be negative")
	}
	if record.NegotiatedLumpSum != nil && record.NegotiatedLumpSum.LessThan(decimal.Zero) {
		return fmt.Errorf("negotiated_lumpsum cannot be negative")
	}
	return nil
}

// ValidatePolicy checks regulatory policy values for internal consistency.
func (ip *InputParser) ValidatePolicy(policy *domain.RegulatoryPolicy) error {
	one := decimal.NewFromInt(1)
	if policy.ManagementCharge.LessThan(decimal.Zero) || policy.ManagementCharge.GreaterThanOrEqual(one) {
		return fmt.Errorf("management_charge must be in [0, 1)")
	}
	if policy.RegulatoryCharge.LessThan(decimal.Zero) || policy.RegulatoryCharge.GreaterThanOrEqual(one) {
		return fmt.Errorf("regulatory_charge must be in [0, 1)")
	}
	if policy.ManagementCharge.Add(policy.RegulatoryCharge).GreaterThanOrEqual(one) {
		return fmt.Errorf("combined charges must be less than 100%%")
	}
	if policy.InterestRate.LessThan(decimal.Zero) {
		return fmt.Errorf("interest_rate cannot be negative")
	}
	if policy.DiscountRate.LessThan(decimal.Zero) {
		return fmt.Errorf("discount_rate cannot be negative")
	}
	if policy.MinimumLumpSum.LessThan(decimal.Zero) {
		return fmt.Errorf("minimum_lumpsum cannot be negative")
	}
	if policy.RegulatoryLumpSumFraction.LessThan(decimal.Zero) || policy.RegulatoryLumpSumFraction.GreaterThan(one) {
		return fmt.Errorf("regulatory_lumpsum_fraction must be in [0, 1]")
	}
	if policy.MinPensionPayoutFraction.LessThan(decimal.Zero) || policy.MinPensionPayoutFraction.GreaterThan(one) {
		return fmt.Errorf("min_pension_payout_fraction must be in [0, 1]")
	}
	if policy.CutoffDate.IsZero() {
		return fmt.Errorf("cutoff_date is required")
	}
	if policy.PrivateSectorArrearsCap < 0 {
		return fmt.Errorf("private_sector_arrears_cap cannot be negative")
	}
	return nil
}
