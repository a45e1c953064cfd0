package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegulatoryPolicy contains the regulatory charges, rates and fractions that
// apply uniformly to every calculation. Defaults are compiled in; a
// regulatory.yaml file can override individual values.
type RegulatoryPolicy struct {
	ManagementCharge          decimal.Decimal `yaml:"management_charge" json:"management_charge"`
	RegulatoryCharge          decimal.Decimal `yaml:"regulatory_charge" json:"regulatory_charge"`
	InterestRate              decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	DiscountRate              decimal.Decimal `yaml:"discount_rate" json:"discount_rate"`
	MinimumLumpSum            decimal.Decimal `yaml:"minimum_lumpsum" json:"minimum_lumpsum"`
	RegulatoryLumpSumFraction decimal.Decimal `yaml:"regulatory_lumpsum_fraction" json:"regulatory_lumpsum_fraction"`
	MinPensionPayoutFraction  decimal.Decimal `yaml:"min_pension_payout_fraction" json:"min_pension_payout_fraction"`

	// CutoffDate is the fixed regulatory date on or after which public-sector
	// retirements must use the salary-scale lookup.
	CutoffDate Date `yaml:"cutoff_date" json:"cutoff_date"`

	// PrivateSectorArrearsCap is the maximum arrears window, in months, for
	// private-sector clients.
	PrivateSectorArrearsCap int `yaml:"private_sector_arrears_cap" json:"private_sector_arrears_cap"`
}

// DefaultRegulatoryPolicy returns the fixed policy constants in force.
func DefaultRegulatoryPolicy() RegulatoryPolicy {
	return RegulatoryPolicy{
		ManagementCharge:          decimal.NewFromFloat(0.065),
		RegulatoryCharge:          decimal.NewFromFloat(0.01),
		InterestRate:              decimal.NewFromFloat(0.105),
		DiscountRate:              decimal.NewFromFloat(0.08),
		MinimumLumpSum:            decimal.Zero,
		RegulatoryLumpSumFraction: decimal.NewFromFloat(0.25),
		MinPensionPayoutFraction:  decimal.NewFromFloat(0.5),
		CutoffDate:                NewDate(2024, time.September, 1),
		PrivateSectorArrearsCap:   6,
	}
}

// NetInterestRate is the annual interest rate after management and
// regulatory charges.
func (p RegulatoryPolicy) NetInterestRate() float64 {
	one := decimal.NewFromInt(1)
	net := p.InterestRate.Mul(one.Sub(p.ManagementCharge).Sub(p.RegulatoryCharge))
	return net.InexactFloat64()
}

// NetMonthlyRate is the net interest rate per month; it is the per-period
// rate of every payment and present-value evaluation in the engine.
func (p RegulatoryPolicy) NetMonthlyRate() float64 {
	return p.NetInterestRate() / 12
}
