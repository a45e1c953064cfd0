// Package output renders calculation results: a console report for the
// single-client path and CSV input/output for batch processing.
package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rsatools/pencalc/internal/domain"
)

// FormatReport renders one result as the console summary block: the derived
// calculation parameters followed by the benefit figures, or the error
// detail for a failed calculation.
func FormatReport(result *domain.PensionResult) string {
	var b strings.Builder

	b.WriteString("PENSION BENEFIT CALCULATION\n")
	b.WriteString("===========================\n")
	if result.ClientID != "" {
		fmt.Fprintf(&b, "Client:                 %s\n", result.ClientID)
	}

	if result.Status == domain.StatusError {
		fmt.Fprintf(&b, "Status:                 %s\n", result.Status)
		fmt.Fprintf(&b, "Failed Stage:           %s\n", result.FailedStage)
		fmt.Fprintf(&b, "Error:                  %s\n", result.ErrorMessage)
		return b.String()
	}

	b.WriteString("\nCalculation Parameters\n")
	b.WriteString("----------------------\n")
	fmt.Fprintf(&b, "Current Age:            %d years\n", result.CurrentAge)
	fmt.Fprintf(&b, "Retirement Age:         %d years\n", result.RetirementAge)
	fmt.Fprintf(&b, "Annual Salary:          %s\n", money(result.AnnualSalary))
	fmt.Fprintf(&b, "Max Arrears:            %d months\n", result.MaxArrearsMonths)

	b.WriteString("\nResults\n")
	b.WriteString("-------\n")
	fmt.Fprintf(&b, "Final Monthly Pension:  %s\n", money(result.FinalMonthlyPension))
	fmt.Fprintf(&b, "Final Approved Lumpsum: %s\n", money(result.FinalLumpSum))
	fmt.Fprintf(&b, "Final Arrears Months:   %d months\n", result.FinalArrearsMonths)
	fmt.Fprintf(&b, "Pension Arrears Amount: %s\n", money(result.PensionArrears))
	fmt.Fprintf(&b, "Total Benefit Payable:  %s\n", money(result.TotalBenefit))
	fmt.Fprintf(&b, "Annuity Premium:        %s\n", money(result.AnnuityPremium))

	return b.String()
}

// money renders an amount with the naira marker and two decimal places.
func money(d decimal.Decimal) string {
	return "₦" + d.StringFixed(2)
}
