package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rsatools/pencalc/internal/domain"
)

// Batch input columns. monthly_salary applies to clients resolved by
// declared salary; salary_structure/grade_level/step to public-sector
// clients retiring after the cutoff. Unused columns may be left blank.
var clientColumns = []string{
	"client_id",
	"date_of_birth",
	"retirement_date",
	"programming_date",
	"gender",
	"sector",
	"frequency",
	"rsa_balance",
	"monthly_salary",
	"salary_structure",
	"grade_level",
	"step",
}

var resultColumns = []string{
	"client_id",
	"status",
	"error_message",
	"current_age",
	"retirement_age",
	"validated_salary",
	"max_arrears_months",
	"final_lumpsum",
	"final_monthly_pension",
	"pension_arrears",
	"total_benefit",
	"annuity_premium",
}

// BatchRow is one parsed input row. Either Record is calculable or Failure
// holds a ready-made ERROR result for a row that did not parse.
type BatchRow struct {
	Record  domain.ClientRecord
	Failure *domain.PensionResult
}

// ReadClientCSV parses a batch input file. Column order is free; headers
// are matched by name, case-insensitively. A row that fails to parse
// becomes an ERROR row and the rest of the file keeps processing; only an
// unreadable file or a missing required column fails the whole read.
func ReadClientCSV(r io.Reader) ([]BatchRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no client rows")
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"date_of_birth", "retirement_date", "programming_date", "gender", "sector", "frequency", "rsa_balance"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]BatchRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		record, err := parseClientRow(row, field)
		if err != nil {
			out = append(out, BatchRow{Failure: &domain.PensionResult{
				ClientID:     field(row, "client_id"),
				Status:       domain.StatusError,
				ErrorKind:    string(domain.ErrInvalidInput),
				ErrorMessage: fmt.Sprintf("row %d: %v", line, err),
			}})
			continue
		}
		out = append(out, BatchRow{Record: record})
	}
	return out, nil
}

func parseClientRow(row []string, field func([]string, string) string) (domain.ClientRecord, error) {
	record := domain.ClientRecord{
		ID:              field(row, "client_id"),
		Gender:          domain.Gender(strings.ToUpper(field(row, "gender"))),
		Sector:          domain.Sector(strings.ToUpper(field(row, "sector"))),
		SalaryStructure: field(row, "salary_structure"),
		GradeLevel:      field(row, "grade_level"),
		Step:            field(row, "step"),
	}

	var err error
	if record.BirthDate, err = domain.ParseDate(field(row, "date_of_birth")); err != nil {
		return record, fmt.Errorf("date_of_birth: %w", err)
	}
	if record.RetirementDate, err = domain.ParseDate(field(row, "retirement_date")); err != nil {
		return record, fmt.Errorf("retirement_date: %w", err)
	}
	if record.ProgrammingDate, err = domain.ParseDate(field(row, "programming_date")); err != nil {
		return record, fmt.Errorf("programming_date: %w", err)
	}

	freq, err := strconv.Atoi(field(row, "frequency"))
	if err != nil {
		return record, fmt.Errorf("invalid frequency %q", field(row, "frequency"))
	}
	record.Frequency = domain.Frequency(freq)

	if record.RSABalance, err = decimal.NewFromString(field(row, "rsa_balance")); err != nil {
		return record, fmt.Errorf("invalid rsa_balance %q", field(row, "rsa_balance"))
	}
	if s := field(row, "monthly_salary"); s != "" {
		if record.MonthlySalary, err = decimal.NewFromString(s); err != nil {
			return record, fmt.Errorf("invalid monthly_salary %q", s)
		}
	}
	return record, nil
}

// WriteResultCSV writes one result row per client. Error rows carry the
// message with blank benefit columns, mirroring the per-client error model:
// a failed client is a row, never an aborted file.
func WriteResultCSV(w io.Writer, results []domain.PensionResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(resultColumns); err != nil {
		return err
	}

	for i := range results {
		if err := writer.Write(resultRow(&results[i])); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func resultRow(r *domain.PensionResult) []string {
	if r.Status == domain.StatusError {
		return []string{r.ClientID, string(r.Status), r.ErrorMessage, "", "", "", "", "", "", "", "", ""}
	}
	return []string{
		r.ClientID,
		string(r.Status),
		"",
		strconv.Itoa(r.CurrentAge),
		strconv.Itoa(r.RetirementAge),
		r.AnnualSalary.StringFixed(2),
		strconv.Itoa(r.MaxArrearsMonths),
		r.FinalLumpSum.StringFixed(2),
		r.FinalMonthlyPension.StringFixed(2),
		r.PensionArrears.StringFixed(2),
		r.TotalBenefit.StringFixed(2),
		r.AnnuityPremium.StringFixed(2),
	}
}

// ClientColumns returns the expected batch input header, for help text.
func ClientColumns() []string {
	return append([]string(nil), clientColumns...)
}
