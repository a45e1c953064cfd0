package tables

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rsatools/pencalc/internal/domain"
)

// File names expected inside the tables directory.
const (
	fileMale4           = "Male4.csv"
	fileMale12          = "Male12.csv"
	fileFemale4         = "Female4.csv"
	fileFemale12        = "Female12.csv"
	fileSalaryStructure = "SalaryStructure.csv"
)

// LoadDir loads the four annuity-factor tables and the salary scale from a
// directory. Any missing or malformed file is an error; no calculation can
// run without a complete table set, so callers treat a failure here as
// fatal.
func LoadDir(dir string) (*TableSet, *SalaryScale, error) {
	set := NewTableSet()
	annuityFiles := []struct {
		name      string
		gender    domain.Gender
		frequency domain.Frequency
	}{
		{fileMale4, domain.GenderMale, domain.FrequencyQuarterly},
		{fileMale12, domain.GenderMale, domain.FrequencyMonthly},
		{fileFemale4, domain.GenderFemale, domain.FrequencyQuarterly},
		{fileFemale12, domain.GenderFemale, domain.FrequencyMonthly},
	}
	for _, f := range annuityFiles {
		table, err := LoadAnnuityTable(filepath.Join(dir, f.name))
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", f.name, err)
		}
		set.Add(f.gender, f.frequency, table)
	}

	scale, err := LoadSalaryScale(filepath.Join(dir, fileSalaryStructure))
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", fileSalaryStructure, err)
	}
	return set, scale, nil
}

// LoadAnnuityTable reads one annuity-factor CSV with columns age and ax.
func LoadAnnuityTable(path string) (*AnnuityTable, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	ageCol, err := columnIndex(header, "age")
	if err != nil {
		return nil, err
	}
	axCol, err := columnIndex(header, "ax")
	if err != nil {
		return nil, err
	}

	factors := make(map[int]float64, len(rows))
	for i, row := range rows {
		age, err := strconv.Atoi(strings.TrimSpace(row[ageCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid age %q: %w", i+2, row[ageCol], err)
		}
		if _, dup := factors[age]; dup {
			return nil, fmt.Errorf("row %d: duplicate age %d", i+2, age)
		}
		ax, err := strconv.ParseFloat(strings.TrimSpace(row[axCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid ax %q: %w", i+2, row[axCol], err)
		}
		factors[age] = ax
	}
	if len(factors) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return NewAnnuityTable(factors), nil
}

// LoadSalaryScale reads the salary structure CSV with columns
// "Salary Structure", "Grade Level", "Step" and "Annual Salary".
func LoadSalaryScale(path string) (*SalaryScale, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	structCol, err := columnIndex(header, "Salary Structure")
	if err != nil {
		return nil, err
	}
	gradeCol, err := columnIndex(header, "Grade Level")
	if err != nil {
		return nil, err
	}
	stepCol, err := columnIndex(header, "Step")
	if err != nil {
		return nil, err
	}
	salaryCol, err := columnIndex(header, "Annual Salary")
	if err != nil {
		return nil, err
	}

	scale := NewSalaryScale()
	for i, row := range rows {
		salary, err := decimal.NewFromString(strings.TrimSpace(row[salaryCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid annual salary %q: %w", i+2, row[salaryCol], err)
		}
		scale.Add(row[structCol], row[gradeCol], row[stepCol], salary)
	}
	if scale.Len() == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return scale, nil
}

func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}
	return all[1:], all[0], nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing column %q", name)
}
