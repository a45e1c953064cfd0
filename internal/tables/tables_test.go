package tables

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsatools/pencalc/internal/domain"
)

func fixtureSet() *TableSet {
	set := NewTableSet()
	set.Add(domain.GenderMale, domain.FrequencyMonthly, NewAnnuityTable(map[int]float64{60: 15.0, 61: 14.6}))
	set.Add(domain.GenderMale, domain.FrequencyQuarterly, NewAnnuityTable(map[int]float64{60: 14.8}))
	set.Add(domain.GenderFemale, domain.FrequencyMonthly, NewAnnuityTable(map[int]float64{60: 16.2}))
	set.Add(domain.GenderFemale, domain.FrequencyQuarterly, NewAnnuityTable(map[int]float64{60: 16.0}))
	return set
}

func TestLookup(t *testing.T) {
	set := fixtureSet()

	ax, err := set.Lookup(domain.GenderMale, domain.FrequencyMonthly, 60)
	require.NoError(t, err)
	assert.Equal(t, 15.0, ax)

	ax, err = set.Lookup(domain.GenderFemale, domain.FrequencyQuarterly, 60)
	require.NoError(t, err)
	assert.Equal(t, 16.0, ax)
}

func TestLookupInvalidCombination(t *testing.T) {
	set := fixtureSet()

	_, err := set.Lookup(domain.Gender("X"), domain.FrequencyMonthly, 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &domain.CalcError{Kind: domain.ErrInvalidGenderFrequency}))

	_, err = set.Lookup(domain.GenderMale, domain.Frequency(6), 60)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &domain.CalcError{Kind: domain.ErrInvalidGenderFrequency}))
}

func TestLookupAgeNotFound(t *testing.T) {
	set := fixtureSet()

	_, err := set.Lookup(domain.GenderMale, domain.FrequencyMonthly, 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &domain.CalcError{Kind: domain.ErrAgeNotFound}))
}

func TestSalaryScaleLookup(t *testing.T) {
	scale := NewSalaryScale()
	scale.Add("CONPOSS", "08", "05", decimal.NewFromInt(1_200_000))

	salary, ok := scale.AnnualSalary("conposs", "08", "05")
	require.True(t, ok, "structure name matches case-insensitively")
	assert.True(t, salary.Equal(decimal.NewFromInt(1_200_000)))

	// Grade and step are exact text: "8" is not "08".
	_, ok = scale.AnnualSalary("CONPOSS", "8", "05")
	assert.False(t, ok)
	_, ok = scale.AnnualSalary("CONPOSS", "08", "5")
	assert.False(t, ok)
	_, ok = scale.AnnualSalary("CONHESS", "08", "05")
	assert.False(t, ok)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "Male4.csv", "age,ax\n60,14.8\n61,14.4\n")
	writeFile(t, dir, "Male12.csv", "age,ax\n60,15.0\n61,14.6\n")
	writeFile(t, dir, "Female4.csv", "age,ax\n60,16.0\n")
	writeFile(t, dir, "Female12.csv", "age,ax\n60,16.2\n")
	writeFile(t, dir, "SalaryStructure.csv",
		"Salary Structure,Grade Level,Step,Annual Salary\nCONPOSS,08,05,1200000\nCONHESS,10,02,1850000.50\n")
	return dir
}

func TestLoadDir(t *testing.T) {
	set, scale, err := LoadDir(writeFixtureDir(t))
	require.NoError(t, err)

	ax, err := set.Lookup(domain.GenderMale, domain.FrequencyQuarterly, 61)
	require.NoError(t, err)
	assert.Equal(t, 14.4, ax)

	salary, ok := scale.AnnualSalary("conhess", "10", "02")
	require.True(t, ok)
	assert.True(t, salary.Equal(decimal.RequireFromString("1850000.50")))
}

func TestLoadDirMissingFile(t *testing.T) {
	dir := writeFixtureDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "Female12.csv")))

	_, _, err := LoadDir(dir)
	assert.ErrorContains(t, err, "Female12.csv")
}

func TestLoadAnnuityTableRejectsBadData(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "bad_age.csv", "age,ax\nsixty,15.0\n")
	_, err := LoadAnnuityTable(filepath.Join(dir, "bad_age.csv"))
	assert.ErrorContains(t, err, "invalid age")

	writeFile(t, dir, "bad_ax.csv", "age,ax\n60,high\n")
	_, err = LoadAnnuityTable(filepath.Join(dir, "bad_ax.csv"))
	assert.ErrorContains(t, err, "invalid ax")

	writeFile(t, dir, "dup.csv", "age,ax\n60,15.0\n60,14.9\n")
	_, err = LoadAnnuityTable(filepath.Join(dir, "dup.csv"))
	assert.ErrorContains(t, err, "duplicate age")

	writeFile(t, dir, "no_header.csv", "age\n60\n")
	_, err = LoadAnnuityTable(filepath.Join(dir, "no_header.csv"))
	assert.ErrorContains(t, err, `missing column "ax"`)

	writeFile(t, dir, "empty.csv", "age,ax\n")
	_, err = LoadAnnuityTable(filepath.Join(dir, "empty.csv"))
	assert.ErrorContains(t, err, "no data rows")
}
