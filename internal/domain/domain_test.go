package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("01-09-2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.September, d.Month())
	assert.Equal(t, 1, d.Day())
	assert.Equal(t, "01-09-2024", d.String())

	_, err = ParseDate("2024-09-01")
	assert.Error(t, err)
}

func TestDateYAMLRoundTrip(t *testing.T) {
	var parsed struct {
		When Date `yaml:"when"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("when: 15-06-1970\n"), &parsed))
	assert.Equal(t, NewDate(1970, time.June, 15), parsed.When)

	out, err := yaml.Marshal(parsed)
	require.NoError(t, err)
	assert.Contains(t, string(out), "15-06-1970")
}

func TestDateJSONRoundTrip(t *testing.T) {
	var parsed struct {
		When Date `json:"when"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"when":"01-01-2030"}`), &parsed))
	assert.Equal(t, NewDate(2030, time.January, 1), parsed.When)

	out, err := json.Marshal(parsed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"01-01-2030"}`, string(out))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, GenderMale.Valid())
	assert.True(t, GenderFemale.Valid())
	assert.False(t, Gender("X").Valid())

	assert.True(t, SectorPublic.Valid())
	assert.True(t, SectorPrivate.Valid())
	assert.False(t, Sector("GOV").Valid())

	assert.True(t, FrequencyQuarterly.Valid())
	assert.True(t, FrequencyMonthly.Valid())
	assert.False(t, Frequency(6).Valid())
}

func TestDefaultRegulatoryPolicy(t *testing.T) {
	p := DefaultRegulatoryPolicy()

	// Net rate: 10.5% * (1 - 6.5% - 1%) = 9.7125% annual.
	assert.InDelta(t, 0.097125, p.NetInterestRate(), 1e-12)
	assert.InDelta(t, 0.097125/12, p.NetMonthlyRate(), 1e-12)
	assert.Equal(t, NewDate(2024, time.September, 1), p.CutoffDate)
	assert.Equal(t, 6, p.PrivateSectorArrearsCap)
}

func TestCalcErrorKindMatching(t *testing.T) {
	err := Errf(ErrExceedsMaxArrears, "negotiated months %d exceed the maximum allowable arrears %d", 10, 8)

	assert.True(t, errors.Is(err, &CalcError{Kind: ErrExceedsMaxArrears}))
	assert.False(t, errors.Is(err, &CalcError{Kind: ErrAgeNotFound}))

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, ErrExceedsMaxArrears, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
