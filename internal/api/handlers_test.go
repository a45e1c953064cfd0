package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsatools/pencalc/internal/calculation"
	"github.com/rsatools/pencalc/internal/domain"
	"github.com/rsatools/pencalc/internal/tables"
)

func testRouter() http.Handler {
	set := tables.NewTableSet()
	set.Add(domain.GenderMale, domain.FrequencyMonthly, tables.NewAnnuityTable(map[int]float64{60: 15.0}))
	set.Add(domain.GenderMale, domain.FrequencyQuarterly, tables.NewAnnuityTable(map[int]float64{60: 14.8}))
	set.Add(domain.GenderFemale, domain.FrequencyMonthly, tables.NewAnnuityTable(map[int]float64{60: 16.2}))
	set.Add(domain.GenderFemale, domain.FrequencyQuarterly, tables.NewAnnuityTable(map[int]float64{60: 16.0}))

	scale := tables.NewSalaryScale()
	scale.Add("CONPOSS", "08", "05", decimal.NewFromInt(1_200_000))

	engine := calculation.NewEngine(domain.DefaultRegulatoryPolicy(), set, scale)
	return NewRouter(NewHandler(engine))
}

func clientJSON() map[string]any {
	return map[string]any{
		"client_id":        "C-001",
		"date_of_birth":    "01-01-1970",
		"retirement_date":  "01-01-2030",
		"programming_date": "01-01-2030",
		"gender":           "M",
		"sector":           "PR",
		"frequency":        12,
		"rsa_balance":      "1000000",
		"monthly_salary":   "50000",
	}
}

func post(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCalculateEndpoint(t *testing.T) {
	router := testRouter()

	rec := post(t, router, "/api/calculate", clientJSON())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.PensionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.StatusSuccess, result.Status)
	assert.Equal(t, "C-001", result.ClientID)
	assert.Equal(t, 60, result.RetirementAge)
	assert.True(t, result.FinalLumpSum.Equal(decimal.NewFromInt(250_000)))
}

func TestCalculateEndpointCalculationFailure(t *testing.T) {
	router := testRouter()

	body := clientJSON()
	body["retirement_date"] = "01-01-2045" // age 75, outside the table
	body["programming_date"] = "01-01-2045"
	rec := post(t, router, "/api/calculate", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var result domain.PensionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.StatusError, result.Status)
	assert.Equal(t, string(domain.ErrAgeNotFound), result.ErrorKind)
}

func TestCalculateEndpointBadRequests(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := clientJSON()
	body["gender"] = "X"
	rec = post(t, router, "/api/calculate", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "gender")
}

func TestBatchEndpoint(t *testing.T) {
	router := testRouter()

	bad := clientJSON()
	bad["client_id"] = "C-002"
	bad["rsa_balance"] = "0"

	rec := post(t, router, "/api/batch", map[string]any{"clients": []any{clientJSON(), bad}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, domain.StatusError, resp.Results[1].Status)
	assert.Equal(t, string(domain.ErrInvalidBalance), resp.Results[1].ErrorKind)
}

func TestBatchEndpointEmpty(t *testing.T) {
	router := testRouter()
	rec := post(t, router, "/api/batch", map[string]any{"clients": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}
