// Package api exposes the calculation engine over HTTP. Handlers are thin:
// decode, delegate to the engine, encode. The engine's per-client error
// model maps onto status codes; a calculation failure is a structured 422,
// never a 500.
package api

import (
	"github.com/rsatools/pencalc/internal/domain"
)

// CalculateRequest is the single-client request body. It reuses the domain
// record's JSON shape (DD-MM-YYYY dates, M/F, PU/PR, 4/12).
type CalculateRequest struct {
	domain.ClientRecord
}

// BatchRequest carries multiple client records.
type BatchRequest struct {
	Clients []domain.ClientRecord `json:"clients"`
}

// BatchResponse returns one result per submitted client, in input order,
// with success/error tallies.
type BatchResponse struct {
	Total     int                    `json:"total"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
	Results   []domain.PensionResult `json:"results"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
