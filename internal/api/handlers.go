package api

import (
	"encoding/json"
	"net/http"

	"github.com/rsatools/pencalc/internal/calculation"
	"github.com/rsatools/pencalc/internal/config"
	"github.com/rsatools/pencalc/internal/domain"
)

// Handler holds the shared dependencies of all endpoints: the engine and
// the record validator. Both are read-only, so one Handler serves all
// requests.
type Handler struct {
	engine *calculation.Engine
	parser *config.InputParser
}

// NewHandler creates a handler over the given engine.
func NewHandler(engine *calculation.Engine) *Handler {
	return &Handler{engine: engine, parser: config.NewInputParser()}
}

// Calculate runs one client calculation. Malformed or structurally invalid
// records are 400; a calculation failure is 422 with the error kind; a
// successful calculation is 200 with the full result.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return
	}
	if err := h.parser.ValidateRecord(&req.ClientRecord); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	result := h.engine.Calculate(&req.ClientRecord)
	if result.Status == domain.StatusError {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Batch runs the engine over every submitted record. Per-client failures
// are rows in the response, not an HTTP error; the call itself succeeds as
// long as the request parses.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return
	}
	if len(req.Clients) == 0 {
		writeError(w, http.StatusBadRequest, "no clients provided", "")
		return
	}

	results := h.engine.CalculateBatch(req.Clients)
	resp := BatchResponse{Total: len(results), Results: results}
	for i := range results {
		if results[i].Status == domain.StatusSuccess {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, kind string) {
	writeJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}
