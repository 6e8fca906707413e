package assistant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jia-labs/jia/store"
)

// maxRequestBody bounds incoming request bodies.
const maxRequestBody = 1 << 20 // 1MB

// RegisterHTTPHandlers mounts the assistant's HTTP API under the given
// prefix:
//
//	POST {prefix}/ask       - converse with the assistant
//	GET  {prefix}/plans/{id} - retrieve a generated project plan
//	POST {prefix}/schedule  - request scheduling recommendations
//	GET  {prefix}/status    - assistant counters
func (a *Assistant) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	prefix = strings.TrimSuffix(prefix, "/")
	mux.HandleFunc("POST "+prefix+"/ask", a.handleAsk)
	mux.HandleFunc("GET "+prefix+"/plans/{id}", a.handleGetPlan)
	mux.HandleFunc("POST "+prefix+"/schedule", a.handleSchedule)
	mux.HandleFunc("GET "+prefix+"/status", a.handleStatus)
}

func (a *Assistant) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.Respond(r.Context(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		// Respond degrades internally; anything else is unexpected.
		a.logger.Error("ask handler failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *Assistant) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID := r.PathValue("id")

	p, err := a.plans.Get(r.Context(), planID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		a.logger.Error("plan lookup failed", "plan_id", planID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (a *Assistant) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := a.SuggestSchedule(r.Context(), req)
	if err != nil {
		a.logger.Error("schedule handler failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate schedule")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"schedule": schedule})
}

func (a *Assistant) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Stats())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
