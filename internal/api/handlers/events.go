package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eventfeed-io/server/internal/api/problem"
	"github.com/eventfeed-io/server/internal/domain/events"
)

const (
	typeValidationError = "https://eventfeed.io/problems/validation-error"
	typeUpstreamError   = "https://eventfeed.io/problems/upstream-error"
	typeNotFound        = "https://eventfeed.io/problems/not-found"
	typeServerError     = "https://eventfeed.io/problems/server-error"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

// List runs the full pipeline: validate, fetch by org prefix, project,
// filter, rank.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", nil, h.Env)
		return
	}

	criteria, validationErrs := events.ParseCriteria(r.URL.Query())
	if len(validationErrs) > 0 {
		problem.Write(w, r, http.StatusBadRequest, typeValidationError, "Invalid request", nil, h.Env,
			problem.WithErrors(errorItems(validationErrs)))
		return
	}

	result, err := h.Service.List(r.Context(), criteria)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeUpstreamError, "Upstream failure", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get proxies a single-object retrieval. Any failure, including an unknown
// identifier, surfaces as an upstream failure.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", nil, h.Env)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "Not found", nil, h.Env)
		return
	}

	body, err := h.Service.Get(r.Context(), id)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeUpstreamError, "Upstream failure", err, h.Env)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func errorItems(validationErrs []events.ValidationError) []problem.ErrorItem {
	items := make([]problem.ErrorItem, 0, len(validationErrs))
	for _, ve := range validationErrs {
		items = append(items, problem.ErrorItem{Code: ve.Code, Message: ve.Message})
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
