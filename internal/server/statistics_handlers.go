package server

import (
	"net/http"

	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/statistics"
)

// StatisticsHandlers serves GET /api/statistics for the dashboard.
type StatisticsHandlers struct {
	service *statistics.Service
}

// NewStatisticsHandlers creates the handler for ledger statistics.
func NewStatisticsHandlers(service *statistics.Service) *StatisticsHandlers {
	return &StatisticsHandlers{service: service}
}

// Summary returns the caller's aggregated expenses and incomes.
func (h *StatisticsHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	summary, err := h.service.Summarize(r.Context(), principal.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
