package server

import (
	"net/http"

	"github.com/perisicnikola37/expense-tracker-api/internal/authz"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/reminder"
)

// ReminderHandlers serves the /api/reminders endpoints.
type ReminderHandlers struct {
	service   *reminder.Service
	evaluator *authz.Evaluator
}

// NewReminderHandlers creates the handler set for reminders.
func NewReminderHandlers(service *reminder.Service, evaluator *authz.Evaluator) *ReminderHandlers {
	return &ReminderHandlers{service: service, evaluator: evaluator}
}

// List handles GET /api/reminders, scoped to the caller's own rows.
func (h *ReminderHandlers) List(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	reminders, err := h.service.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

// Get handles GET /api/reminders/{id}.
func (h *ReminderHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceReminder, id) {
		return
	}

	rem, err := h.service.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

// Create handles POST /api/reminders.
func (h *ReminderHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var rem models.Reminder
	if err := decodeJSON(r, &rem); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), principal.UserID, &rem); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &rem)
}

// Update handles PUT /api/reminders/{id}.
func (h *ReminderHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceReminder, id) {
		return
	}

	var rem models.Reminder
	if err := decodeJSON(r, &rem); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	rem.ID = id

	if err := h.service.Update(r.Context(), &rem); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	updated, err := h.service.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/reminders/{id}.
func (h *ReminderHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceReminder, id) {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
