package server

import (
	"net/http"

	"github.com/perisicnikola37/expense-tracker-api/internal/authz"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/ledger"
)

// IncomeHandlers serves the /api/incomes endpoints, mirroring
// ExpenseHandlers. Income rows are ownership-checked like every other
// owned aggregate.
type IncomeHandlers struct {
	service   *ledger.IncomeService
	evaluator *authz.Evaluator
}

// NewIncomeHandlers creates the handler set for incomes.
func NewIncomeHandlers(service *ledger.IncomeService, evaluator *authz.Evaluator) *IncomeHandlers {
	return &IncomeHandlers{service: service, evaluator: evaluator}
}

// List handles GET /api/incomes, scoped to the caller's own rows.
func (h *IncomeHandlers) List(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	incomes, err := h.service.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

// Get handles GET /api/incomes/{id}.
func (h *IncomeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceIncome, id) {
		return
	}

	income, err := h.service.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, income)
}

// Create handles POST /api/incomes.
func (h *IncomeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var income models.Income
	if err := decodeJSON(r, &income); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), principal.UserID, &income); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &income)
}

// Update handles PUT /api/incomes/{id}.
func (h *IncomeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceIncome, id) {
		return
	}

	var income models.Income
	if err := decodeJSON(r, &income); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	income.ID = id

	if err := h.service.Update(r.Context(), &income); err != nil {
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

// Delete handles DELETE /api/incomes/{id}.
func (h *IncomeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceIncome, id) {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
