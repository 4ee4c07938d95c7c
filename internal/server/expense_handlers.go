package server

import (
	"net/http"

	"github.com/perisicnikola37/expense-tracker-api/internal/authz"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/ledger"
)

// ExpenseHandlers serves the /api/expenses endpoints. Every route requires
// authentication; row-level routes additionally require ownership.
type ExpenseHandlers struct {
	service   *ledger.ExpenseService
	evaluator *authz.Evaluator
}

// NewExpenseHandlers creates the handler set for expenses.
func NewExpenseHandlers(service *ledger.ExpenseService, evaluator *authz.Evaluator) *ExpenseHandlers {
	return &ExpenseHandlers{service: service, evaluator: evaluator}
}

// List handles GET /api/expenses, scoped to the caller's own rows.
func (h *ExpenseHandlers) List(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	expenses, err := h.service.ListForUser(r.Context(), principal.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceExpense, id) {
		return
	}

	expense, err := h.service.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// Create handles POST /api/expenses.
func (h *ExpenseHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), principal.UserID, &expense); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &expense)
}

// Update handles PUT /api/expenses/{id}.
func (h *ExpenseHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceExpense, id) {
		return
	}

	var expense models.Expense
	if err := decodeJSON(r, &expense); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	expense.ID = id

	if err := h.service.Update(r.Context(), &expense); err != nil {
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

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceExpense, id) {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
