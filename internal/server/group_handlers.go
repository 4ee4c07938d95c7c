package server

import (
	"net/http"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/ledger"
)

// GroupHandlers serves the expense-group and income-group endpoints.
// Groups are shared reference data with no owner, so listings stay public
// and mutations only require authentication.
type GroupHandlers struct {
	expenseGroups *ledger.ExpenseGroupService
	incomeGroups  *ledger.IncomeGroupService
}

// NewGroupHandlers creates the handler set for both group kinds.
func NewGroupHandlers(expenseGroups *ledger.ExpenseGroupService, incomeGroups *ledger.IncomeGroupService) *GroupHandlers {
	return &GroupHandlers{expenseGroups: expenseGroups, incomeGroups: incomeGroups}
}

// ListExpenseGroups handles GET /api/expense-groups.
func (h *GroupHandlers) ListExpenseGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.expenseGroups.List(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// GetExpenseGroup handles GET /api/expense-groups/{id}, returning the
// group with its expenses newest first.
func (h *GroupHandlers) GetExpenseGroup(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	group, err := h.expenseGroups.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// CreateExpenseGroup handles POST /api/expense-groups.
func (h *GroupHandlers) CreateExpenseGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := requirePrincipal(r); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var group models.ExpenseGroup
	if err := decodeJSON(r, &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.expenseGroups.Create(r.Context(), &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &group)
}

// UpdateExpenseGroup handles PUT /api/expense-groups/{id}.
func (h *GroupHandlers) UpdateExpenseGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := requirePrincipal(r); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var group models.ExpenseGroup
	if err := decodeJSON(r, &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	group.ID = id

	if err := h.expenseGroups.Update(r.Context(), &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &group)
}

// DeleteExpenseGroup handles DELETE /api/expense-groups/{id}.
func (h *GroupHandlers) DeleteExpenseGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := requirePrincipal(r); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.expenseGroups.Delete(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListIncomeGroups handles GET /api/income-groups.
func (h *GroupHandlers) ListIncomeGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.incomeGroups.List(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// GetIncomeGroup handles GET /api/income-groups/{id}.
func (h *GroupHandlers) GetIncomeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	group, err := h.incomeGroups.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// CreateIncomeGroup handles POST /api/income-groups.
func (h *GroupHandlers) CreateIncomeGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := requirePrincipal(r); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var group models.IncomeGroup
	if err := decodeJSON(r, &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.incomeGroups.Create(r.Context(), &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &group)
}

// UpdateIncomeGroup handles PUT /api/income-groups/{id}.
func (h *GroupHandlers) UpdateIncomeGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := requirePrincipal(r); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var group models.IncomeGroup
	if err := decodeJSON(r, &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	group.ID = id

	if err := h.incomeGroups.Update(r.Context(), &group); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &group)
}

// DeleteIncomeGroup handles DELETE /api/income-groups/{id}.
func (h *GroupHandlers) DeleteIncomeGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := requirePrincipal(r); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.incomeGroups.Delete(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
