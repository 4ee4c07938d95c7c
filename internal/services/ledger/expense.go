// Package ledger holds the money-movement services: expenses, incomes and
// the groups that bucket them.
package ledger

import (
	"context"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

// ExpenseService orchestrates expense persistence for HTTP handlers.
type ExpenseService struct {
	repo     repository.ExpenseRepository
	validate *validation.Validator
}

// NewExpenseService constructs a new ExpenseService instance.
func NewExpenseService(repo repository.ExpenseRepository, validate *validation.Validator) *ExpenseService {
	return &ExpenseService{repo: repo, validate: validate}
}

// Create validates the expense and persists it under ownerID.
func (s *ExpenseService) Create(ctx context.Context, ownerID int, expense *models.Expense) error {
	expense.ID = 0
	expense.UserID = ownerID

	if err := s.validate.Struct(expense); err != nil {
		return err
	}
	return s.repo.Create(ctx, expense)
}

// Get returns a single expense by id.
func (s *ExpenseService) Get(ctx context.Context, id int) (*models.Expense, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForUser returns userID's expenses, newest first.
func (s *ExpenseService) ListForUser(ctx context.Context, userID int) ([]models.Expense, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update validates and persists changed fields. The owner column never
// changes after creation.
func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense) error {
	if err := s.validate.Struct(expense); err != nil {
		return err
	}
	return s.repo.Update(ctx, expense)
}

// Delete removes an expense by id.
func (s *ExpenseService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
