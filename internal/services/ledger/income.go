package ledger

import (
	"context"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

// IncomeService orchestrates income persistence for HTTP handlers. It is
// the mirror of ExpenseService.
type IncomeService struct {
	repo     repository.IncomeRepository
	validate *validation.Validator
}

// NewIncomeService constructs a new IncomeService instance.
func NewIncomeService(repo repository.IncomeRepository, validate *validation.Validator) *IncomeService {
	return &IncomeService{repo: repo, validate: validate}
}

// Create validates the income and persists it under ownerID.
func (s *IncomeService) Create(ctx context.Context, ownerID int, income *models.Income) error {
	income.ID = 0
	income.UserID = ownerID

	if err := s.validate.Struct(income); err != nil {
		return err
	}
	return s.repo.Create(ctx, income)
}

// Get returns a single income by id.
func (s *IncomeService) Get(ctx context.Context, id int) (*models.Income, error) {
	return s.repo.GetByID(ctx, id)
}

// ListForUser returns userID's incomes, newest first.
func (s *IncomeService) ListForUser(ctx context.Context, userID int) ([]models.Income, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update validates and persists changed fields.
func (s *IncomeService) Update(ctx context.Context, income *models.Income) error {
	if err := s.validate.Struct(income); err != nil {
		return err
	}
	return s.repo.Update(ctx, income)
}

// Delete removes an income by id.
func (s *IncomeService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
