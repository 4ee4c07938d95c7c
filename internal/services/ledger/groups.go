package ledger

import (
	"context"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

// ExpenseGroupService manages the shared expense buckets. Groups carry no
// owner; any authenticated user may manage them.
type ExpenseGroupService struct {
	repo     repository.ExpenseGroupRepository
	validate *validation.Validator
}

// NewExpenseGroupService constructs a new ExpenseGroupService instance.
func NewExpenseGroupService(repo repository.ExpenseGroupRepository, validate *validation.Validator) *ExpenseGroupService {
	return &ExpenseGroupService{repo: repo, validate: validate}
}

// Create validates and persists a new group.
func (s *ExpenseGroupService) Create(ctx context.Context, group *models.ExpenseGroup) error {
	group.ID = 0
	if err := s.validate.Struct(group); err != nil {
		return err
	}
	return s.repo.Create(ctx, group)
}

// Get returns a group with its expenses, newest first.
func (s *ExpenseGroupService) Get(ctx context.Context, id int) (*models.ExpenseGroup, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all groups, newest first.
func (s *ExpenseGroupService) List(ctx context.Context) ([]models.ExpenseGroup, error) {
	return s.repo.List(ctx)
}

// Update validates and persists changed fields.
func (s *ExpenseGroupService) Update(ctx context.Context, group *models.ExpenseGroup) error {
	if err := s.validate.Struct(group); err != nil {
		return err
	}
	return s.repo.Update(ctx, group)
}

// Delete removes a group by id.
func (s *ExpenseGroupService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// IncomeGroupService manages the shared income buckets.
type IncomeGroupService struct {
	repo     repository.IncomeGroupRepository
	validate *validation.Validator
}

// NewIncomeGroupService constructs a new IncomeGroupService instance.
func NewIncomeGroupService(repo repository.IncomeGroupRepository, validate *validation.Validator) *IncomeGroupService {
	return &IncomeGroupService{repo: repo, validate: validate}
}

// Create validates and persists a new group.
func (s *IncomeGroupService) Create(ctx context.Context, group *models.IncomeGroup) error {
	group.ID = 0
	if err := s.validate.Struct(group); err != nil {
		return err
	}
	return s.repo.Create(ctx, group)
}

// Get returns a group with its incomes, newest first.
func (s *IncomeGroupService) Get(ctx context.Context, id int) (*models.IncomeGroup, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all groups, newest first.
func (s *IncomeGroupService) List(ctx context.Context) ([]models.IncomeGroup, error) {
	return s.repo.List(ctx)
}

// Update validates and persists changed fields.
func (s *IncomeGroupService) Update(ctx context.Context, group *models.IncomeGroup) error {
	if err := s.validate.Struct(group); err != nil {
		return err
	}
	return s.repo.Update(ctx, group)
}

// Delete removes a group by id.
func (s *IncomeGroupService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
