package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
)

// BunExpenseGroupRepository persists expense groups using Bun.
type BunExpenseGroupRepository struct {
	db *bun.DB
}

// NewBunExpenseGroupRepository constructs a repository backed by Bun.
func NewBunExpenseGroupRepository(db *bun.DB) *BunExpenseGroupRepository {
	return &BunExpenseGroupRepository{db: db}
}

// Create inserts a new expense group.
func (r *BunExpenseGroupRepository) Create(ctx context.Context, group *models.ExpenseGroup) error {
	group.CreatedAt = time.Now()

	if _, err := r.db.NewInsert().Model(group).Exec(ctx); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("expense group %q already exists: %w", group.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert expense group: %w", err)
	}
	return nil
}

// GetByID fetches an expense group with its expenses, newest first.
func (r *BunExpenseGroupRepository) GetByID(ctx context.Context, id int) (*models.ExpenseGroup, error) {
	group := new(models.ExpenseGroup)
	err := r.db.NewSelect().
		Model(group).
		Relation("Expenses", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("e.created_at DESC")
		}).
		Relation("Expenses.User").
		Where("eg.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("expense group %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query expense group: %w", err)
	}

	return group, nil
}

// List returns all expense groups ordered from newest to oldest.
func (r *BunExpenseGroupRepository) List(ctx context.Context) ([]models.ExpenseGroup, error) {
	var groups []models.ExpenseGroup
	err := r.db.NewSelect().
		Model(&groups).
		Relation("Expenses").
		Order("eg.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expense groups: %w", err)
	}

	if groups == nil {
		groups = []models.ExpenseGroup{}
	}
	return groups, nil
}

// Update persists mutated group fields.
func (r *BunExpenseGroupRepository) Update(ctx context.Context, group *models.ExpenseGroup) error {
	result, err := r.db.NewUpdate().
		Model(group).
		Column("name", "description").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("expense group %q already exists: %w", group.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update expense group: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("expense group %d: %w", group.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an expense group by id.
func (r *BunExpenseGroupRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.NewDelete().Model((*models.ExpenseGroup)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete expense group: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("expense group %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
