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

// BunExpenseRepository persists expenses using Bun.
type BunExpenseRepository struct {
	db *bun.DB
}

// NewBunExpenseRepository constructs a repository backed by Bun.
func NewBunExpenseRepository(db *bun.DB) *BunExpenseRepository {
	return &BunExpenseRepository{db: db}
}

// Create inserts a new expense row.
func (r *BunExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	expense.CreatedAt = time.Now()

	if _, err := r.db.NewInsert().Model(expense).Exec(ctx); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID fetches an expense with its group relation.
func (r *BunExpenseRepository) GetByID(ctx context.Context, id int) (*models.Expense, error) {
	expense := new(models.Expense)
	err := r.db.NewSelect().Model(expense).Relation("ExpenseGroup").Where("e.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("expense %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query expense: %w", err)
	}

	return expense, nil
}

// ListByUser returns a user's expenses ordered from newest to oldest.
func (r *BunExpenseRepository) ListByUser(ctx context.Context, userID int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.NewSelect().
		Model(&expenses).
		Relation("ExpenseGroup").
		Where("e.user_id = ?", userID).
		Order("e.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// Update persists mutated expense fields. The owner column is excluded.
func (r *BunExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	result, err := r.db.NewUpdate().
		Model(expense).
		Column("description", "amount", "expense_group_id").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("expense %d: %w", expense.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an expense by id.
func (r *BunExpenseRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.NewDelete().Model((*models.Expense)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("expense %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetOwnerID reports the owning user of an expense without loading the row.
func (r *BunExpenseRepository) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	var ownerID int
	err := r.db.NewSelect().
		Model((*models.Expense)(nil)).
		Column("user_id").
		Where("id = ?", id).
		Scan(ctx, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query expense owner: %w", err)
	}

	return ownerID, true, nil
}
