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

// BunIncomeRepository persists incomes using Bun.
type BunIncomeRepository struct {
	db *bun.DB
}

// NewBunIncomeRepository constructs a repository backed by Bun.
func NewBunIncomeRepository(db *bun.DB) *BunIncomeRepository {
	return &BunIncomeRepository{db: db}
}

// Create inserts a new income row.
func (r *BunIncomeRepository) Create(ctx context.Context, income *models.Income) error {
	income.CreatedAt = time.Now()

	if _, err := r.db.NewInsert().Model(income).Exec(ctx); err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

// GetByID fetches an income with its group relation.
func (r *BunIncomeRepository) GetByID(ctx context.Context, id int) (*models.Income, error) {
	income := new(models.Income)
	err := r.db.NewSelect().Model(income).Relation("IncomeGroup").Where("i.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("income %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query income: %w", err)
	}

	return income, nil
}

// ListByUser returns a user's incomes ordered from newest to oldest.
func (r *BunIncomeRepository) ListByUser(ctx context.Context, userID int) ([]models.Income, error) {
	var incomes []models.Income
	err := r.db.NewSelect().
		Model(&incomes).
		Relation("IncomeGroup").
		Where("i.user_id = ?", userID).
		Order("i.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}

	if incomes == nil {
		incomes = []models.Income{}
	}
	return incomes, nil
}

// Update persists mutated income fields. The owner column is excluded.
func (r *BunIncomeRepository) Update(ctx context.Context, income *models.Income) error {
	result, err := r.db.NewUpdate().
		Model(income).
		Column("description", "amount", "income_group_id").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("income %d: %w", income.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an income by id.
func (r *BunIncomeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.NewDelete().Model((*models.Income)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("income %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetOwnerID reports the owning user of an income without loading the row.
func (r *BunIncomeRepository) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	var ownerID int
	err := r.db.NewSelect().
		Model((*models.Income)(nil)).
		Column("user_id").
		Where("id = ?", id).
		Scan(ctx, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query income owner: %w", err)
	}

	return ownerID, true, nil
}
