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

// BunIncomeGroupRepository persists income groups using Bun.
type BunIncomeGroupRepository struct {
	db *bun.DB
}

// NewBunIncomeGroupRepository constructs a repository backed by Bun.
func NewBunIncomeGroupRepository(db *bun.DB) *BunIncomeGroupRepository {
	return &BunIncomeGroupRepository{db: db}
}

// Create inserts a new income group.
func (r *BunIncomeGroupRepository) Create(ctx context.Context, group *models.IncomeGroup) error {
	group.CreatedAt = time.Now()

	if _, err := r.db.NewInsert().Model(group).Exec(ctx); err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("income group %q already exists: %w", group.Name, domain.ErrConflict)
		}
		return fmt.Errorf("insert income group: %w", err)
	}
	return nil
}

// GetByID fetches an income group with its incomes, newest first.
func (r *BunIncomeGroupRepository) GetByID(ctx context.Context, id int) (*models.IncomeGroup, error) {
	group := new(models.IncomeGroup)
	err := r.db.NewSelect().
		Model(group).
		Relation("Incomes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("i.created_at DESC")
		}).
		Relation("Incomes.User").
		Where("ig.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("income group %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query income group: %w", err)
	}

	return group, nil
}

// List returns all income groups ordered from newest to oldest.
func (r *BunIncomeGroupRepository) List(ctx context.Context) ([]models.IncomeGroup, error) {
	var groups []models.IncomeGroup
	err := r.db.NewSelect().
		Model(&groups).
		Relation("Incomes").
		Order("ig.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list income groups: %w", err)
	}

	if groups == nil {
		groups = []models.IncomeGroup{}
	}
	return groups, nil
}

// Update persists mutated group fields.
func (r *BunIncomeGroupRepository) Update(ctx context.Context, group *models.IncomeGroup) error {
	result, err := r.db.NewUpdate().
		Model(group).
		Column("name", "description").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("income group %q already exists: %w", group.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update income group: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("income group %d: %w", group.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an income group by id.
func (r *BunIncomeGroupRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.NewDelete().Model((*models.IncomeGroup)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete income group: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("income group %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
