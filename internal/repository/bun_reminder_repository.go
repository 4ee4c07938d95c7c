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

// BunReminderRepository persists reminders using Bun.
type BunReminderRepository struct {
	db *bun.DB
}

// NewBunReminderRepository constructs a repository backed by Bun.
func NewBunReminderRepository(db *bun.DB) *BunReminderRepository {
	return &BunReminderRepository{db: db}
}

// Create inserts a new reminder row.
func (r *BunReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	reminder.CreatedAt = time.Now()

	if _, err := r.db.NewInsert().Model(reminder).Exec(ctx); err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

// GetByID fetches a reminder by primary key.
func (r *BunReminderRepository) GetByID(ctx context.Context, id int) (*models.Reminder, error) {
	reminder := new(models.Reminder)
	err := r.db.NewSelect().Model(reminder).Where("r.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reminder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query reminder: %w", err)
	}

	return reminder, nil
}

// ListByUser returns a user's reminders ordered by day of month.
func (r *BunReminderRepository) ListByUser(ctx context.Context, userID int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.NewSelect().
		Model(&reminders).
		Where("r.user_id = ?", userID).
		Order("day ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return reminders, nil
}

// Update persists mutated reminder fields. The owner column is excluded.
func (r *BunReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	result, err := r.db.NewUpdate().
		Model(reminder).
		Column("title", "day", "active").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %d: %w", reminder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a reminder by id.
func (r *BunReminderRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.NewDelete().Model((*models.Reminder)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// GetOwnerID reports the owning user of a reminder without loading the row.
func (r *BunReminderRepository) GetOwnerID(ctx context.Context, id int) (int, bool, error) {
	var ownerID int
	err := r.db.NewSelect().
		Model((*models.Reminder)(nil)).
		Column("user_id").
		Where("id = ?", id).
		Scan(ctx, &ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("query reminder owner: %w", err)
	}

	return ownerID, true, nil
}
