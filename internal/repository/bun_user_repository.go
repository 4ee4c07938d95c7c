package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
)

// BunUserRepository persists user accounts using Bun.
type BunUserRepository struct {
	db *bun.DB
}

// NewBunUserRepository constructs a repository backed by Bun.
func NewBunUserRepository(db *bun.DB) *BunUserRepository {
	return &BunUserRepository{db: db}
}

// Create inserts a new user row. Username and email collisions surface as
// a conflict, not an internal error.
func (r *BunUserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	if user.AccountType == "" {
		user.AccountType = models.AccountTypeRegular
	}

	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("user %q already exists: %w", user.Username, domain.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID fetches a user by primary key.
func (r *BunUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return user, nil
}

// GetByUsername fetches a user by its unique username.
func (r *BunUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return user, nil
}

// GetByEmail fetches a user by its unique email address.
func (r *BunUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return user, nil
}

// isDuplicateKeyError detects unique-constraint violations across the
// postgres and sqlite drivers.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
