package repository

import (
	"context"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
)

// UserRepository exposes persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// BlogRepository exposes persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id int) (*models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id int) error

	// GetOwnerID reports the owning user of a post. Absent rows report
	// found=false, never an error.
	GetOwnerID(ctx context.Context, id int) (ownerID int, found bool, err error)
}

// ExpenseRepository exposes persistence operations for expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id int) (*models.Expense, error)
	ListByUser(ctx context.Context, userID int) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id int) error
	GetOwnerID(ctx context.Context, id int) (ownerID int, found bool, err error)
}

// IncomeRepository exposes persistence operations for incomes.
type IncomeRepository interface {
	Create(ctx context.Context, income *models.Income) error
	GetByID(ctx context.Context, id int) (*models.Income, error)
	ListByUser(ctx context.Context, userID int) ([]models.Income, error)
	Update(ctx context.Context, income *models.Income) error
	Delete(ctx context.Context, id int) error
	GetOwnerID(ctx context.Context, id int) (ownerID int, found bool, err error)
}

// ExpenseGroupRepository exposes persistence operations for expense groups.
type ExpenseGroupRepository interface {
	Create(ctx context.Context, group *models.ExpenseGroup) error
	GetByID(ctx context.Context, id int) (*models.ExpenseGroup, error)
	List(ctx context.Context) ([]models.ExpenseGroup, error)
	Update(ctx context.Context, group *models.ExpenseGroup) error
	Delete(ctx context.Context, id int) error
}

// IncomeGroupRepository exposes persistence operations for income groups.
type IncomeGroupRepository interface {
	Create(ctx context.Context, group *models.IncomeGroup) error
	GetByID(ctx context.Context, id int) (*models.IncomeGroup, error)
	List(ctx context.Context) ([]models.IncomeGroup, error)
	Update(ctx context.Context, group *models.IncomeGroup) error
	Delete(ctx context.Context, id int) error
}

// ReminderRepository exposes persistence operations for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *models.Reminder) error
	GetByID(ctx context.Context, id int) (*models.Reminder, error)
	ListByUser(ctx context.Context, userID int) ([]models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id int) error
	GetOwnerID(ctx context.Context, id int) (ownerID int, found bool, err error)
}
