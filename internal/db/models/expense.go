package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Expense records a single outgoing amount. UserID is the owning user and
// is immutable after creation.
type Expense struct {
	bun.BaseModel `bun:"table:expenses,alias:e"`

	ID             int       `bun:"id,pk,autoincrement" json:"id"`
	Description    string    `bun:"description,notnull" json:"description" validate:"required,max=255"`
	Amount         float64   `bun:"amount,notnull" json:"amount" validate:"required,gt=0"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	ExpenseGroupID int       `bun:"expense_group_id,notnull" json:"expenseGroupId" validate:"required"`
	UserID         int       `bun:"user_id,notnull" json:"userId"`

	ExpenseGroup *ExpenseGroup `bun:"rel:belongs-to,join:expense_group_id=id" json:"expenseGroup,omitempty"`
	User         *User         `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// OwnerID returns the owning user id.
func (e *Expense) OwnerID() int { return e.UserID }

// ExpenseGroup is a user-defined bucket of expenses. Groups themselves are
// shared reference data and carry no owner.
type ExpenseGroup struct {
	bun.BaseModel `bun:"table:expense_groups,alias:eg"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name" validate:"required,max=100"`
	Description string    `bun:"description" json:"description" validate:"max=255"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Expenses []*Expense `bun:"rel:has-many,join:id=expense_group_id" json:"expenses,omitempty"`
}
