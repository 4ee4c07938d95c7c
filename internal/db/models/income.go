package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Income records a single incoming amount. UserID is the owning user and
// is immutable after creation.
type Income struct {
	bun.BaseModel `bun:"table:incomes,alias:i"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	Description   string    `bun:"description,notnull" json:"description" validate:"required,max=255"`
	Amount        float64   `bun:"amount,notnull" json:"amount" validate:"required,gt=0"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	IncomeGroupID int       `bun:"income_group_id,notnull" json:"incomeGroupId" validate:"required"`
	UserID        int       `bun:"user_id,notnull" json:"userId"`

	IncomeGroup *IncomeGroup `bun:"rel:belongs-to,join:income_group_id=id" json:"incomeGroup,omitempty"`
	User        *User        `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// OwnerID returns the owning user id.
func (i *Income) OwnerID() int { return i.UserID }

// IncomeGroup is a user-defined bucket of incomes.
type IncomeGroup struct {
	bun.BaseModel `bun:"table:income_groups,alias:ig"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name" validate:"required,max=100"`
	Description string    `bun:"description" json:"description" validate:"max=255"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Incomes []*Income `bun:"rel:has-many,join:id=income_group_id" json:"incomes,omitempty"`
}
