package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Blog represents a user-authored post. UserID is the owning user and is
// immutable after creation; ownership transfer is not supported.
type Blog struct {
	bun.BaseModel `bun:"table:blogs,alias:b"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Description string    `bun:"description,notnull" json:"description" validate:"required,max=1500"`
	Author      string    `bun:"author" json:"author"`
	Text        string    `bun:"text,notnull" json:"text" validate:"required"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UserID      int       `bun:"user_id,notnull" json:"userId"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// OwnerID returns the owning user id.
func (b *Blog) OwnerID() int { return b.UserID }
