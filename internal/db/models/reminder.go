package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Reminder is a recurring monthly nudge to record finances. It belongs to
// the user who created it.
type Reminder struct {
	bun.BaseModel `bun:"table:reminders,alias:r"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Title     string    `bun:"title,notnull" json:"title" validate:"required,max=100"`
	Day       int       `bun:"day,notnull" json:"day" validate:"required,min=1,max=31"`
	Active    bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UserID    int       `bun:"user_id,notnull" json:"userId"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// OwnerID returns the owning user id.
func (r *Reminder) OwnerID() int { return r.UserID }
