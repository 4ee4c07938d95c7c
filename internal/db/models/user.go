package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
)

// AccountType distinguishes administrators from regular users.
// Administrators bypass ownership checks; regular users may only act on
// rows they own.
type AccountType string

const (
	AccountTypeRegular       AccountType = "regular"
	AccountTypeAdministrator AccountType = "admin"
)

// ParseAccountType maps a stored or claimed account type string onto the
// known enum values. Unknown values are a client error, not a server fault.
func ParseAccountType(value string) (AccountType, error) {
	switch AccountType(value) {
	case AccountTypeRegular:
		return AccountTypeRegular, nil
	case AccountTypeAdministrator:
		return AccountTypeAdministrator, nil
	default:
		return "", &domain.InvalidAccountTypeError{Value: value}
	}
}

// User represents an account holder. PasswordHash stores the bcrypt hash
// used for local login.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int         `bun:"id,pk,autoincrement" json:"id"`
	Username     string      `bun:"username,notnull,unique" json:"username" validate:"required,max=100"`
	Email        string      `bun:"email,notnull,unique" json:"email" validate:"required,email"`
	PasswordHash string      `bun:"password_hash,notnull" json:"-"`
	AccountType  AccountType `bun:"account_type,notnull,default:'regular'" json:"accountType"`
	CreatedAt    time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// IsAdministrator reports whether the user holds the administrator account type.
func (u *User) IsAdministrator() bool {
	return u != nil && u.AccountType == AccountTypeAdministrator
}
