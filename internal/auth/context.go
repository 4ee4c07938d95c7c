package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
)

// Principal captures the authenticated caller's identity for one request.
// It is built once by the authentication middleware after token
// verification, lives only on the request context, and is never persisted.
type Principal struct {
	// UserID is the stable integer identity resolved from the subject claim.
	UserID int
	// AccountType distinguishes administrators from regular users.
	AccountType models.AccountType
	// RawClaims is the verified claim set the principal was derived from.
	RawClaims jwt.MapClaims
}

// IsAdministrator reports whether the principal bypasses ownership checks.
func (p *Principal) IsAdministrator() bool {
	return p != nil && p.AccountType == models.AccountTypeAdministrator
}

type principalContextKey struct{}

// WithPrincipal stores the authenticated principal on the context for
// downstream consumers. Storing the same principal again is a no-op in
// effect: the latest value always wins and carries identical data.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal from the
// context. Absence of a principal on a protected route is a denial signal
// for the authorization evaluator, not an error.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(*Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}
