package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/perisicnikola37/expense-tracker-api/internal/config"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
)

// Issuer signs access tokens for authenticated users. It reads only the
// immutable configuration snapshot and is safe for concurrent use.
type Issuer struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration

	now func() time.Time
}

// NewIssuer constructs a token issuer from the JWT configuration.
func NewIssuer(cfg config.JWTConfig) *Issuer {
	return &Issuer{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		ttl:        time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		now:        time.Now,
	}
}

// Issue signs an HS256 access token for the user. The subject claim is the
// user's integer id, and account_type carries the flat role distinction the
// ownership evaluator relies on.
func (i *Issuer) Issue(user *models.User) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		ClaimSubject:     strconv.Itoa(user.ID),
		ClaimAccountType: string(user.AccountType),
		ClaimTokenID:     uuid.NewString(),
		"iss":            i.issuer,
		"aud":            i.audience,
		"iat":            jwt.NewNumericDate(now),
		"exp":            jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
