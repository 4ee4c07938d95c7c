package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/perisicnikola37/expense-tracker-api/internal/config"
)

// VerificationErrorKind classifies why a bearer token was rejected.
type VerificationErrorKind string

const (
	VerificationBadSignature VerificationErrorKind = "bad_signature"
	VerificationBadIssuer    VerificationErrorKind = "bad_issuer"
	VerificationBadAudience  VerificationErrorKind = "bad_audience"
	VerificationMalformed    VerificationErrorKind = "malformed"
	VerificationExpired      VerificationErrorKind = "expired"
)

// VerificationError is the typed result of a failed token verification.
// The verifier never panics and never returns an untyped error for client
// input; every rejection carries exactly one kind.
type VerificationError struct {
	Kind VerificationErrorKind
	err  error
}

func (e *VerificationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("token verification failed (%s): %v", e.Kind, e.err)
	}
	return fmt.Sprintf("token verification failed (%s)", e.Kind)
}

func (e *VerificationError) Unwrap() error { return e.err }

// Verifier checks inbound bearer tokens against the configured signing key,
// issuer, and audience. It holds only immutable configuration and is safe
// for concurrent use.
type Verifier struct {
	signingKey       []byte
	issuer           string
	audience         string
	validateLifetime bool
	parser           *jwt.Parser

	// now is overridable in tests
	now func() time.Time
}

// NewVerifier constructs a verifier from the immutable JWT configuration
// snapshot loaded at process start.
func NewVerifier(cfg config.JWTConfig) *Verifier {
	return &Verifier{
		signingKey:       []byte(cfg.SigningKey),
		issuer:           cfg.Issuer,
		audience:         cfg.Audience,
		validateLifetime: cfg.ValidateLifetime,
		// Issuer, audience, and lifetime are validated by hand below so a
		// failure maps to exactly one kind.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}
}

// Verify validates signature, structure, issuer, audience, and (when
// configured) lifetime. It is a pure function of the token and the
// configuration; on success it returns the verified claim set.
func (v *Verifier) Verify(token string) (jwt.MapClaims, *VerificationError) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.signingKey, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	issuer, err := claims.GetIssuer()
	if err != nil || issuer != v.issuer {
		return nil, &VerificationError{Kind: VerificationBadIssuer, err: err}
	}

	audience, err := claims.GetAudience()
	if err != nil || !containsAudience(audience, v.audience) {
		return nil, &VerificationError{Kind: VerificationBadAudience, err: err}
	}

	if v.validateLifetime {
		expiry, err := claims.GetExpirationTime()
		if err != nil || expiry == nil {
			return nil, &VerificationError{Kind: VerificationExpired, err: err}
		}
		if v.now().After(expiry.Time) {
			return nil, &VerificationError{Kind: VerificationExpired}
		}
	}

	return claims, nil
}

func classifyParseError(err error) *VerificationError {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &VerificationError{Kind: VerificationBadSignature, err: err}
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return &VerificationError{Kind: VerificationBadSignature, err: err}
	default:
		return &VerificationError{Kind: VerificationMalformed, err: err}
	}
}

func containsAudience(audience jwt.ClaimStrings, expected string) bool {
	for _, aud := range audience {
		if aud == expected {
			return true
		}
	}
	return false
}
