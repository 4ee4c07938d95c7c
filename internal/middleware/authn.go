package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
)

// NewAuthnMiddleware verifies the bearer token on every request and, on
// success, attaches a normalized Principal to the request context.
//
// A missing or invalid token is not fatal here: the request proceeds with
// no principal and the route-level requirement decides the consequence.
// This stage runs strictly after token verification and strictly before
// any authorization check; the evaluator only ever sees principals
// produced here.
func NewAuthnMiddleware(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			rawClaims, verr := verifier.Verify(token)
			if verr != nil {
				log.Printf("rejected bearer token for %s %s: %v", r.Method, r.URL.Path, verr)
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.DecodeClaims(rawClaims)
			if err != nil {
				log.Printf("undecodable claim set for %s %s: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := auth.ExtractUserID(claims)
			if !ok {
				// No identity claim is equivalent to unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			accountType, err := models.ParseAccountType(claims.AccountType)
			if err != nil {
				log.Printf("token with unknown account type for %s %s: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			principal := &auth.Principal{
				UserID:      userID,
				AccountType: accountType,
				RawClaims:   rawClaims,
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

func extractBearerToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(value), "bearer ") {
		return ""
	}
	return strings.TrimSpace(value[len("bearer "):])
}
