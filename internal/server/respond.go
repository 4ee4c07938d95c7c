package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
	"github.com/perisicnikola37/expense-tracker-api/internal/authz"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// decodeJSON reads a request body into payload. Malformed bodies are a
// client error.
func decodeJSON(r *http.Request, payload any) error {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("request body is required")
		}
		return domain.NewValidationError("request body is not valid JSON")
	}
	return nil
}

// urlParamID parses the {id} route parameter.
func urlParamID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id must be a positive integer")
	}
	return id, nil
}

// requirePrincipal returns the authenticated principal or an
// unauthenticated error for the translator.
func requirePrincipal(r *http.Request) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return principal, nil
}

// errorForDecision converts a denial into the domain error carrying its
// HTTP meaning: missing identity is 401, foreign rows are 403, absent rows
// are 404 so denials never reveal whether a row exists.
func errorForDecision(decision authz.Decision) error {
	switch decision.Reason {
	case authz.ReasonNoPrincipal:
		return domain.ErrUnauthenticated
	case authz.ReasonResourceNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrForbidden
	}
}

// authorize runs the ownership evaluation and writes the denial or
// failure response itself. It reports whether the handler may proceed.
func authorize(w http.ResponseWriter, r *http.Request, evaluator *authz.Evaluator, resource authz.Resource, id int) bool {
	principal, _ := auth.PrincipalFromContext(r.Context())

	decision, err := evaluator.Authorize(r.Context(), principal, resource, id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return false
	}
	if !decision.Allowed {
		middleware.WriteError(w, r, errorForDecision(decision))
		return false
	}
	return true
}
