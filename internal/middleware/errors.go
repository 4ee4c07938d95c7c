package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
)

// ErrorEnvelope is the stable JSON shape of every failure response. No
// component other than this translator writes an error body.
type ErrorEnvelope struct {
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
	Path       string `json:"path"`
}

// NewErrorTranslator returns the terminal middleware converting panics
// escaping request handling into the stable error envelope. Handler-level
// failures are routed here through WriteError.
func NewErrorTranslator() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						// Connection aborted; emit nothing.
						panic(rec)
					}
					log.Printf("panic handling %s %s: %v", r.Method, r.URL.Path, rec)
					writeEnvelope(w, r, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// WriteError logs the failure exactly once and writes the translated
// envelope. The mapping is total: anything unclassified is a 500 with a
// generic message so internals never leak.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := translate(err)

	log.Printf("request %s %s failed (%d): %v", r.Method, r.URL.Path, status, err)

	writeEnvelope(w, r, status, message)
}

func translate(err error) (int, string) {
	var validationErr *domain.ValidationError
	var accountTypeErr *domain.InvalidAccountTypeError
	var verificationErr *auth.VerificationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.As(err, &accountTypeErr):
		return http.StatusBadRequest, accountTypeErr.Error()
	case errors.As(err, &verificationErr):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, domain.ErrConflict.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, message string) {
	envelope := ErrorEnvelope{
		Error:      message,
		StatusCode: status,
		Path:       r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Printf("write error envelope for %s: %v", r.URL.Path, err)
	}
}
