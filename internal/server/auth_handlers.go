package server

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/perisicnikola37/expense-tracker-api/internal/auth"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/domain"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/repository"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/validation"
)

// AuthHandlers serves registration, login and the current-user endpoint.
type AuthHandlers struct {
	users    repository.UserRepository
	issuer   *auth.Issuer
	validate *validation.Validator
}

// NewAuthHandlers creates the handler set for the /api/auth endpoints.
func NewAuthHandlers(users repository.UserRepository, issuer *auth.Issuer, validate *validation.Validator) *AuthHandlers {
	return &AuthHandlers{users: users, issuer: issuer, validate: validate}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/auth/register. New accounts are always
// regular; administrators are created out of band.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		AccountType:  models.AccountTypeRegular,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login. Unknown emails and wrong passwords
// produce the same response so the endpoint does not confirm accounts.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.WriteError(w, r, domain.ErrUnauthenticated)
			return
		}
		middleware.WriteError(w, r, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		middleware.WriteError(w, r, domain.ErrUnauthenticated)
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Me handles GET /api/auth/me, returning the account behind the token.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), principal.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
