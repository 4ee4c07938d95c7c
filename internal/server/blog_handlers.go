package server

import (
	"net/http"

	"github.com/perisicnikola37/expense-tracker-api/internal/authz"
	"github.com/perisicnikola37/expense-tracker-api/internal/db/models"
	"github.com/perisicnikola37/expense-tracker-api/internal/middleware"
	"github.com/perisicnikola37/expense-tracker-api/internal/services/blog"
)

// BlogHandlers serves the /api/blogs endpoints. Reads are public;
// mutations require authentication and, for existing rows, ownership.
type BlogHandlers struct {
	service   *blog.Service
	evaluator *authz.Evaluator
}

// NewBlogHandlers creates the handler set for blog posts.
func NewBlogHandlers(service *blog.Service, evaluator *authz.Evaluator) *BlogHandlers {
	return &BlogHandlers{service: service, evaluator: evaluator}
}

// List handles GET /api/blogs.
func (h *BlogHandlers) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/blogs/{id}.
func (h *BlogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /api/blogs.
func (h *BlogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var post models.Blog
	if err := decodeJSON(r, &post); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := h.service.Create(r.Context(), principal.UserID, &post); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, &post)
}

// Update handles PUT /api/blogs/{id}.
func (h *BlogHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceBlog, id) {
		return
	}

	var post models.Blog
	if err := decodeJSON(r, &post); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	post.ID = id

	if err := h.service.Update(r.Context(), &post); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	updated, err := h.service.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/blogs/{id}.
func (h *BlogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if !authorize(w, r, h.evaluator, authz.ResourceBlog, id) {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
